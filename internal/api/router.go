package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"inkstudio/internal/api/controllers"
	"inkstudio/pkg/middleware"
)

type Controllers struct {
	Health *controllers.HealthController
	Auth   *controllers.AuthController
	Studio *controllers.StudioController
	Client *controllers.ClientController
	Artist *controllers.ArtistController
}

type RouterOptions struct {
	CORSOrigins []string
	// UploadRoot is served under /uploads when set. Leave it empty for
	// object storage backends.
	UploadRoot string
}

func NewRouter(log *zap.Logger, opts RouterOptions, ctrl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(opts.CORSOrigins))

	if opts.UploadRoot != "" {
		r.Static("/uploads", opts.UploadRoot)
	}
	RegisterRoutes(r, ctrl)
	return r
}

func RegisterRoutes(r *gin.Engine, ctrl Controllers) {
	api := r.Group("/api")
	api.GET("/health", ctrl.Health.Health)
	api.POST("/register", ctrl.Auth.RegisterClient)
	api.POST("/login", ctrl.Auth.Login)
	api.GET("/studios", ctrl.Studio.ListStudios)

	studio := api.Group("/studio/:studioId")
	studio.GET("/config", ctrl.Studio.Config)
	studio.POST("/manager/login", ctrl.Studio.ManagerLogin)
	studio.POST("/assign", ctrl.Studio.Assign)
	studio.GET("/overview", ctrl.Studio.Overview)
	studio.GET("/artists", ctrl.Studio.Artists)
	studio.GET("/clients", ctrl.Studio.Clients)

	admin := api.Group("/admin")
	admin.GET("/artists", ctrl.Studio.AdminArtists)
	admin.GET("/clients", ctrl.Studio.AdminClients)

	client := api.Group("/client/:clientId")
	client.GET("", ctrl.Client.Details)
	client.GET("/images/:kind", ctrl.Client.ListImages)
	client.GET("/wannado", ctrl.Client.Wannado)
	client.POST("/ideas", ctrl.Client.AddIdeas)
	client.GET("/healing", ctrl.Client.ListHealing)
	client.POST("/healing", ctrl.Client.AddHealing)
	client.GET("/healing/stream", ctrl.Client.Stream)

	// Static segments win over :artistId in gin's tree.
	api.POST("/artist/register", ctrl.Auth.RegisterArtist)
	artist := api.Group("/artist/:artistId")
	artist.GET("/clients", ctrl.Artist.Clients)
	artist.GET("/appointments", ctrl.Artist.Appointments)
	artist.GET("/wannado", ctrl.Artist.ListWannado)
	artist.POST("/wannado", ctrl.Artist.AddWannado)
	artist.POST("/upload/:kind", ctrl.Artist.Upload)
	artist.GET("/healing", ctrl.Artist.Healing)
	artist.POST("/healing/:entryId/responses", ctrl.Artist.Respond)
	artist.GET("/healing/stream", ctrl.Artist.Stream)
}

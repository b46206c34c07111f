package controllers

import (
	"strings"

	"github.com/gin-gonic/gin"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/realtime"
	"inkstudio/internal/services"
	"inkstudio/pkg/utils"
)

// UploadLimit is the largest accepted image in bytes.
type UploadLimit int64

type ClientController struct {
	identityService services.IdentityServiceInterface
	assetService    services.AssetServiceInterface
	healingService  services.HealingServiceInterface
	hub             *realtime.Hub
	maxBytes        int64
}

func NewClientController(
	identityService services.IdentityServiceInterface,
	assetService services.AssetServiceInterface,
	healingService services.HealingServiceInterface,
	hub *realtime.Hub,
	limit UploadLimit,
) *ClientController {
	return &ClientController{
		identityService: identityService,
		assetService:    assetService,
		healingService:  healingService,
		hub:             hub,
		maxBytes:        int64(limit),
	}
}

// parseKind accepts singular and plural path segments ("idea", "ideas").
func parseKind(raw string) (db_models.ImageKind, error) {
	kind, err := db_models.ParseImageKind(strings.TrimSuffix(strings.ToLower(raw), "s"))
	if err != nil {
		return "", utils.ErrInvalidImageKind
	}
	return kind, nil
}

// Details godoc
// @Summary Client profile with appointments, images and healing entries
// @Tags Clients
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/client/{clientId} [get]
func (cc *ClientController) Details(c *gin.Context) {
	details, err := cc.assetService.ClientDetails(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, details, "")
}

// ListImages godoc
// @Summary List a client's images of one kind, newest first
// @Tags Clients
// @Produce json
// @Param clientId path string true "Client ID"
// @Param kind path string true "idea, template, final or healing"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /api/client/{clientId}/images/{kind} [get]
func (cc *ClientController) ListImages(c *gin.Context) {
	kind, err := parseKind(c.Param("kind"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	images, err := cc.assetService.ListImages(c.Request.Context(), c.Param("clientId"), kind)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, images, "")
}

// Wannado godoc
// @Summary Wanna-do images of the client's current artist
// @Tags Clients
// @Produce json
// @Param clientId path string true "Client ID"
// @Success 200 {object} utils.APIResponse
// @Router /api/client/{clientId}/wannado [get]
func (cc *ClientController) Wannado(c *gin.Context) {
	images, err := cc.assetService.ListWannadoForClient(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, images, "")
}

// AddIdeas godoc
// @Summary Upload idea images
// @Tags Clients
// @Accept json
// @Accept mpfd
// @Produce json
// @Param clientId path string true "Client ID"
// @Param request body request_models.UploadRequest true "Images as data URLs"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 500 {object} utils.APIResponse
// @Router /api/client/{clientId}/ideas [post]
func (cc *ClientController) AddIdeas(c *gin.Context) {
	body, err := bindUpload(c, cc.maxBytes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	result, err := cc.assetService.AddImages(c.Request.Context(), c.Param("clientId"), db_models.KindIdea, body.Items, body.Comment)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Upload complete")
}

// AddHealing godoc
// @Summary Submit a healing check-in
// @Tags Healing
// @Accept json
// @Accept mpfd
// @Produce json
// @Param clientId path string true "Client ID"
// @Param request body request_models.UploadRequest true "Images and comment"
// @Success 200 {object} utils.APIResponse
// @Router /api/client/{clientId}/healing [post]
func (cc *ClientController) AddHealing(c *gin.Context) {
	body, err := bindUpload(c, cc.maxBytes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	entry, err := cc.healingService.AddHealingForClient(c.Request.Context(), c.Param("clientId"), body.Items, body.Comment)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, entry, "Healing entry created")
}

func (cc *ClientController) ListHealing(c *gin.Context) {
	entries, err := cc.healingService.ListHealingForClient(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, entries, "")
}

// Stream upgrades to a websocket that receives healing.response events.
func (cc *ClientController) Stream(c *gin.Context) {
	clientID := c.Param("clientId")
	if _, err := cc.identityService.GetClient(c.Request.Context(), clientID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if err := cc.hub.ServeWS(c.Writer, c.Request, realtime.ClientTopic(clientID)); err != nil {
		// The upgrader has already written the HTTP error.
		c.Abort()
	}
}

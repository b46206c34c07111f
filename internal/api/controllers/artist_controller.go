package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkstudio/internal/models/request_models"
	"inkstudio/internal/realtime"
	"inkstudio/internal/services"
	"inkstudio/pkg/utils"
)

type ArtistController struct {
	identityService     services.IdentityServiceInterface
	relationshipService services.RelationshipServiceInterface
	assetService        services.AssetServiceInterface
	healingService      services.HealingServiceInterface
	hub                 *realtime.Hub
	maxBytes            int64
}

func NewArtistController(
	identityService services.IdentityServiceInterface,
	relationshipService services.RelationshipServiceInterface,
	assetService services.AssetServiceInterface,
	healingService services.HealingServiceInterface,
	hub *realtime.Hub,
	limit UploadLimit,
) *ArtistController {
	return &ArtistController{
		identityService:     identityService,
		relationshipService: relationshipService,
		assetService:        assetService,
		healingService:      healingService,
		hub:                 hub,
		maxBytes:            int64(limit),
	}
}

// Clients godoc
// @Summary Clients currently assigned to the artist
// @Tags Artists
// @Produce json
// @Param artistId path string true "Artist ID"
// @Success 200 {object} utils.APIResponse
// @Router /api/artist/{artistId}/clients [get]
func (a *ArtistController) Clients(c *gin.Context) {
	clients, err := a.relationshipService.ListArtistClients(c.Request.Context(), c.Param("artistId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, clients, "")
}

func (a *ArtistController) Appointments(c *gin.Context) {
	appts, err := a.relationshipService.ListAppointmentsForArtist(c.Request.Context(), c.Param("artistId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, appts, "")
}

func (a *ArtistController) ListWannado(c *gin.Context) {
	images, err := a.assetService.ListWannadoForArtist(c.Request.Context(), c.Param("artistId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, images, "")
}

// AddWannado godoc
// @Summary Upload wanna-do portfolio images
// @Tags Artists
// @Accept json
// @Accept mpfd
// @Produce json
// @Param artistId path string true "Artist ID"
// @Param request body request_models.UploadRequest true "Images as data URLs"
// @Success 200 {object} utils.APIResponse
// @Router /api/artist/{artistId}/wannado [post]
func (a *ArtistController) AddWannado(c *gin.Context) {
	body, err := bindUpload(c, a.maxBytes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	result, err := a.assetService.AddWannado(c.Request.Context(), c.Param("artistId"), body.Items)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Upload complete")
}

// Upload godoc
// @Summary Upload template or final images for a client
// @Tags Artists
// @Accept json
// @Accept mpfd
// @Produce json
// @Param artistId path string true "Artist ID"
// @Param kind path string true "template, templates or final"
// @Param request body request_models.UploadRequest true "clientId and images"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Router /api/artist/{artistId}/upload/{kind} [post]
func (a *ArtistController) Upload(c *gin.Context) {
	kind, err := parseKind(c.Param("kind"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	body, err := bindUpload(c, a.maxBytes)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if body.ClientID == "" {
		utils.RespondError(c, http.StatusBadRequest, "clientId is required")
		return
	}
	result, err := a.assetService.AddArtistUpload(c.Request.Context(), c.Param("artistId"), body.ClientID, kind, body.Items)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "Upload complete")
}

// Healing godoc
// @Summary Healing entries of the artist's current clients
// @Tags Healing
// @Produce json
// @Param artistId path string true "Artist ID"
// @Success 200 {object} utils.APIResponse
// @Router /api/artist/{artistId}/healing [get]
func (a *ArtistController) Healing(c *gin.Context) {
	entries, err := a.healingService.ListHealingForArtist(c.Request.Context(), c.Param("artistId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, entries, "")
}

// Respond godoc
// @Summary Answer a healing entry
// @Tags Healing
// @Accept json
// @Produce json
// @Param artistId path string true "Artist ID"
// @Param entryId path string true "Healing entry ID"
// @Param request body request_models.HealingResponseRequest true "Response"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/artist/{artistId}/healing/{entryId}/responses [post]
func (a *ArtistController) Respond(c *gin.Context) {
	var req request_models.HealingResponseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}
	resp, err := a.healingService.AddHealingResponse(c.Request.Context(), req.ClientID, c.Param("entryId"), c.Param("artistId"), req.Comment)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, resp, "Response added")
}

// Stream upgrades to a websocket that receives healing.created events.
func (a *ArtistController) Stream(c *gin.Context) {
	artistID := c.Param("artistId")
	if _, err := a.identityService.GetArtist(c.Request.Context(), artistID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	if err := a.hub.ServeWS(c.Writer, c.Request, realtime.ArtistTopic(artistID)); err != nil {
		c.Abort()
	}
}


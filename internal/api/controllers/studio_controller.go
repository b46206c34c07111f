package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkstudio/internal/models/request_models"
	"inkstudio/internal/services"
	"inkstudio/pkg/utils"
)

type StudioController struct {
	identityService     services.IdentityServiceInterface
	relationshipService services.RelationshipServiceInterface
	overviewService     services.OverviewServiceInterface
}

func NewStudioController(
	identityService services.IdentityServiceInterface,
	relationshipService services.RelationshipServiceInterface,
	overviewService services.OverviewServiceInterface,
) *StudioController {
	return &StudioController{
		identityService:     identityService,
		relationshipService: relationshipService,
		overviewService:     overviewService,
	}
}

// ListStudios godoc
// @Summary List studios
// @Tags Studios
// @Produce json
// @Success 200 {object} utils.APIResponse
// @Router /api/studios [get]
func (s *StudioController) ListStudios(c *gin.Context) {
	studios, err := s.identityService.ListStudios(c.Request.Context())
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, studios, "")
}

// Config godoc
// @Summary Studio theme configuration
// @Tags Studios
// @Produce json
// @Param studioId path string true "Studio ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/studio/{studioId}/config [get]
func (s *StudioController) Config(c *gin.Context) {
	theme, err := s.identityService.GetStudioTheme(c.Request.Context(), c.Param("studioId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, theme, "")
}

// ManagerLogin godoc
// @Summary Check a studio manager credential
// @Tags Studios
// @Accept json
// @Produce json
// @Param studioId path string true "Studio ID"
// @Param request body request_models.ManagerLoginRequest true "Manager credential"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/studio/{studioId}/manager/login [post]
func (s *StudioController) ManagerLogin(c *gin.Context) {
	var req request_models.ManagerLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	studioID := c.Param("studioId")
	if err := s.identityService.CheckManager(c.Request.Context(), studioID, req.User, req.Password); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"studioId": studioID}, "Login successful")
}

// Assign godoc
// @Summary Assign a client to an artist of this studio
// @Tags Studios
// @Accept json
// @Produce json
// @Param studioId path string true "Studio ID"
// @Param request body request_models.AssignRequest true "Assignment"
// @Success 200 {object} utils.APIResponse
// @Failure 403 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/studio/{studioId}/assign [post]
func (s *StudioController) Assign(c *gin.Context) {
	var req request_models.AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := s.relationshipService.AssignClientToArtist(c.Request.Context(), c.Param("studioId"), req.ClientID, req.ArtistID); err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, gin.H{"clientId": req.ClientID, "artistId": req.ArtistID}, "Client assigned")
}

// Overview godoc
// @Summary Manager dashboard rollup
// @Tags Studios
// @Produce json
// @Param studioId path string true "Studio ID"
// @Success 200 {object} utils.APIResponse
// @Failure 404 {object} utils.APIResponse
// @Router /api/studio/{studioId}/overview [get]
func (s *StudioController) Overview(c *gin.Context) {
	overview, err := s.overviewService.StudioOverview(c.Request.Context(), c.Param("studioId"))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, overview, "")
}

func (s *StudioController) Artists(c *gin.Context) {
	studioID := c.Param("studioId")
	artists, err := s.relationshipService.ListArtists(c.Request.Context(), &studioID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, artists, "")
}

func (s *StudioController) Clients(c *gin.Context) {
	studioID := c.Param("studioId")
	clients, err := s.relationshipService.ListStudioClients(c.Request.Context(), &studioID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, clients, "")
}

// AdminArtists lists artists of every studio.
func (s *StudioController) AdminArtists(c *gin.Context) {
	artists, err := s.relationshipService.ListArtists(c.Request.Context(), nil)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, artists, "")
}

// AdminClients lists clients of every studio.
func (s *StudioController) AdminClients(c *gin.Context) {
	clients, err := s.relationshipService.ListStudioClients(c.Request.Context(), nil)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, clients, "")
}

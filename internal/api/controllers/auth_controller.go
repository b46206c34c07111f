package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"inkstudio/internal/models/db_models"
	"inkstudio/internal/models/request_models"
	"inkstudio/internal/models/response_models"
	"inkstudio/internal/services"
	"inkstudio/pkg/utils"
)

type AuthController struct {
	identityService services.IdentityServiceInterface
}

func NewAuthController(identityService services.IdentityServiceInterface) *AuthController {
	return &AuthController{identityService: identityService}
}

// RegisterClient godoc
// @Summary Register a client
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterClientRequest true "Client registration"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/register [post]
func (a *AuthController) RegisterClient(c *gin.Context) {
	var req request_models.RegisterClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	client, err := a.identityService.CreateClient(c.Request.Context(), req.ClientID, req.Name, req.Password, req.StudioID, req.ArtistID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, client, "Client registered")
}

// RegisterArtist godoc
// @Summary Register an artist
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.RegisterArtistRequest true "Artist registration"
// @Success 200 {object} utils.APIResponse
// @Failure 409 {object} utils.APIResponse
// @Router /api/artist/register [post]
func (a *AuthController) RegisterArtist(c *gin.Context) {
	var req request_models.RegisterArtistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	artist, err := a.identityService.CreateArtist(c.Request.Context(), req.ArtistID, req.Name, req.Password, req.StudioID)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, artist, "Artist registered")
}

// Login godoc
// @Summary Check an artist or client credential
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body request_models.LoginRequest true "Login payload"
// @Success 200 {object} utils.APIResponse
// @Failure 401 {object} utils.APIResponse
// @Router /api/login [post]
func (a *AuthController) Login(c *gin.Context) {
	var req request_models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	role := db_models.Role(req.Role)
	if err := a.identityService.VerifyCredential(c.Request.Context(), role, req.UserID, req.Password); err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.LoginResponse{Role: req.Role, UserID: req.UserID}, "Login successful")
}

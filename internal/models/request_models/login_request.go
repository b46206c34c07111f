package request_models

type LoginRequest struct {
	UserID   string `json:"userId" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required"`
}

type ManagerLoginRequest struct {
	User     string `json:"user" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RegisterClientRequest struct {
	ClientID string `json:"clientId" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	StudioID string `json:"studioId"`
	ArtistID string `json:"artistId"`
}

type RegisterArtistRequest struct {
	ArtistID string `json:"artistId" binding:"required"`
	Password string `json:"password" binding:"required"`
	Name     string `json:"name"`
	StudioID string `json:"studioId"`
}

package request_models

type AssignRequest struct {
	ClientID string `json:"clientId" binding:"required"`
	ArtistID string `json:"artistId" binding:"required"`
}

package request_models

// UploadImage is one image in a JSON upload body. Data is a base64 data URL
// such as "data:image/png;base64,iVBOR...".
type UploadImage struct {
	Name string `json:"name"`
	Data string `json:"data" binding:"required"`
}

// UploadRequest is the JSON upload body. ClientID is only read by artist
// uploads, Comment by idea and healing uploads.
type UploadRequest struct {
	Images   []UploadImage `json:"images" binding:"required,min=1,dive"`
	Comment  string        `json:"comment"`
	ClientID string        `json:"clientId"`
}

type HealingResponseRequest struct {
	ClientID string `json:"clientId" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
}

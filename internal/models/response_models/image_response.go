package response_models

import "time"

type ImageResponse struct {
	ID        string    `json:"id"`
	ClientID  *string   `json:"clientId"`
	ArtistID  *string   `json:"artistId"`
	Kind      string    `json:"kind"`
	Filename  string    `json:"filename"`
	Path      string    `json:"path"`
	URL       string    `json:"url"`
	Comment   *string   `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type UploadResult struct {
	Uploaded int             `json:"uploaded"`
	Images   []ImageResponse `json:"images"`
}

type HealingResponseView struct {
	ID        string    `json:"id"`
	ArtistID  string    `json:"artistId"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"createdAt"`
}

type HealingEntryResponse struct {
	ID         string                `json:"id"`
	ClientID   string                `json:"clientId"`
	ClientName string                `json:"clientName"`
	Comment    string                `json:"comment"`
	CreatedAt  time.Time             `json:"createdAt"`
	Images     []ImageResponse       `json:"images"`
	Responses  []HealingResponseView `json:"responses"`
}

type ClientDetails struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	StudioID      *string                `json:"studioId"`
	ArtistID      *string                `json:"artistId"`
	Appointments  []AppointmentResponse  `json:"appointments"`
	Ideas         []ImageResponse        `json:"ideas"`
	Templates     []ImageResponse        `json:"templates"`
	FinalTemplate *ImageResponse         `json:"finalTemplate"`
	Healing       []HealingEntryResponse `json:"healing"`
}

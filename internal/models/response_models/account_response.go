package response_models

type LoginResponse struct {
	Role   string `json:"role"`
	UserID string `json:"userId"`
}

type StudioSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type StudioTheme struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
	FontHead       string `json:"fontHead"`
	FontBody       string `json:"fontBody"`
	Bg             string `json:"bg"`
}

type ArtistSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	StudioID *string `json:"studioId"`
}

type ClientSummary struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	StudioID *string `json:"studioId"`
	ArtistID *string `json:"artistId"`
}

type AppointmentResponse struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

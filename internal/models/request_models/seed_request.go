package request_models

// StudioThemeInput mirrors the theme block of data.json.
type StudioThemeInput struct {
	PrimaryColor   string `json:"primaryColor"`
	SecondaryColor string `json:"secondaryColor"`
	AccentColor    string `json:"accentColor"`
	FontBody       string `json:"fontBody"`
	FontHead       string `json:"fontHead"`
	Bg             string `json:"bg"`
}

type ManagerInput struct {
	User     string `json:"user"`
	Password string `json:"password"`
}

type StudioInput struct {
	ID      string           `json:"id" binding:"required"`
	Name    string           `json:"name"`
	Manager *ManagerInput    `json:"manager"`
	Theme   StudioThemeInput `json:"theme"`
}

type SeedArtist struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
	StudioID string `json:"studioId"`
}

type SeedClient struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Password string `json:"password"`
	StudioID string `json:"studioId"`
	ArtistID string `json:"artistId"`
}

type SeedAppointment struct {
	ID          string `json:"id"`
	ClientID    string `json:"clientId"`
	Date        string `json:"date"`
	Type        string `json:"type"`
	Description string `json:"description"`
}

// SeedData is the data.json document accepted by studioctl seed.
type SeedData struct {
	Studios      []StudioInput     `json:"studios"`
	Artists      []SeedArtist      `json:"artists"`
	Clients      []SeedClient      `json:"clients"`
	Appointments []SeedAppointment `json:"appointments"`
}

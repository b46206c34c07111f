package db_models

import "time"

// Role selects which identity table a credential check runs against.
type Role string

const (
	RoleArtist Role = "artist"
	RoleClient Role = "client"
)

type Artist struct {
	ID           string  `gorm:"primaryKey"`
	Name         string  `gorm:"not null;index"`
	PasswordHash string  `gorm:"not null"`
	StudioID     *string `gorm:"index"`
	CreatedAt    time.Time
}

type Client struct {
	ID           string  `gorm:"primaryKey"`
	Name         string  `gorm:"not null;index"`
	PasswordHash string  `gorm:"not null"`
	StudioID     *string `gorm:"index"`
	ArtistID     *string `gorm:"index"`
	CreatedAt    time.Time
}

type Appointment struct {
	ID          string `gorm:"primaryKey"`
	ClientID    string `gorm:"not null;index"`
	Date        string `gorm:"not null"`
	Type        string
	Description string
}

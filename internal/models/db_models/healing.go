package db_models

// HealingEntry is one aftercare check-in submitted by a client. Its images
// are Image rows of kind healing that point back at the entry.
type HealingEntry struct {
	BaseModel
	ClientID string `gorm:"not null;index"`
	Comment  string

	Client    *Client           `gorm:"foreignKey:ClientID"`
	Images    []Image           `gorm:"foreignKey:HealingEntryID"`
	Responses []HealingResponse `gorm:"foreignKey:EntryID"`
}

type HealingResponse struct {
	BaseModel
	EntryID  string `gorm:"type:varchar(36);not null;index"`
	ArtistID string `gorm:"not null;index"`
	Comment  string `gorm:"type:text;not null"`
}

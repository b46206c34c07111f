package db_models

import "time"

type Studio struct {
	ID             string `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	ThemePrimary   string
	ThemeSecondary string
	ThemeAccent    string
	FontHead       string
	FontBody       string
	Background     string `gorm:"column:bg"`

	ManagerUser string
	// ManagerPassword holds the hex SHA-256 of the manager password. Rows
	// written before hashing was introduced are rewritten by
	// IdentityService.HashLegacyManagerPasswords.
	ManagerPassword string

	CreatedAt time.Time
}

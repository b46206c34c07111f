package db_models

import (
	"database/sql/driver"
	"fmt"
)

// ImageKind is the closed set of image categories. Values outside the set
// cannot be written: ParseImageKind rejects them and Value refuses them at
// the storage boundary.
type ImageKind string

const (
	KindIdea     ImageKind = "idea"
	KindTemplate ImageKind = "template"
	KindFinal    ImageKind = "final"
	KindHealing  ImageKind = "healing"
	KindWannado  ImageKind = "wannado"
)

// AllImageKinds lists every kind in a stable order.
var AllImageKinds = []ImageKind{KindIdea, KindTemplate, KindFinal, KindHealing, KindWannado}

// ErrUnknownImageKind is returned for tags outside the enumeration.
var ErrUnknownImageKind = fmt.Errorf("unknown image kind")

func ParseImageKind(s string) (ImageKind, error) {
	k := ImageKind(s)
	if !k.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownImageKind, s)
	}
	return k, nil
}

func (k ImageKind) Valid() bool {
	switch k {
	case KindIdea, KindTemplate, KindFinal, KindHealing, KindWannado:
		return true
	}
	return false
}

// ClientOwned reports whether rows of this kind must reference a client.
// Only wannado images belong to an artist.
func (k ImageKind) ClientOwned() bool {
	return k.Valid() && k != KindWannado
}

func (k ImageKind) String() string { return string(k) }

func (k ImageKind) Value() (driver.Value, error) {
	if !k.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownImageKind, string(k))
	}
	return string(k), nil
}

func (k *ImageKind) Scan(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case []byte:
		s = string(v)
	default:
		return fmt.Errorf("image kind: unsupported scan type %T", value)
	}
	parsed, err := ParseImageKind(s)
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

type Image struct {
	BaseModel
	ClientID       *string   `gorm:"index" json:"client_id"`
	ArtistID       *string   `gorm:"index" json:"artist_id"`
	Kind           ImageKind `gorm:"type:varchar(16);not null;index;check:chk_images_kind,kind IN ('idea','template','final','healing','wannado')" json:"kind"`
	Filename       string    `json:"filename"`
	Path           string    `gorm:"not null" json:"path"`
	Comment        *string   `json:"comment"`
	HealingEntryID *string   `gorm:"type:varchar(36);index" json:"healing_entry_id,omitempty"`
	// Position is the index of the row inside its upload batch.
	Position int `gorm:"not null;default:0" json:"-"`
}

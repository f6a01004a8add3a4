package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Tag is a label shared by influencers. Text is stored lower-cased.
type Tag struct {
	ID        uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Text      string    `json:"text" db:"text" gorm:"type:text;not null;uniqueIndex:idx_tags_text"`
	CreatedAt time.Time `json:"-" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
}

// NormalizeTagText is the canonical form tags are stored and compared in.
func NormalizeTagText(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func (t *Tag) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

func (t *Tag) BeforeSave(tx *gorm.DB) error {
	t.Text = NormalizeTagText(t.Text)
	return nil
}

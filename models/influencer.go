package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Influencer is a directory entry. Tags are held through the influencer_tags
// join table whose composite key makes a duplicate reference impossible.
type Influencer struct {
	ID              uuid.UUID         `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Name            string            `json:"name" db:"name" gorm:"type:text;not null"`
	Description     string            `json:"description" db:"description" gorm:"type:text;not null"`
	InstagramHandle *string           `json:"instagramHandle,omitempty" db:"instagram_handle" gorm:"type:text"`
	XHandle         *string           `json:"xHandle,omitempty" db:"x_handle" gorm:"type:text"`
	SocialLinks     datatypes.JSONMap `json:"socialLinks,omitempty" db:"social_links"`
	ProfileImage    *string           `json:"profileImage,omitempty" db:"profile_image" gorm:"type:text"`
	Tags            []Tag             `json:"tags" gorm:"many2many:influencer_tags;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time         `json:"updatedAt" db:"updated_at"`
}

func (i *Influencer) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// HasTag is the membership test used before appending a tag.
func (i *Influencer) HasTag(tagID uuid.UUID) bool {
	for _, t := range i.Tags {
		if t.ID == tagID {
			return true
		}
	}
	return false
}

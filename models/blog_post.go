package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BlogPost represents a complete blog post with metadata
type BlogPost struct {
	ID         uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	Title      string     `json:"title" db:"title" gorm:"type:text;not null"`
	Content    string     `json:"content" db:"content" gorm:"type:text;not null"`
	CoverImage *string    `json:"coverImage,omitempty" db:"cover_image" gorm:"type:text"`
	AuthorID   *uuid.UUID `json:"authorId,omitempty" db:"author_id" gorm:"type:uuid;index:idx_blog_posts_author_id"`
	Author     *User      `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnDelete:SET NULL"`
	URL        *string    `json:"url,omitempty" db:"url" gorm:"type:text;uniqueIndex:idx_blog_posts_url"`
	Tags       []BlogTag  `json:"tags,omitempty" gorm:"foreignKey:BlogPostID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time  `json:"updatedAt" db:"updated_at"`
}

func (b *BlogPost) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// TagValues flattens the tag rows into the string sequence clients see.
func (b *BlogPost) TagValues() []string {
	values := make([]string, 0, len(b.Tags))
	for _, t := range b.Tags {
		values = append(values, t.Value)
	}
	return values
}

// AuthoredBy compares the stored author reference with id in string form.
func (b *BlogPost) AuthoredBy(id string) bool {
	if b.AuthorID == nil {
		return false
	}
	return b.AuthorID.String() == id
}

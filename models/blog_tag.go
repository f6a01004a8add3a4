package models

import "github.com/google/uuid"

// BlogTag represents a tag associated with a blog post
type BlogTag struct {
	ID         uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	BlogPostID uuid.UUID `json:"blog_post_id" db:"blog_post_id" gorm:"type:uuid;not null;index:idx_blog_tag_blog_post_id;uniqueIndex:idx_blog_tag_unique"`
	Value      string    `json:"value" db:"value" gorm:"type:text;not null;index:idx_blog_tag_value;uniqueIndex:idx_blog_tag_unique"`
	Position   int       `json:"-" db:"position" gorm:"not null"`
}

func NewBlogTag(blogPostID uuid.UUID, value string, position int) BlogTag {
	return BlogTag{ID: uuid.New(), BlogPostID: blogPostID, Value: value, Position: position}
}

package database

import (
	"context"

	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/models"
	"gorm.io/gorm"
)

type BlogTagRepo struct {
	db *gorm.DB
}

func NewBlogTagRepo(db *gorm.DB) *BlogTagRepo {
	return &BlogTagRepo{db}
}

// Replace swaps the tags of a blog post for values. Duplicate values are
// dropped, keeping the first occurrence.
func (r *BlogTagRepo) Replace(ctx context.Context, blogPostID uuid.UUID, values []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceBlogTags(tx, blogPostID, values)
	})
}

func replaceBlogTags(tx *gorm.DB, blogPostID uuid.UUID, values []string) error {
	if err := tx.Delete(&models.BlogTag{}, "blog_post_id = ?", blogPostID).Error; err != nil {
		return err
	}

	seen := make(map[string]bool, len(values))
	blogTags := make([]models.BlogTag, 0, len(values))
	for _, value := range values {
		if value == "" || seen[value] {
			continue
		}
		seen[value] = true
		blogTags = append(blogTags, models.NewBlogTag(blogPostID, value, len(blogTags)))
	}
	if len(blogTags) == 0 {
		return nil
	}
	return tx.Create(&blogTags).Error
}

package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type BlogPostRepo struct {
	db *gorm.DB
}

func NewBlogPostRepo(db *gorm.DB) *BlogPostRepo {
	return &BlogPostRepo{db}
}

// withAuthorAndTags resolves the author to its public fields and loads tags
func withAuthorAndTags(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Author", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "first_name", "last_name", "email")
		}).
		Preload("Tags", func(db *gorm.DB) *gorm.DB {
			return db.Order("position asc")
		})
}

// FindAll returns all blog posts from the database, newest first
func (r *BlogPostRepo) FindAll(ctx context.Context) ([]*models.BlogPost, error) {
	var blogPosts []*models.BlogPost
	err := withAuthorAndTags(r.db.WithContext(ctx)).Order("created_at desc").Find(&blogPosts).Error
	return blogPosts, err
}

// FindByID returns a blog post by its ID, or nil if there is none
func (r *BlogPostRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.BlogPost, error) {
	var blogPost models.BlogPost
	err := withAuthorAndTags(r.db.WithContext(ctx)).First(&blogPost, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &blogPost, nil
}

// FindByTag returns every blog post carrying the tag value
func (r *BlogPostRepo) FindByTag(ctx context.Context, value string) ([]*models.BlogPost, error) {
	db := r.db.WithContext(ctx)
	tagged := db.Model(&models.BlogTag{}).Select("blog_post_id").Where("value = ?", value)

	var blogPosts []*models.BlogPost
	err := withAuthorAndTags(db).
		Where("id IN (?)", tagged).
		Order("created_at desc").
		Find(&blogPosts).Error
	return blogPosts, err
}

// Add inserts a new blog post into the database without its tags
func (r *BlogPostRepo) Add(ctx context.Context, blogPost *models.BlogPost) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(blogPost).Error
}

// SetURL writes the derived url once the post has an id
func (r *BlogPostRepo) SetURL(ctx context.Context, id uuid.UUID, url string) error {
	return r.db.WithContext(ctx).
		Model(&models.BlogPost{}).
		Where("id = ?", id).
		Update("url", url).Error
}

// Update overwrites the editable columns of an existing blog post and, when
// tags is non-nil, replaces its tags in the same transaction.
func (r *BlogPostRepo) Update(ctx context.Context, blogPost *models.BlogPost, tags []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Model(blogPost).
			Select("title", "content", "cover_image", "updated_at").
			Updates(blogPost).Error
		if err != nil {
			return err
		}
		if tags == nil {
			return nil
		}
		return replaceBlogTags(tx, blogPost.ID, tags)
	})
}

// Delete removes a blog post and its tags from the database by id
func (r *BlogPostRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.BlogTag{}, "blog_post_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.BlogPost{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

package database

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// editableInfluencerColumns are replaced wholesale by Update.
var editableInfluencerColumns = []string{
	"name",
	"description",
	"instagram_handle",
	"x_handle",
	"social_links",
	"profile_image",
	"updated_at",
}

type InfluencerRepo struct {
	db *gorm.DB
}

func NewInfluencerRepo(db *gorm.DB) *InfluencerRepo {
	return &InfluencerRepo{db}
}

func preloadTags(db *gorm.DB) *gorm.DB {
	return db.Preload("Tags", func(db *gorm.DB) *gorm.DB {
		return db.Select("id", "text").Order("text asc")
	})
}

// FindAll returns all influencers with their tags
func (r *InfluencerRepo) FindAll(ctx context.Context) ([]*models.Influencer, error) {
	var influencers []*models.Influencer
	err := preloadTags(r.db.WithContext(ctx)).Order("created_at asc").Find(&influencers).Error
	return influencers, err
}

// FindByID returns an influencer by its ID, or nil if there is none
func (r *InfluencerRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Influencer, error) {
	var influencer models.Influencer
	err := preloadTags(r.db.WithContext(ctx)).First(&influencer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &influencer, nil
}

// Add inserts a new influencer. Tags are never written here.
func (r *InfluencerRepo) Add(ctx context.Context, influencer *models.Influencer) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(influencer).Error
}

// Update replaces the editable fields of an existing influencer
func (r *InfluencerRepo) Update(ctx context.Context, influencer *models.Influencer) error {
	return r.db.WithContext(ctx).
		Model(influencer).
		Select(editableInfluencerColumns).
		Updates(influencer).Error
}

// Delete removes an influencer and its tag associations. It returns
// gorm.ErrRecordNotFound when the influencer does not exist.
func (r *InfluencerRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM influencer_tags WHERE influencer_id = ?", id).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Influencer{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// AddTag links tag to influencer. Callers check membership first.
func (r *InfluencerRepo) AddTag(ctx context.Context, influencer *models.Influencer, tag *models.Tag) error {
	return r.db.WithContext(ctx).Model(influencer).Association("Tags").Append(tag)
}

// RemoveTag unlinks a tag from influencer. Unlinking a tag that was never
// linked is a no-op.
func (r *InfluencerRepo) RemoveTag(ctx context.Context, influencer *models.Influencer, tagID uuid.UUID) error {
	return r.db.WithContext(ctx).Model(influencer).Association("Tags").Delete(&models.Tag{ID: tagID})
}

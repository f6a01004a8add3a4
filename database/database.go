package database

import (
	"github.com/rpupo63/creator-directory-backend/errs"
	"gorm.io/gorm"
)

type Database struct {
	db             *gorm.DB
	userRepo       *UserRepo
	sessionRepo    *SessionRepo
	tagRepo        *TagRepo
	influencerRepo *InfluencerRepo
	blogPostRepo   *BlogPostRepo
	blogTagRepo    *BlogTagRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		db:             db,
		userRepo:       NewUserRepo(db),
		sessionRepo:    NewSessionRepo(db),
		tagRepo:        NewTagRepo(db),
		influencerRepo: NewInfluencerRepo(db),
		blogPostRepo:   NewBlogPostRepo(db),
		blogTagRepo:    NewBlogTagRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}

func (d Database) SessionRepo() *SessionRepo {
	return d.sessionRepo
}

func (d Database) TagRepo() *TagRepo {
	return d.tagRepo
}

func (d Database) InfluencerRepo() *InfluencerRepo {
	return d.influencerRepo
}

func (d Database) BlogPostRepo() *BlogPostRepo {
	return d.blogPostRepo
}

func (d Database) BlogTagRepo() *BlogTagRepo {
	return d.blogTagRepo
}

// Ping checks that the underlying connection pool can reach the server.
func (d Database) Ping() error {
	if d.db == nil {
		return errs.NewInternalError("database not initialized")
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

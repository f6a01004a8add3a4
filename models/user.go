package models

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is a registered account. Password is only ever set in memory; the
// BeforeSave hook replaces it with PasswordHash before anything is written.
type User struct {
	ID           uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey;not null"`
	FirstName    string    `json:"firstName" db:"first_name" gorm:"type:text;not null"`
	LastName     string    `json:"lastName" db:"last_name" gorm:"type:text;not null"`
	Email        string    `json:"email" db:"email" gorm:"type:text;not null;uniqueIndex:idx_users_email"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number" gorm:"type:text;not null;uniqueIndex:idx_users_phone_number"`
	PasswordHash string    `json:"-" db:"password_hash" gorm:"type:text;not null"`
	IsAdmin      bool      `json:"isAdmin" db:"is_admin" gorm:"not null;default:false"`
	IsBlogger    bool      `json:"isBlogger" db:"is_blogger" gorm:"not null;default:false"`
	ProfileImage *string   `json:"profileImage,omitempty" db:"profile_image" gorm:"type:text"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"-" db:"updated_at"`

	Password string `json:"-" gorm:"-"`
}

// BcryptCost is a variable so tests can lower it.
var BcryptCost = bcrypt.DefaultCost

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// BeforeSave hashes a newly supplied password. Saves without one keep the
// stored hash untouched.
func (u *User) BeforeSave(tx *gorm.DB) error {
	if u.Password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), BcryptCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	u.Password = ""
	return nil
}

// ComparePassword reports whether password matches the stored hash.
func (u *User) ComparePassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

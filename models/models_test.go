package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestUserPasswordHook(t *testing.T) {
	BcryptCost = bcrypt.MinCost
	u := &User{Password: "hunter22"}

	require.NoError(t, u.BeforeSave(nil))
	assert.Empty(t, u.Password)
	assert.NotEqual(t, "hunter22", u.PasswordHash)
	assert.True(t, u.ComparePassword("hunter22"))
	assert.False(t, u.ComparePassword("hunter23"))

	hash := u.PasswordHash
	require.NoError(t, u.BeforeSave(nil))
	assert.Equal(t, hash, u.PasswordHash, "saving without a new password keeps the hash")
}

func TestSessionExpired(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	s := &Session{ExpiresAt: now}

	assert.True(t, s.Expired(now))
	assert.True(t, s.Expired(now.Add(time.Second)))
	assert.False(t, s.Expired(now.Add(-time.Second)))
}

func TestNormalizeTagText(t *testing.T) {
	assert.Equal(t, "fitness", NormalizeTagText("  FitNess "))
	assert.Equal(t, "", NormalizeTagText("   "))

	tag := &Tag{Text: " Travel"}
	require.NoError(t, tag.BeforeSave(nil))
	assert.Equal(t, "travel", tag.Text)
}

func TestInfluencerHasTag(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	inf := &Influencer{Tags: []Tag{{ID: a, Text: "food"}}}

	assert.True(t, inf.HasTag(a))
	assert.False(t, inf.HasTag(b))
}

func TestBlogPostHelpers(t *testing.T) {
	id := uuid.New()
	post := &BlogPost{
		AuthorID: &id,
		Tags:     []BlogTag{NewBlogTag(uuid.Nil, "go", 0), NewBlogTag(uuid.Nil, "web", 1)},
	}

	assert.Equal(t, []string{"go", "web"}, post.TagValues())
	assert.True(t, post.AuthoredBy(id.String()))
	assert.False(t, post.AuthoredBy(uuid.NewString()))
	assert.False(t, (&BlogPost{}).AuthoredBy(id.String()))
	assert.Empty(t, (&BlogPost{}).TagValues())
}

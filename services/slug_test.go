package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Hello, World!":           "hello-world",
		"  Go   1.23 -- release ": "go-1-23-release",
		"already-a-slug":          "already-a-slug",
		"Ünïcödé Tïtle":           "n-c-d-t-tle",
		"!!!":                     "",
	}
	for title, want := range cases {
		assert.Equal(t, want, Slugify(title), title)
	}
}

func TestBlogURL(t *testing.T) {
	id := uuid.MustParse("3f2504e0-4f89-41d3-9a0c-0305e82c3301")
	assert.Equal(t, "hello-world-3f2504e0-4f89-41d3-9a0c-0305e82c3301", BlogURL("Hello, World!", id))
	assert.Equal(t, id.String(), BlogURL("???", id))
}

func TestBuildBlogPostURL(t *testing.T) {
	assert.Equal(t, "https://example.com/blog/hello-1", BuildBlogPostURL("https://example.com/", "hello-1"))
	assert.Empty(t, BuildBlogPostURL("", "hello-1"))
	assert.Empty(t, BuildBlogPostURL("https://example.com", ""))
	assert.Equal(t, "https://example.com", GetBaseURL(map[string]string{"BASE_URL": "https://example.com"}))
}

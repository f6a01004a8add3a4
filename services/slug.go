package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rpupo63/creator-directory-backend/config"
)

var nonSlugRun = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lower-cases title and collapses every run of characters outside
// [a-z0-9] into a single hyphen. Leading and trailing hyphens are dropped.
func Slugify(title string) string {
	slug := nonSlugRun.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(slug, "-")
}

// BlogURL derives the unique url of a blog post from its title and id.
// A title with no usable characters yields the id alone.
func BlogURL(title string, id uuid.UUID) string {
	slug := Slugify(title)
	if slug == "" {
		return id.String()
	}
	return slug + "-" + id.String()
}

// GetBaseURL retrieves the public site address from configuration
func GetBaseURL(cfg map[string]string) string {
	return config.GetString(cfg, "BASE_URL", "")
}

// BuildBlogPostURL constructs an absolute blog post link from base URL and the
// post's url field
// Parameters:
//   - baseURL: The base URL (e.g., "https://example.com")
//   - blogURL: The derived url (e.g., "hello-world-{id}")
//
// Returns:
//   - The full blog post URL (e.g., "https://example.com/blog/hello-world-{id}")
func BuildBlogPostURL(baseURL, blogURL string) string {
	if baseURL == "" || blogURL == "" {
		return ""
	}
	return fmt.Sprintf("%s/blog/%s", strings.TrimSuffix(baseURL, "/"), blogURL)
}

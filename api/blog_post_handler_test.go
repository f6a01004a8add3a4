package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createBlog(t *testing.T, c *testClient, body map[string]any) map[string]any {
	t.Helper()
	resp := c.do(http.MethodPost, "/api/blogs/create", body)
	require.Equal(t, http.StatusCreated, resp.status, resp.message())
	assert.Equal(t, "Blog created successfully.", resp.message())
	return resp.object("blog")
}

func TestCreateBlogDerivesURL(t *testing.T) {
	env := newTestEnv(t)
	c, userID := env.loggedIn("Ada", "ada@example.com", "+15550001")

	blog := createBlog(t, c, map[string]any{
		"title":   "Hello, World!",
		"content": "<p>first</p>",
		"tags":    []string{"intro", " go ", "intro"},
	})

	id := blog["id"].(string)
	assert.Equal(t, "hello-world-"+id, blog["url"])
	assert.Equal(t, "https://creators.example/blog/hello-world-"+id, blog["permalink"])
	assert.Equal(t, []any{"intro", "go"}, blog["tags"])

	author := blog["author"].(map[string]any)
	assert.Equal(t, userID, author["id"])
	assert.Equal(t, "Ada", author["firstName"])
	assert.Equal(t, "ada@example.com", author["email"])
	assert.NotContains(t, author, "passwordHash")
}

func TestCreateBlogValidation(t *testing.T) {
	env := newTestEnv(t)

	anonymous := env.client()
	resp := anonymous.do(http.MethodPost, "/api/blogs/create", map[string]any{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, resp.status)

	c, _ := env.loggedIn("Ada", "ada@example.com", "+15550001")
	resp = c.do(http.MethodPost, "/api/blogs/create", map[string]any{"title": "Only a title"})
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "Title and content are required.", resp.message())

	resp = c.do(http.MethodPost, "/api/blogs/create", map[string]any{"title": "t", "content": "c", "author": uuid.NewString()})
	assert.Equal(t, http.StatusForbidden, resp.status)

	resp = c.do(http.MethodGet, "/api/blogs", nil)
	assert.Empty(t, resp.list("blogs"))
}

func TestEditBlogOwnership(t *testing.T) {
	env := newTestEnv(t)
	alice, aliceID := env.loggedIn("Alice", "alice@example.com", "+15550001")
	bob, bobID := env.loggedIn("Bob", "bob@example.com", "+15550002")

	blog := createBlog(t, alice, map[string]any{"title": "Original", "content": "original content", "author": aliceID})
	id := blog["id"].(string)
	url := blog["url"]

	t.Run("other user is refused", func(t *testing.T) {
		resp := bob.do(http.MethodPut, "/api/blogs/edit/"+id, map[string]any{"content": "hijacked", "author": bobID})
		assert.Equal(t, http.StatusForbidden, resp.status)
		assert.Equal(t, "You are not authorized to edit this blog.", resp.message())

		resp = bob.do(http.MethodPut, "/api/blogs/edit/"+id, map[string]any{"content": "hijacked", "author": aliceID})
		assert.Equal(t, http.StatusForbidden, resp.status)

		stored := bob.do(http.MethodGet, "/api/blogs/"+id, nil)
		assert.Equal(t, "original content", stored.object("blog")["content"])
	})

	t.Run("owner with mismatched author is refused", func(t *testing.T) {
		resp := alice.do(http.MethodPut, "/api/blogs/edit/"+id, map[string]any{"content": "changed", "author": bobID})
		assert.Equal(t, http.StatusForbidden, resp.status)
	})

	t.Run("nothing to update", func(t *testing.T) {
		resp := alice.do(http.MethodPut, "/api/blogs/edit/"+id, map[string]any{"coverImage": "x.png"})
		assert.Equal(t, http.StatusBadRequest, resp.status)
	})

	t.Run("unknown and malformed ids", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, alice.do(http.MethodPut, "/api/blogs/edit/"+uuid.NewString(), map[string]any{"title": "x"}).status)
		assert.Equal(t, http.StatusBadRequest, alice.do(http.MethodPut, "/api/blogs/edit/123", map[string]any{"title": "x"}).status)
	})

	t.Run("owner edits supplied fields only", func(t *testing.T) {
		resp := alice.do(http.MethodPut, "/api/blogs/edit/"+id, map[string]any{"title": "Renamed Post", "tags": []string{"update"}})
		require.Equal(t, http.StatusOK, resp.status)
		assert.Equal(t, "Blog updated successfully.", resp.message())

		updated := resp.object("blog")
		assert.Equal(t, "Renamed Post", updated["title"])
		assert.Equal(t, "original content", updated["content"])
		assert.Equal(t, []any{"update"}, updated["tags"])
		assert.Equal(t, url, updated["url"])
	})
}

func TestListAndTagLookup(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.loggedIn("Ada", "ada@example.com", "+15550001")

	first := createBlog(t, c, map[string]any{"title": "First", "content": "a", "tags": []string{"go", "web dev"}})
	second := createBlog(t, c, map[string]any{"title": "Second", "content": "b", "tags": []string{"web dev"}})

	resp := c.do(http.MethodGet, "/api/blogs", nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Len(t, resp.list("blogs"), 2)

	resp = c.do(http.MethodGet, "/api/blogs/tag/go", nil)
	require.Equal(t, http.StatusOK, resp.status)
	blogs := resp.list("blogs")
	require.Len(t, blogs, 1)
	assert.Equal(t, first["id"], blogs[0].(map[string]any)["id"])

	resp = c.do(http.MethodGet, "/api/blogs/tag/web%20dev", nil)
	require.Equal(t, http.StatusOK, resp.status)
	ids := []any{}
	for _, b := range resp.list("blogs") {
		ids = append(ids, b.(map[string]any)["id"])
	}
	assert.ElementsMatch(t, []any{first["id"], second["id"]}, ids)

	resp = c.do(http.MethodGet, "/api/blogs/tag/rust", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
	assert.Equal(t, "No blogs found with the specified tag.", resp.message())

	assert.Equal(t, http.StatusNotFound, c.do(http.MethodGet, "/api/blogs/"+uuid.NewString(), nil).status)
	assert.Equal(t, http.StatusBadRequest, c.do(http.MethodGet, "/api/blogs/nope", nil).status)
}

func TestDeleteBlog(t *testing.T) {
	env := newTestEnv(t)
	alice, _ := env.loggedIn("Alice", "alice@example.com", "+15550001")
	bob, _ := env.loggedIn("Bob", "bob@example.com", "+15550002")

	id := createBlog(t, alice, map[string]any{"title": "Doomed", "content": "x", "tags": []string{"gone"}})["id"].(string)

	assert.Equal(t, http.StatusUnauthorized, env.client().do(http.MethodDelete, "/api/blogs/"+id, nil).status)
	assert.Equal(t, http.StatusForbidden, bob.do(http.MethodDelete, "/api/blogs/"+id, nil).status)

	resp := alice.do(http.MethodDelete, "/api/blogs/"+id, nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "Blog deleted successfully.", resp.message())

	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodGet, "/api/blogs/"+id, nil).status)
	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodDelete, "/api/blogs/"+id, nil).status)
	assert.Equal(t, http.StatusNotFound, alice.do(http.MethodGet, "/api/blogs/tag/gone", nil).status)
}

// Register A, log in as A, create a blog, then try to edit it as B.
func TestEditByAnotherUserEndToEnd(t *testing.T) {
	env := newTestEnv(t)
	a, aID := env.loggedIn("Alice", "alice@example.com", "+15550001")
	b, bID := env.loggedIn("Bob", "bob@example.com", "+15550002")

	id := createBlog(t, a, map[string]any{"title": "Mine", "content": "keep me", "author": aID})["id"].(string)

	resp := b.do(http.MethodPut, "/api/blogs/edit/"+id, map[string]any{"content": "overwritten", "author": bID})
	assert.Equal(t, http.StatusForbidden, resp.status)

	stored := a.do(http.MethodGet, "/api/blogs/"+id, nil).object("blog")
	assert.Equal(t, "keep me", stored["content"])
	assert.Equal(t, "Mine", stored["title"])
}

func TestTagLookupWithReservedCharacters(t *testing.T) {
	env := newTestEnv(t)
	c, _ := env.loggedIn("Ada", "ada@example.com", "+15550001")

	percent := createBlog(t, c, map[string]any{"title": "Full", "content": "x", "tags": []string{"100%"}})
	slashed := createBlog(t, c, map[string]any{"title": "Split", "content": "y", "tags": []string{"a/b"}})
	literal := createBlog(t, c, map[string]any{"title": "Literal", "content": "z", "tags": []string{"a%20b"}})

	tests := []struct {
		path string
		want any
	}{
		{"/api/blogs/tag/100%25", percent["id"]},
		{"/api/blogs/tag/a%2Fb", slashed["id"]},
		{"/api/blogs/tag/a%2520b", literal["id"]},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := c.do(http.MethodGet, tt.path, nil)
			require.Equal(t, http.StatusOK, resp.status, resp.message())
			blogs := resp.list("blogs")
			require.Len(t, blogs, 1)
			assert.Equal(t, tt.want, blogs[0].(map[string]any)["id"])
		})
	}

	resp := c.do(http.MethodGet, "/api/blogs/tag/a%20b", nil)
	assert.Equal(t, http.StatusNotFound, resp.status)
}

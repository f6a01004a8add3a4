package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rpupo63/creator-directory-backend/database"
	"github.com/rpupo63/creator-directory-backend/models"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testSecret = "test-session-secret"

type fakeUploadSigner struct {
	url      string
	err      error
	fileName string
	fileType string
}

func (f *fakeUploadSigner) PresignUpload(_ context.Context, fileName, fileType string) (string, error) {
	f.fileName = fileName
	f.fileType = fileType
	return f.url, f.err
}

type testEnv struct {
	t      *testing.T
	db     database.Database
	gorm   *gorm.DB
	server *httptest.Server
	signer *fakeUploadSigner
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	models.BcryptCost = bcrypt.MinCost

	c := map[string]string{
		"SESSION_SECRET":   testSecret,
		"ACCEPTED_ORIGINS": "http://localhost:3000",
		"BASE_URL":         "https://creators.example",
		"LOG_COLOR":        "false",
	}

	gormDB, err := database.OpenSQLite(c, "file::memory:")
	require.NoError(t, err)
	require.NoError(t, models.Migrate(gormDB))

	db := database.New(gormDB)
	signer := &fakeUploadSigner{url: "https://bucket.example/images/upload"}
	router := newRouter(db, withConfig(c), withStartupTime(time.Now()), withUploadSigner(signer))
	server := httptest.NewServer(router)

	t.Cleanup(func() {
		server.Close()
		if sqlDB, err := gormDB.DB(); err == nil {
			sqlDB.Close()
		}
	})

	return &testEnv{t: t, db: db, gorm: gormDB, server: server, signer: signer}
}

// client returns an HTTP client with its own cookie jar, i.e. its own browser.
func (e *testEnv) client() *testClient {
	jar, err := cookiejar.New(nil)
	require.NoError(e.t, err)
	return &testClient{env: e, http: &http.Client{Jar: jar}}
}

type testClient struct {
	env  *testEnv
	http *http.Client
}

type testResponse struct {
	status int
	header http.Header
	body   map[string]any
}

func (r testResponse) message() string {
	msg, _ := r.body["message"].(string)
	return msg
}

func (r testResponse) object(key string) map[string]any {
	obj, _ := r.body[key].(map[string]any)
	return obj
}

func (r testResponse) list(key string) []any {
	items, _ := r.body[key].([]any)
	return items
}

func (c *testClient) do(method, path string, body any) testResponse {
	c.env.t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.env.t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, c.env.server.URL+path, reader)
	require.NoError(c.env.t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	require.NoError(c.env.t, err)
	defer resp.Body.Close()

	out := testResponse{status: resp.StatusCode, header: resp.Header}
	raw, err := io.ReadAll(resp.Body)
	require.NoError(c.env.t, err)
	if len(raw) > 0 {
		require.NoError(c.env.t, json.Unmarshal(raw, &out.body), string(raw))
	}
	return out
}

func registerBody(name, email, phone string) map[string]string {
	return map[string]string{
		"firstName":   name,
		"lastName":    "Tester",
		"email":       email,
		"phoneNumber": phone,
		"password":    "hunter22",
	}
}

// loggedIn registers a user, logs in and returns the client and the user id.
func (e *testEnv) loggedIn(name, email, phone string) (*testClient, string) {
	e.t.Helper()
	c := e.client()

	resp := c.do(http.MethodPost, "/api/auth/register", registerBody(name, email, phone))
	require.Equal(e.t, http.StatusCreated, resp.status, resp.message())

	resp = c.do(http.MethodPost, "/api/auth/login", map[string]string{"identifier": email, "password": "hunter22"})
	require.Equal(e.t, http.StatusOK, resp.status, resp.message())

	id, _ := resp.object("user")["id"].(string)
	require.NotEmpty(e.t, id)
	return c, id
}

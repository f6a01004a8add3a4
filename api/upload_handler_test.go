package api

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresignedURL(t *testing.T) {
	env := newTestEnv(t)
	c := env.client()

	resp := c.do(http.MethodGet, "/api/aws/get-presigned-url?fileName=cover.png&fileType=image%2Fpng", nil)
	require.Equal(t, http.StatusOK, resp.status)
	assert.Equal(t, "https://bucket.example/images/upload", resp.body["url"])
	assert.Equal(t, "cover.png", env.signer.fileName)
	assert.Equal(t, "image/png", env.signer.fileType)

	resp = c.do(http.MethodGet, "/api/aws/get-presigned-url?fileType=image%2Fpng", nil)
	assert.Equal(t, http.StatusBadRequest, resp.status)
	assert.Equal(t, "fileName", resp.body["field"])

	env.signer.err = errors.New("credentials expired")
	resp = c.do(http.MethodGet, "/api/aws/get-presigned-url?fileName=cover.png", nil)
	assert.Equal(t, http.StatusInternalServerError, resp.status)
	assert.Equal(t, "Internal server error.", resp.message())
	assert.NotContains(t, resp.message(), "credentials")
}

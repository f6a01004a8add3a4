package api

import (
	"context"
	"net/http"
	"strings"

	"github.com/rpupo63/creator-directory-backend/errs"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// UploadSigner produces presigned object upload URLs
type UploadSigner interface {
	PresignUpload(ctx context.Context, fileName, fileType string) (string, error)
}

type uploadHandler struct {
	responder Responder
	logger    zerolog.Logger
	signer    UploadSigner
}

func newUploadHandler(signer UploadSigner) uploadHandler {
	logger := log.With().Str("handlerName", "uploadHandler").Logger()

	return uploadHandler{
		responder: NewResponder(logger),
		logger:    logger,
		signer:    signer,
	}
}

// getPresignedURL returns a URL the client can PUT an image to
// @Summary Presigned upload URL
// @Tags Uploads
// @Produce json
// @Param fileName query string true "File name"
// @Param fileType query string false "Content type"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /aws/get-presigned-url [get]
func (h uploadHandler) getPresignedURL() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		fileName := strings.TrimSpace(r.URL.Query().Get("fileName"))
		fileType := strings.TrimSpace(r.URL.Query().Get("fileType"))
		if fileName == "" {
			h.responder.WriteError(w, errs.NewBadRequestErrorWithField("fileName is required.", "fileName", ""))
			return
		}

		if h.signer == nil {
			h.responder.WriteError(w, errs.NewInternalError("upload signing is not configured"))
			return
		}

		url, err := h.signer.PresignUpload(r.Context(), fileName, fileType)
		if err != nil {
			h.responder.WriteError(w, errs.NewInternalErrorWithCause("Error generating pre-signed URL.", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{"url": url})
	}
}

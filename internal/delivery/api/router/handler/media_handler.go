package handler

import (
	"io"
	"net/http"
	"strings"

	"vidhub/internal/infra/media"

	"github.com/labstack/echo/v4"
	"gocloud.dev/gcerrors"
)

// MediaHandler serves hosted files straight from the bucket. It backs
// media.publicBaseURL when no CDN sits in front of the bucket.
type MediaHandler struct {
	storage *media.BucketStorage
}

// NewMediaHandler is the constructor for MediaHandler.
func NewMediaHandler(storage *media.BucketStorage) *MediaHandler {
	return &MediaHandler{storage: storage}
}

// Serve streams the object named by the wildcard path.
func (h *MediaHandler) Serve(c echo.Context) error {
	key := strings.TrimPrefix(c.Param("*"), "/")
	if key == "" || strings.Contains(key, "..") {
		return echo.NewHTTPError(http.StatusNotFound, "Media not found")
	}

	reader, err := h.storage.Open(c.Request().Context(), key)
	if err != nil {
		if gcerrors.Code(err) == gcerrors.NotFound {
			return echo.NewHTTPError(http.StatusNotFound, "Media not found")
		}

		return err
	}
	defer reader.Close()

	c.Response().Header().Set(echo.HeaderCacheControl, "public, max-age=31536000, immutable")

	return c.Stream(http.StatusOK, reader.ContentType(), io.Reader(reader))
}

package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nazzeldevelopment/nazzel-jean-website/internal/domain"
	"github.com/nazzeldevelopment/nazzel-jean-website/pkg/logger"
)

// AlbumTokenHeader carries the token returned by the unlock endpoint.
const AlbumTokenHeader = "X-Album-Token"

// GalleryHandler handles album and photo requests.
type GalleryHandler struct {
	Service domain.GalleryService
	log     *logger.Logger
}

func NewGalleryHandler(service domain.GalleryService, log *logger.Logger) *GalleryHandler {
	return &GalleryHandler{Service: service, log: log.WithComponent("gallery_handler")}
}

// ListAlbums handles GET /gallery/albums[?userId=].
func (h *GalleryHandler) ListAlbums(c *gin.Context) {
	albums, err := h.Service.ListAlbums(c.Request.Context(), c.Query("userId"))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"albums": albums})
}

// CreateAlbum handles POST /gallery/albums.
func (h *GalleryHandler) CreateAlbum(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.CreateAlbumRequest
	if !bindJSON(c, &req) {
		return
	}
	album, err := h.Service.CreateAlbum(c.Request.Context(), user, req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "album": album})
}

// GetAlbum handles GET /gallery/albums/:id.
func (h *GalleryHandler) GetAlbum(c *gin.Context) {
	album, err := h.Service.GetAlbum(c.Request.Context(), viewer(c), c.Param("id"), c.GetHeader(AlbumTokenHeader))
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"album": album})
}

// UnlockAlbum handles POST /gallery/albums/:id/unlock.
func (h *GalleryHandler) UnlockAlbum(c *gin.Context) {
	var req domain.UnlockAlbumRequest
	if !bindOptionalJSON(c, &req) {
		return
	}
	access, err := h.Service.UnlockAlbum(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, access)
}

// AddPhoto handles POST /gallery/albums/:id/photos.
func (h *GalleryHandler) AddPhoto(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	var req domain.AddPhotoRequest
	if !bindJSON(c, &req) {
		return
	}
	album, err := h.Service.AddPhoto(c.Request.Context(), user, c.Param("id"), req)
	if err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "album": album})
}

// DeleteAlbum handles DELETE /gallery/albums/:id.
func (h *GalleryHandler) DeleteAlbum(c *gin.Context) {
	user, ok := mustUser(c)
	if !ok {
		return
	}
	if err := h.Service.DeleteAlbum(c.Request.Context(), user, c.Param("id")); err != nil {
		fail(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

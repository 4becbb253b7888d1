package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/karimdoss-design/campustad/middleware"
	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/services"
)

// maxMediaBytes bounds a news attachment upload (32MB).
const maxMediaBytes = 32 << 20

type NewsHandler struct {
	newsService services.NewsService
}

func NewNewsHandler(newsService services.NewsService) *NewsHandler {
	return &NewsHandler{newsService: newsService}
}

// Create accepts multipart form data: title (optional), body, media_type and
// an optional "media" file part.
func (h *NewsHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err := r.ParseMultipartForm(maxMediaBytes); err != nil {
		badRequestResponse(w, r, errors.New("invalid multipart form"))
		return
	}

	input := services.CreateNewsPostInput{
		Body:      r.FormValue("body"),
		MediaType: models.MediaNone,
	}
	if title := strings.TrimSpace(r.FormValue("title")); title != "" {
		input.Title = &title
	}

	file, header, err := r.FormFile("media")
	switch {
	case err == nil:
		defer file.Close()
		mediaType := models.MediaType(r.FormValue("media_type"))
		input.MediaType = mediaType
		input.MediaFilename = header.Filename
		input.MediaContent = file
		input.ContentType = header.Header.Get("Content-Type")
	case errors.Is(err, http.ErrMissingFile):
		// text-only post
	default:
		badRequestResponse(w, r, err)
		return
	}

	post, err := h.newsService.CreatePost(r.Context(), userID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"post": post}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.newsService.ListPosts(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"posts": posts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	postID, err := getIDFromURL(r, "postID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	if err := h.newsService.DeletePost(r.Context(), postID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// UnreadCount reports how many posts the caller has not seen yet.
func (h *NewsHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	profile, _ := middleware.GetProfileFromContext(r.Context())

	count, err := h.newsService.UnreadCount(r.Context(), profile)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"unread": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *NewsHandler) MarkSeen(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.GetUserIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current user")
		return
	}

	if err := h.newsService.MarkSeen(r.Context(), userID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"ok": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

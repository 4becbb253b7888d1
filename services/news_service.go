package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/karimdoss-design/campustad/models"
	"github.com/karimdoss-design/campustad/repositories"
	"github.com/karimdoss-design/campustad/standings"
	"github.com/karimdoss-design/campustad/storage"
)

type CreateNewsPostInput struct {
	Title *string
	Body  string

	// Optional attachment, streamed from the multipart request.
	MediaType     models.MediaType
	MediaFilename string
	MediaContent  io.Reader
	ContentType   string
}

type NewsService interface {
	CreatePost(ctx context.Context, authorID int, input CreateNewsPostInput) (*models.NewsPost, error)
	ListPosts(ctx context.Context) ([]models.NewsPost, error)
	DeletePost(ctx context.Context, id int) error
	UnreadCount(ctx context.Context, viewer *models.Profile) (int, error)
	MarkSeen(ctx context.Context, viewerID int) error
}

type newsService struct {
	newsRepo    repositories.NewsRepository
	profileRepo repositories.ProfileRepository
	uploader    storage.FileUploader
	hub         *standings.Hub
	logger      *slog.Logger
}

func NewNewsService(
	newsRepo repositories.NewsRepository,
	profileRepo repositories.ProfileRepository,
	uploader storage.FileUploader,
	hub *standings.Hub,
	logger *slog.Logger,
) NewsService {
	return &newsService{
		newsRepo:    newsRepo,
		profileRepo: profileRepo,
		uploader:    uploader,
		hub:         hub,
		logger:      logger,
	}
}

func (s *newsService) CreatePost(ctx context.Context, authorID int, input CreateNewsPostInput) (*models.NewsPost, error) {
	body := strings.TrimSpace(input.Body)
	if body == "" {
		return nil, ErrNewsBodyRequired
	}

	post := &models.NewsPost{
		Title:     input.Title,
		Body:      body,
		MediaType: models.MediaNone,
		AuthorID:  authorID,
	}

	if input.MediaContent != nil {
		switch input.MediaType {
		case models.MediaImage, models.MediaVideo:
		default:
			return nil, ErrInvalidMediaType
		}

		key := storage.MediaKey("news", input.MediaFilename)
		result, err := s.uploader.Upload(ctx, key, input.ContentType, input.MediaContent)
		if err != nil {
			return nil, fmt.Errorf("failed to upload news media: %w", err)
		}
		post.MediaType = input.MediaType
		post.MediaKey = &result.Key
		post.MediaURL = &result.Location
	}

	if err := s.newsRepo.Create(ctx, post); err != nil {
		// The row failed after the object landed; drop the orphan upload.
		if post.MediaKey != nil {
			if delErr := s.uploader.Delete(ctx, *post.MediaKey); delErr != nil {
				s.logger.Warn("failed to delete orphaned news media", slog.String("key", *post.MediaKey), slog.Any("error", delErr))
			}
		}
		return nil, fmt.Errorf("failed to create news post: %w", err)
	}

	s.hub.BroadcastLive(standings.EventNewsPosted, map[string]int{"post_id": post.ID})
	return post, nil
}

func (s *newsService) ListPosts(ctx context.Context) ([]models.NewsPost, error) {
	posts, err := s.newsRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list news posts: %w", err)
	}
	return posts, nil
}

func (s *newsService) DeletePost(ctx context.Context, id int) error {
	post, err := s.newsRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNewsPostNotFound) {
			return ErrNewsPostNotFound
		}
		return fmt.Errorf("failed to load news post %d: %w", id, err)
	}

	if err := s.newsRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNewsPostNotFound) {
			return ErrNewsPostNotFound
		}
		return fmt.Errorf("failed to delete news post %d: %w", id, err)
	}

	// Media cleanup is best-effort: the post is gone either way.
	if post.MediaKey != nil {
		if err := s.uploader.Delete(ctx, *post.MediaKey); err != nil {
			s.logger.Warn("failed to delete news media", slog.String("key", *post.MediaKey), slog.Any("error", err))
		}
	}
	return nil
}

func (s *newsService) UnreadCount(ctx context.Context, viewer *models.Profile) (int, error) {
	var since *time.Time
	if viewer != nil {
		since = viewer.NewsSeenAt
	}
	return s.newsRepo.CountNewerThan(ctx, since)
}

func (s *newsService) MarkSeen(ctx context.Context, viewerID int) error {
	err := s.profileRepo.SetNewsSeenAt(ctx, viewerID, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repositories.ErrProfileNotFound) {
			return ErrProfileNotFound
		}
		return fmt.Errorf("failed to mark news seen: %w", err)
	}
	return nil
}

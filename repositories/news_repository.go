package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/karimdoss-design/campustad/models"
)

var ErrNewsPostNotFound = errors.New("news post not found")

type NewsRepository interface {
	Create(ctx context.Context, post *models.NewsPost) error
	GetByID(ctx context.Context, id int) (*models.NewsPost, error)
	List(ctx context.Context) ([]models.NewsPost, error)
	Delete(ctx context.Context, id int) error
	CountNewerThan(ctx context.Context, since *time.Time) (int, error)
}

type postgresNewsRepository struct {
	db *sql.DB
}

func NewPostgresNewsRepository(db *sql.DB) NewsRepository {
	return &postgresNewsRepository{db: db}
}

const newsColumns = `id, title, body, media_type, media_key, media_url, author_id, created_at`

func scanNewsPost(row interface{ Scan(...interface{}) error }, post *models.NewsPost) error {
	return row.Scan(
		&post.ID,
		&post.Title,
		&post.Body,
		&post.MediaType,
		&post.MediaKey,
		&post.MediaURL,
		&post.AuthorID,
		&post.CreatedAt,
	)
}

func (r *postgresNewsRepository) Create(ctx context.Context, post *models.NewsPost) error {
	query := `
		INSERT INTO news_posts (title, body, media_type, media_key, media_url, author_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		post.Title,
		post.Body,
		post.MediaType,
		post.MediaKey,
		post.MediaURL,
		post.AuthorID,
	).Scan(&post.ID, &post.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create news post: %w", err)
	}
	return nil
}

func (r *postgresNewsRepository) GetByID(ctx context.Context, id int) (*models.NewsPost, error) {
	post := &models.NewsPost{}
	err := scanNewsPost(r.db.QueryRowContext(ctx, `SELECT `+newsColumns+` FROM news_posts WHERE id = $1`, id), post)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNewsPostNotFound
		}
		return nil, err
	}
	return post, nil
}

func (r *postgresNewsRepository) List(ctx context.Context) ([]models.NewsPost, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+newsColumns+` FROM news_posts ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]models.NewsPost, 0)
	for rows.Next() {
		var post models.NewsPost
		if err := scanNewsPost(rows, &post); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, rows.Err()
}

func (r *postgresNewsRepository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM news_posts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete news post: %w", err)
	}
	return checkAffectedRows(result, ErrNewsPostNotFound)
}

// CountNewerThan drives the unread indicator. A viewer who has never marked
// the feed seen (nil since) counts every post as unread.
func (r *postgresNewsRepository) CountNewerThan(ctx context.Context, since *time.Time) (int, error) {
	var count int
	var err error
	if since == nil {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_posts`).Scan(&count)
	} else {
		err = r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM news_posts WHERE created_at > $1`, *since).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("failed to count unread news posts: %w", err)
	}
	return count, nil
}

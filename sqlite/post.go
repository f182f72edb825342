package sqlite

import (
	"context"
	"database/sql"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/casefiles"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ casefiles.PostService = (*PostService)(nil)

// PostService implements casefiles.PostService using SQLite.
type PostService struct {
	db  *DB
	now func() time.Time
}

// NewPostService creates a new PostService.
func NewPostService(db *DB) *PostService {
	return &PostService{db: db, now: time.Now}
}

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, xxhash.Sum64String(content))
	return hex.EncodeToString(b)
}

// CreatePost stores a post. A post already cached under the same URL is
// replaced but keeps its ID.
func (s *PostService) CreatePost(ctx context.Context, post *casefiles.Post) error {
	if err := post.Validate(); err != nil {
		return err
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO posts (id, url, title, body, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			title = excluded.title,
			body = excluded.body,
			content_hash = excluded.content_hash,
			fetched_at = excluded.fetched_at
	`, uuid.New().String(), post.URL, post.Title, post.Body, hashContent(post.Body),
		s.now().UTC().Format(time.RFC3339))

	return err
}

// FindPostByURL retrieves a post by URL.
func (s *PostService) FindPostByURL(ctx context.Context, url string) (*casefiles.Post, error) {
	var post casefiles.Post

	err := s.db.QueryRowContext(ctx, `
		SELECT url, title, body
		FROM posts
		WHERE url = ?
	`, url).Scan(&post.URL, &post.Title, &post.Body)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, casefiles.Errorf(casefiles.ENOTFOUND, "post %s not cached", url)
	}
	if err != nil {
		return nil, err
	}

	return &post, nil
}

// FindPosts retrieves posts matching the filter, most recently fetched
// first.
func (s *PostService) FindPosts(ctx context.Context, filter casefiles.PostFilter) ([]*casefiles.Post, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, title, body FROM posts WHERE 1=1")

	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY fetched_at DESC, url ASC")

	// SQLite needs a LIMIT before OFFSET; -1 means no limit.
	if filter.Limit > 0 || filter.Offset > 0 {
		limit := filter.Limit
		if limit <= 0 {
			limit = -1
		}
		query.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var posts []*casefiles.Post
	for rows.Next() {
		var post casefiles.Post
		if err := rows.Scan(&post.URL, &post.Title, &post.Body); err != nil {
			return nil, err
		}
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

// DeletePost permanently removes a post.
func (s *PostService) DeletePost(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM posts WHERE url = ?", url)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return casefiles.Errorf(casefiles.ENOTFOUND, "post %s not cached", url)
	}

	return nil
}

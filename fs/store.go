package fs

import (
	"bytes"
	"context"
	"os"
	"path/filepath"

	"github.com/fwojciec/casefiles"
)

// Ensure PostStore implements casefiles.PostStore at compile time.
var _ casefiles.PostStore = (*PostStore)(nil)

// PostStore implements casefiles.PostStore with atomic update semantics.
// Posts are collected on Save and written to a temporary file on Commit,
// which then replaces the target in a single rename.
type PostStore struct {
	path  string
	posts []*casefiles.Post
}

// NewPostStore creates a PostStore that writes to path.
func NewPostStore(path string) *PostStore {
	return &PostStore{path: path}
}

// Save queues a post for writing. Posts keep the order they are saved in.
func (s *PostStore) Save(ctx context.Context, post *casefiles.Post) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := post.Validate(); err != nil {
		return err
	}
	s.posts = append(s.posts, post)
	return nil
}

// Commit writes all saved posts to the target file.
func (s *PostStore) Commit() error {
	var buf bytes.Buffer
	if err := EncodePosts(&buf, s.posts); err != nil {
		return err
	}
	if err := WriteFile(s.path, buf.Bytes()); err != nil {
		return err
	}
	s.posts = nil
	return nil
}

// Abort discards saved posts and leaves the target untouched.
func (s *PostStore) Abort() error {
	s.posts = nil
	err := os.Remove(tempPath(s.path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// WriteFile writes data to path through a temporary file in the same
// directory, so readers never see a partially written file.
func WriteFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	tmp := tempPath(path)
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

func tempPath(path string) string {
	return path + ".tmp"
}

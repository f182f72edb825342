package sqlite

import "time"

// SetNow replaces the clock used to stamp cached posts.
func (s *PostService) SetNow(now func() time.Time) {
	s.now = now
}

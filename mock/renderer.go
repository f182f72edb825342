package mock

import "github.com/fwojciec/casefiles"

var _ casefiles.BookRenderer = (*BookRenderer)(nil)

// BookRenderer is a mock implementation of casefiles.BookRenderer.
type BookRenderer struct {
	RenderFn func(title, markdown string) (string, error)
}

func (r *BookRenderer) Render(title, markdown string) (string, error) {
	return r.RenderFn(title, markdown)
}

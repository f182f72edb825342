package casefiles_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/casefiles"
	"github.com/stretchr/testify/assert"
)

func TestRenderBook(t *testing.T) {
	t.Parallel()

	t.Run("renders single post", func(t *testing.T) {
		t.Parallel()

		posts := []*casefiles.Post{
			{Title: "Case File #1", Body: "The house was *dark*."},
		}

		result := casefiles.RenderBook(posts)

		assert.Equal(t, "# Case File #1\n\nThe house was **dark**.\n\n", result)
	})

	t.Run("renders posts in order with one heading each", func(t *testing.T) {
		t.Parallel()

		posts := []*casefiles.Post{
			{Title: "Part One", Body: "First."},
			{Title: "Part Two", Body: "Second."},
		}

		result := casefiles.RenderBook(posts)

		assert.Equal(t, []string{"# Part One", "# Part Two"}, headingLines(result))
		assert.Equal(t, "# Part One\n\nFirst.\n\n# Part Two\n\nSecond.\n\n", result)
	})

	t.Run("does not normalize titles", func(t *testing.T) {
		t.Parallel()

		posts := []*casefiles.Post{
			{Title: "The *Lightning* Man", Body: "body"},
		}

		result := casefiles.RenderBook(posts)

		assert.Contains(t, result, "# The *Lightning* Man\n")
	})

	t.Run("renders extracted posts", func(t *testing.T) {
		t.Parallel()

		raw := []*casefiles.Post{
			{URL: "u1", Title: "One", Body: "[intro](http://x)\n\nThe house was *dark*. EDIT: thanks for reading"},
			{URL: "u2", Title: "Two", Body: "Nothing to strip here."},
		}

		result := casefiles.RenderBook(casefiles.ExtractPosts(raw))

		assert.Equal(t, []string{"# One", "# Two"}, headingLines(result))
		assert.Contains(t, result, "# One\n\nThe house was **dark**.\n\n")
		assert.Contains(t, result, "# Two\n\nNothing to strip here.\n\n")
		assert.Less(t, strings.Index(result, "# One"), strings.Index(result, "# Two"))
	})

	t.Run("returns empty string for nil slice", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, casefiles.RenderBook(nil))
	})
}

// headingLines returns the level one heading lines of a rendered book.
func headingLines(book string) []string {
	var headings []string
	for _, line := range strings.Split(book, "\n") {
		if strings.HasPrefix(line, "# ") {
			headings = append(headings, line)
		}
	}
	return headings
}

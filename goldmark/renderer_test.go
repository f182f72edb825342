package goldmark_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/casefiles/goldmark"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderer_Render(t *testing.T) {
	t.Parallel()

	t.Run("wraps body in an HTML document", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("Case Files", "# Case File #1\n\nThe house was **dark**.\n\n")

		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n"))
		assert.Contains(t, out, "<title>Case Files</title>")
		assert.Contains(t, out, "<p>The house was <strong>dark</strong>.</p>")
		assert.True(t, strings.HasSuffix(out, "</html>\n"))
	})

	t.Run("gives chapter headings ids", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("Book", "# The Lightning Man\n\nText.\n")

		require.NoError(t, err)
		assert.Contains(t, out, `<h1 id="the-lightning-man">The Lightning Man</h1>`)
	})

	t.Run("escapes title", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("Tom & <Jerry>", "")

		require.NoError(t, err)
		assert.Contains(t, out, "<title>Tom &amp; &lt;Jerry&gt;</title>")
	})

	t.Run("renders strikethrough", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("Book", "It was ~~nothing~~ something.\n")

		require.NoError(t, err)
		assert.Contains(t, out, "<del>nothing</del>")
	})

	t.Run("omits raw HTML from posts", func(t *testing.T) {
		t.Parallel()

		out, err := goldmark.NewRenderer().Render("Book", "<script>alert(1)</script>\n\nText.\n")

		require.NoError(t, err)
		assert.NotContains(t, out, "<script>")
	})
}

package services

import (
	"testing"

	"legal_editor_app_go/services/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeContent(t *testing.T) {
	t.Run("Strips scripts and handlers", func(t *testing.T) {
		out := SanitizeContent(`<p onclick="alert(1)">Hi</p><script>alert(1)</script>`)
		assert.NotContains(t, out, "script")
		assert.NotContains(t, out, "onclick")
		assert.Contains(t, out, "Hi")
	})

	t.Run("Keeps formatting", func(t *testing.T) {
		out := SanitizeContent(`<h2>Title</h2><p><strong>b</strong> <em>i</em> <u>u</u></p><ul><li>x</li></ul>`)
		assert.Contains(t, out, "<h2>Title</h2>")
		assert.Contains(t, out, "<strong>b</strong>")
		assert.Contains(t, out, "<u>u</u>")
		assert.Contains(t, out, "<li>x</li>")
	})

	t.Run("Keeps page break markers countable", func(t *testing.T) {
		out := SanitizeContent("<p>a</p>" + pagination.PageBreakHTML + "<p>b</p>")
		breaks, err := pagination.CountPageBreaks(out)
		require.NoError(t, err)
		assert.Equal(t, 1, breaks)
	})

	t.Run("Rejects other data-type values", func(t *testing.T) {
		out := SanitizeContent(`<div data-type="evil">x</div>`)
		assert.NotContains(t, out, "data-type")
	})

	t.Run("Sample content survives", func(t *testing.T) {
		breaks, err := pagination.CountPageBreaks(SanitizeContent(SampleContent))
		require.NoError(t, err)
		assert.Equal(t, 1, breaks)
	})
}

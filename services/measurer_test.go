package services

import (
	"testing"

	"legal_editor_app_go/config"
	"legal_editor_app_go/services/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMeasurer(t *testing.T) {
	t.Run("Heuristic by default", func(t *testing.T) {
		m, closeFn, err := NewMeasurer(&config.Config{PageSize: "A4", Measurer: config.MeasurerHeuristic})
		require.NoError(t, err)
		defer closeFn()

		h, ok := m.(*pagination.HeuristicMeasurer)
		require.True(t, ok)
		assert.Equal(t, 674.0, h.Width)
	})

	t.Run("Chrome unavailable falls back", func(t *testing.T) {
		m, closeFn, err := NewMeasurer(&config.Config{
			PageSize:   "letter",
			Measurer:   config.MeasurerChrome,
			ChromePath: "/nonexistent/chrome",
		})
		require.NoError(t, err)
		defer closeFn()

		h, ok := m.(*pagination.HeuristicMeasurer)
		require.True(t, ok)
		assert.Equal(t, 696.0, h.Width)
	})

	t.Run("Unknown page size", func(t *testing.T) {
		_, _, err := NewMeasurer(&config.Config{PageSize: "tabloid"})
		assert.Error(t, err)
	})
}

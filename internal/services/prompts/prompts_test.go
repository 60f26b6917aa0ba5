package prompts

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	store := NewStore()

	t.Run("substitutes placeholders", func(t *testing.T) {
		rendered, err := store.Render(KeyBackground, map[string]string{
			"name":      "Maria Santos",
			"position":  "Senator",
			"documents": "DOCUMENT 1: ...",
		})
		require.NoError(t, err)

		assert.Contains(t, rendered, "Maria Santos")
		assert.Contains(t, rendered, ", Senator,")
		assert.NotContains(t, rendered, "{name}")
		assert.NotContains(t, rendered, "{position_clause}")
	})

	t.Run("empty position drops the clause", func(t *testing.T) {
		rendered, err := store.Render(KeyBackground, map[string]string{
			"name":      "Maria Santos",
			"position":  "",
			"documents": "x",
		})
		require.NoError(t, err)

		assert.Contains(t, rendered, "of Maria Santos:")
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := store.Render("nonsense", nil)
		assert.Error(t, err)
	})
}

func TestLoadOverrides(t *testing.T) {
	t.Run("override replaces template", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("summary: |\n  Short summary of {name}.\n"), 0644))

		store := NewStore()
		require.NoError(t, store.LoadOverrides(path))

		rendered, err := store.Render(KeySummary, map[string]string{"name": "Maria Santos"})
		require.NoError(t, err)
		assert.Equal(t, "Short summary of Maria Santos.\n", rendered)
	})

	t.Run("unknown key fails loudly", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "prompts.yaml")
		require.NoError(t, os.WriteFile(path, []byte("sumary: typo\n"), 0644))

		store := NewStore()
		err := store.LoadOverrides(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "sumary")
	})

	t.Run("missing file", func(t *testing.T) {
		store := NewStore()
		assert.Error(t, store.LoadOverrides("/nonexistent/prompts.yaml"))
	})
}

func TestPackDocuments(t *testing.T) {
	t.Run("numbers documents", func(t *testing.T) {
		packed := PackDocuments([]string{"first doc", "second doc"})

		assert.Contains(t, packed, "DOCUMENT 1:\nfirst doc")
		assert.Contains(t, packed, "DOCUMENT 2:\nsecond doc")
	})

	t.Run("skips empty documents", func(t *testing.T) {
		packed := PackDocuments([]string{"", "  ", "real"})
		assert.Contains(t, packed, "real")
		assert.NotContains(t, packed, "DOCUMENT 1:\n\n")
	})

	t.Run("truncates oversized documents", func(t *testing.T) {
		huge := strings.Repeat("a", MaxCharsPerDocument+500)
		packed := PackDocuments([]string{huge})

		assert.LessOrEqual(t, len(packed), MaxCharsPerDocument+len("DOCUMENT 1:\n"))
	})

	t.Run("stops at total cap", func(t *testing.T) {
		doc := strings.Repeat("b", MaxCharsPerDocument)
		docs := make([]string, 30)
		for i := range docs {
			docs[i] = doc
		}

		packed := PackDocuments(docs)

		assert.LessOrEqual(t, len(packed), MaxTotalChars)
		assert.NotContains(t, packed, "DOCUMENT 25:")
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, PackDocuments(nil))
	})
}

package database

import (
	"testing"

	modelspkg "inkwell/internal/models"

	"github.com/stretchr/testify/require"
)

func TestPersistentModels_IncludesBookmark(t *testing.T) {
	found := false
	for _, model := range PersistentModels() {
		if _, ok := model.(*modelspkg.Bookmark); ok {
			found = true
			break
		}
	}
	require.True(t, found, "PersistentModels should include Bookmark")
}

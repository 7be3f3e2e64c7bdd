package seed

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/dayplan/pkg/store"
)

func TestTasksAreValidAndSeedable(t *testing.T) {
	tasks := Tasks("2026-10-19")
	require.Len(t, tasks, 4)
	for _, tk := range tasks {
		assert.NoError(t, tk.Validate(), tk.ID)
		assert.Equal(t, "2026-10-19", tk.Date)
	}

	s := store.New()
	require.NoError(t, s.Seed(tasks...))
	assert.Equal(t, 4, s.Len())
}

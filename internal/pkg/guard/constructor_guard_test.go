package guard_test

import (
	"errors"
	"sync"
	"testing"

	"production/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("size must be created via NewSize")

	t.Run("constructed guard passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero value returns the supplied error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, errNotConstructed, g.Validate(errNotConstructed))
	})

	t.Run("zero value falls back to the default error", func(t *testing.T) {
		var g guard.ConstructorGuard

		assert.Equal(t, guard.ErrDefaultConstructorGuard, g.Validate(nil))
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type resolveCommand struct {
		description string
		guard       guard.ConstructorGuard
	}
	errCommandNotConstructed := errors.New("resolveCommand must be created via its constructor")

	newCommand := func(description string) (resolveCommand, error) {
		if description == "" {
			return resolveCommand{}, errors.New("description is required")
		}
		return resolveCommand{description: description, guard: guard.NewConstructorGuard()}, nil
	}

	cmd, err := newCommand("torn seam")
	require.NoError(t, err)
	require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))

	_, err = newCommand("")
	require.Error(t, err)

	var zero resolveCommand
	assert.ErrorIs(t, zero.guard.Validate(errCommandNotConstructed), errCommandNotConstructed)

	copied := cmd
	require.NoError(t, copied.guard.Validate(errCommandNotConstructed))
}

func TestConstructorGuard_ConcurrentValidate(t *testing.T) {
	g := guard.NewConstructorGuard()

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(nil))
		}()
	}
	wg.Wait()
}

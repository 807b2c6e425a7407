package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	errNotConstructed := errors.New("command must be created via its constructor")

	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errNotConstructed))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_given_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(errNotConstructed)

		require.ErrorIs(t, err, errNotConstructed)
	})

	t.Run("zero_value_falls_back_to_default_error", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.ErrorIs(t, err, guard.ErrDefaultConstructorGuard)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInCommand(t *testing.T) {
	type reconcileCommand struct {
		orderIDs []string
		guard    guard.ConstructorGuard
	}

	errCommandNotConstructed := errors.New("reconcileCommand must be created via newReconcileCommand")

	newReconcileCommand := func(ids ...string) (reconcileCommand, error) {
		if len(ids) == 0 {
			return reconcileCommand{}, errors.New("at least one order id is required")
		}
		return reconcileCommand{orderIDs: ids, guard: guard.NewConstructorGuard()}, nil
	}

	t.Run("constructor_built_command_is_valid", func(t *testing.T) {
		cmd, err := newReconcileCommand("a", "b")

		require.NoError(t, err)
		require.NoError(t, cmd.guard.Validate(errCommandNotConstructed))
		assert.Len(t, cmd.orderIDs, 2)
	})

	t.Run("literal_command_is_rejected", func(t *testing.T) {
		cmd := reconcileCommand{orderIDs: []string{"a"}}

		require.ErrorIs(t, cmd.guard.Validate(errCommandNotConstructed), errCommandNotConstructed)
	})

	t.Run("guard_survives_copy_by_value", func(t *testing.T) {
		cmd, err := newReconcileCommand("a")
		require.NoError(t, err)

		copied := cmd

		require.NoError(t, copied.guard.Validate(errCommandNotConstructed))
	})
}

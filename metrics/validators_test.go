package metrics

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLabelSetValidator(t *testing.T) {
	t.Parallel()

	t.Run("empty allowed sets should error", func(t *testing.T) {
		t.Parallel()

		validator, err := NewLabelSetValidator()
		require.Nil(t, validator)
		require.Equal(t, ErrEmptyAllowedLabelSets, err)
	})
	t.Run("accepts a value matching one allowed set", func(t *testing.T) {
		t.Parallel()

		validator, err := NewLabelSetValidator(
			map[string]string{"task_type": "adhoc"},
			map[string]string{"task_type": "scheduled"},
		)
		require.NoError(t, err)
		require.False(t, validator.IsInterfaceNil())

		value := NewValue(1, Label{Name: "task_type", Value: "adhoc"})
		require.NoError(t, validator.Validate(value))
	})
	t.Run("rejects a value matching no allowed set, naming the labels", func(t *testing.T) {
		t.Parallel()

		validator, _ := NewLabelSetValidator(
			map[string]string{"task_type": "adhoc"},
			map[string]string{"task_type": "scheduled"},
		)

		value := NewValue(1, Label{Name: "task_type", Value: "other"})
		err := validator.Validate(value)
		require.True(t, errors.Is(err, ErrUnexpectedLabelSet))
		require.Contains(t, err.Error(), `task_type="other"`)
	})
	t.Run("matching is order-independent", func(t *testing.T) {
		t.Parallel()

		validator, _ := NewLabelSetValidator(
			map[string]string{"a": "1", "b": "2"},
		)

		value := NewValue(1, Label{Name: "b", Value: "2"}, Label{Name: "a", Value: "1"})
		require.NoError(t, validator.Validate(value))
	})
	t.Run("rejects extra labels", func(t *testing.T) {
		t.Parallel()

		validator, _ := NewLabelSetValidator(
			map[string]string{"task_type": "adhoc"},
		)

		value := NewValue(1,
			Label{Name: "task_type", Value: "adhoc"},
			Label{Name: "extra", Value: "x"})
		require.True(t, errors.Is(validator.Validate(value), ErrUnexpectedLabelSet))
	})
}

func TestLabelNameValidator(t *testing.T) {
	t.Parallel()

	validator := NewLabelNameValidator("task_type")
	require.False(t, validator.IsInterfaceNil())

	t.Run("accepts exactly the declared names with arbitrary values", func(t *testing.T) {
		t.Parallel()

		require.NoError(t, validator.Validate(NewValue(1, Label{Name: "task_type", Value: "anything"})))
		require.NoError(t, validator.Validate(NewValue(2, Label{Name: "task_type", Value: "other"})))
	})
	t.Run("rejects missing names", func(t *testing.T) {
		t.Parallel()

		err := validator.Validate(NewValue(1))
		require.True(t, errors.Is(err, ErrUnexpectedLabelNames))
	})
	t.Run("rejects extra names", func(t *testing.T) {
		t.Parallel()

		err := validator.Validate(NewValue(1,
			Label{Name: "task_type", Value: "adhoc"},
			Label{Name: "extra", Value: "x"}))
		require.True(t, errors.Is(err, ErrUnexpectedLabelNames))
	})
	t.Run("rejects replaced names", func(t *testing.T) {
		t.Parallel()

		err := validator.Validate(NewValue(1, Label{Name: "other", Value: "x"}))
		require.True(t, errors.Is(err, ErrUnexpectedLabelNames))
	})
}

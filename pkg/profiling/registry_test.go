package profiling_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	pkgerrors "github.com/absmach/perfapi/pkg/errors"
	"github.com/absmach/perfapi/pkg/profiling"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func constTarget(v any) profiling.Target {
	return profiling.TargetFunc(func(context.Context) (any, error) {
		return v, nil
	})
}

func TestRegistryGetMissing(t *testing.T) {
	t.Parallel()

	reg := profiling.NewRegistry(discardLogger())

	_, err := reg.Get("missing")
	require.Error(t, err)
	assert.True(t, errors.Is(err, profiling.ErrTargetNotFound))
	assert.True(t, errors.Is(err, pkgerrors.ErrNotFound))
}

func TestRegistryOverwriteWarns(t *testing.T) {
	t.Parallel()

	var logs bytes.Buffer
	reg := profiling.NewRegistry(slog.New(slog.NewTextHandler(&logs, nil)))

	reg.Register("x", constTarget("f1"))
	assert.NotContains(t, logs.String(), "level=WARN")

	reg.Register("x", constTarget("f2"))
	assert.Contains(t, logs.String(), "level=WARN")

	target, err := reg.Get("x")
	require.NoError(t, err)
	got, err := target.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "f2", got)
	assert.Equal(t, []string{"x"}, reg.List())
}

func TestRegistryListSorted(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		order []string
		want  []string
	}{
		{name: "empty", order: nil, want: []string{}},
		{name: "reverse", order: []string{"c", "b", "a"}, want: []string{"a", "b", "c"}},
		{name: "shuffled", order: []string{"b", "a", "c"}, want: []string{"a", "b", "c"}},
		{name: "mixed names", order: []string{"io_example", "fib_example", "my_custom_task"}, want: []string{"fib_example", "io_example", "my_custom_task"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			reg := profiling.NewRegistry(discardLogger())
			for _, name := range tc.order {
				reg.Register(name, constTarget(name))
			}
			assert.Equal(t, tc.want, reg.List())
		})
	}
}

func TestRegisterExamples(t *testing.T) {
	t.Parallel()

	reg := profiling.NewRegistry(discardLogger())
	profiling.RegisterExamples(reg)

	assert.Equal(t, []string{"fib_example", "io_example", "my_custom_task"}, reg.List())

	target, err := reg.Get("fib_example")
	require.NoError(t, err)
	got, err := target.Invoke(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 26*6765, got)
}

package main

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExecuteModeFlag(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name string
		args []string
		auto bool
	}{
		{name: "no flag", args: []string{"recur"}, auto: false},
		{name: "short", args: []string{"recur", "-a"}, auto: true},
		{name: "long", args: []string{"recur", "--auto"}, auto: true},
		{name: "after positional", args: []string{"recur", "extra", "-a"}, auto: true},
		{name: "positional only", args: []string{"recur", "extra"}, auto: false},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			called := false
			got := false
			err := execute(tt.args, func(auto bool) error {
				called = true
				got = auto
				return nil
			})
			require.NoError(t, err)
			assert.True(t, called)
			assert.Equal(t, tt.auto, got)
		})
	}
}

func TestExecutePropagatesRunError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	err := execute([]string{"recur", "-a"}, func(bool) error { return boom })
	assert.True(t, errors.Is(err, boom))
}

func TestExecuteUnknownFlag(t *testing.T) {
	t.Parallel()
	called := false
	err := execute([]string{"recur", "--bogus"}, func(bool) error {
		called = true
		return nil
	})
	require.Error(t, err)
	assert.False(t, called)
}

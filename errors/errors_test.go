package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	// External Packages
	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	base := stderrors.New("boom")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"plain error", base, Other},
		{"tagged", E(Invalid, "bad", base), Invalid},
		{"wrapped with fmt", fmt.Errorf("ctx: %w", E(NotFound, "missing", base)), NotFound},
		{"other wraps tagged", E(Other, "outer", E(Write, "inner", base)), Write},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, KindOf(tt.err))
			assert.True(t, Is(tt.want, tt.err))
		})
	}
	assert.False(t, Is(Invalid, nil))
}

func TestOpenErr(t *testing.T) {
	assert.True(t, Is(NotFound, OpenErr("a.csv", fs.ErrNotExist)))
	assert.True(t, Is(Locked, OpenErr("a.csv", fs.ErrPermission)))
	assert.True(t, Is(IO, OpenErr("a.csv", stderrors.New("disk on fire"))))
	assert.ErrorIs(t, OpenErr("a.csv", fs.ErrNotExist), fs.ErrNotExist)
}

func TestWriteErr(t *testing.T) {
	err := WriteErr("out/summary.csv", fs.ErrPermission)
	assert.True(t, Is(Write, err))
	assert.Contains(t, err.Error(), "not open in another program")
}

func TestValidationErrs(t *testing.T) {
	ve := ValidationErrs()
	assert.NoError(t, ve.Err())

	ve.Add("redis.uri", "cannot be empty")
	ve.Add("application", "cannot be empty")
	err := ve.Err()
	assert.True(t, Is(Invalid, err))
	assert.Equal(t, "application cannot be empty; redis.uri cannot be empty", err.Error())
}

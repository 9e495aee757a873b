package utils

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFBXError_Error(t *testing.T) {
	tests := []struct {
		name     string
		context  string
		cause    error
		expected string
	}{
		{
			name:     "simple error",
			context:  "reading node header",
			cause:    errors.New("short read"),
			expected: "reading node header: short read",
		},
		{
			name:     "empty context",
			context:  "",
			cause:    errors.New("some error"),
			expected: ": some error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &FBXError{Context: tt.context, Cause: tt.cause}
			require.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestFBXError_WithPosition(t *testing.T) {
	pos := &Position{BytePos: 42, ComponentBytePos: 40, NodePath: []string{"Root", "Child"}}
	err := &FBXError{Kind: KindData, Context: "bad attribute", Cause: errors.New("boom"), Pos: pos}

	msg := err.Error()
	require.Contains(t, msg, "bad attribute")
	require.Contains(t, msg, "boom")
	require.Contains(t, msg, "pos=42")
	require.Contains(t, msg, "Child")
}

func TestWrapError(t *testing.T) {
	tests := []struct {
		name    string
		context string
		cause   error
		wantNil bool
	}{
		{name: "wrap non-nil error", context: "reading data", cause: errors.New("IO error")},
		{name: "wrap nil error returns nil", context: "some operation", cause: nil, wantNil: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := WrapError(tt.context, tt.cause)

			if tt.wantNil {
				require.Nil(t, err)
				return
			}

			require.NotNil(t, err)

			var fbxErr *FBXError
			ok := errors.As(err, &fbxErr)
			require.True(t, ok, "error should be FBXError type")
			require.Equal(t, tt.context, fbxErr.Context)
			require.Equal(t, tt.cause, fbxErr.Cause)
		})
	}
}

func TestNewError_NilCauseReturnsNil(t *testing.T) {
	require.Nil(t, NewError(KindData, "ctx", nil, nil))
}

func TestFBXError_Unwrap(t *testing.T) {
	originalErr := errors.New("original error")
	wrapped := WrapError("context", originalErr)

	require.True(t, errors.Is(wrapped, originalErr))
	require.Equal(t, originalErr, errors.Unwrap(wrapped))
}

func TestFBXError_ChainedWrapping(t *testing.T) {
	baseErr := errors.New("base error")
	level1 := WrapError("level 1", baseErr)
	level2 := WrapError("level 2", level1)
	level3 := WrapError("level 3", level2)

	require.True(t, errors.Is(level3, baseErr))

	var fbxErr *FBXError
	require.True(t, errors.As(level3, &fbxErr))
	require.Equal(t, "level 3", fbxErr.Context)
}

func TestKind_String(t *testing.T) {
	require.Equal(t, "data", KindData.String())
	require.Equal(t, "io", KindIO.String())
	require.Equal(t, "operation", KindOperation.String())
	require.Equal(t, "warning", KindWarning.String())
	require.Equal(t, "unknown", Kind(99).String())
}

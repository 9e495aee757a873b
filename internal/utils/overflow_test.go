package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCheckMultiplyOverflow(t *testing.T) {
	tests := []struct {
		name    string
		a, b    uint64
		wantErr bool
	}{
		{name: "zero operand", a: 0, b: 100, wantErr: false},
		{name: "small values", a: 10, b: 20, wantErr: false},
		{name: "overflow", a: math.MaxUint64, b: 2, wantErr: true},
		{name: "max non-overflow", a: math.MaxUint64, b: 1, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckMultiplyOverflow(tt.a, tt.b)
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestSafeMultiply(t *testing.T) {
	result, err := SafeMultiply(1000, 8)
	require.NoError(t, err)
	require.Equal(t, uint64(8000), result)

	_, err = SafeMultiply(math.MaxUint64, 2)
	require.Error(t, err)
}

func TestFitsUint32(t *testing.T) {
	require.True(t, FitsUint32(0))
	require.True(t, FitsUint32(math.MaxUint32))
	require.False(t, FitsUint32(math.MaxUint32+1))
}

func TestFitsUint8(t *testing.T) {
	require.True(t, FitsUint8(0))
	require.True(t, FitsUint8(255))
	require.False(t, FitsUint8(256))
	require.False(t, FitsUint8(-1))
}

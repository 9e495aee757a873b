package lowlevel

import (
	"bytes"
	"errors"
	"testing"

	"github.com/scigolib/fbxcel/internal/ioutil"
	"github.com/stretchr/testify/require"
)

func TestReadHeader_OK(t *testing.T) {
	raw := append(append([]byte{}, Magic[:]...), 0xe8, 0x1c, 0x00, 0x00) // version 7400 LE
	pr := ioutil.NewPositionReader(bytes.NewReader(raw))

	h, err := ReadHeader(pr)
	require.NoError(t, err)
	require.Equal(t, Version(7400), h.Version)
	require.Equal(t, uint64(len(raw)), pr.Position())
}

func TestReadHeader_BadMagic(t *testing.T) {
	raw := append(append([]byte{}, Magic[:]...), 0, 0, 0, 0)
	raw[21] = 0xFF // corrupt a byte inside the magic
	pr := ioutil.NewPositionReader(bytes.NewReader(raw))

	_, err := ReadHeader(pr)
	require.True(t, errors.Is(err, ErrMagicNotDetected))
	require.Less(t, pr.Position(), uint64(HeaderLen))
}

func TestWriteHeader_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHeader(&buf, Header{Version: 7500}))
	require.Equal(t, HeaderLen, buf.Len())

	pr := ioutil.NewPositionReader(bytes.NewReader(buf.Bytes()))
	h, err := ReadHeader(pr)
	require.NoError(t, err)
	require.Equal(t, Version(7500), h.Version)
}

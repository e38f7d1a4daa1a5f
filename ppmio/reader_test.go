package ppmio

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadHeaderLine(t *testing.T) {

	for _, tc := range []struct {
		name          string
		data          string
		expectedLines []string
		expectErr     error
	}{
		{
			name:          "no comments",
			data:          "P6\n2 2\n255\n",
			expectedLines: []string{"P6", "2 2", "255"},
		},
		{
			name:          "comments before every field",
			data:          "# made by hand\nP6\n# size\n# more\n2 2\n#max\n255\n",
			expectedLines: []string{"P6", "2 2", "255"},
		},
		{
			name:          "crlf terminators",
			data:          "P6\r\n2 2\r\n",
			expectedLines: []string{"P6", "2 2"},
		},
		{
			name:          "missing final newline",
			data:          "P6\n255",
			expectedLines: []string{"P6", "255"},
		},
		{
			name:      "empty input",
			data:      "",
			expectErr: io.ErrUnexpectedEOF,
		},
		{
			name:      "only comments",
			data:      "# nothing\n# here\n",
			expectErr: io.ErrUnexpectedEOF,
		},
		{
			name:      "line too long",
			data:      strings.Repeat("x", maxHeaderLineLength+10) + "\n",
			expectErr: ErrHeaderLineTooLong,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			r, err := NewReader(strings.NewReader(tc.data))
			require.NoError(t, err)
			defer r.Close()

			if tc.expectErr != nil {
				_, err := r.ReadHeaderLine()
				assert.True(t, errors.Is(err, tc.expectErr), "got %v", err)
				return
			}

			for _, expected := range tc.expectedLines {
				line, err := r.ReadHeaderLine()
				require.NoError(t, err)
				assert.Equal(t, expected, string(line))
			}
		})
	}
}

func TestReadFully(t *testing.T) {
	// '#' and '\n' inside binary data must come through untouched
	payload := []byte{'#', '\n', 0, 255, '\n', '#'}
	r, err := NewReader(bytes.NewReader(append([]byte("P6\n"), payload...)))
	require.NoError(t, err)

	_, err = r.ReadHeaderLine()
	require.NoError(t, err)

	data, err := r.ReadFully(len(payload))
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestReadFullyShort(t *testing.T) {
	r, err := NewReader(bytes.NewReader([]byte{1, 2, 3}))
	require.NoError(t, err)

	data, err := r.ReadFully(5)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
	assert.Equal(t, []byte{1, 2, 3}, data)
}

func TestZstdInput(t *testing.T) {
	plain := []byte("# compressed\nP6\n1 1\n255\n\x01\x02\x03")

	var compressed bytes.Buffer
	enc, err := zstd.NewWriter(&compressed)
	require.NoError(t, err)
	_, err = enc.Write(plain)
	require.NoError(t, err)
	require.NoError(t, enc.Close())

	r, err := NewReader(&compressed)
	require.NoError(t, err)
	defer r.Close()
	assert.True(t, r.Compressed())

	line, err := r.ReadHeaderLine()
	require.NoError(t, err)
	assert.Equal(t, "P6", string(line))
	assert.Equal(t, 2, r.LineNumber())

	for i := 0; i < 2; i++ {
		_, err = r.ReadHeaderLine()
		require.NoError(t, err)
	}
	data, err := r.ReadFully(3)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)
}

package main

import (
	"encoding/binary"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kpfaulkner/blockdct/core"
	"github.com/kpfaulkner/blockdct/testcommon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseArgs(t *testing.T) {

	for _, tc := range []struct {
		name      string
		args      []string
		expected  config
		expectErr bool
	}{
		{
			name:     "flags",
			args:     []string{"-i", "in.ppm", "-b", "3", "-o", "out.txt", "-stdout"},
			expected: config{infile: "in.ppm", outfile: "out.txt", blockNumber: 3, quality: 50, toStdout: true},
		},
		{
			name:     "positional",
			args:     []string{"in.ppm", "-2", "out.txt"},
			expected: config{infile: "in.ppm", outfile: "out.txt", blockNumber: -2, quality: 50},
		},
		{
			name:     "flags before positional",
			args:     []string{"-q", "80", "-profile", "cpu", "in.ppm", "7", "out.txt"},
			expected: config{infile: "in.ppm", outfile: "out.txt", blockNumber: 7, quality: 80, profileMode: "cpu"},
		},
		{name: "missing output", args: []string{"-i", "in.ppm"}, expectErr: true},
		{name: "bad block number", args: []string{"in.ppm", "x", "out.txt"}, expectErr: true},
		{name: "wrong positional count", args: []string{"in.ppm", "out.txt"}, expectErr: true},
		{name: "bad profile mode", args: []string{"-profile", "gpu", "in.ppm", "0", "out.txt"}, expectErr: true},
	} {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := parseArgs(tc.args)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.expected, *cfg)
		})
	}
}

func TestRun(t *testing.T) {
	data := testcommon.GeneratePPM(16, 16, 255, binary.NativeEndian, testcommon.Uniform(128, 128, 128))
	path := testcommon.WriteTempFile(t, "gray.ppm", data)

	out, err := run(&config{infile: path, outfile: filepath.Join(t.TempDir(), "out.txt"), blockNumber: 99, quality: 50})
	require.NoError(t, err)

	zeroRow := strings.Repeat("0\t", 7) + "0\n"
	zeroMatrix := strings.Repeat(zeroRow, 8)
	assert.Equal(t, zeroMatrix+"\n"+zeroMatrix+"\n"+zeroMatrix, string(out))
}

func TestRunBadInput(t *testing.T) {
	path := testcommon.WriteTempFile(t, "bad.ppm", []byte("P3\n1 1\n255\n0 0 0\n"))
	_, err := run(&config{infile: path, outfile: "unused", quality: 50})
	assert.True(t, errors.Is(err, core.ErrFormat))

	path = testcommon.WriteTempFile(t, "small.ppm", testcommon.GeneratePPM(4, 4, 255, binary.NativeEndian, testcommon.Gradient()))
	_, err = run(&config{infile: path, outfile: "unused", quality: 50})
	assert.True(t, errors.Is(err, core.ErrNoBlocks))
}

package imageformats

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/kpfaulkner/blockdct/util"
)

// WriteCoefficients writes each matrix as rows of tab separated integers, one
// row per line, with a blank line between matrices.
func WriteCoefficients(output io.Writer, matrices ...*util.Matrix[int32]) error {
	w := bufio.NewWriter(output)
	var line []byte
	for m, matrix := range matrices {
		if m > 0 {
			if err := w.WriteByte('\n'); err != nil {
				return err
			}
		}
		for y := int32(0); y < matrix.Height; y++ {
			line = line[:0]
			for x, v := range matrix.GetRow(y) {
				if x > 0 {
					line = append(line, '\t')
				}
				line = strconv.AppendInt(line, int64(v), 10)
			}
			line = append(line, '\n')
			if _, err := w.Write(line); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

// ReadCoefficients parses output of WriteCoefficients.
func ReadCoefficients(input io.Reader) ([]*util.Matrix[int32], error) {
	var matrices []*util.Matrix[int32]
	var rows [][]int32

	flush := func() error {
		if len(rows) == 0 {
			return nil
		}
		width := len(rows[0])
		for _, row := range rows {
			if len(row) != width {
				return fmt.Errorf("ragged matrix, rows of %d and %d values", width, len(row))
			}
		}
		matrices = append(matrices, util.New2DMatrixWithContents(int32(len(rows)), int32(width), rows))
		rows = nil
		return nil
	}

	scanner := bufio.NewScanner(input)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		fields := bytes.Split(line, []byte{'\t'})
		row := make([]int32, len(fields))
		for i, f := range fields {
			v, err := strconv.ParseInt(string(bytes.TrimSpace(f)), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			row[i] = int32(v)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if len(matrices) == 0 {
		return nil, errors.New("no coefficient matrices found")
	}
	return matrices, nil
}

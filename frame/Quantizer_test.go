package frame

import (
	"errors"
	"testing"

	"github.com/kpfaulkner/blockdct/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantizeTruncation(t *testing.T) {

	for _, tc := range []struct {
		name     string
		coef     float64
		table    int32
		inverse  bool
		expected int32
	}{
		{name: "positive truncates down", coef: 17.9, table: 1, expected: 17},
		{name: "negative truncates toward zero", coef: -17.9, table: 1, expected: -17},
		{name: "division", coef: 100, table: 16, expected: 6},
		{name: "negative division", coef: -100, table: 16, expected: -6},
		{name: "below one step", coef: 15.99, table: 16, expected: 0},
		{name: "inverse", coef: 6, table: 16, inverse: true, expected: 96},
		{name: "inverse truncates", coef: -1.5, table: 3, inverse: true, expected: -4},
	} {
		t.Run(tc.name, func(t *testing.T) {
			coef := util.New2DMatrixWithContents[float64](1, 1, [][]float64{{tc.coef}})
			table := util.New2DMatrixWithContents[int32](1, 1, [][]int32{{tc.table}})
			q, err := Quantize(coef, table, tc.inverse)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, q.Get(0, 0))
		})
	}
}

func TestQuantizeDimensionMismatch(t *testing.T) {
	_, err := Quantize(util.New2DMatrix[float64](4, 4), LumaTable(), false)
	assert.True(t, errors.Is(err, util.ErrDimensionMismatch))
}

func TestQuantizeRoundTrip(t *testing.T) {
	for _, table := range []*util.Matrix[int32]{LumaTable(), ChromaTable()} {
		coef, err := ForwardDCT(randomBlock(8, 99))
		require.NoError(t, err)

		q, err := Quantize(coef, table, false)
		require.NoError(t, err)
		back, err := Dequantize(q, table)
		require.NoError(t, err)

		for i := range coef.Data {
			diff := util.Abs(coef.Data[i] - float64(back.Data[i]))
			if diff >= float64(table.Data[i]) {
				t.Errorf("element %d: %f came back as %d, step %d", i, coef.Data[i], back.Data[i], table.Data[i])
			}
		}
	}
}

func TestQuantizeDoesNotMutateInput(t *testing.T) {
	coef := randomBlock(8, 5)
	orig := coef.Clone()
	_, err := Quantize(coef, LumaTable(), false)
	require.NoError(t, err)
	assert.Equal(t, orig.Data, coef.Data)
}

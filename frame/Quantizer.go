package frame

import (
	"fmt"
	"math"

	"github.com/kpfaulkner/blockdct/util"
)

// Quantize divides (or when inverse is set, multiplies) each coefficient by the
// matching table entry and truncates toward zero. Truncation rather than
// rounding is deliberate.
func Quantize(coef *util.Matrix[float64], table *util.Matrix[int32], inverse bool) (*util.Matrix[int32], error) {
	if !util.SameDimensions(coef, table) {
		return nil, fmt.Errorf("coefficients %dx%d, table %dx%d: %w",
			coef.Height, coef.Width, table.Height, table.Width, util.ErrDimensionMismatch)
	}

	out := util.New2DMatrix[int32](coef.Height, coef.Width)
	for i, c := range coef.Data {
		t := float64(table.Data[i])
		if inverse {
			out.Data[i] = int32(math.Trunc(c * t))
		} else {
			out.Data[i] = int32(math.Trunc(c / t))
		}
	}
	return out, nil
}

// Dequantize multiplies quantized coefficients back out by the table.
func Dequantize(q *util.Matrix[int32], table *util.Matrix[int32]) (*util.Matrix[int32], error) {
	return Quantize(util.ConvertMatrix(q, func(v int32) float64 { return float64(v) }), table, true)
}

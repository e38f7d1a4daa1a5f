package colour

import (
	"fmt"

	"github.com/kpfaulkner/blockdct/util"
)

// LEVEL_SHIFT moves unsigned 8 bit samples into the signed range [-128, 127]
// before the frequency transform.
const LEVEL_SHIFT = -128.0

var (
	// rows produce Y, Cb and Cr from R, G, B.
	ycbcrMatrix = [][]float64{
		{0.299, 0.587, 0.114},
		{-0.1687, -0.3313, 0.5},
		{0.5, -0.4187, -0.0813}}
	ycbcrOffset = []float64{0, 128, 128}

	// exact inverse of ycbcrMatrix, so round trips only lose float precision.
	rgbMatrix = util.InvertMatrix3x3(ycbcrMatrix)
)

// ToYCbCr converts a block of R, G, B samples into Y, Cb and Cr. Inputs are not
// modified.
func ToYCbCr(r *util.Matrix[uint16], g *util.Matrix[uint16], b *util.Matrix[uint16]) (*util.Matrix[float64], *util.Matrix[float64], *util.Matrix[float64], error) {
	if !util.SameDimensions(r, g) || !util.SameDimensions(r, b) {
		return nil, nil, nil, fmt.Errorf("colour planes %dx%d, %dx%d, %dx%d: %w",
			r.Height, r.Width, g.Height, g.Width, b.Height, b.Width, util.ErrDimensionMismatch)
	}

	y := util.New2DMatrix[float64](r.Height, r.Width)
	cb := util.New2DMatrix[float64](r.Height, r.Width)
	cr := util.New2DMatrix[float64](r.Height, r.Width)
	for i := range r.Data {
		rr := float64(r.Data[i])
		gg := float64(g.Data[i])
		bb := float64(b.Data[i])
		y.Data[i] = 0.299*rr + 0.587*gg + 0.114*bb
		cb.Data[i] = -0.1687*rr - 0.3313*gg + 0.5*bb + 128
		cr.Data[i] = 0.5*rr - 0.4187*gg - 0.0813*bb + 128
	}
	return y, cb, cr, nil
}

// FromYCbCr applies the inverse of ToYCbCr. Results are not rounded or clamped.
func FromYCbCr(y *util.Matrix[float64], cb *util.Matrix[float64], cr *util.Matrix[float64]) (*util.Matrix[float64], *util.Matrix[float64], *util.Matrix[float64], error) {
	if !util.SameDimensions(y, cb) || !util.SameDimensions(y, cr) {
		return nil, nil, nil, fmt.Errorf("colour planes %dx%d, %dx%d, %dx%d: %w",
			y.Height, y.Width, cb.Height, cb.Width, cr.Height, cr.Width, util.ErrDimensionMismatch)
	}

	r := util.New2DMatrix[float64](y.Height, y.Width)
	g := util.New2DMatrix[float64](y.Height, y.Width)
	b := util.New2DMatrix[float64](y.Height, y.Width)
	ycc := make([]float64, 3)
	for i := range y.Data {
		ycc[0] = y.Data[i] - ycbcrOffset[0]
		ycc[1] = cb.Data[i] - ycbcrOffset[1]
		ycc[2] = cr.Data[i] - ycbcrOffset[2]
		rgb, err := util.MatrixVectorMultiply(rgbMatrix, ycc)
		if err != nil {
			return nil, nil, nil, err
		}
		r.Data[i] = rgb[0]
		g.Data[i] = rgb[1]
		b.Data[i] = rgb[2]
	}
	return r, g, b, nil
}

// LevelShift returns a copy of m with offset added to every element.
func LevelShift(m *util.Matrix[float64], offset float64) *util.Matrix[float64] {
	return util.ConvertMatrix(m, func(v float64) float64 {
		return v + offset
	})
}

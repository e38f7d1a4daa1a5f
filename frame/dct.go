package frame

import (
	"errors"
	"fmt"
	"math"

	"github.com/kpfaulkner/blockdct/util"
)

const DEFAULT_BLOCK_SIZE = 8

var (
	ErrNotSquare = errors.New("block is not square")

	// basis for the common case, read only after init.
	basis8 = dctBasis(DEFAULT_BLOCK_SIZE)
)

// dctBasis returns the orthonormal DCT-II basis, row k holding
// sqrt(2/d) * scale(k) * cos((2n+1)k*pi/2d) for n in [0, d).
func dctBasis(d int32) *util.Matrix[float64] {
	basis := util.New2DMatrix[float64](d, d)
	norm := math.Sqrt(2 / float64(d))
	for k := int32(0); k < d; k++ {
		scale := util.IfThenElse(k == 0, math.Sqrt2/2, 1.0)
		for n := int32(0); n < d; n++ {
			basis.Set(k, n, norm*scale*math.Cos(float64(2*n+1)*float64(k)*math.Pi/float64(2*d)))
		}
	}
	return basis
}

func basisFor(d int32) *util.Matrix[float64] {
	if d == DEFAULT_BLOCK_SIZE {
		return basis8
	}
	return dctBasis(d)
}

func checkSquare(m *util.Matrix[float64]) error {
	if m == nil {
		return ErrNotSquare
	}
	if !m.IsSquare() || m.Width == 0 {
		return fmt.Errorf("%dx%d: %w", m.Height, m.Width, ErrNotSquare)
	}
	return nil
}

// ForwardDCT returns the 2D DCT-II of a square block. Element (u, v) of the
// result is the coefficient for frequency u down the rows and v across the
// columns, (0, 0) being DC. Computed as two separable passes.
func ForwardDCT(s *util.Matrix[float64]) (*util.Matrix[float64], error) {
	if err := checkSquare(s); err != nil {
		return nil, err
	}
	d := s.Width
	basis := basisFor(d)

	// columns first, tmp(u, j) = sum_i B(u, i) * S(i, j)
	tmp := util.New2DMatrix[float64](d, d)
	for u := int32(0); u < d; u++ {
		for i := int32(0); i < d; i++ {
			b := basis.Get(u, i)
			srcRow := s.GetRow(i)
			tmpRow := tmp.GetRow(u)
			for j := range tmpRow {
				tmpRow[j] += b * srcRow[j]
			}
		}
	}

	// then rows, out(u, v) = sum_j tmp(u, j) * B(v, j)
	out := util.New2DMatrix[float64](d, d)
	for u := int32(0); u < d; u++ {
		tmpRow := tmp.GetRow(u)
		for v := int32(0); v < d; v++ {
			basisRow := basis.GetRow(v)
			var sum float64
			for j := range tmpRow {
				sum += tmpRow[j] * basisRow[j]
			}
			out.Set(u, v, sum)
		}
	}
	return out, nil
}

// InverseDCT reverses ForwardDCT.
func InverseDCT(c *util.Matrix[float64]) (*util.Matrix[float64], error) {
	if err := checkSquare(c); err != nil {
		return nil, err
	}
	d := c.Width
	basis := basisFor(d)

	// tmp(i, v) = sum_u B(u, i) * C(u, v)
	tmp := util.New2DMatrix[float64](d, d)
	for i := int32(0); i < d; i++ {
		tmpRow := tmp.GetRow(i)
		for u := int32(0); u < d; u++ {
			b := basis.Get(u, i)
			coefRow := c.GetRow(u)
			for v := range tmpRow {
				tmpRow[v] += b * coefRow[v]
			}
		}
	}

	// out(i, j) = sum_v tmp(i, v) * B(v, j)
	out := util.New2DMatrix[float64](d, d)
	for i := int32(0); i < d; i++ {
		tmpRow := tmp.GetRow(i)
		outRow := out.GetRow(i)
		for v := int32(0); v < d; v++ {
			t := tmpRow[v]
			basisRow := basis.GetRow(v)
			for j := range outRow {
				outRow[j] += t * basisRow[j]
			}
		}
	}
	return out, nil
}

// ForwardDCTDirect evaluates the DCT-II double sum for every coefficient.
// O(d^4), ForwardDCT should be preferred.
func ForwardDCTDirect(s *util.Matrix[float64]) (*util.Matrix[float64], error) {
	if err := checkSquare(s); err != nil {
		return nil, err
	}
	d := s.Width
	df := float64(d)
	out := util.New2DMatrix[float64](d, d)
	for u := int32(0); u < d; u++ {
		piU := math.Pi * float64(u) / (2 * df)
		for v := int32(0); v < d; v++ {
			piV := math.Pi * float64(v) / (2 * df)
			var sum float64
			for i := int32(0); i < d; i++ {
				cosI := math.Cos(float64(2*i+1) * piU)
				for j := int32(0); j < d; j++ {
					sum += s.Get(i, j) * cosI * math.Cos(float64(2*j+1)*piV)
				}
			}
			scale := util.IfThenElse(u == 0, math.Sqrt2/2, 1.0) * util.IfThenElse(v == 0, math.Sqrt2/2, 1.0)
			out.Set(u, v, scale*(2/df)*sum)
		}
	}
	return out, nil
}

// ForwardTransform applies ForwardDCT to the Y, Cb and Cr blocks.
func ForwardTransform(y *util.Matrix[float64], cb *util.Matrix[float64], cr *util.Matrix[float64]) (*util.Matrix[float64], *util.Matrix[float64], *util.Matrix[float64], error) {
	return transform3(ForwardDCT, y, cb, cr)
}

// InverseTransform applies InverseDCT to the Y, Cb and Cr coefficient blocks.
func InverseTransform(y *util.Matrix[float64], cb *util.Matrix[float64], cr *util.Matrix[float64]) (*util.Matrix[float64], *util.Matrix[float64], *util.Matrix[float64], error) {
	return transform3(InverseDCT, y, cb, cr)
}

func transform3(fn func(*util.Matrix[float64]) (*util.Matrix[float64], error), y *util.Matrix[float64], cb *util.Matrix[float64], cr *util.Matrix[float64]) (*util.Matrix[float64], *util.Matrix[float64], *util.Matrix[float64], error) {
	var out [3]*util.Matrix[float64]
	for c, m := range []*util.Matrix[float64]{y, cb, cr} {
		var err error
		if out[c], err = fn(m); err != nil {
			return nil, nil, nil, fmt.Errorf("channel %d: %w", c, err)
		}
	}
	return out[0], out[1], out[2], nil
}

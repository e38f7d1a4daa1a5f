package colour

import (
	"errors"
	"math"
	"testing"

	"github.com/kpfaulkner/blockdct/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniformPlane(height int32, width int32, value uint16) *util.Matrix[uint16] {
	m := util.New2DMatrix[uint16](height, width)
	for i := range m.Data {
		m.Data[i] = value
	}
	return m
}

func TestToYCbCr(t *testing.T) {

	for _, tc := range []struct {
		name       string
		r, g, b    uint16
		expectedY  float64
		expectedCb float64
		expectedCr float64
	}{
		{name: "black", r: 0, g: 0, b: 0, expectedY: 0, expectedCb: 128, expectedCr: 128},
		{name: "mid gray", r: 128, g: 128, b: 128, expectedY: 128, expectedCb: 128, expectedCr: 128},
		{name: "white", r: 255, g: 255, b: 255, expectedY: 255, expectedCb: 128, expectedCr: 128},
		{name: "red", r: 255, g: 0, b: 0, expectedY: 76.245, expectedCb: 84.9815, expectedCr: 255.5},
		{name: "blue", r: 0, g: 0, b: 255, expectedY: 29.07, expectedCb: 255.5, expectedCr: 107.2685},
	} {
		t.Run(tc.name, func(t *testing.T) {
			y, cb, cr, err := ToYCbCr(uniformPlane(8, 8, tc.r), uniformPlane(8, 8, tc.g), uniformPlane(8, 8, tc.b))
			require.NoError(t, err)
			for i := range y.Data {
				assert.InDelta(t, tc.expectedY, y.Data[i], 1e-9)
				assert.InDelta(t, tc.expectedCb, cb.Data[i], 1e-9)
				assert.InDelta(t, tc.expectedCr, cr.Data[i], 1e-9)
			}
		})
	}
}

func TestToYCbCrMismatchedPlanes(t *testing.T) {
	_, _, _, err := ToYCbCr(uniformPlane(8, 8, 0), uniformPlane(8, 4, 0), uniformPlane(8, 8, 0))
	assert.True(t, errors.Is(err, util.ErrDimensionMismatch))
}

func TestYCbCrRoundTrip(t *testing.T) {
	r := util.New2DMatrix[uint16](8, 8)
	g := util.New2DMatrix[uint16](8, 8)
	b := util.New2DMatrix[uint16](8, 8)
	for i := range r.Data {
		r.Data[i] = uint16((i * 37) % 256)
		g.Data[i] = uint16((i * 91) % 256)
		b.Data[i] = uint16(255 - (i*13)%256)
	}

	y, cb, cr, err := ToYCbCr(r, g, b)
	require.NoError(t, err)

	// round trip through the level shift as the encoder does
	y = LevelShift(LevelShift(y, LEVEL_SHIFT), -LEVEL_SHIFT)
	cb = LevelShift(LevelShift(cb, LEVEL_SHIFT), -LEVEL_SHIFT)
	cr = LevelShift(LevelShift(cr, LEVEL_SHIFT), -LEVEL_SHIFT)

	rr, gg, bb, err := FromYCbCr(y, cb, cr)
	require.NoError(t, err)
	for i := range r.Data {
		if math.Abs(rr.Data[i]-float64(r.Data[i])) > 1e-6 ||
			math.Abs(gg.Data[i]-float64(g.Data[i])) > 1e-6 ||
			math.Abs(bb.Data[i]-float64(b.Data[i])) > 1e-6 {
			t.Errorf("sample %d: got (%f,%f,%f) want (%d,%d,%d)", i, rr.Data[i], gg.Data[i], bb.Data[i], r.Data[i], g.Data[i], b.Data[i])
		}
	}
}

func TestLevelShift(t *testing.T) {
	m := util.New2DMatrixWithContents[float64](1, 3, [][]float64{{0, 128, 255}})
	shifted := LevelShift(m, LEVEL_SHIFT)
	assert.Equal(t, []float64{-128, 0, 127}, shifted.Data)
	// input untouched
	assert.Equal(t, []float64{0, 128, 255}, m.Data)
}

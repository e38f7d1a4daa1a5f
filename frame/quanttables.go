package frame

import "github.com/kpfaulkner/blockdct/util"

const (
	QUANT_TABLE_SIZE = 8

	// quality at which ScaleTable leaves the reference tables untouched.
	REFERENCE_QUALITY = 50
)

var (
	lumaQuant = [QUANT_TABLE_SIZE][QUANT_TABLE_SIZE]int32{
		{16, 11, 10, 16, 24, 40, 51, 61},
		{12, 12, 14, 19, 26, 58, 60, 55},
		{14, 13, 16, 24, 40, 57, 69, 56},
		{14, 17, 22, 29, 51, 86, 80, 62},
		{18, 22, 37, 56, 68, 109, 103, 77},
		{24, 35, 55, 64, 81, 104, 113, 92},
		{49, 64, 78, 87, 103, 121, 120, 101},
		{72, 92, 95, 98, 112, 100, 103, 99},
	}

	chromaQuant = [QUANT_TABLE_SIZE][QUANT_TABLE_SIZE]int32{
		{17, 18, 24, 47, 99, 99, 99, 99},
		{18, 21, 26, 66, 99, 99, 99, 99},
		{24, 26, 56, 99, 99, 99, 99, 99},
		{47, 66, 99, 99, 99, 99, 99, 99},
		{99, 99, 99, 99, 99, 99, 99, 99},
		{99, 99, 99, 99, 99, 99, 99, 99},
		{99, 99, 99, 99, 99, 99, 99, 99},
		{99, 99, 99, 99, 99, 99, 99, 99},
	}
)

func tableFromArray(a *[QUANT_TABLE_SIZE][QUANT_TABLE_SIZE]int32) *util.Matrix[int32] {
	m := util.New2DMatrix[int32](QUANT_TABLE_SIZE, QUANT_TABLE_SIZE)
	for y := range a {
		m.SetRow(int32(y), a[y][:])
	}
	return m
}

// LumaTable returns a copy of the reference luma quantization table.
func LumaTable() *util.Matrix[int32] {
	return tableFromArray(&lumaQuant)
}

// ChromaTable returns a copy of the reference chroma table, shared by Cb and Cr.
func ChromaTable() *util.Matrix[int32] {
	return tableFromArray(&chromaQuant)
}

// ScaleTable scales a table by a 1-100 quality rating the way the IJG encoder
// does. Quality is clipped to [1, 100] and entries to [1, 255].
func ScaleTable(table *util.Matrix[int32], quality int) *util.Matrix[int32] {
	quality = util.Clamp3(quality, 1, 100)

	var scale int32
	if quality < 50 {
		scale = int32(5000 / quality)
	} else {
		scale = int32(200 - quality*2)
	}

	return util.ConvertMatrix(table, func(x int32) int32 {
		return util.Clamp3((x*scale+50)/100, 1, 255)
	})
}

package frame

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestReferenceTables(t *testing.T) {
	luma := LumaTable()
	chroma := ChromaTable()

	assert.Equal(t, int32(QUANT_TABLE_SIZE), luma.Width)
	assert.Equal(t, int32(QUANT_TABLE_SIZE), luma.Height)
	assert.Equal(t, int32(16), luma.Get(0, 0))
	assert.Equal(t, int32(99), luma.Get(7, 7))
	assert.Equal(t, int32(17), chroma.Get(0, 0))
	assert.Equal(t, int32(66), chroma.Get(3, 1))

	for _, v := range append(luma.Data, chroma.Data...) {
		assert.Greater(t, v, int32(0))
	}
}

func TestReferenceTablesAreCopies(t *testing.T) {
	luma := LumaTable()
	luma.Set(0, 0, 1)
	assert.Equal(t, int32(16), LumaTable().Get(0, 0))
}

func TestScaleTable(t *testing.T) {

	for _, tc := range []struct {
		name     string
		quality  int
		expected func(v int32) int32
	}{
		{name: "reference quality", quality: REFERENCE_QUALITY, expected: func(v int32) int32 { return v }},
		{name: "best quality", quality: 100, expected: func(v int32) int32 { return 1 }},
		{name: "above range clipped", quality: 150, expected: func(v int32) int32 { return 1 }},
		{name: "worst quality", quality: 1, expected: func(v int32) int32 { return 255 }},
		{name: "below range clipped", quality: -3, expected: func(v int32) int32 { return 255 }},
		{name: "quality 75", quality: 75, expected: func(v int32) int32 { return (v*50 + 50) / 100 }},
	} {
		t.Run(tc.name, func(t *testing.T) {
			table := ChromaTable()
			scaled := ScaleTable(table, tc.quality)
			for i, v := range table.Data {
				assert.Equal(t, tc.expected(v), scaled.Data[i], "entry %d", i)
			}
		})
	}
}

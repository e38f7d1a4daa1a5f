package testcommon

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"os"
	"path/filepath"
	"testing"
)

// PixelFunc returns the R, G and B samples for the pixel at (x, y).
type PixelFunc func(x int, y int) (uint16, uint16, uint16)

// Uniform gives every pixel the same colour.
func Uniform(r uint16, g uint16, b uint16) PixelFunc {
	return func(x int, y int) (uint16, uint16, uint16) {
		return r, g, b
	}
}

// Gradient produces distinct, position dependent 8 bit samples.
func Gradient() PixelFunc {
	return func(x int, y int) (uint16, uint16, uint16) {
		return uint16((x*7 + y) % 256), uint16((y*11 + x) % 256), uint16((x*y + 3) % 256)
	}
}

// GeneratePPM builds a P6 file in memory. Two byte samples are written in the
// given byte order.
func GeneratePPM(width int, height int, maxValue int, order binary.ByteOrder, pixel PixelFunc) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "P6\n%d %d\n%d\n", width, height, maxValue)
	buf.Write(GeneratePixelData(width, height, maxValue, order, pixel))
	return buf.Bytes()
}

func GeneratePixelData(width int, height int, maxValue int, order binary.ByteOrder, pixel PixelFunc) []byte {
	sampleWidth := 1
	if maxValue >= 256 {
		sampleWidth = 2
	}
	data := make([]byte, 0, width*height*3*sampleWidth)
	sample := make([]byte, 2)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b := pixel(x, y)
			for _, s := range []uint16{r, g, b} {
				if sampleWidth == 1 {
					data = append(data, uint8(s))
				} else {
					order.PutUint16(sample, s)
					data = append(data, sample...)
				}
			}
		}
	}
	return data
}

// WriteTempFile writes data into a file under the test's temp dir and returns the path.
func WriteTempFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0666); err != nil {
		t.Fatalf("error writing test file : %v", err)
	}
	return path
}

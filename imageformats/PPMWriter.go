package imageformats

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/kpfaulkner/blockdct/image"
)

// WritePPM writes img as a raw (P6) pixel map. Two byte samples are written in
// the given byte order.
func WritePPM(img *image.Image, order binary.ByteOrder, output io.Writer) error {

	w := bufio.NewWriter(output)
	header := fmt.Sprintf("P6\n%d %d\n%d\n", img.Width, img.Height, img.MaxValue)
	if _, err := w.WriteString(header); err != nil {
		return err
	}

	planes := img.Planes()
	sample := make([]byte, 2)
	for p := range img.R.Data {
		for c := 0; c < 3; c++ {
			v := planes[c].Data[p]
			if img.SampleWidth == 1 {
				if err := w.WriteByte(uint8(v)); err != nil {
					return err
				}
				continue
			}
			order.PutUint16(sample, v)
			if _, err := w.Write(sample); err != nil {
				return err
			}
		}
	}
	return w.Flush()
}

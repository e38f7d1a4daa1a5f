package image

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/kpfaulkner/blockdct/util"
)

const (
	CHANNEL_R = 0
	CHANNEL_G = 1
	CHANNEL_B = 2
)

// Plane is a single colour channel, Height rows of Width samples.
type Plane = util.Matrix[uint16]

// Image holds the three colour planes of a decoded pixel map. It is never
// modified once decoded.
type Image struct {
	Width  int32
	Height int32

	// SampleWidth is the number of bytes per sample in the source file, 1 or 2.
	SampleWidth int

	// MaxValue is the maximum sample value declared in the header.
	MaxValue uint32

	R *Plane
	G *Plane
	B *Plane
}

// NewImage allocates an image with zeroed planes.
func NewImage(height int32, width int32, maxValue uint32) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid image dimensions %dx%d", width, height)
	}
	if maxValue == 0 || maxValue > 65535 {
		return nil, fmt.Errorf("invalid max sample value %d", maxValue)
	}
	return &Image{
		Width:       width,
		Height:      height,
		SampleWidth: SampleWidthForMaxValue(maxValue),
		MaxValue:    maxValue,
		R:           util.New2DMatrix[uint16](height, width),
		G:           util.New2DMatrix[uint16](height, width),
		B:           util.New2DMatrix[uint16](height, width),
	}, nil
}

// SampleWidthForMaxValue returns 1 for max values below 256, 2 otherwise.
func SampleWidthForMaxValue(maxValue uint32) int {
	return util.IfThenElse(maxValue < 256, 1, 2)
}

// Planes returns the R, G and B planes in channel order.
func (img *Image) Planes() []*Plane {
	return []*Plane{img.R, img.G, img.B}
}

func (img *Image) Channel(c int) (*Plane, error) {
	switch c {
	case CHANNEL_R:
		return img.R, nil
	case CHANNEL_G:
		return img.G, nil
	case CHANNEL_B:
		return img.B, nil
	}
	return nil, errors.New("invalid channel")
}

// SampleLimit is the largest value representable at the image's sample width.
func (img *Image) SampleLimit() uint32 {
	return uint32(1)<<(8*img.SampleWidth) - 1
}

// ToImage converts to a regular Go image.Image. Samples are rescaled from
// [0, MaxValue] to the full 16 bit range, values above MaxValue saturate.
func (img *Image) ToImage() (image.Image, error) {
	if img.R == nil || img.G == nil || img.B == nil {
		return nil, errors.New("image has no planes")
	}

	out := image.NewRGBA64(image.Rect(0, 0, int(img.Width), int(img.Height)))
	scale := func(v uint16) uint16 {
		s := uint32(v)
		if s > img.MaxValue {
			s = img.MaxValue
		}
		return uint16((s*0xffff + img.MaxValue/2) / img.MaxValue)
	}
	for y := int32(0); y < img.Height; y++ {
		for x := int32(0); x < img.Width; x++ {
			out.SetRGBA64(int(x), int(y), color.RGBA64{
				R: scale(img.R.Get(y, x)),
				G: scale(img.G.Get(y, x)),
				B: scale(img.B.Get(y, x)),
				A: 0xffff,
			})
		}
	}
	return out, nil
}

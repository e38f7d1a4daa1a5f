package blockdct

import (
	"image"
	color2 "image/color"
	"io"

	"github.com/kpfaulkner/blockdct/core"
)

const ppmHeader = "P6"

func init() {
	image.RegisterFormat("ppm", ppmHeader, Decode, DecodeConfig)
}

func Decode(r io.Reader) (image.Image, error) {

	decoder, err := core.NewPPMDecoder(core.WithReader(r))
	if err != nil {
		return nil, err
	}

	if img, err := decoder.Decode(); err != nil {
		return nil, err
	} else {
		return img.ToImage()
	}
}

func DecodeConfig(r io.Reader) (image.Config, error) {
	decoder, err := core.NewPPMDecoder(core.WithReader(r))
	if err != nil {
		return image.Config{}, err
	}

	header, err := decoder.DecodeConfig()
	if err != nil {
		return image.Config{}, err
	}

	var colourModel color2.Model = color2.RGBA64Model
	if header.SampleWidth() == 1 {
		colourModel = color2.RGBAModel
	}

	return image.Config{
		ColorModel: colourModel,
		Width:      int(header.Width),
		Height:     int(header.Height),
	}, nil
}

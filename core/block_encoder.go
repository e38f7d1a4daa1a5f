package core

import (
	"errors"
	"fmt"

	"github.com/kpfaulkner/blockdct/colour"
	"github.com/kpfaulkner/blockdct/frame"
	"github.com/kpfaulkner/blockdct/image"
	"github.com/kpfaulkner/blockdct/options"
	"github.com/kpfaulkner/blockdct/util"
	log "github.com/sirupsen/logrus"
)

type BlockEncoderOption func(e *BlockEncoder) error

func WithBlockSize(blockSize int32) BlockEncoderOption {
	return func(e *BlockEncoder) error {
		if blockSize <= 0 {
			return fmt.Errorf("%d: %w", blockSize, ErrInvalidBlockSize)
		}
		e.options.BlockSize = blockSize
		return nil
	}
}

// WithQuality scales the reference quantization tables, see frame.ScaleTable.
func WithQuality(quality int) BlockEncoderOption {
	return func(e *BlockEncoder) error {
		if quality < 1 || quality > 100 {
			return fmt.Errorf("quality %d outside [1, 100]", quality)
		}
		e.options.Quality = quality
		return nil
	}
}

// WithQuantTables replaces the reference tables. They are used as given,
// quality scaling is not applied.
func WithQuantTables(luma *util.Matrix[int32], chroma *util.Matrix[int32]) BlockEncoderOption {
	return func(e *BlockEncoder) error {
		if luma == nil || chroma == nil {
			return errors.New("nil quantization table")
		}
		for _, t := range []*util.Matrix[int32]{luma, chroma} {
			for _, v := range t.Data {
				if v <= 0 {
					return fmt.Errorf("quantization table entry %d must be positive", v)
				}
			}
		}
		e.lumaTable = luma.Clone()
		e.chromaTable = chroma.Clone()
		return nil
	}
}

func WithEncoderOptions(opts *options.EncoderOptions) BlockEncoderOption {
	return func(e *BlockEncoder) error {
		e.options = options.NewEncoderOptions(opts)
		return nil
	}
}

// EncodedBlock holds the quantized Y, Cb and Cr coefficients of one block.
type EncodedBlock struct {
	Index int
	Row   int32
	Col   int32

	Y  *util.Matrix[int32]
	Cb *util.Matrix[int32]
	Cr *util.Matrix[int32]
}

// Channels returns Y, Cb and Cr in output order.
func (eb *EncodedBlock) Channels() []*util.Matrix[int32] {
	return []*util.Matrix[int32]{eb.Y, eb.Cb, eb.Cr}
}

// BlockEncoder runs the forward pipeline (colour transform, level shift, DCT,
// quantization) over single blocks of an image.
type BlockEncoder struct {
	img     *image.Image
	options *options.EncoderOptions

	lumaTable   *util.Matrix[int32]
	chromaTable *util.Matrix[int32]
}

func NewBlockEncoder(img *image.Image, opts ...BlockEncoderOption) (*BlockEncoder, error) {
	if img == nil {
		return nil, errors.New("nil image")
	}
	e := &BlockEncoder{
		img:     img,
		options: options.NewEncoderOptions(nil),
	}

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying option to BlockEncoder: %w", err)
		}
	}

	if e.lumaTable == nil {
		e.lumaTable = frame.ScaleTable(frame.LumaTable(), e.options.Quality)
		e.chromaTable = frame.ScaleTable(frame.ChromaTable(), e.options.Quality)
	}

	d := e.options.BlockSize
	for _, t := range []*util.Matrix[int32]{e.lumaTable, e.chromaTable} {
		if t.Width != d || t.Height != d {
			return nil, fmt.Errorf("quantization table %dx%d for block size %d: %w",
				t.Height, t.Width, d, util.ErrDimensionMismatch)
		}
	}
	return e, nil
}

func (e *BlockEncoder) BlockSize() int32 {
	return e.options.BlockSize
}

// Tables returns the luma and chroma tables in use.
func (e *BlockEncoder) Tables() (*util.Matrix[int32], *util.Matrix[int32]) {
	return e.lumaTable.Clone(), e.chromaTable.Clone()
}

// Transform extracts block blockNumber and returns its unquantized Y, Cb and Cr
// coefficients.
func (e *BlockEncoder) Transform(blockNumber int) (*Block, [3]*util.Matrix[float64], error) {
	var coefs [3]*util.Matrix[float64]

	block, err := ExtractBlock(e.img, blockNumber, e.options.BlockSize)
	if err != nil {
		return nil, coefs, err
	}
	if block.Index != blockNumber {
		log.Debugf("block %d clamped to %d", blockNumber, block.Index)
	}
	log.Debugf("block %d origin row %d col %d", block.Index, block.Row, block.Col)

	y, cb, cr, err := colour.ToYCbCr(block.R, block.G, block.B)
	if err != nil {
		return nil, coefs, err
	}

	y = colour.LevelShift(y, colour.LEVEL_SHIFT)
	cb = colour.LevelShift(cb, colour.LEVEL_SHIFT)
	cr = colour.LevelShift(cr, colour.LEVEL_SHIFT)

	coefs[0], coefs[1], coefs[2], err = frame.ForwardTransform(y, cb, cr)
	if err != nil {
		return nil, coefs, err
	}
	return block, coefs, nil
}

// Encode produces the quantized coefficients of block blockNumber.
func (e *BlockEncoder) Encode(blockNumber int) (*EncodedBlock, error) {
	block, coefs, err := e.Transform(blockNumber)
	if err != nil {
		return nil, err
	}

	encoded := &EncodedBlock{Index: block.Index, Row: block.Row, Col: block.Col}
	if encoded.Y, err = frame.Quantize(coefs[0], e.lumaTable, false); err != nil {
		return nil, err
	}
	if encoded.Cb, err = frame.Quantize(coefs[1], e.chromaTable, false); err != nil {
		return nil, err
	}
	if encoded.Cr, err = frame.Quantize(coefs[2], e.chromaTable, false); err != nil {
		return nil, err
	}
	log.Debugf("block %d quantized, DC Y %d Cb %d Cr %d", block.Index, encoded.Y.Get(0, 0), encoded.Cb.Get(0, 0), encoded.Cr.Get(0, 0))
	return encoded, nil
}

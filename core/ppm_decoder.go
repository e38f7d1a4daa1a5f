package core

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"

	"github.com/kpfaulkner/blockdct/image"
	"github.com/kpfaulkner/blockdct/ppmio"
	log "github.com/sirupsen/logrus"
)

const (
	ppmMagic = "P6"

	maxSampleValue = 65535
)

type PPMDecoderOption func(d *PPMDecoder) error

func WithInputFilename(fn string) PPMDecoderOption {
	return func(d *PPMDecoder) error {
		if fn == "" {
			return errors.New("empty input filename")
		}
		d.filename = fn
		return nil
	}
}

// WithReader decodes from an already open stream instead of a named file.
func WithReader(in io.Reader) PPMDecoderOption {
	return func(d *PPMDecoder) error {
		if in == nil {
			return errors.New("nil reader")
		}
		d.in = in
		return nil
	}
}

func ReadFileIntoMemory() PPMDecoderOption {
	return func(d *PPMDecoder) error {
		d.readFileIntoMemory = true
		return nil
	}
}

// WithByteOrder sets the byte order of two byte samples. Defaults to the
// host's native order.
func WithByteOrder(order binary.ByteOrder) PPMDecoderOption {
	return func(d *PPMDecoder) error {
		if order == nil {
			return errors.New("nil byte order")
		}
		d.byteOrder = order
		return nil
	}
}

// Header is the parsed text header of a pixel map.
type Header struct {
	Width    int32
	Height   int32
	MaxValue uint32
}

func (h Header) SampleWidth() int {
	return image.SampleWidthForMaxValue(h.MaxValue)
}

// PixelDataSize is the number of bytes of pixel data the header declares.
func (h Header) PixelDataSize() int {
	return int(h.Width) * int(h.Height) * 3 * h.SampleWidth()
}

// PPMDecoder decodes a raw (P6) pixel map into an image.Image
type PPMDecoder struct {

	// input filename to read from.
	filename string

	// read entire file into memory before processing
	readFileIntoMemory bool

	// input stream, used instead of filename if set.
	in io.Reader

	byteOrder binary.ByteOrder
}

func NewPPMDecoder(opts ...PPMDecoderOption) (*PPMDecoder, error) {
	d := &PPMDecoder{
		byteOrder: binary.NativeEndian,
	}

	for _, opt := range opts {
		if err := opt(d); err != nil {
			return nil, fmt.Errorf("error applying option to PPMDecoder: %w", err)
		}
	}

	if d.in == nil && d.filename == "" {
		return nil, errors.New("no input filename or reader supplied")
	}
	return d, nil
}

// open returns the input stream and a function to release it.
func (d *PPMDecoder) open() (io.Reader, func(), error) {
	if d.in != nil {
		return d.in, func() {}, nil
	}

	if d.readFileIntoMemory {
		data, err := os.ReadFile(d.filename)
		if err != nil {
			return nil, nil, err
		}
		return bytes.NewReader(data), func() {}, nil
	}

	f, err := os.Open(d.filename)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// DecodeConfig reads only the header.
func (d *PPMDecoder) DecodeConfig() (Header, error) {
	in, closer, err := d.open()
	if err != nil {
		return Header{}, err
	}
	defer closer()

	reader, err := ppmio.NewReader(in)
	if err != nil {
		return Header{}, err
	}
	defer reader.Close()

	return readHeader(reader)
}

func (d *PPMDecoder) Decode() (*image.Image, error) {
	in, closer, err := d.open()
	if err != nil {
		return nil, err
	}
	defer closer()

	reader, err := ppmio.NewReader(in)
	if err != nil {
		return nil, err
	}
	defer reader.Close()

	header, err := readHeader(reader)
	if err != nil {
		return nil, err
	}
	log.Debugf("ppm header %dx%d max %d, %d byte samples, compressed %v",
		header.Width, header.Height, header.MaxValue, header.SampleWidth(), reader.Compressed())

	expected := header.PixelDataSize()
	data, err := reader.ReadFully(expected)
	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, fmt.Errorf("expected %d bytes of pixel data, got %d: %w", expected, len(data), ErrTruncatedInput)
		}
		return nil, err
	}

	img, err := image.NewImage(header.Height, header.Width, header.MaxValue)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrFormat)
	}
	decodePixels(img, data, d.byteOrder)
	return img, nil
}

// decodePixels splits interleaved RGB samples into the image planes. data must
// hold exactly Width*Height*3*SampleWidth bytes.
func decodePixels(img *image.Image, data []byte, order binary.ByteOrder) {
	planes := img.Planes()
	sampleWidth := img.SampleWidth
	stride := 3 * sampleWidth
	numPixels := len(img.R.Data)

	if sampleWidth == 1 {
		for p := 0; p < numPixels; p++ {
			pos := p * stride
			for c := 0; c < 3; c++ {
				planes[c].Data[p] = uint16(data[pos+c])
			}
		}
		return
	}

	for p := 0; p < numPixels; p++ {
		pos := p * stride
		for c := 0; c < 3; c++ {
			planes[c].Data[p] = order.Uint16(data[pos+c*2:])
		}
	}
}

func readHeader(reader *ppmio.Reader) (Header, error) {
	var header Header

	magic, err := readHeaderLine(reader, "magic")
	if err != nil {
		return header, err
	}
	if !bytes.HasPrefix(magic, []byte(ppmMagic)) {
		return header, fmt.Errorf("magic %q: %w", truncateForError(magic), ErrFormat)
	}

	dims, err := readHeaderLine(reader, "dimensions")
	if err != nil {
		return header, err
	}
	fields := bytes.Fields(dims)
	if len(fields) != 2 {
		return header, fmt.Errorf("dimensions line %q must hold width and height: %w", truncateForError(dims), ErrFormat)
	}
	width, err := parsePositive(fields[0], math.MaxInt32)
	if err != nil {
		return header, fmt.Errorf("width: %v: %w", err, ErrFormat)
	}
	height, err := parsePositive(fields[1], math.MaxInt32)
	if err != nil {
		return header, fmt.Errorf("height: %v: %w", err, ErrFormat)
	}
	// planes are indexed with int32
	if width*height > math.MaxInt32 {
		return header, fmt.Errorf("image too large %dx%d: %w", width, height, ErrFormat)
	}

	maxLine, err := readHeaderLine(reader, "max value")
	if err != nil {
		return header, err
	}
	fields = bytes.Fields(maxLine)
	if len(fields) != 1 {
		return header, fmt.Errorf("max value line %q: %w", truncateForError(maxLine), ErrFormat)
	}
	maxValue, err := parsePositive(fields[0], maxSampleValue)
	if err != nil {
		return header, fmt.Errorf("max value: %v: %w", err, ErrFormat)
	}

	header.Width = int32(width)
	header.Height = int32(height)
	header.MaxValue = uint32(maxValue)
	return header, nil
}

func readHeaderLine(reader *ppmio.Reader, field string) ([]byte, error) {
	line, err := reader.ReadHeaderLine()
	if err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, ppmio.ErrHeaderLineTooLong) {
			return nil, fmt.Errorf("reading %s: %v: %w", field, err, ErrFormat)
		}
		return nil, err
	}
	return line, nil
}

func parsePositive(field []byte, max int64) (int64, error) {
	v, err := strconv.ParseInt(string(field), 10, 64)
	if err != nil {
		return 0, err
	}
	if v <= 0 || v > max {
		return 0, fmt.Errorf("%d out of range [1, %d]", v, max)
	}
	return v, nil
}

func truncateForError(b []byte) []byte {
	if len(b) > 16 {
		return b[:16]
	}
	return b
}

package ppmio

import (
	"bufio"
	"bytes"
	"errors"
	"io"

	"github.com/klauspost/compress/zstd"
)

const (
	// header lines in a pixel map are short, anything longer is not a header.
	maxHeaderLineLength = 1024

	// randomly selected initial payload buffer
	tempBufSize = 1 << 20

	commentMarker = '#'
)

var (
	zstdMagic = []byte{0x28, 0xB5, 0x2F, 0xFD}

	ErrHeaderLineTooLong = errors.New("header line too long")
)

// Reader reads the text header of a pixel map line by line and then hands out
// the binary payload in exact sized chunks. Once ReadFully has been called no
// further header lines should be read.
type Reader struct {
	br   *bufio.Reader
	zr   *zstd.Decoder
	line int
}

// NewReader wraps in. zstd compressed input is detected from the frame magic
// and decompressed transparently.
func NewReader(in io.Reader) (*Reader, error) {
	br := bufio.NewReader(in)
	r := &Reader{br: br}

	magic, err := br.Peek(len(zstdMagic))
	if err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if bytes.Equal(magic, zstdMagic) {
		zr, err := zstd.NewReader(br, zstd.WithDecoderConcurrency(1))
		if err != nil {
			return nil, err
		}
		r.zr = zr
		r.br = bufio.NewReader(zr)
	}
	return r, nil
}

// Compressed reports whether the underlying stream was zstd compressed.
func (r *Reader) Compressed() bool {
	return r.zr != nil
}

// LineNumber is the number of header lines consumed so far, comments included.
func (r *Reader) LineNumber() int {
	return r.line
}

// ReadHeaderLine returns the next line that does not start with '#', without
// its line terminator.
func (r *Reader) ReadHeaderLine() ([]byte, error) {
	for {
		line, err := r.readLine()
		if err != nil {
			return nil, err
		}
		if len(line) > 0 && line[0] == commentMarker {
			continue
		}
		return line, nil
	}
}

func (r *Reader) readLine() ([]byte, error) {
	var line []byte
	for {
		chunk, err := r.br.ReadSlice('\n')
		line = append(line, chunk...)
		if len(line) > maxHeaderLineLength {
			return nil, ErrHeaderLineTooLong
		}
		if err == nil {
			break
		}
		if errors.Is(err, bufio.ErrBufferFull) {
			continue
		}
		if errors.Is(err, io.EOF) {
			if len(line) == 0 {
				return nil, io.ErrUnexpectedEOF
			}
			break
		}
		return nil, err
	}
	r.line++
	return bytes.TrimRight(line, "\r\n"), nil
}

// ReadFully reads exactly n bytes. If fewer are available the bytes that were
// read are returned along with io.ErrUnexpectedEOF (or io.EOF if none were).
// The buffer grows as data arrives so a bogus header cannot force a huge
// allocation up front.
func (r *Reader) ReadFully(n int) ([]byte, error) {
	var buffer bytes.Buffer
	buffer.Grow(min(n, tempBufSize))
	count, err := buffer.ReadFrom(io.LimitReader(r.br, int64(n)))
	if err != nil {
		return buffer.Bytes(), err
	}
	if int(count) < n {
		if count == 0 && n > 0 {
			return buffer.Bytes(), io.EOF
		}
		return buffer.Bytes(), io.ErrUnexpectedEOF
	}
	return buffer.Bytes(), nil
}

func (r *Reader) Close() {
	if r.zr != nil {
		r.zr.Close()
	}
}

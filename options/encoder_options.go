package options

const (
	DEFAULT_BLOCK_SIZE = 8

	// quality 50 leaves the reference quantization tables unscaled.
	DEFAULT_QUALITY = 50
)

type EncoderOptions struct {
	BlockSize int32
	Quality   int
}

// NewEncoderOptions copies the supplied options, filling in defaults for
// anything left unset.
func NewEncoderOptions(options *EncoderOptions) *EncoderOptions {

	opt := &EncoderOptions{
		BlockSize: DEFAULT_BLOCK_SIZE,
		Quality:   DEFAULT_QUALITY,
	}
	if options != nil {
		if options.BlockSize != 0 {
			opt.BlockSize = options.BlockSize
		}
		if options.Quality != 0 {
			opt.Quality = options.Quality
		}
	}
	return opt
}

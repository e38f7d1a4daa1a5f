package core

import (
	"fmt"

	"github.com/kpfaulkner/blockdct/image"
	"github.com/kpfaulkner/blockdct/util"
)

// Block is one square tile copied out of each plane of an image.
type Block struct {
	// Index is the block number after clamping.
	Index int

	// Row and Col are the pixel coordinates of the top left sample.
	Row int32
	Col int32

	R *image.Plane
	G *image.Plane
	B *image.Plane
}

// BlockGrid returns how many complete blocks of size blockSize fit across and
// down the image.
func BlockGrid(img *image.Image, blockSize int32) (int32, int32, error) {
	if blockSize <= 0 {
		return 0, 0, fmt.Errorf("%d: %w", blockSize, ErrInvalidBlockSize)
	}
	perRow := img.Width / blockSize
	perColumn := img.Height / blockSize
	if perRow == 0 || perColumn == 0 {
		return 0, 0, fmt.Errorf("%dx%d image, block size %d: %w", img.Width, img.Height, blockSize, ErrNoBlocks)
	}
	return perRow, perColumn, nil
}

// BlockOrigin clamps blockNumber into the block grid and returns it together
// with the pixel row and column of the block's top left corner. Blocks are
// numbered left to right then top to bottom.
func BlockOrigin(img *image.Image, blockNumber int, blockSize int32) (int, int32, int32, error) {
	perRow, perColumn, err := BlockGrid(img, blockSize)
	if err != nil {
		return 0, 0, 0, err
	}

	// the bound only depends on the grid, never on the requested index.
	last := int(perRow)*int(perColumn) - 1
	index := util.Clamp3(blockNumber, 0, last)

	row := int32(index/int(perRow)) * blockSize
	col := int32(index%int(perRow)) * blockSize
	return index, row, col, nil
}

// ExtractBlock copies block blockNumber out of the R, G and B planes.
// Out of range block numbers are clamped to the first or last block.
func ExtractBlock(img *image.Image, blockNumber int, blockSize int32) (*Block, error) {
	index, row, col, err := BlockOrigin(img, blockNumber, blockSize)
	if err != nil {
		return nil, err
	}

	block := &Block{Index: index, Row: row, Col: col}
	planes := make([]*image.Plane, 3)
	for c, p := range img.Planes() {
		if planes[c], err = p.SubMatrix(row, col, blockSize, blockSize); err != nil {
			return nil, err
		}
	}
	block.R, block.G, block.B = planes[0], planes[1], planes[2]
	return block, nil
}

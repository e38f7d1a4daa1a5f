package util

import (
	"errors"
	"fmt"

	"golang.org/x/exp/constraints"
)

var ErrDimensionMismatch = errors.New("matrix dimensions do not match")

// Make 1D slice appear as 2D slice and helper functions.
// Planes, blocks and coefficient blocks all use this.

type Matrix[T constraints.Ordered] struct {
	Width  int32
	Height int32
	Data   []T
}

// New2DMatrix creates a new 2D matrix with the given dimensions
// Note height is the first dimension, width is the second
func New2DMatrix[T constraints.Ordered](height int32, width int32) *Matrix[T] {
	if height < 0 || width < 0 {
		panic(fmt.Sprintf("negative matrix dimensions %dx%d", height, width))
	}
	matrix := make([]T, width*height)
	return &Matrix[T]{Width: width, Height: height, Data: matrix}
}

// New2DMatrixWithContents copies initialData row by row. Rows shorter than width
// leave the remaining cells at the zero value.
func New2DMatrixWithContents[T constraints.Ordered](height int32, width int32, initialData [][]T) *Matrix[T] {
	matrix := New2DMatrix[T](height, width)
	for h := int32(0); h < height && int(h) < len(initialData); h++ {
		copy(matrix.Data[h*width:(h+1)*width], initialData[h])
	}
	return matrix
}

// Note y is first param...  just for compatibility
func (s *Matrix[T]) Get(y int32, x int32) T {
	return s.Data[y*s.Width+x]
}

func (s *Matrix[T]) Set(y int32, x int32, value T) {
	s.Data[y*s.Width+x] = value
}

func (s *Matrix[T]) GetRow(y int32) []T {
	return s.Data[y*s.Width : (y+1)*s.Width]
}

func (s *Matrix[T]) SetRow(y int32, data []T) {
	copy(s.Data[y*s.Width:(y+1)*s.Width], data)
}

// IsSquare reports whether the matrix has as many rows as columns.
func (s *Matrix[T]) IsSquare() bool {
	return s.Width == s.Height
}

func (s *Matrix[T]) Clone() *Matrix[T] {
	c := New2DMatrix[T](s.Height, s.Width)
	copy(c.Data, s.Data)
	return c
}

// SubMatrix copies the height x width region whose top left corner is (y, x).
func (s *Matrix[T]) SubMatrix(y int32, x int32, height int32, width int32) (*Matrix[T], error) {
	if y < 0 || x < 0 || height < 0 || width < 0 || y+height > s.Height || x+width > s.Width {
		return nil, fmt.Errorf("region %dx%d at (%d,%d) outside %dx%d matrix: %w",
			height, width, y, x, s.Height, s.Width, ErrDimensionMismatch)
	}
	sub := New2DMatrix[T](height, width)
	for row := int32(0); row < height; row++ {
		start := (y+row)*s.Width + x
		copy(sub.Data[row*width:(row+1)*width], s.Data[start:start+width])
	}
	return sub, nil
}

// GetAs2DSlice generates a 2D slice view over the matrix rows. The rows share
// storage with the matrix.
func (s *Matrix[T]) GetAs2DSlice() [][]T {
	a := make([][]T, s.Height)
	for height := 0; height < int(s.Height); height++ {
		a[height] = s.GetRow(int32(height))
	}
	return a
}

func SameDimensions[T constraints.Ordered, U constraints.Ordered](a *Matrix[T], b *Matrix[U]) bool {
	return a.Width == b.Width && a.Height == b.Height
}

// ConvertMatrix applies fn to every element, producing a new matrix of the same
// dimensions.
func ConvertMatrix[T constraints.Ordered, U constraints.Ordered](m *Matrix[T], fn func(T) U) *Matrix[U] {
	out := New2DMatrix[U](m.Height, m.Width)
	for i, v := range m.Data {
		out.Data[i] = fn(v)
	}
	return out
}

// CompareMatrix2D compares two matrices element by element using the supplied function.
func CompareMatrix2D[T constraints.Ordered](a *Matrix[T], b *Matrix[T], compare func(T, T) bool) bool {
	if a == nil || b == nil {
		return a == b
	}
	if !SameDimensions(a, b) {
		return false
	}
	for i := range a.Data {
		if !compare(a.Data[i], b.Data[i]) {
			return false
		}
	}
	return true
}

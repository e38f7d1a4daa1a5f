package util

import (
	"cmp"
	"errors"
)

func Max[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	max := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg > max {
			max = arg
		}
	}
	return max
}

func Min[T cmp.Ordered](args ...T) T {
	if len(args) == 0 {
		return *new(T)
	}

	if isNan(args[0]) {
		return args[0]
	}

	min := args[0]
	for _, arg := range args[1:] {

		if isNan(arg) {
			return arg
		}

		if arg < min {
			min = arg
		}
	}
	return min
}

// Clamp3 clamps v into the range spanned by a and b, in either order.
func Clamp3[T cmp.Ordered](v T, a T, b T) T {
	lower := Min(a, b)
	upper := Max(a, b)
	if v < lower {
		return lower
	}
	if v > upper {
		return upper
	}
	return v
}

func Abs[T int32 | int64 | float64](a T) T {
	if a < 0 {
		return -a
	}
	return a
}

func isNan[T comparable](arg T) bool {
	return arg != arg
}

func MatrixVectorMultiply(matrix [][]float64, vector []float64) ([]float64, error) {
	if len(matrix) == 0 {
		return vector, nil
	}
	if len(matrix[0]) > len(vector) {
		return nil, errors.New("invalid argument")
	}

	total := make([]float64, len(matrix))
	for y := 0; y < len(matrix); y++ {
		row := matrix[y]
		for x := 0; x < len(row); x++ {
			total[y] += row[x] * vector[x]
		}
	}
	return total, nil
}

func MatrixMatrixMultiply(left [][]float64, right [][]float64) ([][]float64, error) {
	if len(left) == 0 || len(right) == 0 {
		return nil, errors.New("invalid argument")
	}
	if len(left[0]) != len(right) {
		return nil, errors.New("invalid argument")
	}

	result := MakeMatrix2D[float64](len(left), len(right[0]))
	for y := 0; y < len(left); y++ {
		for x := 0; x < len(right[0]); x++ {
			for k := 0; k < len(right); k++ {
				result[y][x] += left[y][k] * right[k][x]
			}
		}
	}
	return result, nil
}

// InvertMatrix3x3 returns nil if the matrix is singular.
func InvertMatrix3x3(matrix [][]float64) [][]float64 {
	det := matrix[0][0]*(matrix[1][1]*matrix[2][2]-matrix[1][2]*matrix[2][1]) -
		matrix[0][1]*(matrix[1][0]*matrix[2][2]-matrix[1][2]*matrix[2][0]) +
		matrix[0][2]*(matrix[1][0]*matrix[2][1]-matrix[1][1]*matrix[2][0])
	if det == 0 {
		return nil
	}
	invDet := 1 / det

	inv := MakeMatrix2D[float64](3, 3)
	inv[0][0] = (matrix[1][1]*matrix[2][2] - matrix[1][2]*matrix[2][1]) * invDet
	inv[0][1] = (matrix[0][2]*matrix[2][1] - matrix[0][1]*matrix[2][2]) * invDet
	inv[0][2] = (matrix[0][1]*matrix[1][2] - matrix[0][2]*matrix[1][1]) * invDet
	inv[1][0] = (matrix[1][2]*matrix[2][0] - matrix[1][0]*matrix[2][2]) * invDet
	inv[1][1] = (matrix[0][0]*matrix[2][2] - matrix[0][2]*matrix[2][0]) * invDet
	inv[1][2] = (matrix[0][2]*matrix[1][0] - matrix[0][0]*matrix[1][2]) * invDet
	inv[2][0] = (matrix[1][0]*matrix[2][1] - matrix[1][1]*matrix[2][0]) * invDet
	inv[2][1] = (matrix[0][1]*matrix[2][0] - matrix[0][0]*matrix[2][1]) * invDet
	inv[2][2] = (matrix[0][0]*matrix[1][1] - matrix[0][1]*matrix[1][0]) * invDet
	return inv
}

package errors

import (
	"math"

	"gonum.org/v1/gonum/mat"
)

// maxReportedValues はエラーメッセージに含める不正値の上限
const maxReportedValues = 10

// CheckMatrix returns a NumericalInstabilityError if any element of m is NaN or Inf.
func CheckMatrix(operation string, m mat.Matrix) error {
	var unstable []float64
	r, c := m.Dims()
	for i := 0; i < r && len(unstable) < maxReportedValues; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if math.IsNaN(v) || math.IsInf(v, 0) {
				unstable = append(unstable, v)
				if len(unstable) >= maxReportedValues {
					break
				}
			}
		}
	}
	if len(unstable) > 0 {
		return NewNumericalInstabilityError(operation, unstable)
	}
	return nil
}

package preprocessing

import (
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/core/parallel"
	"github.com/YuminosukeSato/sciexplain/pkg/errors"
)

// 並列処理の閾値（この値以下の行数では逐次処理を使用）
const parallelThreshold = 10000

// LabelBinarizer はラベル列をワンホット行列に変換する
// クラスに含まれないラベルは全て0の行になる
type LabelBinarizer struct {
	// Classes は昇順のクラスラベル
	Classes []float64

	index map[float64]int
}

// NewLabelBinarizer は新しいLabelBinarizerを作成する
//
// パラメータ:
//   - classes: クラスラベル（重複・順不同でよい）
//
// 使用例:
//
//	lb := preprocessing.NewLabelBinarizer([]float64{0, 1, 2})
//	onehot, err := lb.Transform(labels) // labels: n × 1
func NewLabelBinarizer(classes []float64) *LabelBinarizer {
	sorted := append([]float64(nil), classes...)
	sort.Float64s(sorted)

	lb := &LabelBinarizer{index: make(map[float64]int, len(sorted))}
	for _, c := range sorted {
		if _, seen := lb.index[c]; seen {
			continue
		}
		lb.index[c] = len(lb.Classes)
		lb.Classes = append(lb.Classes, c)
	}
	return lb
}

// NClasses はクラス数を返す
func (lb *LabelBinarizer) NClasses() int {
	return len(lb.Classes)
}

// Transform は n × 1 のラベル列を n × NClasses のワンホット行列に変換する
func (lb *LabelBinarizer) Transform(y mat.Matrix) (mat.Matrix, error) {
	r, c := y.Dims()
	if c != 1 {
		return nil, errors.NewDimensionError("LabelBinarizer.Transform", 1, c, 1)
	}
	if r == 0 {
		return nil, errors.NewModelError("LabelBinarizer.Transform", "empty data", errors.ErrEmptyData)
	}
	if lb.NClasses() == 0 {
		return nil, errors.NewValueError("LabelBinarizer.Transform", "no classes")
	}

	out := mat.NewDense(r, lb.NClasses(), nil)
	parallel.ParallelizeWithThreshold(r, parallelThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			if j, ok := lb.index[y.At(i, 0)]; ok {
				out.Set(i, j, 1)
			}
		}
	})
	return out, nil
}

// InverseTransform はワンホット（または確率）行列を最大列のラベルに戻す
func (lb *LabelBinarizer) InverseTransform(Y mat.Matrix) (mat.Matrix, error) {
	r, c := Y.Dims()
	if c != lb.NClasses() {
		return nil, errors.NewDimensionError("LabelBinarizer.InverseTransform", lb.NClasses(), c, 1)
	}

	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		best := 0
		for j := 1; j < c; j++ {
			if Y.At(i, j) > Y.At(i, best) {
				best = j
			}
		}
		out.Set(i, 0, lb.Classes[best])
	}
	return out, nil
}

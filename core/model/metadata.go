package model

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
	"github.com/YuminosukeSato/sciexplain/pkg/log"
	"github.com/YuminosukeSato/sciexplain/preprocessing"
)

// probabilityTolerance は確率行の合計が1とみなされる許容誤差
const probabilityTolerance = 1e-6

// inferMetadata は例データを予測し、モデルの種類・クラス数・出力名を決める。
// ラベルを返す分類器にはワンホット化のtransformerを設定する。
func (m *ModelType) inferMetadata() error {
	const op = "ModelType.inferMetadata"

	rows, cols := m.examples.Dims()
	if rows == 0 || cols == 0 {
		return errors.NewModelError(op, "empty examples", errors.ErrEmptyData)
	}

	// 予測パイプラインのうちtransformerを除いた部分
	out, err := runPipeline(m.examples, m.execute, m.inputFormatter, m.outputFormatter, nil)
	if err != nil {
		return err
	}
	outRows, outCols := out.Dims()
	if outRows != rows {
		return errors.NewDimensionError(op, rows, outRows, 0)
	}
	if err := errors.CheckMatrix(op, out); err != nil {
		return err
	}

	md := &Metadata{NFeatures: cols, NOutputs: outCols}
	kind := m.forcedKind
	if kind == KindUnknown {
		kind = detectKind(out, len(m.uniqueValues) > 0)
	}
	md.Kind = kind

	if kind == Classifier {
		if outCols == 1 {
			md.Labels = true
			if len(m.uniqueValues) == 0 {
				m.uniqueValues = sortedUnique(mat.Col(nil, 0, out))
				w := errors.NewMetadataWarning("unique_values",
					fmt.Sprintf("%d labels observed in %d examples; declare all labels with WithUniqueValues", len(m.uniqueValues), rows))
				// log_levelに従うモデルのロガーへ出す
				m.logger.Warn(w.Error(), "warning", w, log.OperationKey, log.OperationInferMetadata)
			}
			md.NClasses = len(m.uniqueValues)
			if !m.transformerSet {
				m.transformer = preprocessing.NewLabelBinarizer(m.uniqueValues).Transform
			}
		} else {
			md.Probability = isProbability(out)
			md.NClasses = outCols
		}
	}

	nTargets := md.NOutputs
	if kind == Classifier {
		nTargets = md.NClasses
	}
	if len(m.targetNames) == 0 {
		m.targetNames = defaultTargetNames(nTargets)
	} else if len(m.targetNames) != nTargets {
		return errors.NewValidationError("target_names",
			fmt.Sprintf("length must equal the number of %s outputs (%d)", kind, nTargets), len(m.targetNames))
	}

	m.metadata = md
	m.logger.Info("model metadata inferred",
		log.OperationKey, log.OperationInferMetadata,
		log.ModelKindKey, kind.String(),
		log.SamplesKey, rows,
		log.FeaturesKey, cols,
		log.OutputsKey, outCols,
		log.ClassesKey, md.NClasses,
		log.ProbabilityKey, md.Probability,
	)
	return nil
}

// detectKind は出力の形と値からモデルの種類を判定する
func detectKind(out mat.Matrix, hasUniqueValues bool) Kind {
	_, cols := out.Dims()
	switch {
	case cols == 1 && (hasUniqueValues || allIntegral(out)):
		return Classifier
	case cols > 1 && isProbability(out):
		return Classifier
	default:
		return Regressor
	}
}

func allIntegral(m mat.Matrix) bool {
	r, c := m.Dims()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v := m.At(i, j)
			if v != math.Trunc(v) {
				return false
			}
		}
	}
	return true
}

// isProbability は全ての値が[0,1]にあり、各行の合計が1かを判定する
func isProbability(m mat.Matrix) bool {
	r, _ := m.Dims()
	for i := 0; i < r; i++ {
		row := mat.Row(nil, i, m)
		if floats.Min(row) < -probabilityTolerance || floats.Max(row) > 1+probabilityTolerance {
			return false
		}
		if math.Abs(floats.Sum(row)-1) > probabilityTolerance {
			return false
		}
	}
	return true
}

func sortedUnique(values []float64) []float64 {
	if len(values) == 0 {
		return nil
	}
	out := append([]float64(nil), values...)
	sort.Float64s(out)
	n := 1
	for i := 1; i < len(out); i++ {
		if out[i] != out[n-1] {
			out[n] = out[i]
			n++
		}
	}
	return out[:n]
}

func defaultTargetNames(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("predicted_%d", i)
	}
	return names
}

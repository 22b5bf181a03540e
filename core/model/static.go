package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
)

// StaticPredictor は予測関数とフォーマッタだけを保持する自己完結した予測器。
// 生成元のモデルへの参照を持たないため、値のままワーカーgoroutineへ渡せる。
type StaticPredictor struct {
	predictFn       Predictor
	inputFormatter  Formatter
	outputFormatter Formatter
	transformer     Formatter // nilなら適用しない
}

// NewStaticPredictor はStaticPredictorを作成する。
// nilの入力・出力フォーマッタはIdentityになる。transformerはnilでよい。
func NewStaticPredictor(predictFn Predictor, inputFormatter, outputFormatter, transformer Formatter) StaticPredictor {
	return StaticPredictor{
		predictFn:       predictFn,
		inputFormatter:  orIdentity(inputFormatter),
		outputFormatter: orIdentity(outputFormatter),
		transformer:     transformer,
	}
}

// Predict は transformer(outputFormatter(predict(inputFormatter(X)))) を返す。
// 各段階のエラーはそのまま返す。
func (p StaticPredictor) Predict(X mat.Matrix) (mat.Matrix, error) {
	if p.predictFn == nil {
		return nil, errors.NewModelContractError("StaticPredictor.Predict", "predict function must be callable", nil)
	}
	return runPipeline(X, p.predictFn.Predict, p.inputFormatter, p.outputFormatter, p.transformer)
}

// HasTransformer はtransformerが設定されているかを返す
func (p StaticPredictor) HasTransformer() bool {
	return p.transformer != nil
}

func runPipeline(X mat.Matrix, predict, inputFormatter, outputFormatter, transformer Formatter) (mat.Matrix, error) {
	formatted, err := inputFormatter(X)
	if err != nil {
		return nil, err
	}
	raw, err := predict(formatted)
	if err != nil {
		return nil, err
	}
	results, err := outputFormatter(raw)
	if err != nil {
		return nil, err
	}
	if transformer != nil {
		return transformer(results)
	}
	return results, nil
}

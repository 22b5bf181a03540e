package model

import (
	"context"
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
	"github.com/YuminosukeSato/sciexplain/pkg/log"
)

// Kind はモデルの種類を表す
type Kind int

const (
	// KindUnknown はメタデータ未推論の状態
	KindUnknown Kind = iota
	// Regressor は連続値を返すモデル
	Regressor
	// Classifier はラベルまたはクラス確率を返すモデル
	Classifier
)

func (k Kind) String() string {
	switch k {
	case Regressor:
		return log.KindRegressor
	case Classifier:
		return log.KindClassifier
	default:
		return "unknown"
	}
}

// Metadata は例データから推論したモデルの性質
type Metadata struct {
	Kind        Kind
	NFeatures   int  // 例データの列数
	NOutputs    int  // output_formatter適用後の列数
	NClasses    int  // 分類器のクラス数
	Probability bool // 出力がクラス確率
	Labels      bool // 出力がラベル列（1列）
}

// ModelType は全てのモデルの基底となる構造体。
// 具体的なモデルは埋め込み、生の予測関数をInitに渡す。
type ModelType struct {
	name     string
	logLevel int
	logger   log.Logger

	targetNames  []string
	examples     mat.Matrix
	uniqueValues []float64

	inputFormatter  Formatter
	outputFormatter Formatter
	transformer     Formatter
	transformerSet  bool

	forcedKind Kind
	metadata   *Metadata

	execute Formatter
}

// Init はオプションを適用し、フォーマッタのデフォルトを設定し、
// 例データがあればメタデータを推論する。
//
// パラメータ:
//   - execute: フォーマットを介さない生の予測関数
//   - opts: WithLogLevel, WithTargetNames, WithExamples, WithUniqueValues,
//     WithInputFormatter, WithOutputFormatter など
//
// 戻り値:
//   - error: 検証・推論に失敗した場合のエラー
func (m *ModelType) Init(execute Formatter, opts ...Option) error {
	const op = "ModelType.Init"
	if execute == nil {
		return errors.NewModelContractError(op, "predict function must be callable", nil)
	}

	m.name = "model"
	m.logLevel = log.DefaultVerbosity
	for _, opt := range opts {
		opt(m)
	}
	if m.logLevel < 0 {
		return errors.NewValidationError("log_level", "must be non-negative", m.logLevel)
	}

	m.execute = execute
	m.inputFormatter = orIdentity(m.inputFormatter)
	m.outputFormatter = orIdentity(m.outputFormatter)
	m.uniqueValues = sortedUnique(m.uniqueValues)

	if m.logger == nil {
		m.logger = log.GetLoggerWithLevel("core.model", log.FromVerbosity(m.logLevel))
	}
	m.logger = m.logger.With(log.ModelNameKey, m.name)

	if m.examples != nil {
		if err := m.inferMetadata(); err != nil {
			m.logger.Error("model metadata inference failed", err, log.OperationKey, log.OperationInferMetadata)
			return err
		}
	}

	m.logger.Debug("model initialised",
		log.OperationKey, log.OperationInit,
		"has_examples", m.examples != nil,
		"has_transformer", m.transformer != nil,
	)
	return nil
}

// Predict は transformer(outputFormatter(execute(inputFormatter(X)))) を返す。
// transformerが未設定なら適用しない。
func (m *ModelType) Predict(X mat.Matrix) (mat.Matrix, error) {
	if m.execute == nil {
		return nil, errors.NewModelContractError("ModelType.Predict", "model is not initialised", nil)
	}
	out, err := runPipeline(X, m.execute, m.inputFormatter, m.outputFormatter, m.transformer)
	if err != nil {
		return nil, err
	}
	if m.logger.Enabled(context.Background(), log.LevelDebug) {
		rows, _ := X.Dims()
		outRows, outCols := out.Dims()
		m.logger.Debug("predicted",
			log.OperationKey, log.OperationPredict,
			log.SamplesKey, rows,
			log.PredsKey, outRows,
			log.OutputsKey, outCols,
		)
	}
	return out, nil
}

// Name はログに使われるモデル名を返す
func (m *ModelType) Name() string { return m.name }

// LogLevel はモデルのverbosityを返す
func (m *ModelType) LogLevel() int { return m.logLevel }

// Logger はモデルのロガーを返す
func (m *ModelType) Logger() log.Logger { return m.logger }

// InputFormatter は入力フォーマッタを返す（未指定ならIdentity）
func (m *ModelType) InputFormatter() Formatter { return m.inputFormatter }

// OutputFormatter は出力フォーマッタを返す（未指定ならIdentity）
func (m *ModelType) OutputFormatter() Formatter { return m.outputFormatter }

// Transformer はtransformerを返す。未設定ならnil
func (m *ModelType) Transformer() Formatter { return m.transformer }

// TargetNames は出力の名前を返す
func (m *ModelType) TargetNames() []string {
	return append([]string(nil), m.targetNames...)
}

// UniqueValues は分類器が返しうるラベルを昇順で返す
func (m *ModelType) UniqueValues() []float64 {
	return append([]float64(nil), m.uniqueValues...)
}

// Examples は例データを返す
func (m *ModelType) Examples() mat.Matrix { return m.examples }

// Metadata は推論済みメタデータを返す。例データがなければnil
func (m *ModelType) Metadata() *Metadata {
	if m.metadata == nil {
		return nil
	}
	md := *m.metadata
	return &md
}

func (m *ModelType) String() string {
	kind := KindUnknown
	if m.metadata != nil {
		kind = m.metadata.Kind
	}
	return fmt.Sprintf("%s(kind=%s, targets=%v)", m.name, kind, m.targetNames)
}

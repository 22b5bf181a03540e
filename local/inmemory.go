// Package local provides models whose prediction function lives in the
// calling process.
package local

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/core/model"
	"github.com/YuminosukeSato/sciexplain/pkg/errors"
	"github.com/YuminosukeSato/sciexplain/pkg/log"
)

// InMemoryModel wraps a prediction function held in memory so it can be
// called like any other model.
type InMemoryModel struct {
	model.ModelType

	predictionFn model.Predictor
}

// NewInMemoryModel creates an InMemoryModel.
//
// predictionFn may be a model.Predictor, a model.PredictFunc, a
// func(mat.Matrix) (mat.Matrix, error) or a func(mat.Matrix) mat.Matrix.
// Anything else returns a *errors.ModelContractError before any other
// initialisation happens.
//
// Example:
//
//	m, err := local.NewInMemoryModel(clf.PredictProba,
//	    model.WithExamples(background),
//	    model.WithTargetNames([]string{"stay", "leave"}),
//	)
func NewInMemoryModel(predictionFn interface{}, opts ...model.Option) (*InMemoryModel, error) {
	fn, err := model.AsPredictor(predictionFn)
	if err != nil {
		return nil, err
	}

	m := &InMemoryModel{predictionFn: fn}
	opts = append([]model.Option{model.WithName("InMemoryModel")}, opts...)
	if err := m.Init(m.Execute, opts...); err != nil {
		return nil, err
	}
	return m, nil
}

// Execute calls the prediction function directly. No formatter or
// transformer is applied; the result and error are returned unchanged.
func (m *InMemoryModel) Execute(X mat.Matrix) (mat.Matrix, error) {
	if m.predictionFn == nil {
		return nil, errors.NewModelContractError("InMemoryModel.Execute", "predict function must be callable", nil)
	}
	return m.predictionFn.Predict(X)
}

// StaticPredictor returns a predictor bundling the prediction function with
// the input formatter, output formatter and transformer. It holds no
// reference to m and can be handed to worker goroutines.
func (m *InMemoryModel) StaticPredictor() model.StaticPredictor {
	if m.Logger() != nil {
		m.Logger().Debug("static predictor built",
			log.OperationKey, log.OperationStaticPredict,
			"has_transformer", m.Transformer() != nil,
		)
	}
	return model.NewStaticPredictor(
		m.predictionFn,
		m.InputFormatter(),
		m.OutputFormatter(),
		m.Transformer(),
	)
}

package model

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
)

func addConst(c float64) Formatter {
	return func(X mat.Matrix) (mat.Matrix, error) {
		r, cols := X.Dims()
		out := mat.NewDense(r, cols, nil)
		out.Apply(func(i, j int, v float64) float64 { return v + c }, X)
		return out, nil
	}
}

func sumAll(X mat.Matrix) (mat.Matrix, error) {
	return mat.NewDense(1, 1, []float64{mat.Sum(X)}), nil
}

func double(X mat.Matrix) (mat.Matrix, error) {
	var out mat.Dense
	out.Scale(2, X)
	return &out, nil
}

func TestStaticPredictorPipeline(t *testing.T) {
	X := mat.NewDense(1, 3, []float64{1, 2, 3})

	tests := []struct {
		name        string
		input       Formatter
		output      Formatter
		transformer Formatter
		want        *mat.Dense
	}{
		{
			name: "identity formatters",
			want: mat.NewDense(1, 3, []float64{2, 4, 6}),
		},
		{
			// output(f(input(x))) = ((x+1)*2)+10
			name:   "formatters applied in order",
			input:  addConst(1),
			output: addConst(10),
			want:   mat.NewDense(1, 3, []float64{14, 16, 18}),
		},
		{
			name:        "transformer applied last",
			transformer: sumAll,
			want:        mat.NewDense(1, 1, []float64{12}),
		},
		{
			name:        "transformer after output formatter",
			output:      addConst(1),
			transformer: sumAll,
			want:        mat.NewDense(1, 1, []float64{15}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewStaticPredictor(PredictFunc(double), tt.input, tt.output, tt.transformer)
			got, err := p.Predict(X)
			require.NoError(t, err)
			assert.True(t, mat.Equal(tt.want, got), "got %v", mat.Formatted(got))
			assert.Equal(t, tt.transformer != nil, p.HasTransformer())
		})
	}
}

func TestStaticPredictorPropagatesErrors(t *testing.T) {
	X := mat.NewDense(1, 1, []float64{1})
	sentinel := fmt.Errorf("stage failed")
	failing := func(X mat.Matrix) (mat.Matrix, error) { return nil, sentinel }

	tests := []struct {
		name string
		p    StaticPredictor
	}{
		{"input formatter", NewStaticPredictor(PredictFunc(double), failing, nil, nil)},
		{"prediction function", NewStaticPredictor(PredictFunc(failing), nil, nil, nil)},
		{"output formatter", NewStaticPredictor(PredictFunc(double), nil, failing, nil)},
		{"transformer", NewStaticPredictor(PredictFunc(double), nil, nil, failing)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.p.Predict(X)
			assert.Same(t, sentinel, err)
		})
	}
}

func TestStaticPredictorZeroValue(t *testing.T) {
	var p StaticPredictor
	_, err := p.Predict(mat.NewDense(1, 1, nil))

	var contractErr *errors.ModelContractError
	assert.True(t, errors.As(err, &contractErr))
}

func TestStaticPredictorCopiesAcrossGoroutines(t *testing.T) {
	p := NewStaticPredictor(PredictFunc(double), addConst(1), nil, sumAll)
	X := mat.NewDense(1, 3, []float64{1, 2, 3})

	local, err := p.Predict(X)
	require.NoError(t, err)

	results := make([]mat.Matrix, 8)
	var wg sync.WaitGroup
	for i := range results {
		wg.Add(1)
		go func(i int, p StaticPredictor) {
			defer wg.Done()
			results[i], _ = p.Predict(X)
		}(i, p)
	}
	wg.Wait()

	for _, got := range results {
		assert.True(t, mat.Equal(local, got))
	}
}

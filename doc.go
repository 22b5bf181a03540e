// Package sciexplain wraps arbitrary prediction functions as models that
// explanation and analysis code can treat uniformly.
//
// A model is anything that maps a feature matrix to a prediction matrix.
// sciexplain takes such a function, attaches the metadata explainers need
// (target names, unique label values, example rows, task kind) and exposes
// a detached, goroutine-safe predictor that can be shipped to workers.
//
// # Installation
//
//	go get github.com/YuminosukeSato/sciexplain
//
// # Quick Start
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/YuminosukeSato/sciexplain/core/model"
//	    "github.com/YuminosukeSato/sciexplain/local"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    double := func(X mat.Matrix) (mat.Matrix, error) {
//	        var out mat.Dense
//	        out.Scale(2, X)
//	        return &out, nil
//	    }
//
//	    m, err := local.NewInMemoryModel(double, model.WithName("double"))
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//
//	    X := mat.NewDense(1, 3, []float64{1, 2, 3})
//	    y, err := m.StaticPredictor().Predict(X)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(mat.Formatted(y)) // [2  4  6]
//	}
//
// # Packages
//
//   - local: InMemoryModel, the adapter for in-process prediction functions
//   - core/model: ModelType base, Predictor contract, StaticPredictor, YAML config
//   - core/parallel: row-chunked parallel prediction
//   - preprocessing: LabelBinarizer used for one-hot label outputs
//   - pkg/errors: structured errors with stack traces
//   - pkg/log: zerolog-backed structured logging
//
// # Performance
//
// StaticPredictor values hold no reference to the model that produced them,
// so parallel.PredictInParallel can fan a batch out over all CPU cores:
//
//	out, err := parallel.PredictInParallel(ctx, m.StaticPredictor(), X, -1)
//
// # License
//
// sciexplain is released under the MIT License.
package sciexplain

package parallel

import (
	"context"
	"sync"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
	"github.com/YuminosukeSato/sciexplain/pkg/log"
)

// Predictor is satisfied by model.Predictor, model.StaticPredictor and any
// concrete model.
type Predictor interface {
	Predict(X mat.Matrix) (mat.Matrix, error)
}

// PredictInParallel splits the rows of X into contiguous chunks, predicts
// each chunk on its own goroutine and stacks the outputs in row order.
//
// p is usually a model.StaticPredictor, which carries no shared model state.
// nJobs <= 0 uses one goroutine per CPU core. The first failing chunk (in
// row order) determines the returned error; a panic inside p becomes an
// *errors.PanicError. Once ctx is cancelled no further chunk is started and
// ctx.Err() is returned.
func PredictInParallel(ctx context.Context, p Predictor, X mat.Matrix, nJobs int) (mat.Matrix, error) {
	const op = "parallel.PredictInParallel"

	rows, cols := X.Dims()
	if rows == 0 || cols == 0 {
		return nil, errors.NewModelError(op, "empty data", errors.ErrEmptyData)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dense, ok := X.(*mat.Dense)
	if !ok {
		dense = mat.DenseCopyOf(X)
	}

	ranges := chunks(rows, nJobs)
	results := make([]mat.Matrix, len(ranges))
	errs := make([]error, len(ranges))

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	logger := log.GetLoggerWithName("core.parallel")
	started := time.Now()

	var wg sync.WaitGroup
	for i, r := range ranges {
		wg.Add(1)
		go func(i, start, end int) {
			defer wg.Done()
			if contextDone(runCtx) {
				return
			}
			chunk := dense.Slice(start, end, 0, cols)
			results[i], errs[i] = predictChunk(p, chunk)
			if errs[i] != nil {
				cancel()
			}
		}(i, r[0], r[1])
	}
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			logger.Error("chunk prediction failed", err, log.OperationKey, log.OperationStaticPredict)
			return nil, err
		}
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	out, err := stackRows(op, results)
	if err != nil {
		return nil, err
	}
	logger.Debug("parallel prediction finished",
		log.OperationKey, log.OperationStaticPredict,
		log.SamplesKey, rows,
		log.WorkersKey, len(ranges),
		log.BatchSizeKey, ranges[0][1]-ranges[0][0],
		log.DurationMsKey, time.Since(started).Milliseconds(),
	)
	return out, nil
}

func predictChunk(p Predictor, chunk mat.Matrix) (out mat.Matrix, err error) {
	defer errors.Recover(&err, "parallel.predictChunk")
	return p.Predict(chunk)
}

// stackRows concatenates the matrices vertically.
func stackRows(op string, parts []mat.Matrix) (mat.Matrix, error) {
	for _, part := range parts {
		if part == nil {
			return nil, errors.NewModelError(op, "predictor returned no output", nil)
		}
	}

	totalRows := 0
	_, cols := parts[0].Dims()
	for _, part := range parts {
		r, c := part.Dims()
		if c != cols {
			return nil, errors.NewDimensionError(op, cols, c, 1)
		}
		totalRows += r
	}

	out := mat.NewDense(totalRows, cols, nil)
	offset := 0
	for _, part := range parts {
		r, _ := part.Dims()
		out.Slice(offset, offset+r, 0, cols).(*mat.Dense).Copy(part)
		offset += r
	}
	return out, nil
}

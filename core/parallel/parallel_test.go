package parallel

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/errors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type predictFunc func(X mat.Matrix) (mat.Matrix, error)

func (f predictFunc) Predict(X mat.Matrix) (mat.Matrix, error) { return f(X) }

// rowSums returns one column holding the sum of each row.
func rowSums(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	out := mat.NewDense(r, 1, nil)
	for i := 0; i < r; i++ {
		s := 0.0
		for j := 0; j < c; j++ {
			s += X.At(i, j)
		}
		out.Set(i, 0, s)
	}
	return out, nil
}

func sequence(rows, cols int) *mat.Dense {
	data := make([]float64, rows*cols)
	for i := range data {
		data[i] = float64(i)
	}
	return mat.NewDense(rows, cols, data)
}

func TestChunks(t *testing.T) {
	tests := []struct {
		items, workers int
		want           [][2]int
	}{
		{10, 3, [][2]int{{0, 4}, {4, 8}, {8, 10}}},
		{3, 8, [][2]int{{0, 1}, {1, 2}, {2, 3}}},
		{4, 1, [][2]int{{0, 4}}},
		{9, 3, [][2]int{{0, 3}, {3, 6}, {6, 9}}},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d_items_%d_workers", tt.items, tt.workers), func(t *testing.T) {
			assert.Equal(t, tt.want, chunks(tt.items, tt.workers))
		})
	}
}

func TestParallelizeCoversEveryItem(t *testing.T) {
	const items = 1000
	var visited [items]int32

	Parallelize(items, func(start, end int) {
		for i := start; i < end; i++ {
			atomic.AddInt32(&visited[i], 1)
		}
	})

	for i, v := range visited {
		require.Equal(t, int32(1), v, "item %d", i)
	}

	called := false
	Parallelize(0, func(start, end int) { called = true })
	assert.False(t, called)
}

func TestParallelizeWithThresholdRunsSequentially(t *testing.T) {
	var calls int32
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		atomic.AddInt32(&calls, 1)
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, int32(1), calls)
}

func TestPredictInParallelMatchesSequential(t *testing.T) {
	X := sequence(103, 4)
	want, err := rowSums(X)
	require.NoError(t, err)

	for _, nJobs := range []int{0, 1, 4, 7, 200} {
		t.Run(fmt.Sprintf("jobs_%d", nJobs), func(t *testing.T) {
			got, err := PredictInParallel(context.Background(), predictFunc(rowSums), X, nJobs)
			require.NoError(t, err)
			assert.True(t, mat.Equal(want, got))
		})
	}
}

func TestPredictInParallelNonDenseInput(t *testing.T) {
	X := sequence(6, 2).T()
	want, _ := rowSums(X)

	got, err := PredictInParallel(context.Background(), predictFunc(rowSums), X, 2)
	require.NoError(t, err)
	assert.True(t, mat.Equal(want, got))
}

func TestPredictInParallelReturnsFirstError(t *testing.T) {
	sentinel := fmt.Errorf("chunk failed")
	failing := predictFunc(func(X mat.Matrix) (mat.Matrix, error) {
		if X.At(0, 0) >= 40 {
			return nil, sentinel
		}
		return rowSums(X)
	})

	_, err := PredictInParallel(context.Background(), failing, sequence(40, 2), 4)
	assert.Same(t, sentinel, err)
}

func TestPredictInParallelRecoversPanics(t *testing.T) {
	panicking := predictFunc(func(X mat.Matrix) (mat.Matrix, error) {
		panic("bad row")
	})

	_, err := PredictInParallel(context.Background(), panicking, sequence(8, 2), 2)
	var panicErr *errors.PanicError
	require.True(t, errors.As(err, &panicErr))
	assert.Equal(t, "bad row", panicErr.PanicValue)
}

func TestPredictInParallelInconsistentColumns(t *testing.T) {
	ragged := predictFunc(func(X mat.Matrix) (mat.Matrix, error) {
		r, _ := X.Dims()
		cols := 1
		if X.At(0, 0) > 0 {
			cols = 2
		}
		return mat.NewDense(r, cols, nil), nil
	})

	_, err := PredictInParallel(context.Background(), ragged, sequence(4, 1), 2)
	var dimErr *errors.DimensionError
	require.True(t, errors.As(err, &dimErr))
	assert.Equal(t, 1, dimErr.Axis)
}

func TestPredictInParallelCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var calls int32
	counting := predictFunc(func(X mat.Matrix) (mat.Matrix, error) {
		atomic.AddInt32(&calls, 1)
		return rowSums(X)
	})

	_, err := PredictInParallel(ctx, counting, sequence(8, 2), 4)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, atomic.LoadInt32(&calls))
}

func TestPredictInParallelNilOutput(t *testing.T) {
	empty := predictFunc(func(X mat.Matrix) (mat.Matrix, error) { return nil, nil })

	_, err := PredictInParallel(context.Background(), empty, sequence(2, 2), 2)
	var modelErr *errors.ModelError
	assert.True(t, errors.As(err, &modelErr))
}

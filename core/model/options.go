package model

import (
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/sciexplain/pkg/log"
)

// Option is a function that configures ModelType
type Option func(*ModelType)

// WithName sets the name used in log records
func WithName(name string) Option {
	return func(m *ModelType) {
		m.name = name
	}
}

// WithLogLevel sets the model verbosity. 10 shows debug messages, 30 is warnings only.
func WithLogLevel(level int) Option {
	return func(m *ModelType) {
		m.logLevel = level
	}
}

// WithLogger injects a logger. Its own level takes precedence over WithLogLevel.
func WithLogger(logger log.Logger) Option {
	return func(m *ModelType) {
		m.logger = logger
	}
}

// WithTargetNames sets the names of the model outputs (class labels for classifiers)
func WithTargetNames(names []string) Option {
	return func(m *ModelType) {
		m.targetNames = append([]string(nil), names...)
	}
}

// WithExamples sets sample input used to infer the model metadata.
// The prediction function must accept it.
func WithExamples(examples mat.Matrix) Option {
	return func(m *ModelType) {
		m.examples = examples
	}
}

// WithUniqueValues declares every label a classifier may return
func WithUniqueValues(values []float64) Option {
	return func(m *ModelType) {
		m.uniqueValues = append([]float64(nil), values...)
	}
}

// WithInputFormatter sets the formatter applied before prediction
func WithInputFormatter(f Formatter) Option {
	return func(m *ModelType) {
		m.inputFormatter = f
	}
}

// WithOutputFormatter sets the formatter applied after prediction
func WithOutputFormatter(f Formatter) Option {
	return func(m *ModelType) {
		m.outputFormatter = f
	}
}

// WithTransformer overrides the transformer inferred from the examples.
// Passing nil disables it.
func WithTransformer(f Formatter) Option {
	return func(m *ModelType) {
		m.transformer = f
		m.transformerSet = true
	}
}

// WithKind skips kind detection
func WithKind(kind Kind) Option {
	return func(m *ModelType) {
		m.forcedKind = kind
	}
}

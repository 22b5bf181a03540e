// Standard attribute keys for model logging.
//
// Keys follow a hierarchical "area.name" convention so logs from different
// models can be filtered consistently.

package log

// Model and operation context.
const (
	// ModelNameKey identifies the model. Examples: "InMemoryModel", "churn-v2"
	ModelNameKey = "model.name"

	// ModelKindKey is the inferred kind of model: "regressor" or "classifier".
	ModelKindKey = "model.kind"

	// OperationKey names the operation being performed.
	OperationKey = "ml.operation"

	// ComponentKey identifies the package emitting the record.
	ComponentKey = "ml.component"
)

// Data shape.
const (
	// SamplesKey is the number of rows of the data being processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns of the input data.
	FeaturesKey = "data.features"

	// OutputsKey is the number of columns produced by the model.
	OutputsKey = "data.outputs"

	// ClassesKey is the number of classes of a classifier.
	ClassesKey = "data.classes"

	// BatchSizeKey is the number of rows per chunk in parallel prediction.
	BatchSizeKey = "data.batch_size"
)

// Prediction and execution.
const (
	// PredsKey is the number of predictions made.
	PredsKey = "preds.count"

	// ProbabilityKey reports whether outputs were recognised as probabilities.
	ProbabilityKey = "preds.probability"

	// WorkersKey is the number of goroutines used for prediction.
	WorkersKey = "infra.workers"

	// DurationMsKey is the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	// ErrorCodeKey provides a structured error code.
	ErrorCodeKey = "error.code"

	// SuggestionKey gives a hint for resolving the problem.
	SuggestionKey = "error.suggestion"
)

// Standard values.
const (
	OperationInit          = "init"
	OperationExecute       = "execute"
	OperationPredict       = "predict"
	OperationStaticPredict = "static_predict"
	OperationInferMetadata = "infer_metadata"

	KindRegressor  = "regressor"
	KindClassifier = "classifier"

	ErrorNotCallable       = "NOT_CALLABLE"
	ErrorDimensionMismatch = "DIMENSION_MISMATCH"
	ErrorInvalidInput      = "INVALID_INPUT"
)

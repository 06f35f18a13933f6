// Package log defines standard attribute keys for data-preparation operations.
//
// Using these keys keeps log records from the balancer, splitter and encoder
// filterable by the same field names. Keys follow a dotted hierarchy
// ("data.samples", "ml.operation").

package log

// Operation context.
const (
	// ComponentKey identifies the package or component emitting the record.
	// Examples: "preprocessing.balancer", "dataset.csv", "pipeline"
	ComponentKey = "ml.component"

	// OperationKey names the operation being performed.
	OperationKey = "ml.operation"

	// PhaseKey indicates where in the pipeline the record was produced.
	PhaseKey = "ml.phase"

	// ModelNameKey identifies the transformer type, e.g. "OneHotEncoder".
	ModelNameKey = "model.name"
)

// Data shape and characteristics.
const (
	// SamplesKey is the number of rows processed.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of columns processed or produced.
	FeaturesKey = "data.features"

	// LabelKey is the label column name.
	LabelKey = "data.label"

	// ColumnKey names a single column.
	ColumnKey = "data.column"

	// PathKey is a file path read or written.
	PathKey = "data.path"

	// MinorityKey is the row count of the minority class.
	MinorityKey = "balance.minority_count"

	// MajorityKey is the row count of the majority class before sampling.
	MajorityKey = "balance.majority_count"

	// TrainSamplesKey and TestSamplesKey are partition sizes.
	TrainSamplesKey = "split.train_samples"
	TestSamplesKey  = "split.test_samples"

	// CategoriesKey is the number of indicator columns fitted for a column.
	CategoriesKey = "encoding.categories"

	// ReferenceKey is the dropped reference category of a column.
	ReferenceKey = "encoding.reference"

	// UnseenKey counts test values absent from the fitted vocabulary.
	UnseenKey = "encoding.unseen"
)

// Performance.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"
)

// Error context.
const (
	ErrorCodeKey  = "error.code"
	ErrorTypeKey  = "error.type"
	StacktraceKey = "error.stacktrace"
)

// Configuration.
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// TestSizeKey records the test partition fraction.
	TestSizeKey = "config.test_size"
)

// Standard attribute values.
const (
	OperationLoad      = "load"
	OperationBalance   = "balance"
	OperationSplit     = "split"
	OperationFit       = "fit"
	OperationTransform = "transform"
	OperationEncode    = "encode"
	OperationWrite     = "write"
	OperationProfile   = "profile"

	PhasePreprocessing = "preprocessing"
	PhaseIO            = "io"

	ErrorEmptyClass    = "EMPTY_CLASS"
	ErrorMissingColumn = "MISSING_COLUMN"
	ErrorEncodingState = "ENCODING_STATE"
	ErrorInvalidInput  = "INVALID_INPUT"
)

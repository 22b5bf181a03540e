package log

// Verbosity values accepted by models as their log_level.
// Lower numbers are chattier.
const (
	VerbosityDebug   = 10
	VerbosityInfo    = 20
	VerbosityWarning = 30
	VerbosityError   = 40

	// DefaultVerbosity only shows warnings and errors.
	DefaultVerbosity = VerbosityWarning
)

// FromVerbosity maps a numeric log_level onto a Level.
// Values between the thresholds round down to the chattier level.
func FromVerbosity(verbosity int) Level {
	switch {
	case verbosity < VerbosityInfo:
		return LevelDebug
	case verbosity < VerbosityWarning:
		return LevelInfo
	case verbosity < VerbosityError:
		return LevelWarn
	default:
		return LevelError
	}
}

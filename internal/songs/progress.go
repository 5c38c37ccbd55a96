package songs

// ProgressLevel indicates the severity/type of a progress message.
type ProgressLevel int

const (
	LevelInfo ProgressLevel = iota
	LevelVerbose
	LevelWarning
	LevelError
	LevelSuccess
)

// String returns the lowercase level name.
func (l ProgressLevel) String() string {
	switch l {
	case LevelInfo:
		return "info"
	case LevelVerbose:
		return "verbose"
	case LevelWarning:
		return "warning"
	case LevelError:
		return "error"
	case LevelSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// ProgressEvent represents a pipeline progress update.
type ProgressEvent struct {
	Message string
	Level   ProgressLevel
}

// ProgressFunc receives progress events. A nil ProgressFunc discards them.
type ProgressFunc func(ProgressEvent)

func (fn ProgressFunc) emit(level ProgressLevel, msg string) {
	if fn != nil {
		fn(ProgressEvent{Message: msg, Level: level})
	}
}

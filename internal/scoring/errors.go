package scoring

import (
	"fmt"
	"strconv"
)

// Validation failure reasons.
const (
	ReasonMissing     = "missing"
	ReasonNotANumber  = "not_a_number"
	ReasonOutOfRange  = "out_of_range"
	ReasonInvalidDate = "invalid_date"
)

// ValidationError names the offending field of a raw entry and, for range
// failures, the violated bounds. It is user-correctable.
type ValidationError struct {
	Field  string
	Value  string
	Min    float64
	Max    float64
	Reason string
}

func (e *ValidationError) Error() string {
	switch e.Reason {
	case ReasonOutOfRange:
		return fmt.Sprintf("%s: value %s outside [%s, %s]", e.Field, e.Value, fmtNum(e.Min), fmtNum(e.Max))
	case ReasonMissing:
		return e.Field + ": required field missing"
	case ReasonNotANumber:
		return fmt.Sprintf("%s: %q is not a number", e.Field, e.Value)
	case ReasonInvalidDate:
		return fmt.Sprintf("%s: %q is not a YYYY-MM-DD date", e.Field, e.Value)
	}
	return e.Field + ": " + e.Reason
}

// ConfigurationError reports a malformed scoring profile. It is raised
// before any entry is scored and is fatal at startup.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return "scoring configuration: " + e.Field + ": " + e.Reason
}

func fmtNum(f float64) string { return strconv.FormatFloat(f, 'g', -1, 64) }

package timeline

// Input names used in field-level validation errors.
const (
	FieldTrimStart = "trim_start"
	FieldTrimEnd   = "trim_end"
	FieldPosition  = "start_time"
)

// Messages shown next to the trim inputs.
const (
	MsgTrimFormat        = "Invalid format (use M:SS.S)"
	MsgStartNegative     = "Start time cannot be negative"
	MsgStartPastDuration = "Start time must be less than clip duration"
	MsgEndPastDuration   = "End time cannot exceed clip duration"
	MsgEndBeforeStart    = "End time must be greater than start time"
)

// ValidateTrimInput parses the two "M:SS.S" trim fields and checks them
// against the clip's source duration. On failure the returned error is a
// *TrimErrors naming every field that failed.
func ValidateTrimInput(startText, endText string, duration float64) (start, end float64, err error) {
	var errs TrimErrors

	start, startOK := ParseTrimInput(startText)
	switch {
	case !startOK:
		errs.Start = MsgTrimFormat
	case start < 0:
		errs.Start = MsgStartNegative
	case start >= duration:
		errs.Start = MsgStartPastDuration
	}

	end, endOK := ParseTrimInput(endText)
	switch {
	case !endOK:
		errs.End = MsgTrimFormat
	case end > duration:
		errs.End = MsgEndPastDuration
	case startOK && end <= start:
		errs.End = MsgEndBeforeStart
	}

	if !errs.Empty() {
		return 0, 0, &errs
	}
	return start, end, nil
}

// validateTrimBounds checks numeric trim bounds against a source duration.
func validateTrimBounds(start, end, duration float64) error {
	switch {
	case !finite(start):
		return NewValidationError(FieldTrimStart, MsgTrimFormat)
	case start < 0:
		return NewValidationError(FieldTrimStart, MsgStartNegative)
	case start >= duration:
		return NewValidationError(FieldTrimStart, MsgStartPastDuration)
	case !finite(end):
		return NewValidationError(FieldTrimEnd, MsgTrimFormat)
	case end > duration:
		return NewValidationError(FieldTrimEnd, MsgEndPastDuration)
	case end <= start:
		return NewValidationError(FieldTrimEnd, MsgEndBeforeStart)
	}
	return nil
}

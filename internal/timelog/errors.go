package timelog

// ValidationError reports an entry that was refused by Append.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid entry: " + e.Reason
}

package repository

// CouldNotSaveError is the domain-level failure signal for a rejected
// write. It preserves the underlying storage failure via Unwrap so
// callers (and the sqlerr translator) can still reach the cause.
type CouldNotSaveError struct {
	Cause error
}

func (e *CouldNotSaveError) Error() string {
	return "could not save form entry: " + e.Cause.Error()
}

func (e *CouldNotSaveError) Unwrap() error {
	return e.Cause
}

// CouldNotDeleteError is the domain-level failure signal for a failed
// delete, including the case where no matching row exists.
type CouldNotDeleteError struct {
	Cause error
}

func (e *CouldNotDeleteError) Error() string {
	return "could not delete form entry: " + e.Cause.Error()
}

func (e *CouldNotDeleteError) Unwrap() error {
	return e.Cause
}

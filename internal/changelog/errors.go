package changelog

import "fmt"

// PersistenceError reports a failed read or write of the backing file. Loads
// degrade to an empty store; saves leave memory authoritative.
type PersistenceError struct {
	Op   string
	Path string
	Err  error
}

func NewPersistenceError(op, path string, err error) *PersistenceError {
	return &PersistenceError{Op: op, Path: path, Err: err}
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("changelog %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

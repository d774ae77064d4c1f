package reconcile

import "fmt"

// PersistenceError records the failure of one walk's reconciliation write.
// Other walks are unaffected; the failing walk's intended in-memory state is
// still returned so a retry pass can simply be re-run.
type PersistenceError struct {
	WalkID string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist walk %s: %v", e.WalkID, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

package reconcile

import "fmt"

// ReconciliationError is fatal for the current document only: the assembled
// outline was empty, or the caller violated the chunk-ordering contract.
// Batch callers should catch it per document and continue.
type ReconciliationError struct {
	Reason string
}

func (e *ReconciliationError) Error() string {
	return fmt.Sprintf("reconciliation failed: %s", e.Reason)
}

package pipeline

import (
	"errors"

	"github.com/dgallion1/pdfindex/internal/extract"
)

// IsRetryable checks if an error is a transient API failure. The extract
// client already retried these; at this level it only affects how the
// failure is reported.
func IsRetryable(err error) bool {
	var retryErr *extract.RetryableError
	return errors.As(err, &retryErr)
}

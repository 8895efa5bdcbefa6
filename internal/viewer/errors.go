package viewer

import (
	"errors"
	"fmt"
)

// User-facing notification messages.
const (
	MsgLoadFailed        = "Error loading transactions. Please try again."
	MsgFilterFailed      = "Error applying filters. Please try again."
	MsgDeleted           = "Transaction deleted successfully!"
	MsgDeleteFailed      = "Error deleting transaction. Please try again."
	MsgUpdated           = "Transaction updated successfully!"
	MsgUpdateFailed      = "Error updating transaction. Please try again."
	MsgRequiredFields    = "Please fill in all required fields."
	MsgAmountNotPositive = "Amount must be greater than zero."
	MsgNothingToExport   = "No transactions to export."
)

// ErrNothingToExport is returned by Export when the filtered result set is empty.
var ErrNothingToExport = errors.New(MsgNothingToExport)

// FetchError wraps a failure of the fetch or mutation collaborator. Engine state is left as it
// was before the failing call.
type FetchError struct {
	Op  string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ValidationError reports malformed filter or edit-form input. Nothing is fetched or written.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

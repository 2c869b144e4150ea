// internal/marketplace/errors.go
package marketplace

import "fmt"

// Kind classifies ledger failures. Every operation returns exactly one kind on
// failure and leaves no partial state behind.
type Kind string

const (
	KindUnauthorized    Kind = "unauthorized"
	KindNotFound        Kind = "not_found"
	KindDuplicate       Kind = "duplicate"
	KindInvalidInput    Kind = "invalid_input"
	KindExpired         Kind = "expired"
	KindPaymentFailed   Kind = "payment_failed"
	KindInvalidDuration Kind = "invalid_duration"
	KindInactive        Kind = "inactive"
	KindUnavailable     Kind = "unavailable"
	KindAlreadyInactive Kind = "already_inactive"
	KindSuspended       Kind = "suspended"
)

// Numeric codes match the deployed contract's error table. Unavailable,
// Inactive and AlreadyInactive all map onto the contract-inactive code; the
// suspended code is an extension, the contract had no kill switch before it.
const (
	CodeUnauthorized      uint = 100
	CodeNotFound          uint = 101
	CodeDuplicate         uint = 102
	CodeInvalidInput      uint = 103
	CodeExpired           uint = 104
	CodePaymentFailed     uint = 105
	CodeInvalidTimePeriod uint = 106
	CodeContractInactive  uint = 107
	CodeSuspended         uint = 108
)

// Error is the explicit failure outcome of a ledger operation.
type Error struct {
	Kind    Kind
	Code    uint
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("marketplace: %s (err %d)", e.Message, e.Code)
}

// Is matches on Kind so callers can use errors.Is against the exported
// sentinels regardless of message.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

func newError(kind Kind, code uint, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Code: code, Message: fmt.Sprintf(format, args...)}
}

// Sentinels for errors.Is matching.
var (
	ErrUnauthorized    = &Error{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: "caller is not permitted to perform this operation"}
	ErrNotFound        = &Error{Kind: KindNotFound, Code: CodeNotFound, Message: "referenced record does not exist"}
	ErrDuplicate       = &Error{Kind: KindDuplicate, Code: CodeDuplicate, Message: "record already registered"}
	ErrInvalidInput    = &Error{Kind: KindInvalidInput, Code: CodeInvalidInput, Message: "supplied value violates a constraint"}
	ErrExpired         = &Error{Kind: KindExpired, Code: CodeExpired, Message: "license contract has expired"}
	ErrPaymentFailed   = &Error{Kind: KindPaymentFailed, Code: CodePaymentFailed, Message: "payment effect was rejected"}
	ErrInvalidDuration = &Error{Kind: KindInvalidDuration, Code: CodeInvalidTimePeriod, Message: "licensing duration out of bounds"}
	ErrInactive        = &Error{Kind: KindInactive, Code: CodeContractInactive, Message: "license contract is inactive"}
	ErrUnavailable     = &Error{Kind: KindUnavailable, Code: CodeContractInactive, Message: "technology is not available for licensing"}
	ErrAlreadyInactive = &Error{Kind: KindAlreadyInactive, Code: CodeContractInactive, Message: "license contract is already inactive"}
	ErrSuspended       = &Error{Kind: KindSuspended, Code: CodeSuspended, Message: "marketplace is suspended"}
)

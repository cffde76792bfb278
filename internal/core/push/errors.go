package push

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindPushFailed Kind = iota
	KindCashRegisterNotReady
)

const (
	PushFailedDetail           = "Adapter was unable to push data to the service."
	CashRegisterNotReadyDetail = "The connected cash register is not ready. Please check the connection"
)

var (
	// ErrPushFailed matches every adapter failure.
	ErrPushFailed = errors.New(PushFailedDetail)
	// ErrCashRegisterNotReady matches only device level failures.
	ErrCashRegisterNotReady = errors.New(CashRegisterNotReadyDetail)
)

// Error is returned by adapters when the external service could not be reached.
type Error struct {
	Adapter string
	Kind    Kind
	Err     error
}

// Failed wraps err as a generic push failure of the named adapter.
func Failed(adapter string, err error) *Error {
	return &Error{Adapter: adapter, Kind: KindPushFailed, Err: err}
}

// NotReady wraps err as a cash register failure of the named adapter.
func NotReady(adapter string, err error) *Error {
	return &Error{Adapter: adapter, Kind: KindCashRegisterNotReady, Err: err}
}

// Detail is the message that can be shown to the register operator.
func (e *Error) Detail() string {
	if e.Kind == KindCashRegisterNotReady {
		return CashRegisterNotReadyDetail
	}
	return PushFailedDetail
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Adapter, e.Detail())
	}
	return fmt.Sprintf("%s: %s: %v", e.Adapter, e.Detail(), e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Is(target error) bool {
	switch target {
	case ErrPushFailed:
		return true
	case ErrCashRegisterNotReady:
		return e.Kind == KindCashRegisterNotReady
	}
	return false
}

// AsError converts any error returned by an adapter into an *Error.
func AsError(adapter string, err error) *Error {
	if err == nil {
		return nil
	}
	var pushErr *Error
	if errors.As(err, &pushErr) {
		if pushErr.Adapter == "" {
			pushErr.Adapter = adapter
		}
		return pushErr
	}
	return Failed(adapter, err)
}

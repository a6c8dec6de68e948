package errors

import "fmt"

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Dispatch failures. Always returned as values to the caller, never fatal.
	ErrUnknownAgent   = fmt.Errorf("unknown agent")
	ErrRemoteDispatch = fmt.Errorf("remote dispatch failed")

	// Booking failures, in validation order.
	ErrUnknownDate       = fmt.Errorf("unknown schedule date")
	ErrInvalidTimeFormat = fmt.Errorf("invalid time format")
	ErrInvalidRange      = fmt.Errorf("invalid time range")
	ErrInvalidSlot       = fmt.Errorf("invalid slot")
	ErrSlotUnavailable   = fmt.Errorf("slot unavailable")
)

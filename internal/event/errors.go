package event

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEvent means a published value has no topic.
	ErrInvalidEvent = errors.New("invalid event")

	// ErrInvalidTopic means a topic or pattern is empty or malformed.
	ErrInvalidTopic = errors.New("invalid topic")

	// ErrSubscriptionNotFound means the subscription was already removed.
	ErrSubscriptionNotFound = errors.New("subscription not found")

	// ErrHandlerPanic matches every *PanicError.
	ErrHandlerPanic = errors.New("handler panicked")

	// ErrNilHandler means Subscribe was given a nil handler.
	ErrNilHandler = errors.New("handler cannot be nil")
)

// HandlerError is returned by Publish when a handler fails.
type HandlerError struct {
	SubscriptionID string
	Topic          string
	Err            error
}

func (e *HandlerError) Error() string {
	return fmt.Sprintf("subscription %s (%s): %v", e.SubscriptionID, e.Topic, e.Err)
}

func (e *HandlerError) Unwrap() error {
	return e.Err
}

// PanicError records a recovered handler panic.
type PanicError struct {
	SubscriptionID string
	Topic          string
	Value          any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("subscription %s (%s): panic: %v", e.SubscriptionID, e.Topic, e.Value)
}

func (e *PanicError) Is(target error) bool {
	return target == ErrHandlerPanic
}

// Package messaging holds what every event channel adapter shares: the
// subscription registry, the in-order dispatcher, payload encoding and the
// channel error types.
package messaging

import (
	"errors"
	"fmt"
)

var (
	// ErrPublishFailure marks a message the broker did not acknowledge.
	ErrPublishFailure = errors.New("publish failed")

	// ErrLateSubscription is returned by Subscribe once the consumer loop runs.
	ErrLateSubscription = errors.New("subscribe called after the consumer started")

	// ErrDuplicateSubscription is returned when a topic already has a handler.
	ErrDuplicateSubscription = errors.New("topic already has a handler")

	// ErrAlreadyStarted is returned by a second Start.
	ErrAlreadyStarted = errors.New("consumer already started")
)

// PublishFailureError reports a failed Publish. It matches ErrPublishFailure
// and the broker cause with errors.Is.
type PublishFailureError struct {
	Topic string
	Cause error
}

// NewPublishFailureError wraps the cause of a failed publish on topic.
func NewPublishFailureError(topic string, cause error) *PublishFailureError {
	return &PublishFailureError{Topic: topic, Cause: cause}
}

func (e *PublishFailureError) Error() string {
	return fmt.Sprintf("%s: topic %s: %v", ErrPublishFailure, e.Topic, e.Cause)
}

func (e *PublishFailureError) Unwrap() []error {
	return []error{ErrPublishFailure, e.Cause}
}

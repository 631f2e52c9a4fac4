package domain

import (
	"errors"
	"fmt"
)

// ErrorKind tags which failure an EstimationError represents.
type ErrorKind string

const (
	KindMissingInput         ErrorKind = "MissingInput"
	KindInvalidBusinessRules ErrorKind = "InvalidBusinessRules"
	KindConfigSerialization  ErrorKind = "ConfigSerializationError"
	KindTemplateMismatch     ErrorKind = "TemplateMismatch"
	KindBackendUnavailable   ErrorKind = "BackendUnavailable"
	KindBackendCallFailed    ErrorKind = "BackendCallFailed"
	KindEmptyBackendResponse ErrorKind = "EmptyBackendResponse"
	KindMalformedResponse    ErrorKind = "MalformedResponse"
	KindInvalidTimelineShape ErrorKind = "InvalidTimelineShape"
	KindInconsistentTimeline ErrorKind = "InconsistentTimeline"
)

// Stage names the pipeline step that produced an error.
type Stage string

const (
	StageRequest   Stage = "request"
	StageRules     Stage = "rules"
	StageCompile   Stage = "compile"
	StageInvoke    Stage = "invoke"
	StageNormalize Stage = "normalize"
)

// EstimationError is the single error type the pipeline returns.
type EstimationError struct {
	Kind    ErrorKind
	Stage   Stage
	Message string
	// Raw holds the backend text for parse and shape failures.
	Raw string
	Err error
}

func (e *EstimationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Stage, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Stage, e.Message)
}

func (e *EstimationError) Unwrap() error {
	return e.Err
}

// NewError builds an EstimationError.
func NewError(kind ErrorKind, stage Stage, message string, err error) *EstimationError {
	return &EstimationError{Kind: kind, Stage: stage, Message: message, Err: err}
}

// KindOf returns the kind of the first EstimationError in err's chain, or "".
func KindOf(err error) ErrorKind {
	var ee *EstimationError
	if errors.As(err, &ee) {
		return ee.Kind
	}
	return ""
}

// IsCallerError reports whether err was caused by the request rather than the service.
func IsCallerError(err error) bool {
	switch KindOf(err) {
	case KindMissingInput, KindInvalidBusinessRules:
		return true
	}
	return false
}

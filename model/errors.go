package model

import (
	"errors"
	"fmt"

	"xdao.co/solcmeta/metadata"
)

type ErrorCode string

const (
	ErrInvalidInput         ErrorCode = "INVALID_INPUT"
	ErrInsufficientData     ErrorCode = "INSUFFICIENT_DATA"
	ErrTrailerOverrun       ErrorCode = "TRAILER_OVERRUN"
	ErrMalformed            ErrorCode = "MALFORMED_STRUCTURED_DATA"
	ErrInvalidVersionLength ErrorCode = "INVALID_VERSION_LENGTH"
	ErrAmbiguous            ErrorCode = "AMBIGUOUS"
	ErrUnknownField         ErrorCode = "UNKNOWN_FIELD"
	ErrInternal             ErrorCode = "INTERNAL"
)

var kindCodes = map[metadata.Kind]ErrorCode{
	metadata.KindInsufficientData:     ErrInsufficientData,
	metadata.KindTrailerOverrun:       ErrTrailerOverrun,
	metadata.KindMalformed:            ErrMalformed,
	metadata.KindInvalidVersionLength: ErrInvalidVersionLength,
	metadata.KindAmbiguous:            ErrAmbiguous,
	metadata.KindUnknownField:         ErrUnknownField,
}

// CodedError is a stable error with a machine-readable code and a human message.
type CodedError struct {
	Code    ErrorCode `json:"code"`
	RuleID  string    `json:"ruleID,omitempty"`
	Message string    `json:"message"`
}

func (e *CodedError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewError(code ErrorCode, message string) *CodedError {
	return &CodedError{Code: code, Message: message}
}

// ErrorFrom classifies err. Structured decoder errors keep their RuleID;
// anything else is reported under fallback.
func ErrorFrom(err error, fallback ErrorCode) *CodedError {
	if err == nil {
		return nil
	}
	var e *metadata.Error
	if errors.As(err, &e) {
		code, ok := kindCodes[e.Kind]
		if !ok {
			code = ErrInternal
		}
		return &CodedError{Code: code, RuleID: e.RuleID, Message: e.Error()}
	}
	return &CodedError{Code: fallback, Message: err.Error()}
}

package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidRole       = errors.New("invalid role")
	ErrNoItems           = errors.New("at least one line item is required")
	ErrInvalidItem       = errors.New("invalid line item")
	ErrInvalidWeightType = errors.New("invalid weight type")
	ErrInvalidWidthUnit  = errors.New("invalid width unit")
	ErrNoRateTable       = errors.New("no rate table available")
)

// ValidationError represents a single field-level error on one row.
type ValidationError struct {
	Sheet   string `json:"sheet,omitempty"`
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (v ValidationError) String() string {
	if v.Sheet != "" {
		return fmt.Sprintf("%s row %d: %s", v.Sheet, v.Row, v.Message)
	}
	return fmt.Sprintf("row %d: %s", v.Row, v.Message)
}

// BatchError lists every field problem found while validating a quote batch.
// It matches ErrInvalidItem with errors.Is.
type BatchError struct {
	Errors []ValidationError
}

func (e *BatchError) Error() string {
	msgs := make([]string, 0, len(e.Errors))
	for _, v := range e.Errors {
		msgs = append(msgs, v.String())
	}
	return fmt.Sprintf("%s: %s", ErrInvalidItem, strings.Join(msgs, "; "))
}

func (e *BatchError) Unwrap() error { return ErrInvalidItem }

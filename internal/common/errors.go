// Package common provides the error taxonomy and logging setup shared by the
// ingestion, transform and reporting packages.
package common

import (
	"errors"
	"fmt"
)

// ErrorKind distinguishes fatal input problems from per-column issues.
type ErrorKind int

const (
	// KindInputFormat covers wrong file types, empty datasets and unparseable rows.
	// These abort a run before any transform executes.
	KindInputFormat ErrorKind = iota + 1
	// KindColumnDegenerate marks a column that cannot be scaled meaningfully
	// (too few values or zero variance). Recoverable: the column passes through.
	KindColumnDegenerate
	// KindTransformFailed marks a column whose transform could not be applied.
	// Recoverable: the column passes through and the run continues.
	KindTransformFailed
)

func (k ErrorKind) String() string {
	switch k {
	case KindInputFormat:
		return "input format"
	case KindColumnDegenerate:
		return "column degenerate"
	case KindTransformFailed:
		return "transform failed"
	default:
		return "unknown"
	}
}

// Error is the typed error returned by every package in the pipeline.
type Error struct {
	Kind   ErrorKind
	Column string // empty for dataset-level errors
	Msg    string
	Err    error
}

func (e *Error) Error() string {
	var s string
	if e.Column != "" {
		s = fmt.Sprintf("%s: column %q: %s", e.Kind, e.Column, e.Msg)
	} else {
		s = fmt.Sprintf("%s: %s", e.Kind, e.Msg)
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

func (e *Error) Unwrap() error { return e.Err }

// Recoverable reports whether the error is scoped to a single column.
func (e *Error) Recoverable() bool {
	return e.Kind == KindColumnDegenerate || e.Kind == KindTransformFailed
}

// InputFormat builds a fatal input error.
func InputFormat(msg string, err error) error {
	return &Error{Kind: KindInputFormat, Msg: msg, Err: err}
}

// ColumnDegenerate builds a per-column degeneracy error.
func ColumnDegenerate(column, msg string) error {
	return &Error{Kind: KindColumnDegenerate, Column: column, Msg: msg}
}

// TransformFailed builds a per-column transform failure.
func TransformFailed(column string, err error) error {
	return &Error{Kind: KindTransformFailed, Column: column, Msg: "transform not applied", Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or 0.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func IsInputFormat(err error) bool      { return KindOf(err) == KindInputFormat }
func IsColumnDegenerate(err error) bool { return KindOf(err) == KindColumnDegenerate }
func IsTransformFailed(err error) bool  { return KindOf(err) == KindTransformFailed }

/*------------------------------------------------------------------------------
* errors.go : typed error values
*
* notes  : callers branch on error kind with errors.Is against the sentinel
*          values; recoverable per-record failures never surface here, they
*          are counted in ParseSummary instead
*-----------------------------------------------------------------------------*/

package ionolab

import (
	"errors"
	"fmt"
)

var (
	ErrHeaderIncomplete = errors.New("header incomplete")
	ErrMalformedRecord  = errors.New("malformed record")
	ErrOutOfCoverage    = errors.New("out of coverage")
	ErrInvalidGeometry  = errors.New("invalid geometry")
)

/* required header/label field missing or unparseable; fatal for the file */
type HeaderIncompleteError struct {
	Field string
}

func (e *HeaderIncompleteError) Error() string {
	return fmt.Sprintf("header incomplete: missing %s", e.Field)
}

func (e *HeaderIncompleteError) Unwrap() error { return ErrHeaderIncomplete }

/* geographic or pixel query outside the declared valid domain ---------------*/
type OutOfCoverageError struct {
	What string
	Val  float64
	Min  float64
	Max  float64
}

func (e *OutOfCoverageError) Error() string {
	return fmt.Sprintf("out of coverage: %s=%g outside [%g,%g]", e.What, e.Val, e.Min, e.Max)
}

func (e *OutOfCoverageError) Unwrap() error { return ErrOutOfCoverage }

/* non-physical angle/frequency input to the delay model ---------------------*/
type InvalidGeometryError struct {
	What string
	Val  float64
}

func (e *InvalidGeometryError) Error() string {
	return fmt.Sprintf("invalid geometry: %s=%g", e.What, e.Val)
}

func (e *InvalidGeometryError) Unwrap() error { return ErrInvalidGeometry }

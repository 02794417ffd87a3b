// Package sqtt holds the library-wide scalar types shared by the SQTT
// decoder packages: error codes, severities and invalid-index markers.
package sqtt

// Buffer indexing

// BufIndex identifies one SQTT data chunk within a capture.
type BufIndex int

// BitPos is an absolute bit position within one trace buffer.
type BitPos uint64

const (
	// BadBufIndex is an invalid buffer index value
	BadBufIndex BufIndex = -1

	// BadBitPos is an invalid bit position value
	BadBitPos BitPos = ^BitPos(0)
)

// General Library Return and Error Codes

// Err represents library error return type
type Err uint32

const (
	OK                 Err = 0
	ErrFail            Err = 1
	ErrInvalidParamVal Err = 2
	ErrFileError       Err = 3
	ErrUnknownSelector Err = 4
	ErrTruncated       Err = 5
	ErrUserdataEmpty   Err = 6
	ErrUserdataLength  Err = 7
	ErrBadContainer    Err = 8
	ErrNoAsicInfo      Err = 9
	ErrBadCompression  Err = 10
	ErrLast            Err = 11
)

// ErrSeverity used to indicate the severity of an error or logger verbosity
type ErrSeverity uint32

const (
	ErrSevNone  ErrSeverity = 0
	ErrSevError ErrSeverity = 1
	ErrSevWarn  ErrSeverity = 2
	ErrSevInfo  ErrSeverity = 3
)

// IsFatal reports whether an error code aborts its unit of work (one
// buffer decode or one marker construction).
func (e Err) IsFatal() bool {
	switch e {
	case OK, ErrTruncated:
		return false
	}
	return true
}

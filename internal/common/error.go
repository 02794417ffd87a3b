package common

import (
	"fmt"
	"strings"

	"sqtt/internal/sqtt"
)

// Error represents the library error object.
// Buf and Bit locate the failure inside a capture when known.
type Error struct {
	Code    sqtt.Err
	Sev     sqtt.ErrSeverity
	Buf     sqtt.BufIndex
	Bit     sqtt.BitPos
	Message string
}

func NewError(sev sqtt.ErrSeverity, code sqtt.Err) *Error {
	return &Error{
		Code: code,
		Sev:  sev,
		Buf:  sqtt.BadBufIndex,
		Bit:  sqtt.BadBitPos,
	}
}

func NewErrorWithBuf(sev sqtt.ErrSeverity, code sqtt.Err, buf sqtt.BufIndex) *Error {
	return &Error{
		Code: code,
		Sev:  sev,
		Buf:  buf,
		Bit:  sqtt.BadBitPos,
	}
}

func NewErrorWithBufPos(sev sqtt.ErrSeverity, code sqtt.Err, buf sqtt.BufIndex, bit sqtt.BitPos) *Error {
	return &Error{
		Code: code,
		Sev:  sev,
		Buf:  buf,
		Bit:  bit,
	}
}

func NewErrorMsg(sev sqtt.ErrSeverity, code sqtt.Err, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     sev,
		Buf:     sqtt.BadBufIndex,
		Bit:     sqtt.BadBitPos,
		Message: msg,
	}
}

func NewErrorWithBufMsg(sev sqtt.ErrSeverity, code sqtt.Err, buf sqtt.BufIndex, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     sev,
		Buf:     buf,
		Bit:     sqtt.BadBitPos,
		Message: msg,
	}
}

func NewErrorWithBufPosMsg(sev sqtt.ErrSeverity, code sqtt.Err, buf sqtt.BufIndex, bit sqtt.BitPos, msg string) *Error {
	return &Error{
		Code:    code,
		Sev:     sev,
		Buf:     buf,
		Bit:     bit,
		Message: msg,
	}
}

// ErrCode returns a bare error carrying only code, for use as an
// errors.Is target.
func ErrCode(code sqtt.Err) *Error {
	return NewError(sqtt.ErrSevError, code)
}

// Is matches any *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	var sb strings.Builder

	switch e.Sev {
	case sqtt.ErrSevNone:
		return "LIBRARY INTERNAL ERROR: Invalid Error Object"
	case sqtt.ErrSevError:
		sb.WriteString("ERROR:")
	case sqtt.ErrSevWarn:
		sb.WriteString("WARN :")
	case sqtt.ErrSevInfo:
		sb.WriteString("INFO :")
	default:
		return "LIBRARY INTERNAL ERROR: Invalid Error Object"
	}

	sb.WriteString(fmt.Sprintf("0x%04x ", e.Code))

	if desc, ok := errorCodeDesc[e.Code]; ok {
		sb.WriteString(fmt.Sprintf("(%s) [%s]; ", desc.name, desc.msg))
	} else {
		sb.WriteString("(unknown); ")
	}

	if e.Buf != sqtt.BadBufIndex {
		sb.WriteString(fmt.Sprintf("Buf=%d; ", e.Buf))
	}

	if e.Bit != sqtt.BadBitPos {
		sb.WriteString(fmt.Sprintf("Bit=%d; ", e.Bit))
	}

	sb.WriteString(e.Message)
	return sb.String()
}

type errDesc struct {
	name string
	msg  string
}

var errorCodeDesc = map[sqtt.Err]errDesc{
	sqtt.OK:                 {"SQTT_OK", "No Error."},
	sqtt.ErrFail:            {"SQTT_ERR_FAIL", "General failure."},
	sqtt.ErrInvalidParamVal: {"SQTT_ERR_INVALID_PARAM_VAL", "Invalid value parameter passed to component."},
	sqtt.ErrFileError:       {"SQTT_ERR_FILE_ERROR", "File access error"},
	sqtt.ErrUnknownSelector: {"SQTT_ERR_UNKNOWN_SELECTOR", "Unknown packet selector - corrupt trace buffer."},
	sqtt.ErrTruncated:       {"SQTT_ERR_TRUNCATED", "Trace buffer ends mid-packet, truncated capture?"},
	sqtt.ErrUserdataEmpty:   {"SQTT_ERR_USERDATA_EMPTY", "Userdata payload has no words."},
	sqtt.ErrUserdataLength:  {"SQTT_ERR_USERDATA_LENGTH", "Userdata length does not match its declared length."},
	sqtt.ErrBadContainer:    {"SQTT_ERR_BAD_CONTAINER", "Malformed capture container."},
	sqtt.ErrNoAsicInfo:      {"SQTT_ERR_NO_ASIC_INFO", "Capture has no ASIC info chunk."},
	sqtt.ErrBadCompression:  {"SQTT_ERR_BAD_COMPRESSION", "Compressed capture could not be expanded."},
	sqtt.ErrLast:            {"SQTT_ERR_LAST", "No error - error code end marker"},
}

// ErrorName returns the symbolic name of code, or "" if unknown.
func ErrorName(code sqtt.Err) string {
	return errorCodeDesc[code].name
}

// ErrorDescription returns the description of code, or "" if unknown.
func ErrorDescription(code sqtt.Err) string {
	return errorCodeDesc[code].msg
}

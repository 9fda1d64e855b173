package metainfo

import (
	"strconv"
	"strings"
)

// Path used in errors for descriptors read from an io.Reader.
const ReaderPath = "<reader>"

// Returned for any descriptor that can't be read, decoded or validated. Loading is all-or-nothing,
// so there's never a partial MetaInfo alongside one of these.
type Error struct {
	// The file the descriptor came from. ReaderPath for Load, empty for FromValue.
	Path string
	// Dotted key path of the offending field, such as "info.files[1].path". Empty when the problem
	// isn't with a particular field.
	Field  string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	var sb strings.Builder
	sb.WriteString("metainfo")
	if e.Path != "" {
		sb.WriteString(" ")
		sb.WriteString(strconv.Quote(e.Path))
	}
	if e.Field != "" {
		sb.WriteString(": ")
		sb.WriteString(strconv.Quote(e.Field))
	}
	sb.WriteString(": ")
	sb.WriteString(e.Reason)
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

package storage

import (
	"archive/zip"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies the cause of a failed operation so callers can
// distinguish not-found from permission-denied from corrupt-data
// without parsing log text.
type Kind int

const (
	// KindIO covers unclassified filesystem errors (disk full, EIO).
	KindIO Kind = iota
	// KindMissing means the target file or directory does not exist.
	KindMissing
	// KindPermission means the OS denied access.
	KindPermission
	// KindCorrupt means the file exists but its contents could not be
	// parsed (malformed JSON/CSV/YAML/TOML, truncated archive).
	KindCorrupt
	// KindInvalid means the supplied path escaped the base directory.
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindPermission:
		return "permission"
	case KindCorrupt:
		return "corrupt"
	case KindInvalid:
		return "invalid"
	default:
		return "io"
	}
}

// OpError is the error returned by every Manager operation.
type OpError struct {
	Op   string // operation name, e.g. "update"
	Path string // path as supplied by the caller
	Kind Kind
	Err  error // underlying cause, may be nil
}

func (e *OpError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *OpError) Unwrap() error { return e.Err }

// KindOf extracts the Kind from an operation error chain.
// Errors that did not originate from a Manager operation report KindIO.
func KindOf(err error) Kind {
	var oe *OpError
	if errors.As(err, &oe) {
		return oe.Kind
	}
	return KindIO
}

// IsMissing reports whether err means the target did not exist.
func IsMissing(err error) bool { return KindOf(err) == KindMissing }

// classify maps an underlying cause to a Kind by symptom.
func classify(err error) Kind {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return KindMissing
	case errors.Is(err, fs.ErrPermission):
		return KindPermission
	case errors.Is(err, zip.ErrFormat):
		return KindCorrupt
	}

	var jsonSyntax *json.SyntaxError
	var jsonType *json.UnmarshalTypeError
	var csvParse *csv.ParseError
	if errors.As(err, &jsonSyntax) || errors.As(err, &jsonType) || errors.As(err, &csvParse) {
		return KindCorrupt
	}

	return KindIO
}

package experts

import (
	"errors"
	"fmt"
	"io/fs"
)

// Kind classifies a listing failure. Kinds are stable strings so callers
// on the other side of the MCP transport can match on them.
type Kind string

const (
	KindNotFound         Kind = "not_found"
	KindNotADirectory    Kind = "not_a_directory"
	KindPermissionDenied Kind = "permission_denied"
	KindInvalidArgument  Kind = "invalid_argument"
	KindInternal         Kind = "internal"
)

// Error is the structured failure returned by the lister. It always names
// the offending path so the caller can see what was actually scanned.
type Error struct {
	Kind Kind
	Msg  string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Msg, e.Path)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is (or wraps) a listing error of the given kind.
func IsKind(err error, kind Kind) bool {
	var le *Error
	return errors.As(err, &le) && le.Kind == kind
}

func newError(kind Kind, msg, path string, cause error) *Error {
	return &Error{Kind: kind, Msg: msg, Path: path, Err: cause}
}

// classifyAccessError maps a filesystem error to the error taxonomy.
func classifyAccessError(path string, err error) *Error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return newError(KindNotFound, "no such directory", path, err)
	case errors.Is(err, fs.ErrPermission):
		return newError(KindPermissionDenied, "permission denied", path, err)
	default:
		return newError(KindInternal, "read failed", path, err)
	}
}

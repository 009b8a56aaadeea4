package errs

import (
	"fmt"
	"strings"

	cr "github.com/cockroachdb/errors"
)

// Wrap annotates err with msg, preserving the original in the chain.
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return cr.Wrap(err, msg)
}

func New(msg string) error {
	return cr.New(msg)
}

// Mark tags err with markErr so the handler layer can match it against
// a sentinel without flattening the underlying cause.
func Mark(err error, markErr error) error {
	if err == nil {
		return markErr
	}
	return cr.Mark(err, markErr)
}

// Is reports whether err carries ref, through either the wrap chain or
// a mark applied with Mark. Marks live outside the stdlib Unwrap chain,
// so callers matching sentinels must use this instead of errors.Is.
func Is(err, ref error) bool {
	return cr.Is(err, ref)
}

// ExtractStackLines renders the first maxLines lines of err's verbose
// form, stack trace included, for structured log output.
func ExtractStackLines(err error, maxLines int) []string {
	if err == nil {
		return nil
	}
	s := fmt.Sprintf("%+v", err)
	lines := strings.Split(s, "\n")
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	return lines
}

package errors

import (
	// Go Internal Packages
	stderrors "errors"
	"fmt"
	"io/fs"
	"syscall"
)

func EmptyParamErr(field string) error {
	ve := ValidationErrs()
	ve.Add(field, "cannot be empty")
	return E(Invalid, "validation failed", ve.Err())
}

// MissingColumnErr is returned when a structured source lacks a required header.
func MissingColumnErr(column string, header []string) error {
	return E(Invalid, fmt.Sprintf("column %q not found in header %q", column, header), nil)
}

// OpenErr classifies a failure to open an input source.
func OpenErr(location string, err error) error {
	msg := fmt.Sprintf("cannot open %s", location)
	switch {
	case stderrors.Is(err, fs.ErrNotExist):
		return E(NotFound, msg, err)
	case isLocked(err):
		return E(Locked, msg, err)
	}
	return E(IO, msg, err)
}

// ReadErr wraps a failure while reading an already opened source.
func ReadErr(location string, err error) error {
	return E(IO, fmt.Sprintf("cannot read %s", location), err)
}

// WriteErr wraps a failure writing the report bundle. Permission problems usually
// mean the destination is open in another program.
func WriteErr(location string, err error) error {
	if isLocked(err) {
		return E(Write, fmt.Sprintf("cannot write %s, check that it is not open in another program", location), err)
	}
	return E(Write, fmt.Sprintf("cannot write %s", location), err)
}

func isLocked(err error) bool {
	return stderrors.Is(err, fs.ErrPermission) ||
		stderrors.Is(err, syscall.EBUSY) ||
		stderrors.Is(err, syscall.ETXTBSY)
}

package errs

import (
	"errors"
	"fmt"

	"member-organizer/pkg/organizer/lang"
	"member-organizer/pkg/organizer/parser"
)

// ErrSyntax marks a file that does not parse; the file is left untouched.
var ErrSyntax = parser.ErrSyntax

// ErrUnsupportedFile marks a path the organizer does not handle.
var ErrUnsupportedFile = errors.New("unsupported file")

// ErrConfigInvalid marks a configuration file that cannot be read.
var ErrConfigInvalid = errors.New("invalid configuration")

var errorUnsupportedFileFmt = "%w: %s"
var errorConfigInvalidFmt = "%w: %s: %v"
var errorInvalidParamFmt = "invalid params: %s %v"

func NewUnsupportedFileErr(path string) error {
	return fmt.Errorf(errorUnsupportedFileFmt, ErrUnsupportedFile, path)
}

func NewConfigInvalidErr(path string, cause error) error {
	return fmt.Errorf(errorConfigInvalidFmt, ErrConfigInvalid, path, cause)
}

func NewInvalidParamErr(name string, value interface{}) error {
	return fmt.Errorf(errorInvalidParamFmt, name, value)
}

// IsUnsupportedFile reports file-level errors that mean "skip", not "fail".
func IsUnsupportedFile(err error) bool {
	return errors.Is(err, ErrUnsupportedFile) || lang.IsUnSupportedFileError(err)
}

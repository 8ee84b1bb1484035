// Package errs defines the errors reported when a module path cannot be resolved.
//
// Every error carries a short top level message meant for the user and an ordered index of notes
// (category -> messages) meant for whoever has to reproduce the problem. Notes are only ever appended.
package errs

import (
	"fmt"
	"io"
	"path"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// MaxMessageLength caps the top level message
const MaxMessageLength = 250

// Error represents a resolution failure
type Error struct {
	kind       Kind
	message    string
	module     string
	path       string
	categories []string
	notes      map[string][]string
	cause      error
	origin     error // carries the stack captured at construction
}

func newError(kind Kind, message string, cause error) *Error {
	message = truncate(message, MaxMessageLength)
	return &Error{
		kind:    kind,
		message: message,
		cause:   cause,
		notes:   map[string][]string{},
		origin:  errors.New(message),
	}
}

// Error returns the top level message
func (e *Error) Error() string {
	return e.message
}

// Kind returns the failure kind
func (e *Error) Kind() Kind {
	return e.kind
}

// Message returns the top level message
func (e *Error) Message() string {
	return e.message
}

// Module returns the module name that could not be found, if any
func (e *Error) Module() string {
	return e.module
}

// Path returns the file path that could not be processed, if any
func (e *Error) Path() string {
	return e.path
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.cause
}

// Categories returns note categories in the order they were first attached
func (e *Error) Categories() []string {
	return append([]string{}, e.categories...)
}

// Notes returns notes recorded under category in attachment order
func (e *Error) Notes(category string) []string {
	return append([]string{}, e.notes[category]...)
}

// AddNote appends notes under category; existing notes are kept
func (e *Error) AddNote(category string, notes ...string) *Error {
	if len(notes) == 0 {
		return e
	}
	if _, ok := e.notes[category]; !ok {
		e.categories = append(e.categories, category)
	}
	e.notes[category] = append(e.notes[category], notes...)
	return e
}

// StackTrace returns the stack captured when the error was created
func (e *Error) StackTrace() errors.StackTrace {
	if tracer, ok := e.origin.(interface{ StackTrace() errors.StackTrace }); ok {
		return tracer.StackTrace()
	}
	return nil
}

// Format supports %s, %v, %q and %+v (message, notes and stack)
func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		if s.Flag('+') {
			_, _ = io.WriteString(s, e.kind.String()+": "+e.message)
			for _, category := range e.categories {
				for _, note := range e.notes[category] {
					_, _ = fmt.Fprintf(s, "\n  %s: %s", category, note)
				}
			}
			if trace := e.StackTrace(); trace != nil {
				_, _ = fmt.Fprintf(s, "%+v", trace)
			}
			return
		}
		fallthrough
	case 's':
		_, _ = io.WriteString(s, e.message)
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.message)
	}
}

// As returns err as *Error when it is, or wraps, one
func As(err error) (*Error, bool) {
	var target *Error
	if errors.As(err, &target) {
		return target, true
	}
	return nil, false
}

// IsKind returns true if err is, or wraps, an *Error of the given kind
func IsKind(err error, kind Kind) bool {
	e, ok := As(err)
	return ok && e.kind == kind
}

func truncate(text string, limit int) string {
	if utf8.RuneCountInString(text) <= limit {
		return text
	}
	runes := []rune(text)
	return string(runes[:limit-3]) + "..."
}

// Note categories
const (
	NoteSourcePath       = "source path"
	NoteModulePath       = "module path"
	NoteRemainingPath    = "remaining module path"
	NotePackage          = "package"
	NotePackageName      = "package name"
	NoteFile             = "file"
	NoteCurrentDirectory = "current directory"
	NoteCandidate        = "candidate"
	NoteFileError        = "file error"
	NoteFileErrorTrace   = "file error backtrace"
	NoteHelp             = "help"
)

// NewGeneric returns a placeholder error; prefer a dedicated kind
func NewGeneric() *Error {
	return newError(Generic, "An error has occurred.", nil)
}

// NewEntryFileUnreadable reports that the package entry file could not be processed
func NewEntryFileUnreadable(location string, cause error) *Error {
	ret := newError(EntryFileUnreadable, fmt.Sprintf("Could not process entry file `%s`.", path.Base(location)), cause)
	ret.path = location
	return ret.withFileError(cause)
}

// NewFileUnreadable reports that a source file could not be processed
func NewFileUnreadable(path string, cause error) *Error {
	ret := newError(FileUnreadable, fmt.Sprintf("Could not process `%s` in source path.", path), cause)
	ret.path = path
	return ret.withFileError(cause)
}

// NewModuleNotFoundInScope reports a module missing from the scanned scope
func NewModuleNotFoundInScope(module string) *Error {
	ret := newError(ModuleNotFoundInScope, fmt.Sprintf("Could not find module `%s` in scope.", module), nil)
	ret.module = module
	return ret
}

// NewModuleNotFoundInFile reports a module missing from a source file or inline block
func NewModuleNotFoundInFile(module, file string) *Error {
	ret := newError(ModuleNotFoundInFile, fmt.Sprintf("Could not find module `%s` in source file.", module), nil)
	ret.module = module
	ret.path = file
	return ret.AddNote(NoteFile, file)
}

// NewModulePathUnresolved reports that no layout form matched in directory
func NewModulePathUnresolved(directory string, candidates ...string) *Error {
	ret := newError(ModulePathUnresolved, "Module path does not map to any known module. "+
		"Using the source path, manually validate that the module you are looking for exists.", nil)
	ret.path = directory
	ret.AddNote(NoteCurrentDirectory, directory)
	return ret.AddNote(NoteCandidate, candidates...)
}

// NewInvalidPackageName reports that name is not a resolvable dependency
func NewInvalidPackageName(name string, cause error) *Error {
	ret := newError(InvalidPackageName, "Invalid crate name.", cause)
	ret.AddNote(NotePackageName, fmt.Sprintf("crate name: `%s`", name))
	if cause != nil {
		ret.AddNote(NoteFileError, cause.Error())
	}
	return ret.AddNote(NoteHelp,
		fmt.Sprintf("try including this cargo crate using `cargo add %s`", name),
		fmt.Sprintf("or include the cargo crate by following the directions on crates.io: https://crates.io/crates/%s", name))
}

// NewInvalidModulePath reports a module path that is not a `::` separated list of identifiers
func NewInvalidModulePath(path string, cause error) *Error {
	ret := newError(Generic, "Invalid module path.", cause)
	ret.AddNote(NoteModulePath, path)
	if cause != nil {
		ret.AddNote(NoteFileError, cause.Error())
	}
	return ret
}

func (e *Error) withFileError(cause error) *Error {
	if cause == nil {
		return e
	}
	e.AddNote(NoteFileError, cause.Error())
	return e.AddNote(NoteFileErrorTrace, fmt.Sprintf("%+v", cause))
}

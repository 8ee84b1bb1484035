package errs_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/cratepath/errs"
)

func TestError_AddNote(t *testing.T) {
	err := errs.NewModuleNotFoundInScope("foo")
	err.AddNote(errs.NoteCurrentDirectory, "/example/src")
	err.AddNote(errs.NoteSourcePath, "/example")
	err.AddNote(errs.NoteCurrentDirectory, "/example/src/foo")
	err.AddNote(errs.NoteHelp)

	assert.Equal(t, []string{errs.NoteCurrentDirectory, errs.NoteSourcePath}, err.Categories())
	assert.Equal(t, []string{"/example/src", "/example/src/foo"}, err.Notes(errs.NoteCurrentDirectory))
	assert.Equal(t, []string{"/example"}, err.Notes(errs.NoteSourcePath))
	assert.Empty(t, err.Notes(errs.NoteHelp))

	notes := err.Notes(errs.NoteSourcePath)
	notes[0] = "changed"
	assert.Equal(t, []string{"/example"}, err.Notes(errs.NoteSourcePath))
}

func TestConstructors(t *testing.T) {
	cause := errors.New("no such file")
	tests := []struct {
		name        string
		err         *errs.Error
		kind        errs.Kind
		module      string
		path        string
		message     string
		categories  []string
		expectCause bool
	}{
		{
			name:        "entry file",
			err:         errs.NewEntryFileUnreadable("/example/src/lib.rs", cause),
			kind:        errs.EntryFileUnreadable,
			path:        "/example/src/lib.rs",
			message:     "Could not process entry file `lib.rs`.",
			categories:  []string{errs.NoteFileError, errs.NoteFileErrorTrace},
			expectCause: true,
		},
		{
			name:        "file",
			err:         errs.NewFileUnreadable("/example/src/foo.rs", cause),
			kind:        errs.FileUnreadable,
			path:        "/example/src/foo.rs",
			message:     "Could not process `/example/src/foo.rs` in source path.",
			categories:  []string{errs.NoteFileError, errs.NoteFileErrorTrace},
			expectCause: true,
		},
		{
			name:    "module in scope",
			err:     errs.NewModuleNotFoundInScope("foo"),
			kind:    errs.ModuleNotFoundInScope,
			module:  "foo",
			message: "Could not find module `foo` in scope.",
		},
		{
			name:       "module in file",
			err:        errs.NewModuleNotFoundInFile("bar", "/example/src/foo.rs"),
			kind:       errs.ModuleNotFoundInFile,
			module:     "bar",
			path:       "/example/src/foo.rs",
			message:    "Could not find module `bar` in source file.",
			categories: []string{errs.NoteFile},
		},
		{
			name:       "unresolved",
			err:        errs.NewModulePathUnresolved("/example/src", "/example/src/foo.rs", "/example/src/foo/mod.rs"),
			kind:       errs.ModulePathUnresolved,
			path:       "/example/src",
			categories: []string{errs.NoteCurrentDirectory, errs.NoteCandidate},
		},
		{
			name:       "package",
			err:        errs.NewInvalidPackageName("serde", nil),
			kind:       errs.InvalidPackageName,
			message:    "Invalid crate name.",
			categories: []string{errs.NotePackageName, errs.NoteHelp},
		},
		{
			name:    "generic",
			err:     errs.NewGeneric(),
			kind:    errs.Generic,
			message: "An error has occurred.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.kind, tc.err.Kind())
			assert.Equal(t, tc.module, tc.err.Module())
			assert.Equal(t, tc.path, tc.err.Path())
			if tc.message != "" {
				assert.Equal(t, tc.message, tc.err.Error())
			}
			if tc.categories == nil {
				tc.categories = []string{}
			}
			assert.Equal(t, tc.categories, tc.err.Categories())
			if tc.expectCause {
				assert.True(t, errors.Is(tc.err, cause))
			}
			assert.NotNil(t, tc.err.StackTrace())
		})
	}
}

func TestInvalidPackageName_Help(t *testing.T) {
	err := errs.NewInvalidPackageName("serde", nil)
	help := err.Notes(errs.NoteHelp)
	require.Len(t, help, 2)
	assert.Contains(t, help[0], "cargo add serde")
	assert.Contains(t, help[1], "https://crates.io/crates/serde")
}

func TestInvalidModulePath(t *testing.T) {
	cause := fmt.Errorf("segment 1 %q is not an identifier", "1x")
	err := errs.NewInvalidModulePath("foo::1x", cause)
	assert.Equal(t, errs.Generic, err.Kind())
	assert.Equal(t, []string{errs.NoteModulePath, errs.NoteFileError}, err.Categories())
	assert.Equal(t, []string{"foo::1x"}, err.Notes(errs.NoteModulePath))
	assert.Equal(t, cause, err.Unwrap())
}

func TestMessageLimit(t *testing.T) {
	err := errs.NewModuleNotFoundInScope(strings.Repeat("m", 400))
	assert.LessOrEqual(t, len([]rune(err.Error())), errs.MaxMessageLength)
	assert.True(t, strings.HasSuffix(err.Error(), "..."))
	assert.Len(t, err.Module(), 400)
}

func TestAsAndIsKind(t *testing.T) {
	err := errs.NewModuleNotFoundInFile("bar", "lib.rs")
	wrapped := fmt.Errorf("query failed: %w", err)

	actual, ok := errs.As(wrapped)
	require.True(t, ok)
	assert.Equal(t, "bar", actual.Module())
	assert.True(t, errs.IsKind(wrapped, errs.ModuleNotFoundInFile))
	assert.False(t, errs.IsKind(wrapped, errs.ModuleNotFoundInScope))
	assert.False(t, errs.IsKind(errors.New("plain"), errs.Generic))
}

func TestFormat(t *testing.T) {
	err := errs.NewModuleNotFoundInScope("foo").AddNote(errs.NoteSourcePath, "/example")
	assert.Equal(t, "Could not find module `foo` in scope.", fmt.Sprintf("%v", err))
	verbose := fmt.Sprintf("%+v", err)
	assert.Contains(t, verbose, "ModuleNotFoundInScope: Could not find module `foo` in scope.")
	assert.Contains(t, verbose, "source path: /example")
	assert.Contains(t, verbose, "errs.NewModuleNotFoundInScope")
}

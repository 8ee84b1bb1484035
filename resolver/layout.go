package resolver

import (
	"context"

	"github.com/viant/cratepath/inspector/graph"
	"github.com/viant/cratepath/inspector/repository"
	"github.com/viant/cratepath/modpath"
)

// Loader loads and parses source files
type Loader interface {
	// InspectFile returns the parsed file; a missing file is reported with graph.ErrFileNotFound
	InspectFile(ctx context.Context, URL string) (*graph.File, error)
	Exists(ctx context.Context, URL string) (bool, error)
}

// Layout describes where a package keeps its sources
type Layout struct {
	SourceDir string `yaml:"sourceDir"`
	EntryFile string `yaml:"entryFile"`
	IndexFile string `yaml:"indexFile"`
	Extension string `yaml:"extension"`
	// EntryPath is a package root relative entry file, e.g. [lib] path; overrides SourceDir and EntryFile
	EntryPath string `yaml:"entryPath"`
}

// DefaultLayout returns the Cargo library layout
func DefaultLayout() Layout {
	return Layout{
		SourceDir: "src",
		EntryFile: "lib.rs",
		IndexFile: "mod.rs",
		Extension: ".rs",
	}
}

// Init fills unset fields with defaults
func (l *Layout) Init() {
	defaults := DefaultLayout()
	if l.SourceDir == "" {
		l.SourceDir = defaults.SourceDir
	}
	if l.EntryFile == "" {
		l.EntryFile = defaults.EntryFile
	}
	if l.IndexFile == "" {
		l.IndexFile = defaults.IndexFile
	}
	if l.Extension == "" {
		l.Extension = defaults.Extension
	}
}

// EntryURL returns the entry file location for packageRoot
func (l *Layout) EntryURL(packageRoot string) string {
	if l.EntryPath != "" {
		return repository.JoinPath(packageRoot, l.EntryPath)
	}
	return repository.JoinPath(packageRoot, l.SourceDir+"/"+l.EntryFile)
}

// SiblingURL returns the file beside the current scope implementing module name
func (l *Layout) SiblingURL(directory, name string) string {
	return repository.JoinPath(directory, name+l.Extension)
}

// IndexURL returns the index file of the module subdirectory
func (l *Layout) IndexURL(directory, name string) string {
	return repository.JoinPath(directory, name+"/"+l.IndexFile)
}

// ResolutionContext represents the state of one resolution branch
type ResolutionContext struct {
	PackageRoot string
	Directory   string // directory holding child modules of the current scope
	Path        *modpath.Path
}

// WithDirectory returns a context for directory with an independent copy of the cursor
func (c ResolutionContext) WithDirectory(directory string) ResolutionContext {
	return ResolutionContext{
		PackageRoot: c.PackageRoot,
		Directory:   directory,
		Path:        c.Path.Clone(),
	}
}

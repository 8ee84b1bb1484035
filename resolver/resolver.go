// Package resolver maps a module path onto the declarations of a Rust package.
//
// Resolution runs as a state machine over the scopes a module can live in: the entry file,
// an inline block, a file beside its parent, or the index file of a subdirectory.
// Every hop consumes one path segment.
package resolver

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/viant/cratepath/errs"
	"github.com/viant/cratepath/inspector/graph"
	"github.com/viant/cratepath/inspector/repository"
	"github.com/viant/cratepath/modpath"
)

// Resolver resolves module paths within a package
type Resolver struct {
	loader Loader
	layout Layout
	logger *log.Logger
}

// Option represents resolver option
type Option func(r *Resolver)

// WithLayout sets the source layout
func WithLayout(layout Layout) Option {
	return func(r *Resolver) {
		r.layout = layout
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(r *Resolver) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// New creates a resolver reading sources with loader
func New(loader Loader, options ...Option) *Resolver {
	ret := &Resolver{
		loader: loader,
		layout: DefaultLayout(),
		logger: log.New(io.Discard),
	}
	for _, opt := range options {
		opt(ret)
	}
	ret.layout.Init()
	return ret
}

// Resolve returns the items of the module addressed by path; the caller's cursor is not advanced
func (r *Resolver) Resolve(ctx context.Context, packageRoot string, path *modpath.Path) ([]*graph.Item, error) {
	result, err := r.Trace(ctx, packageRoot, path)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Trace resolves path and returns the visited scopes with any diagnostics; result is set even on failure
func (r *Resolver) Trace(ctx context.Context, packageRoot string, path *modpath.Path) (*Result, error) {
	if path == nil {
		path = modpath.New()
	}
	result := &Result{}
	entryURL := r.layout.EntryURL(packageRoot)
	resolution := ResolutionContext{
		PackageRoot: packageRoot,
		Directory:   repository.ParentPath(entryURL),
		Path:        path.Clone(),
	}
	current := resolution
	items, err := r.run(ctx, entryURL, &current, result)
	for _, diagnostic := range result.Diagnostics {
		r.logger.Warn(diagnostic.Message, "file", diagnostic.File)
	}
	if err != nil {
		if resolutionErr, ok := errs.As(err); ok {
			resolutionErr.AddNote(errs.NoteSourcePath, resolution.Directory)
			resolutionErr.AddNote(errs.NoteRemainingPath, current.Path.String())
		}
		r.logger.Debug("resolution failed", "root", packageRoot, "path", path.String(), "error", err)
		return result, err
	}
	result.Items = items
	return result, nil
}

// run drives transitions from the entry file; current tracks the context of the active scope
func (r *Resolver) run(ctx context.Context, entryURL string, current *ResolutionContext, result *Result) ([]*graph.Item, error) {
	entry, err := r.loader.InspectFile(ctx, entryURL)
	if err != nil {
		return nil, errs.NewEntryFileUnreadable(entryURL, err)
	}
	active := &scope{state: AtEntryFile, file: entryURL, items: entry.Items, context: *current}
	r.visit(active, "", result)
	for {
		next, items, err := r.transition(ctx, active, result)
		*current = active.context
		if err != nil {
			return nil, err
		}
		if next == nil {
			return items, nil
		}
		module, _ := active.context.Path.Current()
		r.visit(next, module, result)
		active = next
	}
}

func (r *Resolver) visit(aScope *scope, module string, result *Result) {
	result.Steps = append(result.Steps, &Step{
		State:     aScope.state,
		Module:    module,
		File:      aScope.file,
		Directory: aScope.context.Directory,
	})
	r.logger.Debug("scope", "state", aScope.state, "module", module, "file", aScope.file)
}

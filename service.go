// Package cratepath resolves Rust module paths such as `crate::a::b` to the declarations they contain,
// either in the package being analyzed or in one of its dependencies.
package cratepath

import (
	"context"
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"github.com/viant/cratepath/errs"
	"github.com/viant/cratepath/inspector/graph"
	"github.com/viant/cratepath/inspector/repository"
	"github.com/viant/cratepath/inspector/rust"
	"github.com/viant/cratepath/modpath"
	"github.com/viant/cratepath/resolver"
)

// Service answers module queries
type Service struct {
	config  *Config
	fs      afs.Service
	loader  resolver.Loader
	locator *repository.Locator
	logger  *log.Logger
}

// Option represents service option
type Option func(s *Service)

// WithFileSystem sets the file system used for manifests and sources
func WithFileSystem(fs afs.Service) Option {
	return func(s *Service) {
		s.fs = fs
	}
}

// WithLoader sets the source loader
func WithLoader(loader resolver.Loader) Option {
	return func(s *Service) {
		s.loader = loader
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New creates a query service
func New(config *Config, options ...Option) (*Service, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Init(); err != nil {
		return nil, err
	}
	ret := &Service{config: config}
	for _, opt := range options {
		opt(ret)
	}
	if ret.logger == nil {
		level, err := log.ParseLevel(config.LogLevel)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid log level: %v", config.LogLevel)
		}
		ret.logger = log.NewWithOptions(os.Stderr, log.Options{Prefix: "cratepath", Level: level})
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	if ret.loader == nil {
		ret.loader = rust.NewInspector(&rust.Config{StrictSyntax: config.StrictSyntax}, rust.WithFileSystem(ret.fs))
	}
	ret.locator = repository.NewLocator(
		repository.WithFileSystem(ret.fs),
		repository.WithCargoHome(config.CargoHome),
		repository.WithLogger(ret.logger))
	return ret, nil
}

// GetModule returns the items of the module addressed by modulePath within pkg
func (s *Service) GetModule(ctx context.Context, flags Flags, pkg Package, modulePath string) ([]*graph.Item, error) {
	result, err := s.Query(ctx, flags, pkg, modulePath)
	if err != nil {
		return nil, err
	}
	return result.Items, nil
}

// Query is GetModule returning the visited scopes and diagnostics as well
func (s *Service) Query(ctx context.Context, flags Flags, pkg Package, modulePath string) (*resolver.Result, error) {
	path, err := modpath.Parse(modulePath)
	if err != nil {
		return nil, errs.NewInvalidModulePath(modulePath, err).AddNote(errs.NotePackage, pkg.String())
	}
	root, err := s.packageRoot(ctx, pkg)
	if err != nil {
		if resolutionErr, ok := errs.As(err); ok {
			resolutionErr.AddNote(errs.NotePackage, pkg.String())
			resolutionErr.AddNote(errs.NoteModulePath, modulePath)
		}
		return nil, err
	}
	aResolver := resolver.New(s.loader, resolver.WithLayout(s.layout(ctx, root)), resolver.WithLogger(s.logger))
	result, err := aResolver.Trace(ctx, root, path)
	if err != nil {
		if resolutionErr, ok := errs.As(err); ok {
			resolutionErr.AddNote(errs.NotePackage, pkg.String())
			resolutionErr.AddNote(errs.NoteModulePath, modulePath)
		}
		return result, err
	}
	result.Items = filterItems(flags, pkg, result.Items)
	s.logger.Debug("module resolved", "package", pkg, "path", modulePath, "items", len(result.Items))
	return result, nil
}

func (s *Service) packageRoot(ctx context.Context, pkg Package) (string, error) {
	if pkg.IsInternal() {
		return s.config.ManifestDir, nil
	}
	root, err := s.locator.Locate(ctx, s.config.ManifestDir, pkg.Name())
	if err != nil {
		return "", errs.NewInvalidPackageName(pkg.Name(), err)
	}
	return root, nil
}

// layout honours [lib] path of the package manifest
func (s *Service) layout(ctx context.Context, root string) resolver.Layout {
	layout := s.config.Layout()
	manifest, err := repository.LoadManifest(ctx, s.fs, url.Join(root, repository.ManifestFile))
	if err != nil {
		s.logger.Debug("manifest unavailable, using default layout", "root", root, "error", err)
		return layout
	}
	layout.EntryPath = manifest.LibPath()
	return layout
}

func filterItems(flags Flags, pkg Package, items []*graph.Item) []*graph.Item {
	if !flags.Has(ExcludePrivate) {
		return items
	}
	result := make([]*graph.Item, 0, len(items))
	for _, item := range items {
		if !item.HasVisibility() || isVisible(item, pkg) {
			result = append(result, item)
		}
	}
	return result
}

// isVisible returns true if the item can be referenced from the querying package
func isVisible(item *graph.Item, pkg Package) bool {
	if pkg.IsInternal() {
		return item.IsCrateVisible()
	}
	return item.IsPublic()
}

// GetModule resolves modulePath with a service configured from the environment
func GetModule(ctx context.Context, flags Flags, pkg Package, modulePath string) ([]*graph.Item, error) {
	srv, err := New(nil)
	if err != nil {
		return nil, errs.NewGeneric().
			AddNote(errs.NoteFileError, err.Error()).
			AddNote(errs.NotePackage, pkg.String()).
			AddNote(errs.NoteModulePath, modulePath)
	}
	return srv.GetModule(ctx, flags, pkg, modulePath)
}

package repository

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/viant/afs"
	"github.com/viant/afs/url"
	"golang.org/x/mod/semver"
)

var (
	// ErrPackageNotDeclared is returned when a package is not a dependency of the manifest
	ErrPackageNotDeclared = errors.New("package is not declared as a dependency")
	// ErrPackageNotFound is returned when a declared package has no local sources
	ErrPackageNotFound = errors.New("package sources not found")
)

// Locator finds the root directory of dependency packages
type Locator struct {
	fs        afs.Service
	cargoHome string
	logger    *log.Logger
}

// LocatorOption represents a locator option
type LocatorOption func(l *Locator)

// WithFileSystem sets the file system used to read manifests and list the registry
func WithFileSystem(fs afs.Service) LocatorOption {
	return func(l *Locator) {
		l.fs = fs
	}
}

// WithCargoHome sets the cargo home holding registry/src
func WithCargoHome(home string) LocatorOption {
	return func(l *Locator) {
		if home != "" {
			l.cargoHome = home
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *log.Logger) LocatorOption {
	return func(l *Locator) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// NewLocator creates a dependency locator
func NewLocator(options ...LocatorOption) *Locator {
	ret := &Locator{
		fs:        afs.New(),
		cargoHome: DefaultCargoHome(),
		logger:    log.New(io.Discard),
	}
	for _, opt := range options {
		opt(ret)
	}
	return ret
}

// DefaultCargoHome returns $CARGO_HOME or ~/.cargo
func DefaultCargoHome() string {
	if home := os.Getenv("CARGO_HOME"); home != "" {
		return home
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".cargo")
	}
	return ".cargo"
}

// Locate returns the root directory of the named dependency of the package at manifestDir
func (l *Locator) Locate(ctx context.Context, manifestDir, name string) (string, error) {
	manifest, err := LoadManifest(ctx, l.fs, url.Join(manifestDir, ManifestFile))
	if err != nil {
		return "", err
	}
	dependency := manifest.Dependency(name)
	if dependency == nil {
		return "", errors.Wrapf(ErrPackageNotDeclared, "%v in %v", name, manifestDir)
	}
	if dependency.Path != "" {
		root := JoinPath(manifestDir, dependency.Path)
		l.logger.Debug("path dependency", "name", name, "root", root)
		return root, nil
	}
	if dependency.Git != "" {
		return "", errors.Wrapf(ErrPackageNotFound, "%v: git dependencies are not supported", name)
	}
	version := l.lockedVersion(ctx, manifestDir, dependency.Package)
	root, err := l.registrySource(ctx, dependency.Package, version)
	if err != nil {
		return "", err
	}
	l.logger.Debug("registry dependency", "name", name, "version", version, "root", root)
	return root, nil
}

func (l *Locator) lockedVersion(ctx context.Context, manifestDir, pkg string) string {
	lockfile, err := LoadLockfile(ctx, l.fs, url.Join(manifestDir, LockFile))
	if err != nil {
		l.logger.Debug("lockfile unavailable", "dir", manifestDir, "error", err)
		return ""
	}
	versions := lockfile.Versions(pkg)
	if len(versions) == 0 {
		return ""
	}
	return highestVersion(versions)
}

func (l *Locator) registrySource(ctx context.Context, pkg, version string) (string, error) {
	registry := url.Join(l.cargoHome, "registry/src")
	indexes, err := l.fs.List(ctx, registry)
	if err != nil {
		return "", errors.Wrapf(ErrPackageNotFound, "%v: %v", pkg, err)
	}
	best, bestVersion := "", ""
	for _, index := range indexes {
		if !index.IsDir() || sameLocation(index.URL(), registry) {
			continue
		}
		candidates, err := l.fs.List(ctx, index.URL())
		if err != nil {
			continue
		}
		for _, candidate := range candidates {
			if !candidate.IsDir() || sameLocation(candidate.URL(), index.URL()) {
				continue
			}
			candidateVersion, ok := crateVersion(candidate.Name(), pkg)
			if !ok {
				continue
			}
			if version != "" {
				if candidateVersion == version {
					return candidate.URL(), nil
				}
				continue
			}
			if best == "" || semver.Compare("v"+candidateVersion, "v"+bestVersion) > 0 {
				best, bestVersion = candidate.URL(), candidateVersion
			}
		}
	}
	if best == "" {
		if version != "" {
			return "", errors.Wrapf(ErrPackageNotFound, "%v-%v under %v", pkg, version, registry)
		}
		return "", errors.Wrapf(ErrPackageNotFound, "%v under %v", pkg, registry)
	}
	return best, nil
}

// crateVersion extracts the version from a registry directory name such as serde-1.0.197
func crateVersion(dirName, pkg string) (string, bool) {
	prefix := pkg + "-"
	if !strings.HasPrefix(dirName, prefix) {
		return "", false
	}
	version := dirName[len(prefix):]
	if !semver.IsValid("v" + version) {
		return "", false
	}
	return version, true
}

func highestVersion(versions []string) string {
	best := ""
	for _, version := range versions {
		if best == "" || semver.Compare("v"+version, "v"+best) > 0 {
			best = version
		}
	}
	return best
}

func sameLocation(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}

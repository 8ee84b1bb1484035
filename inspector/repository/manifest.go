package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/viant/afs"
)

// Dependency kinds
const (
	DependencyNormal = "normal"
	DependencyDev    = "dev"
	DependencyBuild  = "build"
)

// Manifest represents the parts of Cargo.toml needed to locate package sources
type Manifest struct {
	Package           PackageInfo    `toml:"package"`
	Lib               *Target        `toml:"lib"`
	Workspace         *Workspace     `toml:"workspace"`
	Dependencies      map[string]any `toml:"dependencies"`
	DevDependencies   map[string]any `toml:"dev-dependencies"`
	BuildDependencies map[string]any `toml:"build-dependencies"`
}

// PackageInfo represents the [package] table; version can be inherited from the workspace
type PackageInfo struct {
	Name    string `toml:"name"`
	Version any    `toml:"version"`
}

// Target represents a [lib] or [[bin]] table
type Target struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Workspace represents the [workspace] table
type Workspace struct {
	Members []string `toml:"members"`
}

// Dependency represents a normalized dependency declaration
type Dependency struct {
	Name      string // Name used in code, i.e. the manifest key
	Package   string // Actual package name, differs from Name when renamed
	Version   string
	Path      string
	Git       string
	Workspace bool
	Kind      string
}

// LoadManifest loads Cargo.toml from URL
func LoadManifest(ctx context.Context, fs afs.Service, URL string) (*Manifest, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load manifest: %v", URL)
	}
	return ParseManifest(data, URL)
}

// ParseManifest parses Cargo.toml content
func ParseManifest(data []byte, URL string) (*Manifest, error) {
	manifest := &Manifest{}
	if err := toml.Unmarshal(data, manifest); err != nil {
		return nil, errors.Wrapf(err, "failed to parse manifest: %v", URL)
	}
	return manifest, nil
}

// VersionString returns the package version unless inherited from the workspace
func (p PackageInfo) VersionString() string {
	if version, ok := p.Version.(string); ok {
		return version
	}
	return ""
}

// LibPath returns the [lib] path when set
func (m *Manifest) LibPath() string {
	if m.Lib == nil {
		return ""
	}
	return m.Lib.Path
}

// AllDependencies returns normal, dev and build dependencies, each group ordered by name
func (m *Manifest) AllDependencies() []*Dependency {
	var result []*Dependency
	groups := []struct {
		kind string
		deps map[string]any
	}{
		{DependencyNormal, m.Dependencies},
		{DependencyDev, m.DevDependencies},
		{DependencyBuild, m.BuildDependencies},
	}
	for _, group := range groups {
		keys := make([]string, 0, len(group.deps))
		for key := range group.deps {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			result = append(result, newDependency(key, group.kind, group.deps[key]))
		}
	}
	return result
}

// Dependency returns the dependency declared under name; `-` and `_` are treated as equal
func (m *Manifest) Dependency(name string) *Dependency {
	wanted := NormalizeName(name)
	for _, dependency := range m.AllDependencies() {
		if NormalizeName(dependency.Name) == wanted {
			return dependency
		}
	}
	return nil
}

// NormalizeName returns the crate name as used in Rust code
func NormalizeName(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func newDependency(name, kind string, value any) *Dependency {
	ret := &Dependency{Name: name, Package: name, Kind: kind}
	switch actual := value.(type) {
	case string:
		ret.Version = actual
	case map[string]any:
		ret.Version = stringValue(actual["version"])
		ret.Path = stringValue(actual["path"])
		ret.Git = stringValue(actual["git"])
		if pkg := stringValue(actual["package"]); pkg != "" {
			ret.Package = pkg
		}
		if workspace, ok := actual["workspace"].(bool); ok {
			ret.Workspace = workspace
		}
	}
	return ret
}

func stringValue(value any) string {
	switch actual := value.(type) {
	case nil:
		return ""
	case string:
		return actual
	default:
		return fmt.Sprintf("%v", actual)
	}
}

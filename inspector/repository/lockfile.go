package repository

import (
	"context"

	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"
	"github.com/viant/afs"
)

// Lockfile represents Cargo.lock
type Lockfile struct {
	Version  int              `toml:"version"`
	Packages []*LockedPackage `toml:"package"`
}

// LockedPackage represents a [[package]] entry of Cargo.lock
type LockedPackage struct {
	Name    string `toml:"name"`
	Version string `toml:"version"`
	Source  string `toml:"source"`
}

// LoadLockfile loads Cargo.lock from URL
func LoadLockfile(ctx context.Context, fs afs.Service, URL string) (*Lockfile, error) {
	data, err := fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load lockfile: %v", URL)
	}
	lockfile := &Lockfile{}
	if err = toml.Unmarshal(data, lockfile); err != nil {
		return nil, errors.Wrapf(err, "failed to parse lockfile: %v", URL)
	}
	return lockfile, nil
}

// Versions returns versions locked for the named package in file order
func (l *Lockfile) Versions(name string) []string {
	var result []string
	for _, pkg := range l.Packages {
		if pkg.Name == name {
			result = append(result, pkg.Version)
		}
	}
	return result
}

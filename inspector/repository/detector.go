package repository

import (
	"context"
	"os"
	"path/filepath"

	"github.com/viant/afs"
)

const (
	// ManifestFile is the Cargo package manifest
	ManifestFile = "Cargo.toml"
	// LockFile is the Cargo lock file
	LockFile = "Cargo.lock"
)

// Detector identifies Cargo package root folders
type Detector struct {
	markers []string
	fs      afs.Service
}

// New creates a new project detector instance
func New() *Detector {
	return &Detector{
		markers: []string{ManifestFile},
		fs:      afs.New(),
	}
}

// DetectProject identifies the package root for the given file path and returns project info
func (d *Detector) DetectProject(filePath string) (*Project, error) {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return nil, err
	}

	// If it's a file, start from its parent directory
	startDir := absPath
	fileInfo, err := os.Stat(absPath)
	if err != nil {
		return nil, err
	}
	if !fileInfo.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath := d.findProjectRoot(startDir)
	if rootPath == "" {
		return nil, os.ErrNotExist
	}
	info := &Project{
		Type:     "rust",
		RootPath: rootPath,
	}

	relPath, err := filepath.Rel(info.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	info.RelativePath = filepath.ToSlash(relPath)

	info.Name = filepath.Base(rootPath)
	if manifest, err := LoadManifest(context.Background(), d.fs, filepath.Join(rootPath, ManifestFile)); err == nil {
		info.Manifest = manifest
		if manifest.Package.Name != "" {
			info.Name = manifest.Package.Name
		}
	}
	return info, nil
}

// findProjectRoot searches up from the current directory for project markers
func (d *Detector) findProjectRoot(startDir string) string {
	dir := startDir
	for {
		for _, marker := range d.markers {
			markerPath := filepath.Join(dir, marker)
			if _, err := os.Stat(markerPath); err == nil {
				return dir
			}
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// We've reached the filesystem root with no match
			break
		}
		dir = parent
	}
	return ""
}

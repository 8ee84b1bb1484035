package repository

// Project represents information about a detected Cargo package
type Project struct {
	RootPath     string // Absolute path to the package root directory (the one holding Cargo.toml)
	Type         string // Type of project, "rust" for Cargo packages
	Name         string // Name of the package (extracted from Cargo.toml)
	RelativePath string // Path from project root to the specified file
	Manifest     *Manifest
}

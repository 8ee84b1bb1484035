package cratepath

// Package identifies the package a module path is resolved in
type Package struct {
	name     string
	external bool
}

// Internal refers to the package being analyzed
func Internal() Package {
	return Package{}
}

// External refers to a dependency declared in the analyzed package manifest
func External(name string) Package {
	return Package{name: name, external: true}
}

// IsInternal returns true for the analyzed package
func (p Package) IsInternal() bool {
	return !p.external
}

// Name returns the dependency name, empty for the internal package
func (p Package) Name() string {
	return p.name
}

func (p Package) String() string {
	if p.IsInternal() {
		return "crate"
	}
	return p.name
}

package errs

import "fmt"

// Kind classifies resolution failures
type Kind int

const (
	// Generic is a placeholder for failures without a dedicated kind
	Generic Kind = iota
	// EntryFileUnreadable means the package entry file could not be loaded or parsed
	EntryFileUnreadable
	// FileUnreadable means a non entry source file could not be loaded or parsed
	FileUnreadable
	// ModuleNotFoundInScope means no module with the requested name exists in the scanned scope
	ModuleNotFoundInScope
	// ModuleNotFoundInFile means no module with the requested name exists in the scanned file or block
	ModuleNotFoundInFile
	// ModulePathUnresolved means none of the layout forms matched
	ModulePathUnresolved
	// InvalidPackageName means the requested package is not a resolvable dependency
	InvalidPackageName
)

var kindNames = map[Kind]string{
	Generic:               "Generic",
	EntryFileUnreadable:   "EntryFileUnreadable",
	FileUnreadable:        "FileUnreadable",
	ModuleNotFoundInScope: "ModuleNotFoundInScope",
	ModuleNotFoundInFile:  "ModuleNotFoundInFile",
	ModulePathUnresolved:  "ModulePathUnresolved",
	InvalidPackageName:    "InvalidPackageName",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

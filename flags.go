package cratepath

import "strings"

// Flags represents query options
type Flags uint8

const (
	// ExcludePrivate drops items not visible to the querying package from the result
	ExcludePrivate Flags = 1 << iota
)

// DefaultFlags are used by GetModule callers without specific needs
const DefaultFlags = ExcludePrivate

// Has returns true if flag is set
func (f Flags) Has(flag Flags) bool {
	return f&flag == flag
}

func (f Flags) String() string {
	var names []string
	if f.Has(ExcludePrivate) {
		names = append(names, "EXCLUDE_PRIVATE")
	}
	return strings.Join(names, "|")
}

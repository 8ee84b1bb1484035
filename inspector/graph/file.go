package graph

// File represents a parsed Rust source file with its top level items
type File struct {
	Name       string   // File name
	Path       string   // File location (path or URL)
	Attributes []string // Inner attributes, e.g. #![allow(dead_code)]
	Items      []*Item  // Top level items in declaration order
}

// FindModule returns the first module declared with name in items and the number of matching declarations;
// raw identifiers match their plain spelling
func FindModule(items []*Item, name string) (*Item, int) {
	var found *Item
	count := 0
	for _, item := range items {
		if item == nil || !item.IsModule() || Identifier(item.Name) != Identifier(name) {
			continue
		}
		if found == nil {
			found = item
		}
		count++
	}
	return found, count
}

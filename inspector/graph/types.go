package graph

import (
	"regexp"
	"strings"
)

// Kind represents a declaration item kind
type Kind string

const (
	KindStruct      Kind = "struct"
	KindEnum        Kind = "enum"
	KindUnion       Kind = "union"
	KindFunction    Kind = "fn"
	KindModule      Kind = "mod"
	KindUse         Kind = "use"
	KindConst       Kind = "const"
	KindStatic      Kind = "static"
	KindTrait       Kind = "trait"
	KindImpl        Kind = "impl"
	KindTypeAlias   Kind = "type"
	KindMacroRules  Kind = "macro_rules"
	KindMacroCall   Kind = "macro"
	KindExternCrate Kind = "extern crate"
	KindForeignMod  Kind = "extern"
	KindOther       Kind = "other"
)

var pathAttributeExpr = regexp.MustCompile(`^#\[\s*path\s*=\s*"([^"]*)"\s*\]$`)

// Item represents a top level declaration: struct, enum, fn, mod, use, impl, ...
type Item struct {
	Kind       Kind      // Item kind
	Name       string    // Identifier, empty for unnamed items (use, impl target is kept here)
	Visibility string    // Visibility modifier as written: pub, pub(crate), ...
	Attributes []string  // Outer attributes, e.g. #[derive(Debug)]
	Inline     bool      // Module declared with a body: mod name { ... }
	Items      []*Item   // Inline module content
	Text       string    // Item source text
	NodeType   string    // Parser node type
	Location   *Location // Location of the item in the source file
	Hash       uint64    // Fingerprint of kind and text
}

// Identifier returns name without the raw identifier prefix, e.g. `type` for `r#type`
func Identifier(name string) string {
	return strings.TrimPrefix(name, "r#")
}

// IsModule returns true for module declarations
func (i *Item) IsModule() bool {
	return i.Kind == KindModule
}

// IsPublic returns true for items visible outside of their crate
func (i *Item) IsPublic() bool {
	return i.Visibility == "pub"
}

// IsCrateVisible returns true for items with any pub visibility, restricted ones included
func (i *Item) IsCrateVisible() bool {
	return strings.HasPrefix(i.Visibility, "pub")
}

// HasVisibility returns true if the item kind can carry a visibility modifier
func (i *Item) HasVisibility() bool {
	switch i.Kind {
	case KindImpl, KindMacroRules, KindMacroCall, KindForeignMod, KindOther:
		return false
	}
	return true
}

// PathAttribute returns the value of a #[path = "..."] attribute
func (i *Item) PathAttribute() (string, bool) {
	for _, attribute := range i.Attributes {
		if matches := pathAttributeExpr.FindStringSubmatch(strings.TrimSpace(attribute)); len(matches) == 2 {
			return matches[1], true
		}
	}
	return "", false
}

// Equivalent compares items ignoring their location
func (i *Item) Equivalent(other *Item) bool {
	if i == nil || other == nil {
		return i == other
	}
	if i.Kind != other.Kind || i.Name != other.Name || i.Visibility != other.Visibility ||
		i.Inline != other.Inline || i.Hash != other.Hash {
		return false
	}
	return EquivalentItems(i.Items, other.Items)
}

// EquivalentItems compares item lists element by element
func EquivalentItems(items, others []*Item) bool {
	if len(items) != len(others) {
		return false
	}
	for k := range items {
		if !items[k].Equivalent(others[k]) {
			return false
		}
	}
	return true
}

// Location represents item position in a source file
type Location struct {
	Start  uint32 // Start byte offset
	End    uint32 // End byte offset
	Line   int    // 1-based start line
	Column int    // 1-based start column
}

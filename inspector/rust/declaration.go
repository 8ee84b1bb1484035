package rust

import (
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/viant/cratepath/inspector/graph"
)

var itemKinds = map[string]graph.Kind{
	"struct_item":              graph.KindStruct,
	"enum_item":                graph.KindEnum,
	"union_item":               graph.KindUnion,
	"function_item":            graph.KindFunction,
	"function_signature_item":  graph.KindFunction,
	"mod_item":                 graph.KindModule,
	"use_declaration":          graph.KindUse,
	"const_item":               graph.KindConst,
	"static_item":              graph.KindStatic,
	"trait_item":               graph.KindTrait,
	"impl_item":                graph.KindImpl,
	"type_item":                graph.KindTypeAlias,
	"macro_definition":         graph.KindMacroRules,
	"macro_invocation":         graph.KindMacroCall,
	"extern_crate_declaration": graph.KindExternCrate,
	"foreign_mod_item":         graph.KindForeignMod,
}

// processItems maps the named children of a source_file or declaration_list node into items.
// Outer attributes are attached to the item that follows them; inner attributes are returned separately.
func processItems(node *sitter.Node, src []byte) ([]*graph.Item, []string) {
	var items []*graph.Item
	var inner []string
	var pending []string
	for j := 0; j < int(node.NamedChildCount()); j++ {
		childNode := node.NamedChild(j)
		switch childNode.Type() {
		case "line_comment", "block_comment", "empty_statement":
			continue
		case "attribute_item":
			pending = append(pending, childNode.Content(src))
			continue
		case "inner_attribute_item":
			inner = append(inner, childNode.Content(src))
			continue
		case "expression_statement":
			// top level macro calls such as `lazy_static! { ... }` may be wrapped in a statement
			if childNode.NamedChildCount() > 0 && childNode.NamedChild(0).Type() == "macro_invocation" {
				childNode = childNode.NamedChild(0)
			}
		}
		item := processItem(childNode, src)
		item.Attributes = pending
		pending = nil
		items = append(items, item)
	}
	return items, inner
}

// processItem extracts a single declaration item
func processItem(node *sitter.Node, src []byte) *graph.Item {
	kind, ok := itemKinds[node.Type()]
	if !ok {
		kind = graph.KindOther
	}
	item := &graph.Item{
		Kind:       kind,
		NodeType:   node.Type(),
		Name:       itemName(node, kind, src),
		Visibility: visibility(node, src),
		Text:       node.Content(src),
		Location:   location(node),
	}
	if kind == graph.KindModule {
		if body := node.ChildByFieldName("body"); body != nil {
			item.Inline = true
			item.Items, _ = processItems(body, src)
			if item.Items == nil {
				item.Items = []*graph.Item{}
			}
		}
	}
	item.Hash = graph.Fingerprint(kind, item.Text)
	return item
}

// itemName returns the identifier of named items; impl blocks use their target type, use declarations their argument
func itemName(node *sitter.Node, kind graph.Kind, src []byte) string {
	field := "name"
	switch kind {
	case graph.KindImpl:
		field = "type"
	case graph.KindUse:
		field = "argument"
	case graph.KindMacroCall:
		field = "macro"
	case graph.KindForeignMod, graph.KindOther:
		return ""
	}
	if nameNode := node.ChildByFieldName(field); nameNode != nil {
		return nameNode.Content(src)
	}
	return ""
}

func visibility(node *sitter.Node, src []byte) string {
	for j := 0; j < int(node.NamedChildCount()); j++ {
		childNode := node.NamedChild(j)
		if childNode.Type() == "visibility_modifier" {
			return childNode.Content(src)
		}
	}
	return ""
}

func location(node *sitter.Node) *graph.Location {
	point := node.StartPoint()
	return &graph.Location{
		Start:  node.StartByte(),
		End:    node.EndByte(),
		Line:   int(point.Row) + 1,
		Column: int(point.Column) + 1,
	}
}

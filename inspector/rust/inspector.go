package rust

import (
	"context"
	"path"

	"github.com/pkg/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/viant/afs"
	"github.com/viant/cratepath/inspector/graph"
)

// Config represents inspector config
type Config struct {
	// StrictSyntax rejects sources whose module structure does not parse;
	// errors nested in item bodies are tolerated since the grammar may lag the language
	StrictSyntax bool `yaml:"strictSyntax"`
}

// DefaultConfig returns default inspector config
func DefaultConfig() *Config {
	return &Config{}
}

// Option represents inspector option
type Option func(i *Inspector)

// WithFileSystem sets the file system used to read sources
func WithFileSystem(fs afs.Service) Option {
	return func(i *Inspector) {
		i.fs = fs
	}
}

// Inspector provides functionality to inspect Rust code and extract declaration items
type Inspector struct {
	config *Config
	fs     afs.Service
}

// NewInspector creates a new Rust Inspector with the provided configuration
func NewInspector(config *Config, options ...Option) *Inspector {
	if config == nil {
		config = DefaultConfig()
	}
	ret := &Inspector{config: config}
	for _, option := range options {
		option(ret)
	}
	if ret.fs == nil {
		ret.fs = afs.New()
	}
	return ret
}

// InspectSource parses Rust source code from a byte slice and extracts items
func (i *Inspector) InspectSource(src []byte, filename string) (*graph.File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(rust.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, src)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse source %v", filename)
	}
	rootNode := tree.RootNode()
	if i.config.StrictSyntax && rootNode.HasError() {
		if node := findStructuralError(rootNode); node != nil {
			return nil, syntaxError(node, src, filename)
		}
	}
	return i.processRustFile(rootNode, src, filename), nil
}

// InspectFile reads and parses a Rust source file; location can be a path or any afs supported URL
func (i *Inspector) InspectFile(ctx context.Context, URL string) (*graph.File, error) {
	exists, err := i.fs.Exists(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to check file %v", URL)
	}
	if !exists {
		return nil, errors.Wrapf(graph.ErrFileNotFound, "%v", URL)
	}
	src, err := i.fs.DownloadWithURL(ctx, URL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read file %v", URL)
	}
	return i.InspectSource(src, URL)
}

// Exists checks if a source file exists without parsing it
func (i *Inspector) Exists(ctx context.Context, URL string) (bool, error) {
	return i.fs.Exists(ctx, URL)
}

// processRustFile extracts inner attributes and top level items
func (i *Inspector) processRustFile(rootNode *sitter.Node, src []byte, filename string) *graph.File {
	aFile := &graph.File{Path: filename, Name: path.Base(filename)}
	aFile.Items, aFile.Attributes = processItems(rootNode, src)
	return aFile
}

func syntaxError(node *sitter.Node, src []byte, filename string) error {
	point := node.StartPoint()
	if node.IsMissing() {
		return errors.Wrapf(graph.ErrSyntax, "%v:%d:%d: missing %v", filename, point.Row+1, point.Column+1, node.Type())
	}
	snippet := node.Content(src)
	if len(snippet) > 40 {
		snippet = snippet[:40] + "..."
	}
	return errors.Wrapf(graph.ErrSyntax, "%v:%d:%d: unexpected %q", filename, point.Row+1, point.Column+1, snippet)
}

// findStructuralError returns the first ERROR or MISSING node placed where a module item is expected:
// directly under the file, under a mod item or inside a mod body. Item bodies are not searched.
func findStructuralError(node *sitter.Node) *sitter.Node {
	if isErrorNode(node) {
		return node
	}
	for j := 0; j < int(node.ChildCount()); j++ {
		child := node.Child(j)
		if child == nil || !(child.HasError() || child.IsMissing()) {
			continue
		}
		if isErrorNode(child) {
			return child
		}
		if !isModuleScope(node, child) {
			continue
		}
		if found := findStructuralError(child); found != nil {
			return found
		}
	}
	return nil
}

// isModuleScope reports whether child holds module items: a mod item or the body of one
func isModuleScope(parent, child *sitter.Node) bool {
	switch child.Type() {
	case "mod_item":
		return true
	case "declaration_list":
		return parent.Type() == "mod_item"
	}
	return false
}

func isErrorNode(node *sitter.Node) bool {
	return node.Type() == "ERROR" || node.IsMissing()
}

package resolver

import (
	"context"

	"github.com/pkg/errors"
	"github.com/viant/cratepath/errs"
	"github.com/viant/cratepath/inspector/graph"
	"github.com/viant/cratepath/inspector/repository"
)

// State represents the kind of scope the resolver is positioned at
type State int

const (
	AtEntryFile State = iota
	AtInlineBlock
	AtSiblingFile
	AtDirectoryIndex
)

var stateNames = map[State]string{
	AtEntryFile:      "AtEntryFile",
	AtInlineBlock:    "AtInlineBlock",
	AtSiblingFile:    "AtSiblingFile",
	AtDirectoryIndex: "AtDirectoryIndex",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "Unknown"
}

// scope is a visited module scope
type scope struct {
	state   State
	file    string // file declaring the items
	items   []*graph.Item
	context ResolutionContext
}

// transition moves to the scope of the next path segment; a nil scope means items are final
func (r *Resolver) transition(ctx context.Context, current *scope, result *Result) (*scope, []*graph.Item, error) {
	var name string
	var ok bool
	if current.state == AtEntryFile {
		name, ok = current.context.Path.Current()
	} else {
		name, ok = current.context.Path.Next()
	}
	if !ok {
		return nil, current.items, nil
	}
	module, count := graph.FindModule(current.items, name)
	if module == nil {
		switch current.state {
		case AtEntryFile, AtDirectoryIndex:
			return nil, nil, errs.NewModuleNotFoundInScope(name).
				AddNote(errs.NoteCurrentDirectory, current.context.Directory).
				AddNote(errs.NoteFile, current.file)
		default:
			return nil, nil, errs.NewModuleNotFoundInFile(name, current.file)
		}
	}
	if count > 1 {
		result.Diagnostics.Add(LevelWarning, current.file, "module `%v` is declared %d times, using the first declaration", name, count)
	}
	next, err := r.descend(ctx, current, module, result)
	if err != nil {
		return nil, nil, err
	}
	return next, nil, nil
}

// descend locates the content of module declared in current
func (r *Resolver) descend(ctx context.Context, current *scope, module *graph.Item, result *Result) (*scope, error) {
	name := graph.Identifier(module.Name)
	childDir := repository.JoinPath(current.context.Directory, name)
	if module.Inline {
		return &scope{
			state:   AtInlineBlock,
			file:    current.file,
			items:   module.Items,
			context: current.context.WithDirectory(childDir),
		}, nil
	}

	if location, ok := module.PathAttribute(); ok {
		// inside inline blocks the path is relative to the directory the block maps to
		base := repository.ParentPath(current.file)
		if current.state == AtInlineBlock {
			base = current.context.Directory
		}
		URL := repository.JoinPath(base, location)
		aFile, err := r.loader.InspectFile(ctx, URL)
		if err != nil {
			if errors.Is(err, graph.ErrFileNotFound) {
				return nil, errs.NewModulePathUnresolved(current.context.Directory, URL)
			}
			return nil, errs.NewFileUnreadable(URL, err)
		}
		return &scope{
			state:   AtDirectoryIndex,
			file:    URL,
			items:   aFile.Items,
			context: current.context.WithDirectory(repository.ParentPath(URL)),
		}, nil
	}

	siblingURL := r.layout.SiblingURL(current.context.Directory, name)
	indexURL := r.layout.IndexURL(current.context.Directory, name)
	sibling, err := r.loader.InspectFile(ctx, siblingURL)
	if err == nil {
		exists, err := r.loader.Exists(ctx, indexURL)
		if err != nil {
			r.logger.Debug("index file check failed", "file", indexURL, "error", err)
		}
		if exists {
			result.Diagnostics.Add(LevelWarning, siblingURL, "module `%v` has both %v and %v, using the sibling file", module.Name, siblingURL, indexURL)
		}
		return &scope{
			state:   AtSiblingFile,
			file:    siblingURL,
			items:   sibling.Items,
			context: current.context.WithDirectory(childDir),
		}, nil
	}
	if !errors.Is(err, graph.ErrFileNotFound) {
		return nil, errs.NewFileUnreadable(siblingURL, err)
	}

	index, err := r.loader.InspectFile(ctx, indexURL)
	if err != nil {
		if errors.Is(err, graph.ErrFileNotFound) {
			return nil, errs.NewModulePathUnresolved(current.context.Directory, siblingURL, indexURL)
		}
		return nil, errs.NewFileUnreadable(indexURL, err)
	}
	return &scope{
		state:   AtDirectoryIndex,
		file:    indexURL,
		items:   index.Items,
		context: current.context.WithDirectory(childDir),
	}, nil
}

// Package modpath provides a cursor over a Rust module path such as `crate::module_a::module_b`.
package modpath

import (
	"fmt"
	"regexp"
	"strings"
)

// Separator separates module path segments
const Separator = "::"

const cratePrefix = "crate"

var identifierExpr = regexp.MustCompile(`^(r#)?[A-Za-z_][A-Za-z0-9_]*$`)

// Path represents a module path with a position pointing at the module currently being searched for.
// Segments never change after construction; derived paths are produced with Clone, CloneAndOverwrite and CloneAndInsert.
type Path struct {
	segments []string
	position int
}

// New creates a path positioned at its first segment
func New(segments ...string) *Path {
	return &Path{segments: append([]string{}, segments...)}
}

// Parse parses a `::` separated module path. A leading `crate` segment is dropped.
func Parse(text string) (*Path, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return New(), nil
	}
	parts := strings.Split(text, Separator)
	var segments []string
	for i, part := range parts {
		part = strings.TrimSpace(part)
		if i == 0 && part == cratePrefix {
			continue
		}
		if !identifierExpr.MatchString(part) {
			return nil, fmt.Errorf("invalid module path %q: segment %d %q is not an identifier", text, i, part)
		}
		segments = append(segments, part)
	}
	return New(segments...), nil
}

// Current returns the segment at the current position
func (p *Path) Current() (string, bool) {
	if p.position >= len(p.segments) {
		return "", false
	}
	return p.segments[p.position], true
}

// Next moves to the following segment and returns it. Once exhausted the position stays at Len().
func (p *Path) Next() (string, bool) {
	if p.position < len(p.segments) {
		p.position++
	}
	return p.Current()
}

// Position returns the index of the current segment
func (p *Path) Position() int {
	return p.position
}

// Len returns the number of segments
func (p *Path) Len() int {
	return len(p.segments)
}

// Exhausted returns true when every segment has been consumed
func (p *Path) Exhausted() bool {
	return p.position >= len(p.segments)
}

// Segments returns a copy of all segments, consumed ones included
func (p *Path) Segments() []string {
	return append([]string{}, p.segments...)
}

// Clone returns an independent copy
func (p *Path) Clone() *Path {
	return &Path{segments: p.Segments(), position: p.position}
}

// CloneAndOverwrite returns a copy where the current segment is replaced with segment.
// On an exhausted path the segment is appended and becomes the current one.
func (p *Path) CloneAndOverwrite(segment string) *Path {
	ret := p.Clone()
	if ret.position >= len(ret.segments) {
		ret.segments = append(ret.segments, segment)
		return ret
	}
	ret.segments[ret.position] = segment
	return ret
}

// CloneAndInsert returns a copy where segment is inserted before the current position
func (p *Path) CloneAndInsert(segment string) *Path {
	ret := &Path{position: p.position}
	ret.segments = make([]string, 0, len(p.segments)+1)
	ret.segments = append(ret.segments, p.segments[:p.position]...)
	ret.segments = append(ret.segments, segment)
	ret.segments = append(ret.segments, p.segments[p.position:]...)
	return ret
}

// String renders remaining segments, e.g. `module_b::module_c`
func (p *Path) String() string {
	if p == nil || p.position >= len(p.segments) {
		return ""
	}
	return strings.Join(p.segments[p.position:], Separator)
}

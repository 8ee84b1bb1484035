package resolver

import (
	"fmt"

	"github.com/viant/cratepath/inspector/graph"
)

// Level represents diagnostic severity
type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Diagnostic represents a non fatal observation made while resolving
type Diagnostic struct {
	Level   Level
	Message string
	File    string
}

func (d *Diagnostic) String() string {
	if d.File == "" {
		return fmt.Sprintf("%v: %v", d.Level, d.Message)
	}
	return fmt.Sprintf("%v: %v (%v)", d.Level, d.Message, d.File)
}

// Diagnostics accumulates diagnostics of a single resolution
type Diagnostics []*Diagnostic

// Add appends a diagnostic
func (d *Diagnostics) Add(level Level, file string, format string, args ...interface{}) *Diagnostic {
	ret := &Diagnostic{Level: level, File: file, Message: fmt.Sprintf(format, args...)}
	*d = append(*d, ret)
	return ret
}

// Warnings returns warning level diagnostics
func (d Diagnostics) Warnings() Diagnostics {
	var result Diagnostics
	for _, diagnostic := range d {
		if diagnostic.Level == LevelWarning {
			result = append(result, diagnostic)
		}
	}
	return result
}

// Step records a scope visited while resolving
type Step struct {
	State     State
	Module    string // module entered, empty for the entry file
	File      string
	Directory string
}

// Result represents a resolution outcome
type Result struct {
	Items       []*graph.Item
	Steps       []*Step
	Diagnostics Diagnostics
}

// Final returns the last visited scope
func (r *Result) Final() *Step {
	if len(r.Steps) == 0 {
		return nil
	}
	return r.Steps[len(r.Steps)-1]
}

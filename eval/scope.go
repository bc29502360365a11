package eval

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"

	"mtl/trace"
	"mtl/types"
)

// Frame tags
const (
	TagGlobal = "Global"
	TagIf     = "If"
	TagElse   = "Else"
	TagWhile  = "WhileLoop"
	TagFor    = "ForLoop"
)

// Frame is the binding table of one active lexical block.
// The tag is for diagnostics only.
type Frame struct {
	Tag  string
	vars map[string]types.Value
}

func newFrame(tag string) *Frame {
	return &Frame{Tag: tag, vars: make(map[string]types.Value)}
}

// ScopeStack is the stack of active frames. The bottom frame is Global
// and lives as long as the stack.
type ScopeStack struct {
	frames []*Frame
}

// NewScopeStack creates a stack holding only the Global frame
func NewScopeStack() *ScopeStack {
	s := &ScopeStack{frames: []*Frame{newFrame(TagGlobal)}}
	trace.ScopePush(TagGlobal, 1)
	return s
}

// Push activates a new empty frame
func (s *ScopeStack) Push(tag string) {
	s.frames = append(s.frames, newFrame(tag))
	trace.ScopePush(tag, len(s.frames))
}

// Pop discards the top frame and every binding in it.
// Popping the Global frame means block nesting is broken and panics.
func (s *ScopeStack) Pop() {
	if len(s.frames) <= 1 {
		panic("eval: pop of the global scope frame")
	}
	top := s.frames[len(s.frames)-1]
	trace.ScopePop(top.Tag, len(s.frames))
	s.frames[len(s.frames)-1] = nil
	s.frames = s.frames[:len(s.frames)-1]
}

// lookup returns the innermost frame holding name
func (s *ScopeStack) lookup(name string) *Frame {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].vars[name]; ok {
			return s.frames[i]
		}
	}
	return nil
}

// Get looks up a variable by name, innermost frame first.
// Returns (value, true) if found, (nil, false) if not found.
func (s *ScopeStack) Get(name string) (types.Value, bool) {
	frame := s.lookup(name)
	if frame == nil {
		return nil, false
	}
	return frame.vars[name], true
}

// Set rebinds name in the innermost frame holding it. An unseen name is
// declared in the top frame.
func (s *ScopeStack) Set(name string, value types.Value) {
	frame := s.lookup(name)
	if frame == nil {
		frame = s.frames[len(s.frames)-1]
	}
	frame.vars[name] = value
}

// Insert binds name in the top frame, shadowing any outer binding
func (s *ScopeStack) Insert(name string, value types.Value) {
	s.frames[len(s.frames)-1].vars[name] = value
}

// Depth returns the number of active frames
func (s *ScopeStack) Depth() int {
	return len(s.frames)
}

// Top returns the tag of the innermost frame
func (s *ScopeStack) Top() string {
	return s.frames[len(s.frames)-1].Tag
}

// Names returns every visible variable name, sorted
func (s *ScopeStack) Names() []string {
	seen := make(map[string]struct{})
	for _, frame := range s.frames {
		for _, name := range maps.Keys(frame.vars) {
			seen[name] = struct{}{}
		}
	}
	names := maps.Keys(seen)
	slices.Sort(names)
	return names
}

// Package runtime implements Wisdom's tree-walking evaluator: the scope
// stack (Context), the control-flow outcome type, and the Interpreter
// that drives the REPL and script collaborators.
package runtime

import "github.com/Stringy/wisdom/internal/value"

// scope is one frame of a Context: a flat name-to-value mapping.
type scope map[string]value.Value

// Context is the environment a Wisdom program evaluates against: a
// non-empty stack of scopes. The bottom scope is the global scope,
// created by NewContext and never popped.
type Context struct {
	scopes []scope
}

// NewContext creates a Context with a single global scope.
func NewContext() *Context {
	return &Context{scopes: []scope{make(scope)}}
}

// Push appends a fresh empty scope.
func (c *Context) Push() {
	c.scopes = append(c.scopes, make(scope))
}

// Pop drops the innermost scope. It is a no-op on the last remaining
// scope: the global scope is never removed.
func (c *Context) Pop() {
	if len(c.scopes) <= 1 {
		return
	}
	c.scopes = c.scopes[:len(c.scopes)-1]
}

// Scoped pushes a new scope, runs f, and pops it, guaranteeing the pop
// happens even if f returns an error.
func (c *Context) Scoped(f func() (Outcome, error)) (Outcome, error) {
	c.Push()
	defer c.Pop()
	return f()
}

// CallScoped runs f against a stack truncated to just the global scope
// plus one fresh call frame, restoring the caller's full stack
// afterward regardless of how f returns. This is what makes a Wisdom
// function call see only globals and its own parameters/locals, never
// whatever block-local variables happen to be live in the calling
// frame: functions do not close over live locals.
func (c *Context) CallScoped(f func() (Outcome, error)) (Outcome, error) {
	saved := c.scopes
	c.scopes = []scope{saved[0], make(scope)}
	defer func() { c.scopes = saved }()
	return f()
}

// Lookup scans scopes innermost-to-outermost and returns the first
// match.
func (c *Context) Lookup(name string) (value.Value, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if v, ok := c.scopes[i][name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Exists reports whether name is bound anywhere in the stack.
func (c *Context) Exists(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Store updates name in the scope that already defines it (innermost
// match), or inserts it into the top scope if it is not yet bound
// anywhere.
func (c *Context) Store(name string, v value.Value) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if _, ok := c.scopes[i][name]; ok {
			c.scopes[i][name] = v
			return
		}
	}
	c.StoreTop(name, v)
}

// StoreTop unconditionally inserts or overwrites name in the innermost
// scope. Used by `let` and by function-parameter binding.
func (c *Context) StoreTop(name string, v value.Value) {
	c.scopes[len(c.scopes)-1][name] = v
}

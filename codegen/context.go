package codegen

// context is an append-only ordered list of variable names currently in
// scope, plus a running maximum slot count. Lookup resolves to the
// greatest (most recently declared) matching index, so inner shadowing
// wins. Entering a new block clones the context; on exit, the outer
// context's maximum is updated to the max of inner and outer.
type context struct {
	vars    []string
	maxVars int
}

func (c context) clone() context {
	cp := make([]string, len(c.vars))
	copy(cp, c.vars)
	return context{vars: cp, maxVars: c.maxVars}
}

// indexOf returns the rightmost slot index bound to name, if any.
func (c *context) indexOf(name string) (int, bool) {
	for i := len(c.vars) - 1; i >= 0; i-- {
		if c.vars[i] == name {
			return i, true
		}
	}
	return 0, false
}

// assignVar returns name's existing slot index, or allocates a new slot
// for it at the end of the current scope.
func (c *context) assignVar(name string) int {
	if idx, ok := c.indexOf(name); ok {
		return idx
	}
	c.vars = append(c.vars, name)
	idx := len(c.vars) - 1
	if len(c.vars) > c.maxVars {
		c.maxVars = len(c.vars)
	}
	return idx
}

// inNewScope runs f against a cloned context (so names it declares don't
// leak to c), then bubbles the cloned context's max-slot count up to c.
func (c *context) inNewScope(f func(inner *context) error) error {
	inner := c.clone()
	err := f(&inner)
	if inner.maxVars > c.maxVars {
		c.maxVars = inner.maxVars
	}
	return err
}

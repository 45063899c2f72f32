package domain

import "fmt"

// Context is the stack of domains opened by enclosing markup scopes.
// The top entry selects the operator table for text at that point.
// It belongs to a single document traversal and is not safe for
// concurrent use.
type Context struct {
	stack []Domain
}

func NewContext() *Context {
	return &Context{}
}

func (c *Context) Push(d Domain) {
	c.stack = append(c.stack, d)
}

// Pop removes and returns the innermost domain.
func (c *Context) Pop() (Domain, error) {
	if len(c.stack) == 0 {
		return 0, fmt.Errorf("pop: %w", ErrEmptyContext)
	}
	d := c.stack[len(c.stack)-1]
	c.stack = c.stack[:len(c.stack)-1]
	return d, nil
}

// Top returns the innermost domain without removing it.
func (c *Context) Top() (Domain, error) {
	if len(c.stack) == 0 {
		return 0, fmt.Errorf("top: %w", ErrEmptyContext)
	}
	return c.stack[len(c.stack)-1], nil
}

func (c *Context) Depth() int {
	return len(c.stack)
}

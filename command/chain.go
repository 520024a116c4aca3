package command

// Chain is an ordered, append-only middleware list. One chain is shared by
// every command registered in a registry. The chain holds no locks: it
// assumes a single logical owner, like the rest of the dispatch path.
type Chain struct {
	middlewares []Middleware
}

// NewChain creates an empty chain.
func NewChain() *Chain {
	return &Chain{}
}

// Use appends middlewares to the chain. Ordering is caller-determined and
// load-bearing: the first-added middleware runs first and gates everything
// behind it.
func (c *Chain) Use(mw ...Middleware) {
	c.middlewares = append(c.middlewares, mw...)
}

// Len returns the number of middlewares in the chain.
func (c *Chain) Len() int {
	return len(c.middlewares)
}

// Execute threads the request through every middleware in registration
// order and terminates at final only if every middleware calls next.
// Composition is right-to-left so the first-added middleware becomes the
// outermost wrapper.
func (c *Chain) Execute(next Handler) Handler {
	h := next
	for i := len(c.middlewares) - 1; i >= 0; i-- {
		h = c.middlewares[i](h)
	}
	return h
}

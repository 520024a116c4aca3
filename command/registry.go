package command

import (
	"context"
	"sort"

	"github.com/xraph/relay/errors"
	"github.com/xraph/relay/logger"
)

// Registry maps command names to handlers and metadata and owns the single
// middleware chain every dispatch runs through.
type Registry struct {
	handlers map[string]Handler
	metadata map[string]*Metadata
	chain    *Chain
	logger   logger.Logger
}

// NewRegistry creates an empty registry with an empty chain.
func NewRegistry(log logger.Logger) *Registry {
	if log == nil {
		log = logger.NewNoopLogger()
	}
	return &Registry{
		handlers: make(map[string]Handler),
		metadata: make(map[string]*Metadata),
		chain:    NewChain(),
		logger:   log.Named("command-registry"),
	}
}

// Chain returns the registry's shared middleware chain.
func (r *Registry) Chain() *Chain {
	return r.chain
}

// Register stores the command handler. Re-registration is last-write-wins,
// not an error. Missing metadata fields are defaulted.
func (r *Registry) Register(name string, handler Handler, meta *Metadata) {
	if handler == nil {
		r.logger.Warn("ignoring nil handler", logger.String("command", name))
		return
	}

	if _, exists := r.handlers[name]; exists {
		r.logger.Debug("command re-registered", logger.String("command", name))
	}

	r.handlers[name] = handler
	r.metadata[name] = normalizeMetadata(name, meta)
}

// RegisterWithMiddleware registers the command, then appends each given
// middleware to the registry's single shared chain. The appended
// middlewares therefore apply to every command dispatched by this
// registry, not only the one just registered.
func (r *Registry) RegisterWithMiddleware(name string, handler Handler, mw []Middleware, meta *Metadata) {
	r.Register(name, handler, meta)
	r.chain.Use(mw...)
}

// Dispatch looks up the command and runs it through the shared chain.
// Unknown commands are a hard error; every other failure surfaces from
// within the chain or handler, uncaught.
func (r *Registry) Dispatch(ctx context.Context, name string, req *Request) (any, error) {
	handler, exists := r.handlers[name]
	if !exists {
		return nil, errors.ErrCommandNotFound(name)
	}

	if req == nil {
		req = &Request{}
	}
	req.Command = name

	return r.chain.Execute(handler)(ctx, req)
}

// Has reports whether the command is registered.
func (r *Registry) Has(name string) bool {
	_, exists := r.handlers[name]
	return exists
}

// CommandMetadata returns the metadata for one command.
func (r *Registry) CommandMetadata(name string) (*Metadata, bool) {
	meta, exists := r.metadata[name]
	return meta, exists
}

// Info returns the metadata of every registered command, sorted by name.
func (r *Registry) Info() []*Metadata {
	infos := make([]*Metadata, 0, len(r.metadata))
	for _, meta := range r.metadata {
		infos = append(infos, meta)
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].Name < infos[j].Name })
	return infos
}

// ByCategory returns the names of commands in the given category, sorted.
func (r *Registry) ByCategory(category string) []string {
	var names []string
	for name, meta := range r.metadata {
		if meta.Category == category {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

func normalizeMetadata(name string, meta *Metadata) *Metadata {
	if meta == nil {
		meta = &Metadata{}
	}
	normalized := *meta
	normalized.Name = name
	if normalized.Description == "" {
		normalized.Description = "Handler for " + name
	}
	if normalized.Category == "" {
		normalized.Category = "general"
	}
	return &normalized
}

package di

import (
	"reflect"
	"strings"
	"sync"

	"github.com/xraph/relay/errors"
)

// Factory constructs a service instance. A factory may resolve its own
// dependencies through the container it receives.
type Factory func(c Container) (any, error)

// Container is a keyed registry resolving singleton, factory, and type
// bindings. Keys are case-sensitive strings. Factory and type bindings are
// resolved lazily: the first successful Get caches the result and the
// factory or constructor never runs again.
type Container interface {
	// RegisterSingleton binds an instance immediately. Re-registration
	// overwrites the prior binding.
	RegisterSingleton(name string, instance any)

	// RegisterFactory binds a lazily-invoked factory.
	RegisterFactory(name string, factory Factory)

	// RegisterType binds a constructible type, instantiated via reflection
	// on first resolution.
	RegisterType(name string, typ reflect.Type)

	// Register is a convenience overload: a string key registers a
	// singleton; a reflect.Type key with an instance registers a singleton
	// under the lowercased type name; a reflect.Type key without an
	// instance registers a type binding under the same key. Any other key
	// kind fails with an invalid-key error.
	Register(key any, value any) error

	// Get resolves a binding, lazily constructing it if needed.
	Get(name string) (any, error)

	// Has reports whether a binding of any kind exists. It never fails.
	Has(name string) bool

	// Keys returns all registered binding keys.
	Keys() []string
}

type bindingKind int

const (
	kindSingleton bindingKind = iota
	kindFactory
	kindType
)

// binding holds one registration and, for lazy kinds, its cached instance.
type binding struct {
	name     string
	kind     bindingKind
	instance any
	factory  Factory
	typ      reflect.Type
	resolved bool
	mu       sync.RWMutex
}

// container implements Container.
type container struct {
	bindings map[string]*binding
	mu       sync.RWMutex
}

// New creates an empty container.
func New() Container {
	return &container{
		bindings: make(map[string]*binding),
	}
}

func (c *container) RegisterSingleton(name string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bindings[name] = &binding{
		name:     name,
		kind:     kindSingleton,
		instance: instance,
		resolved: true,
	}
}

func (c *container) RegisterFactory(name string, factory Factory) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bindings[name] = &binding{
		name:    name,
		kind:    kindFactory,
		factory: factory,
	}
}

func (c *container) RegisterType(name string, typ reflect.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.bindings[name] = &binding{
		name: name,
		kind: kindType,
		typ:  typ,
	}
}

func (c *container) Register(key any, value any) error {
	switch k := key.(type) {
	case string:
		c.RegisterSingleton(k, value)
		return nil
	case reflect.Type:
		name := typeKey(k)
		if value == nil {
			c.RegisterType(name, k)
		} else {
			c.RegisterSingleton(name, value)
		}
		return nil
	default:
		return errors.ErrInvalidKey(key)
	}
}

func (c *container) Get(name string) (any, error) {
	c.mu.RLock()
	b, exists := c.bindings[name]
	c.mu.RUnlock()

	if !exists {
		return nil, errors.ErrServiceNotFound(name)
	}

	// Fast path: already resolved (read lock)
	b.mu.RLock()
	if b.resolved {
		instance := b.instance
		b.mu.RUnlock()
		return instance, nil
	}
	b.mu.RUnlock()

	// Slow path: construct under the binding's write lock
	b.mu.Lock()
	defer b.mu.Unlock()

	// Double-check after acquiring write lock
	if b.resolved {
		return b.instance, nil
	}

	var (
		instance any
		err      error
	)
	switch b.kind {
	case kindFactory:
		// The factory may call c.Get, which uses c.mu (a different lock)
		instance, err = b.factory(c)
	case kindType:
		instance = construct(b.typ)
	default:
		instance = b.instance
	}
	if err != nil {
		// Construction errors propagate unmodified; the binding stays
		// unresolved so nothing broken is cached.
		return nil, err
	}

	b.instance = instance
	b.resolved = true
	return instance, nil
}

func (c *container) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.bindings[name]
	return exists
}

func (c *container) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.bindings))
	for name := range c.bindings {
		names = append(names, name)
	}
	return names
}

// typeKey derives the binding key for a type registration.
func typeKey(typ reflect.Type) string {
	t := typ
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return strings.ToLower(t.Name())
}

// construct instantiates a registered type. Pointer types yield a pointer
// to a zero value of the element type; value types yield a pointer to a
// zero value, so the result is always addressable.
func construct(typ reflect.Type) any {
	if typ.Kind() == reflect.Pointer {
		return reflect.New(typ.Elem()).Interface()
	}
	return reflect.New(typ).Interface()
}

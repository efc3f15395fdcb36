package container

import (
	"errors"
	"fmt"
	"slices"
	"sync"
)

// ErrNotBound is returned by Get for an abstract with no binding.
var ErrNotBound = errors.New("container: no binding registered")

// ── Binding types ─────────────────────────────────────────────────────────────

// Factory is a function that builds a concrete value from the container.
type Factory func(c *Container) any

type binding struct {
	factory   Factory
	singleton bool
}

// ── Container ─────────────────────────────────────────────────────────────────

// Container is the IoC container the application's services live in: the
// config, the logger, the form registry, the metrics collector and the
// router.
//
// It supports Bind / Singleton / Instance, Make / Get / Resolve and tags.
type Container struct {
	mu sync.Mutex

	bindings  map[string]*binding
	instances map[string]any
	tags      map[string][]string
}

// New creates an empty container bound to itself as "container".
func New() *Container {
	c := &Container{
		bindings:  make(map[string]*binding),
		instances: make(map[string]any),
		tags:      make(map[string][]string),
	}
	c.Instance("container", c)
	return c
}

// ── Registration ──────────────────────────────────────────────────────────────

// Bind registers a transient factory: every Make builds a new value.
//
//	// Laravel: $app->bind(...)
//	c.Bind("validator", func(c *container.Container) any { return validation.New(nil) })
func (c *Container) Bind(abstract string, factory Factory) {
	c.register(abstract, factory, false)
}

// Singleton registers a factory whose result is cached after first resolution.
//
//	// Laravel: $app->singleton('forms', fn($app) => ...)
//	c.Singleton("forms", func(c *container.Container) any {
//	    return forms.MustLoadDir(container.Resolve[*config.Config](c, "config").Forms.Dir)
//	})
func (c *Container) Singleton(abstract string, factory Factory) {
	c.register(abstract, factory, true)
}

// Instance registers a pre-built value as a singleton.
func (c *Container) Instance(abstract string, instance any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.bindings, abstract)
	c.instances[abstract] = instance
}

func (c *Container) register(abstract string, factory Factory, singleton bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	// a rebound singleton is rebuilt with the new factory
	delete(c.instances, abstract)
	c.bindings[abstract] = &binding{factory: factory, singleton: singleton}
}

// ── Tags ──────────────────────────────────────────────────────────────────────

// Tag associates abstracts under a named group.
//
//	c.Tag([]string{"log.closer"}, "shutdown")
func (c *Container) Tag(abstracts []string, tag string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tags[tag] = append(c.tags[tag], abstracts...)
}

// Tagged resolves all abstracts registered under a tag, in tag order.
func (c *Container) Tagged(tag string) []any {
	c.mu.Lock()
	abstracts := slices.Clone(c.tags[tag])
	c.mu.Unlock()

	out := make([]any, 0, len(abstracts))
	for _, abs := range abstracts {
		out = append(out, c.Make(abs))
	}
	return out
}

// ── Resolution ────────────────────────────────────────────────────────────────

// Make resolves an abstract and panics when it is not bound. Use it during
// bootstrap, where a missing binding is a programming error.
//
//	// Laravel: $app->make('router')
func (c *Container) Make(abstract string) any {
	instance, err := c.Get(abstract)
	if err != nil {
		panic(err.Error())
	}
	return instance
}

// Get resolves an abstract, returning ErrNotBound when nothing is
// registered under it.
func (c *Container) Get(abstract string) (any, error) {
	c.mu.Lock()
	if inst, ok := c.instances[abstract]; ok {
		c.mu.Unlock()
		return inst, nil
	}
	b, ok := c.bindings[abstract]
	if !ok {
		c.mu.Unlock()
		return nil, fmt.Errorf("%w for [%s]", ErrNotBound, abstract)
	}
	c.mu.Unlock()

	// factories may resolve other abstracts, so the lock is not held here
	instance := b.factory(c)
	if !b.singleton {
		return instance, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if prev, ok := c.instances[abstract]; ok {
		return prev, nil
	}
	c.instances[abstract] = instance
	return instance, nil
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// Bound returns true if an abstract has been registered.
func (c *Container) Bound(abstract string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, hasBinding := c.bindings[abstract]
	_, hasInstance := c.instances[abstract]
	return hasBinding || hasInstance
}

// Bindings lists registered abstract keys, sorted.
func (c *Container) Bindings() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, 0, len(c.bindings)+len(c.instances))
	for k := range c.bindings {
		out = append(out, k)
	}
	for k := range c.instances {
		if _, already := c.bindings[k]; !already {
			out = append(out, k)
		}
	}
	slices.Sort(out)
	return out
}

// ── Generics helper ───────────────────────────────────────────────────────────

// Resolve calls Make and type-asserts the result.
//
//	// Instead of: reg := c.Make("forms").(*forms.Registry)
//	// Write:      reg := container.Resolve[*forms.Registry](c, "forms")
func Resolve[T any](c *Container, abstract string) T {
	instance := c.Make(abstract)
	typed, ok := instance.(T)
	if !ok {
		panic(fmt.Sprintf("container: Resolve[%T]: [%s] resolved to %T", *new(T), abstract, instance))
	}
	return typed
}

// TryResolve is like Resolve but reports failure instead of panicking.
func TryResolve[T any](c *Container, abstract string) (T, bool) {
	instance, err := c.Get(abstract)
	if err != nil {
		var zero T
		return zero, false
	}
	typed, ok := instance.(T)
	return typed, ok
}

// Package container provides a Laravel-style IoC (Inversion of Control)
// container and Service Provider system.
//
// # Container Lifecycle
//
//  1. Create: c := container.New()
//  2. Register providers: registry.Register(&providers.ConfigServiceProvider{})
//  3. Boot: registry.Boot()        — safe to resolve everything after this
//  4. Serve requests
//
// # Bindings
//
//	// Transient — new instance every Make()
//	c.Bind("clock", func(c *container.Container) any { return time.Now })
//
//	// Singleton — created once, reused
//	c.Singleton("forms", func(c *container.Container) any {
//	    cfg := container.Resolve[*config.Config](c, "config")
//	    reg, _ := forms.LoadDir(cfg.Forms.Dir)
//	    return reg
//	})
//
//	// Pre-built value
//	c.Instance("config", cfg)
//
// # Resolving
//
//	raw := c.Make("forms")                               // panics if unbound
//	raw, err := c.Get("forms")                           // ErrNotBound if unbound
//	reg := container.Resolve[*forms.Registry](c, "forms") // typed
//
// # Tags
//
//	c.Tag([]string{"log.closer"}, "shutdown")
//	for _, fn := range c.Tagged("shutdown") { ... }
//
// # Service Providers
//
//	type AppServiceProvider struct{ container.BaseProvider }
//
//	func (p *AppServiceProvider) Register(app *container.Container) { ... }
//	func (p *AppServiceProvider) Boot(app *container.Container)     { ... }
//
//	registry := container.NewProviderRegistry(c)
//	registry.Register(&AppServiceProvider{})
//	registry.Boot()
package container

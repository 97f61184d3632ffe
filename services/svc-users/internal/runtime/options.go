package runtime

import "time"

type ServiceOption func(*ServiceCtx)

// WithDependencyOptions applies opts after the default dependency chain.
func WithDependencyOptions(opts ...DependencyOption) ServiceOption {
	return func(c *ServiceCtx) {
		c.dependencyOpts = append(c.dependencyOpts, opts...)
	}
}

// WithoutDefaultDependencies builds only what WithDependencyOptions provides.
func WithoutDefaultDependencies() ServiceOption {
	return func(c *ServiceCtx) {
		c.skipDefaults = true
	}
}

func WithShutdownTimeout(timeout time.Duration) ServiceOption {
	return func(c *ServiceCtx) {
		c.shutdownTimeout = timeout
	}
}

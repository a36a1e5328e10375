package loader

import (
	"github.com/TheEpicBlock/quilt-loader/internal/mod"
)

// Instance is the runtime handle produced by the host's instantiation
// mechanism.
type Instance interface {
	Initialize() error
}

// Instantiator creates the runtime instance for an admitted mod. It is
// an external collaborator; a failure leaves the container without an
// instance and the driver skips it.
type Instantiator interface {
	Instantiate(meta mod.Metadata, origin string) (Instance, error)
}

// Container pairs a mod's metadata with its runtime state for one load
// cycle.
type Container struct {
	Meta   mod.Metadata
	Origin string

	instance    Instance
	initialized bool
}

func (c *Container) HasInstance() bool {
	return c.instance != nil
}

func (c *Container) Initialized() bool {
	return c.initialized
}

// Initialize runs the instance initialization hook exactly once.
// Containers without an instance are left untouched.
func (c *Container) Initialize() error {
	if c.instance == nil || c.initialized {
		return nil
	}
	c.initialized = true
	return c.instance.Initialize()
}

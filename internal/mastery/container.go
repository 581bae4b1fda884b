// Package mastery holds the in-memory entities of the tracker: skill
// containers and the user profile that owns them. Persistence lives
// elsewhere; these types never touch the store.
package mastery

import (
	"mastery/internal/level"

	"github.com/google/uuid"
)

// Container is a single named skill with accumulated practice hours and the
// level derived from them. The ID is assigned at creation and never changes.
type Container struct {
	id    string
	name  string
	hours float64
	lvl   level.Level
}

// Snapshot is a value copy of a container, safe to hand to renderers and the
// store without exposing mutable state.
type Snapshot struct {
	ID    string
	Name  string
	Hours float64
	Level level.Level
}

// NewContainer creates a fresh container at zero hours. The uuid is generated
// inside the call so every container gets its own.
func NewContainer(name string) *Container {
	return &Container{
		id:    uuid.NewString(),
		name:  name,
		hours: 0,
		lvl:   level.ForHours(0),
	}
}

// Reconstruct rebuilds a container from persisted fields. The stored level is
// trusted verbatim so a load/save cycle round-trips exactly; the next
// mutation recomputes it.
func Reconstruct(id, name string, hours float64, lvl level.Level) *Container {
	return &Container{id: id, name: name, hours: hours, lvl: lvl}
}

// AddHours accumulates delta and recomputes the level. No clamping happens
// here; capping the total is the caller's policy.
func (c *Container) AddHours(delta float64) {
	c.hours += delta
	c.lvl = level.ForHours(c.hours)
}

// Rename replaces the display name. Identity and hours are untouched.
func (c *Container) Rename(name string) {
	c.name = name
}

func (c *Container) ID() string         { return c.id }
func (c *Container) Name() string       { return c.name }
func (c *Container) Hours() float64     { return c.hours }
func (c *Container) Level() level.Level { return c.lvl }

// Snapshot returns a value copy of the current state.
func (c *Container) Snapshot() Snapshot {
	return Snapshot{ID: c.id, Name: c.name, Hours: c.hours, Level: c.lvl}
}

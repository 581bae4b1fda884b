package mastery

import (
	"errors"

	"github.com/google/uuid"
)

var (
	// ErrContainerExists is returned when a container name is already taken
	// within the profile.
	ErrContainerExists = errors.New("container already exists")

	// ErrContainerNotFound is returned when an operation references a
	// container name the profile does not hold.
	ErrContainerNotFound = errors.New("container not found")

	// ErrEmptyName rejects blank container and user names.
	ErrEmptyName = errors.New("name must not be empty")
)

// Profile aggregates the user identity, display name, and the containers
// keyed by their names. Invariant: every map key equals its container's Name.
type Profile struct {
	id         string
	username   string
	containers map[string]*Container
}

// NewProfile creates a profile with a fresh identity and an empty container
// map. The map is allocated per instance.
func NewProfile(username string) *Profile {
	return &Profile{
		id:         uuid.NewString(),
		username:   username,
		containers: make(map[string]*Container),
	}
}

// ReconstructProfile rebuilds a profile from persisted identity and name.
// Containers are attached afterwards via Attach.
func ReconstructProfile(id, username string) *Profile {
	return &Profile{
		id:         id,
		username:   username,
		containers: make(map[string]*Container),
	}
}

// AddContainer creates a fresh container under the given name. The mapping is
// left untouched when the name is empty or already taken.
func (p *Profile) AddContainer(name string) (*Container, error) {
	if name == "" {
		return nil, ErrEmptyName
	}
	if _, ok := p.containers[name]; ok {
		return nil, ErrContainerExists
	}
	c := NewContainer(name)
	p.containers[name] = c
	return c, nil
}

// Attach inserts an already-built container, used when loading from storage.
func (p *Profile) Attach(c *Container) error {
	if _, ok := p.containers[c.Name()]; ok {
		return ErrContainerExists
	}
	p.containers[c.Name()] = c
	return nil
}

// RemoveContainer drops the named container and returns it.
func (p *Profile) RemoveContainer(name string) (*Container, error) {
	c, ok := p.containers[name]
	if !ok {
		return nil, ErrContainerNotFound
	}
	delete(p.containers, name)
	return c, nil
}

// RenameContainer moves a container to a new key, keeping the key==Name
// invariant.
func (p *Profile) RenameContainer(oldName, newName string) (*Container, error) {
	if newName == "" {
		return nil, ErrEmptyName
	}
	c, ok := p.containers[oldName]
	if !ok {
		return nil, ErrContainerNotFound
	}
	if _, taken := p.containers[newName]; taken && newName != oldName {
		return nil, ErrContainerExists
	}
	delete(p.containers, oldName)
	c.Rename(newName)
	p.containers[newName] = c
	return c, nil
}

// Container looks up a container by name.
func (p *Profile) Container(name string) (*Container, bool) {
	c, ok := p.containers[name]
	return c, ok
}

// SetUsername replaces the display name in memory only.
func (p *Profile) SetUsername(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	p.username = name
	return nil
}

func (p *Profile) ID() string       { return p.id }
func (p *Profile) Username() string { return p.username }
func (p *Profile) Len() int         { return len(p.containers) }

// Each calls fn for every container. Iteration order is unspecified.
func (p *Profile) Each(fn func(c *Container)) {
	for _, c := range p.containers {
		fn(c)
	}
}

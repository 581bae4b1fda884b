// Package tracker is the synchronization boundary between the in-memory
// profile and the persistent store. Every mutating method acquires the
// tracker mutex, applies the change in memory, and mirrors it to the store
// before returning; if the store write fails the in-memory change is undone,
// so memory and disk never diverge.
package tracker

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mastery/internal/level"
	"mastery/internal/mastery"
	"mastery/internal/store"
	"mastery/internal/timefmt"
)

// ErrInvalidDelta rejects negative, NaN, or infinite hour deltas.
var ErrInvalidDelta = errors.New("hours delta must be a finite non-negative number")

// Store is the persistence surface the tracker writes through to.
// *store.Store satisfies it; tests inject failing fakes.
type Store interface {
	LoadAll() ([]store.UserRow, []store.ContainerRow, bool, error)
	InsertUser(id, username string) error
	InsertContainer(row store.ContainerRow) error
	UpdateContainer(id string, hours float64, lvl string) error
	RenameContainer(id, name string) error
	UpdateUser(id, name string) error
	DeleteContainer(id string) error
}

// Tracker owns the profile and serializes all mutations to it. One writer at
// a time: manual updates and the practice timer both go through here.
type Tracker struct {
	mu      sync.Mutex
	profile *mastery.Profile
	store   Store
	logger  *zap.Logger
}

// Load reconstructs the profile from the store, or bootstraps a fresh one
// under defaultUsername on first run. The store holds a single user's data;
// when rows exist the first user row is the profile.
func Load(st Store, defaultUsername string, logger *zap.Logger) (*Tracker, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	users, containers, ok, err := st.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load store: %w", err)
	}

	var profile *mastery.Profile
	if !ok || len(users) == 0 {
		profile = mastery.NewProfile(defaultUsername)
		if err := st.InsertUser(profile.ID(), profile.Username()); err != nil {
			return nil, fmt.Errorf("failed to persist new user: %w", err)
		}
		logger.Info("created new profile", zap.String("username", defaultUsername))
	} else {
		profile = mastery.ReconstructProfile(users[0].ID, users[0].Username)
		for _, row := range containers {
			c := mastery.Reconstruct(row.ID, row.Name, row.XPLevel, level.Level(row.Level))
			if err := profile.Attach(c); err != nil {
				return nil, fmt.Errorf("failed to attach container %q: %w", row.Name, err)
			}
		}
		logger.Info("reloaded profile",
			zap.String("username", profile.Username()),
			zap.Int("containers", profile.Len()))
	}

	return &Tracker{profile: profile, store: st, logger: logger}, nil
}

// CreateContainer adds a named container at zero hours and persists it.
func (t *Tracker) CreateContainer(name string) (mastery.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.profile.AddContainer(name)
	if err != nil {
		return mastery.Snapshot{}, err
	}

	snap := c.Snapshot()
	row := store.ContainerRow{
		ID:       snap.ID,
		XPLevel:  snap.Hours,
		Level:    string(snap.Level),
		Name:     snap.Name,
		UserUUID: t.profile.ID(),
	}
	if err := t.store.InsertContainer(row); err != nil {
		t.profile.RemoveContainer(name)
		t.logger.Error("create rolled back", zap.String("name", name), zap.Error(err))
		return mastery.Snapshot{}, fmt.Errorf("failed to persist container: %w", err)
	}

	t.logger.Info("container created", zap.String("name", name))
	return snap, nil
}

// DeleteContainer removes a container from the profile and the store.
func (t *Tracker) DeleteContainer(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.profile.RemoveContainer(name)
	if err != nil {
		return err
	}
	if err := t.store.DeleteContainer(c.ID()); err != nil {
		t.profile.Attach(c)
		t.logger.Error("delete rolled back", zap.String("name", name), zap.Error(err))
		return fmt.Errorf("failed to delete container: %w", err)
	}

	t.logger.Info("container deleted", zap.String("name", name))
	return nil
}

// AddHours accumulates practice time on the named container, clamping the
// total at level.MaxHours, and persists the new state. On a store failure the
// in-memory hours are restored.
func (t *Tracker) AddHours(name string, delta float64) (mastery.Snapshot, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if delta < 0 || math.IsNaN(delta) || math.IsInf(delta, 0) {
		return mastery.Snapshot{}, ErrInvalidDelta
	}

	c, ok := t.profile.Container(name)
	if !ok {
		return mastery.Snapshot{}, mastery.ErrContainerNotFound
	}

	// Clamp the total, not the input: adding past the cap lands exactly on it.
	if c.Hours()+delta > level.MaxHours {
		delta = level.MaxHours - c.Hours()
		if delta < 0 {
			delta = 0
		}
	}

	c.AddHours(delta)
	if err := t.store.UpdateContainer(c.ID(), c.Hours(), string(c.Level())); err != nil {
		c.AddHours(-delta)
		t.logger.Error("update rolled back", zap.String("name", name), zap.Error(err))
		return mastery.Snapshot{}, fmt.Errorf("failed to persist hours: %w", err)
	}

	return c.Snapshot(), nil
}

// AddHoursString parses "hours.minutes" entry-field input and accumulates the
// result. "4000.45" adds 4000 hours and 45 minutes.
func (t *Tracker) AddHoursString(name, text string) (mastery.Snapshot, error) {
	hours, err := timefmt.ParseHoursMinutes(text)
	if err != nil {
		return mastery.Snapshot{}, err
	}
	return t.AddHours(name, hours)
}

// RenameContainer changes a container's display name, keeping its identity
// and hours, and persists the new name.
func (t *Tracker) RenameContainer(oldName, newName string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	c, err := t.profile.RenameContainer(oldName, newName)
	if err != nil {
		return err
	}
	if err := t.store.RenameContainer(c.ID(), newName); err != nil {
		t.profile.RenameContainer(newName, oldName)
		t.logger.Error("rename rolled back", zap.String("name", oldName), zap.Error(err))
		return fmt.Errorf("failed to persist rename: %w", err)
	}

	t.logger.Info("container renamed",
		zap.String("from", oldName), zap.String("to", newName))
	return nil
}

// RenameUser changes the profile's display name and persists it.
func (t *Tracker) RenameUser(name string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	prev := t.profile.Username()
	if err := t.profile.SetUsername(name); err != nil {
		return err
	}
	if err := t.store.UpdateUser(t.profile.ID(), name); err != nil {
		t.profile.SetUsername(prev)
		t.logger.Error("user rename rolled back", zap.Error(err))
		return fmt.Errorf("failed to persist username: %w", err)
	}
	return nil
}

// Snapshot returns value copies of every container, sorted by name, for
// rendering.
func (t *Tracker) Snapshot() []mastery.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snaps := make([]mastery.Snapshot, 0, t.profile.Len())
	t.profile.Each(func(c *mastery.Container) {
		snaps = append(snaps, c.Snapshot())
	})
	sort.Slice(snaps, func(i, j int) bool { return snaps[i].Name < snaps[j].Name })
	return snaps
}

// Username returns the profile's display name.
func (t *Tracker) Username() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.Username()
}

// UserID returns the profile's identity.
func (t *Tracker) UserID() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.profile.ID()
}

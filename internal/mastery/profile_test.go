package mastery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileAddContainer(t *testing.T) {
	p := NewProfile("alex")

	c, err := p.AddContainer("piano")
	require.NoError(t, err)
	require.NotNil(t, c)
	assert.Equal(t, 1, p.Len())

	got, ok := p.Container("piano")
	require.True(t, ok)
	assert.Same(t, c, got)
}

func TestProfileDuplicateRejected(t *testing.T) {
	p := NewProfile("alex")
	first, err := p.AddContainer("piano")
	require.NoError(t, err)

	_, err = p.AddContainer("piano")
	assert.ErrorIs(t, err, ErrContainerExists)

	// Mapping unchanged: still one container, still the first one.
	assert.Equal(t, 1, p.Len())
	got, _ := p.Container("piano")
	assert.Same(t, first, got)
}

func TestProfileEmptyNameRejected(t *testing.T) {
	p := NewProfile("alex")
	_, err := p.AddContainer("")
	assert.ErrorIs(t, err, ErrEmptyName)
	assert.Zero(t, p.Len())
}

func TestProfileRemoveMissing(t *testing.T) {
	p := NewProfile("alex")
	_, err := p.RemoveContainer("nope")
	assert.ErrorIs(t, err, ErrContainerNotFound)
}

func TestProfileRemove(t *testing.T) {
	p := NewProfile("alex")
	c, _ := p.AddContainer("piano")

	removed, err := p.RemoveContainer("piano")
	require.NoError(t, err)
	assert.Same(t, c, removed)
	assert.Zero(t, p.Len())
}

func TestProfileRenameContainerKeepsInvariant(t *testing.T) {
	p := NewProfile("alex")
	_, err := p.AddContainer("piano")
	require.NoError(t, err)

	c, err := p.RenameContainer("piano", "keys")
	require.NoError(t, err)
	assert.Equal(t, "keys", c.Name())

	_, ok := p.Container("piano")
	assert.False(t, ok)
	got, ok := p.Container("keys")
	require.True(t, ok)
	assert.Equal(t, got.Name(), "keys", "map key must equal container name")
}

func TestProfileRenameCollision(t *testing.T) {
	p := NewProfile("alex")
	p.AddContainer("piano")
	p.AddContainer("keys")

	_, err := p.RenameContainer("piano", "keys")
	assert.ErrorIs(t, err, ErrContainerExists)
	assert.Equal(t, 2, p.Len())
}

func TestProfileFreshMapsPerInstance(t *testing.T) {
	a := NewProfile("a")
	b := NewProfile("b")
	a.AddContainer("piano")
	assert.Zero(t, b.Len(), "profiles must not share container maps")
	assert.NotEqual(t, a.ID(), b.ID())
}

func TestSetUsername(t *testing.T) {
	p := NewProfile("alex")
	require.NoError(t, p.SetUsername("sam"))
	assert.Equal(t, "sam", p.Username())
	assert.ErrorIs(t, p.SetUsername(""), ErrEmptyName)
}

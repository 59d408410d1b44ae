package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnimatorFlashesPingedTables(t *testing.T) {
	f := newFixture(t)
	quiet := f.table(t)
	pinged := f.table(t)
	_, err := f.reg.SetPing(pinged.ID, true)
	require.NoError(t, err)

	animator := NewAnimator(f.reg)
	animator.Tick()
	animator.Tick()

	pings := f.events.ofType(EventPing)
	require.Len(t, pings, 2)
	for _, p := range pings {
		assert.Equal(t, pinged.ID, p.TableID)
		assert.NotEqual(t, quiet.ID, p.TableID)
	}
	assert.True(t, pings[0].Flash)
	assert.False(t, pings[1].Flash)

	animator.Tick()
	view, err := f.reg.View(pinged.ID)
	require.NoError(t, err)
	assert.True(t, view.Flash)

	quietView, err := f.reg.View(quiet.ID)
	require.NoError(t, err)
	assert.False(t, quietView.Flash)
}

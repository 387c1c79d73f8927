package main

import (
	"testing"

	"fyne.io/fyne/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chrisuehlinger/vibepopper/config"
	"github.com/chrisuehlinger/vibepopper/popper"
)

func TestDemo_TogglesHosts(t *testing.T) {
	d, err := newDemo(config.ViewerConfig{Width: 800, Height: 600}, zap.NewNop())
	require.NoError(t, err)
	reg := d.session.Registry

	tests := []struct {
		key       fyne.KeyName
		placement popper.Placement
	}{
		{fyne.KeyT, popper.Top},
		{fyne.KeyP, popper.Left},
		{fyne.KeyD, popper.Top},
	}
	for _, tt := range tests {
		d.handleKey(tt.key)
		d.session.Settle(0)

		h := d.hosts[tt.key]
		require.True(t, h.Shown(), "%s not shown", h.Kind())
		state, ok := h.Popper().State()
		require.True(t, ok)
		assert.Equal(t, tt.placement, state.Placement, "%s placement", h.Kind())
	}
	assert.Equal(t, 3, reg.Len())

	tip, _ := d.hosts[fyne.KeyT].Popper().State()
	assert.Equal(t, 30.0, tip.Node.X)
	assert.Equal(t, 6.0, tip.Node.Y)

	d.handleKey(fyne.KeyT)
	d.handleKey(fyne.KeyEscape)
	assert.False(t, d.hosts[fyne.KeyT].Shown())
	assert.Equal(t, 2, reg.Len())
}

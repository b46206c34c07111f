package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkstudio/pkg/utils"
)

func TestStudioOverview(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.studio(t, "studioA")
	h.studio(t, "studioB")
	h.artist(t, "artistA", "studioA")
	h.artist(t, "artistB", "studioB")
	h.client(t, "c1", "Ann", "studioA", "artistA")
	h.client(t, "c2", "Bob", "studioA", "")
	h.client(t, "c3", "Cid", "studioB", "artistB")

	_, err := h.assets.AddWannado(ctx, "artistA", pngs(2))
	require.NoError(t, err)
	_, err = h.assets.AddWannado(ctx, "artistB", pngs(1))
	require.NoError(t, err)
	e1, err := h.healing.AddHealingForClient(ctx, "c1", pngs(1), "a")
	require.NoError(t, err)
	_, err = h.healing.AddHealingForClient(ctx, "c2", pngs(1), "b")
	require.NoError(t, err)
	_, err = h.healing.AddHealingForClient(ctx, "c3", pngs(1), "other studio")
	require.NoError(t, err)
	_, err = h.healing.AddHealingResponse(ctx, "c1", e1.ID, "artistA", "looks good")
	require.NoError(t, err)

	ov, err := h.overview.StudioOverview(ctx, "studioA")
	require.NoError(t, err)
	assert.Equal(t, "studioA", ov.Studio.ID)
	assert.EqualValues(t, 1, ov.Counts.Artists)
	assert.EqualValues(t, 2, ov.Counts.Clients)
	assert.EqualValues(t, 1, ov.Counts.UnassignedCount)
	assert.EqualValues(t, 2, ov.Counts.Wannado)
	assert.EqualValues(t, 2, ov.Counts.HealingEntries)
	assert.EqualValues(t, 1, ov.Counts.OpenHealing)

	require.Len(t, ov.Artists, 1)
	require.Len(t, ov.Clients, 2)
	assert.Equal(t, "Ann", ov.Clients[0].Name)
	assert.Len(t, ov.Wannado, 2)
	require.Len(t, ov.Healing, 2)
	assert.Equal(t, "b", ov.Healing[0].Comment)
	assert.Equal(t, "Bob", ov.Healing[0].ClientName)

	_, err = h.overview.StudioOverview(ctx, "nowhere")
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

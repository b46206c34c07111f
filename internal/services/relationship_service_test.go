package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkstudio/internal/models/db_models"
	"inkstudio/pkg/utils"
)

func clientIDs(t *testing.T, h *harness, artistID string) []string {
	t.Helper()
	list, err := h.relationship.ListArtistClients(context.Background(), artistID)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, c := range list {
		ids = append(ids, c.ID)
	}
	return ids
}

func TestScenarioA_RegisterAndAssign(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.studio(t, "studioA")

	_, err := h.identity.CreateArtist(ctx, "artistA", "", "devpass", "")
	require.NoError(t, err)
	_, err = h.identity.CreateClient(ctx, "clientA", "", "devpass", "studioA", "")
	require.NoError(t, err)

	require.NoError(t, h.relationship.AssignClientToArtist(ctx, "", "clientA", "artistA"))

	list, err := h.relationship.ListArtistClients(ctx, "artistA")
	require.NoError(t, err)
	require.Len(t, list, 1)
	stored, err := h.identity.GetClient(ctx, "clientA")
	require.NoError(t, err)
	assert.Equal(t, stored.Name, list[0].Name)
}

func TestReassignmentMovesClient(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.studio(t, "studioA")
	h.artist(t, "a1", "studioA")
	h.artist(t, "a2", "studioA")
	h.client(t, "c", "Cee", "studioA", "a1")
	h.client(t, "other", "Other", "studioA", "a1")

	assert.Contains(t, clientIDs(t, h, "a1"), "c")
	require.NoError(t, h.relationship.AssignClientToArtist(ctx, "studioA", "c", "a2"))

	assert.NotContains(t, clientIDs(t, h, "a1"), "c")
	assert.Contains(t, clientIDs(t, h, "a1"), "other")
	assert.Equal(t, []string{"c"}, clientIDs(t, h, "a2"))
}

func TestAssign_TenantChecks(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.studio(t, "studioA")
	h.studio(t, "studioB")
	h.artist(t, "artistA", "studioA")
	h.artist(t, "artistB", "studioB")
	h.artist(t, "freelancer", "")
	h.client(t, "clientA", "", "studioA", "")
	h.client(t, "walkin", "", "", "")

	assert.ErrorIs(t, h.relationship.AssignClientToArtist(ctx, "", "clientA", "artistB"), utils.ErrTenantMismatch)
	assert.ErrorIs(t, h.relationship.AssignClientToArtist(ctx, "studioB", "clientA", "artistA"), utils.ErrTenantMismatch)
	assert.ErrorIs(t, h.relationship.AssignClientToArtist(ctx, "studioB", "walkin", "artistA"), utils.ErrTenantMismatch)
	assert.ErrorIs(t, h.relationship.AssignClientToArtist(ctx, "studioA", "clientA", "artistB"), utils.ErrValidation,
		"tenant mismatch is a validation failure")

	assert.NoError(t, h.relationship.AssignClientToArtist(ctx, "studioA", "clientA", "freelancer"))
	assert.NoError(t, h.relationship.AssignClientToArtist(ctx, "", "walkin", "artistB"))

	assert.ErrorIs(t, h.relationship.AssignClientToArtist(ctx, "", "ghost", "artistA"), utils.ErrNotFound)
	assert.ErrorIs(t, h.relationship.AssignClientToArtist(ctx, "", "clientA", "ghost"), utils.ErrNotFound)
	assert.ErrorIs(t, h.relationship.AssignClientToArtist(ctx, "", "", "artistA"), utils.ErrValidation)

	// The rejected assignment left the previous one intact.
	assert.Equal(t, []string{"clientA"}, clientIDs(t, h, "freelancer"))
}

func TestRosters(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.studio(t, "studioA")
	h.studio(t, "studioB")
	h.client(t, "c1", "Zoe", "studioA", "")
	h.client(t, "c2", "Abe", "studioA", "")
	h.client(t, "c3", "Kim", "studioB", "")
	h.artist(t, "a1", "studioB")

	studioA := "studioA"
	scoped, err := h.relationship.ListStudioClients(ctx, &studioA)
	require.NoError(t, err)
	require.Len(t, scoped, 2)
	assert.Equal(t, "Abe", scoped[0].Name)

	global, err := h.relationship.ListStudioClients(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, global, 3)

	artists, err := h.relationship.ListArtists(ctx, &studioA)
	require.NoError(t, err)
	assert.Empty(t, artists)
}

func TestAppointmentsForArtist(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	h.artist(t, "a1", "")
	h.client(t, "c1", "", "", "a1")
	require.NoError(t, h.db.Create(&[]db_models.Appointment{
		{ID: "x2", ClientID: "c1", Date: "2025-06-02", Type: "session"},
		{ID: "x1", ClientID: "c1", Date: "2025-06-01", Type: "consult"},
	}).Error)

	appts, err := h.relationship.ListAppointmentsForArtist(ctx, "a1")
	require.NoError(t, err)
	require.Len(t, appts, 2)
	assert.Equal(t, "x1", appts[0].ID)

	_, err = h.relationship.ListAppointmentsForArtist(ctx, "ghost")
	assert.ErrorIs(t, err, utils.ErrNotFound)

	byClient, err := h.relationship.ListAppointmentsForClient(ctx, "c1")
	require.NoError(t, err)
	assert.Len(t, byClient, 2)
}

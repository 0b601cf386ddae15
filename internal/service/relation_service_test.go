package service

import (
	"context"
	"testing"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelationCreateAndDuplicate(t *testing.T) {
	gw := newFakeRelationGW()
	svc := NewRelationService(gw)
	ctx := context.Background()

	customerID, managerID := uuid.New(), uuid.New()

	_, err := svc.Create(ctx, customerID, managerID)
	require.NoError(t, err)

	_, err = svc.Create(ctx, customerID, managerID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindConflict, apperr.KindOf(err))
}

func TestBulkAssignAggregatesOutcomes(t *testing.T) {
	gw := newFakeRelationGW()
	svc := NewRelationService(gw)
	ctx := context.Background()

	managerID := uuid.New()
	ids := make([]uuid.UUID, 5)
	for i := range ids {
		ids[i] = uuid.New()
	}

	// Two of the five pairs already exist.
	for _, id := range ids[:2] {
		_, err := svc.Create(ctx, id, managerID)
		require.NoError(t, err)
	}

	resp, err := svc.BulkAssign(ctx, managerID, ids)
	require.NoError(t, err)
	assert.Equal(t, 3, resp.Created)
	assert.Equal(t, 2, resp.Duplicate)
	assert.Equal(t, 0, resp.Failed)
	assert.True(t, resp.Success)
}

func TestBulkAssignAllDuplicatesStillSucceeds(t *testing.T) {
	gw := newFakeRelationGW()
	svc := NewRelationService(gw)
	ctx := context.Background()

	managerID := uuid.New()
	customerID := uuid.New()
	_, err := svc.Create(ctx, customerID, managerID)
	require.NoError(t, err)

	resp, err := svc.BulkAssign(ctx, managerID, []uuid.UUID{customerID})
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Created)
	assert.Equal(t, 1, resp.Duplicate)
	assert.True(t, resp.Success)
}

func TestListCustomerIDsForManager(t *testing.T) {
	gw := newFakeRelationGW()
	svc := NewRelationService(gw)
	ctx := context.Background()

	managerID, otherManagerID := uuid.New(), uuid.New()
	mine := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	for _, id := range mine {
		_, err := svc.Create(ctx, id, managerID)
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, uuid.New(), otherManagerID)
	require.NoError(t, err)

	ids, err := svc.ListCustomerIDsForManager(ctx, managerID)
	require.NoError(t, err)
	assert.ElementsMatch(t, mine, ids)

	// A manager with no assignments resolves to an empty set, not an error.
	ids, err = svc.ListCustomerIDsForManager(ctx, uuid.New())
	require.NoError(t, err)
	assert.Empty(t, ids)
}

package service

import (
	"context"
	"testing"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveScopeUnrestrictedRoles(t *testing.T) {
	gw := newFakeRelationGW()
	svc := NewScopeService(NewRelationService(gw), nil)
	ctx := context.Background()

	// Registry content is irrelevant for privileged roles.
	employeeID := uuid.New()
	_, err := gw.Create(ctx, uuid.New(), employeeID)
	require.NoError(t, err)

	for _, role := range []model.Role{
		model.RoleManager, model.RoleDeveloper, model.RoleFinanceManager, model.RoleSaleManager,
	} {
		scope, err := svc.ResolveScope(ctx, role, employeeID)
		require.NoError(t, err, "role %s", role)
		assert.True(t, scope.Unrestricted())
		assert.True(t, scope.Allows(uuid.New()))
	}
}

func TestResolveScopeMarketer(t *testing.T) {
	gw := newFakeRelationGW()
	svc := NewScopeService(NewRelationService(gw), nil)
	ctx := context.Background()

	marketerID := uuid.New()
	assigned := uuid.New()
	_, err := gw.Create(ctx, assigned, marketerID)
	require.NoError(t, err)

	scope, err := svc.ResolveScope(ctx, model.RoleMarketer, marketerID)
	require.NoError(t, err)
	assert.False(t, scope.Unrestricted())
	assert.True(t, scope.Allows(assigned))
	assert.False(t, scope.Allows(uuid.New()))

	// A marketer with no relations gets an empty restricted scope.
	scope, err = svc.ResolveScope(ctx, model.RoleMarketer, uuid.New())
	require.NoError(t, err)
	assert.False(t, scope.Unrestricted())
	assert.True(t, scope.Empty())
}

func TestResolveScopeCustomerDenied(t *testing.T) {
	svc := NewScopeService(NewRelationService(newFakeRelationGW()), nil)
	_, err := svc.ResolveScope(context.Background(), model.RoleCustomer, uuid.New())
	require.Error(t, err)
}

func TestApplyScope(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	// Unrestricted passes the base filter through, including nil.
	ids, none := ApplyScope(model.UnrestrictedScope(), nil)
	assert.Nil(t, ids)
	assert.False(t, none)
	ids, none = ApplyScope(model.UnrestrictedScope(), []uuid.UUID{a})
	assert.Equal(t, []uuid.UUID{a}, ids)
	assert.False(t, none)

	// Empty restricted scope short-circuits: no query at all.
	_, none = ApplyScope(model.RestrictedScope(nil), nil)
	assert.True(t, none)
	_, none = ApplyScope(model.RestrictedScope(nil), []uuid.UUID{a})
	assert.True(t, none)

	// Restricted with no base returns the whole scope set.
	scope := model.RestrictedScope([]uuid.UUID{a, b})
	ids, none = ApplyScope(scope, nil)
	assert.ElementsMatch(t, []uuid.UUID{a, b}, ids)
	assert.False(t, none)

	// Intersection with the base filter.
	ids, none = ApplyScope(scope, []uuid.UUID{b, c})
	assert.Equal(t, []uuid.UUID{b}, ids)
	assert.False(t, none)

	// Disjoint base: nothing can match, skip the query.
	_, none = ApplyScope(scope, []uuid.UUID{c})
	assert.True(t, none)
}

func TestVisibleSections(t *testing.T) {
	svc := NewScopeService(NewRelationService(newFakeRelationGW()), nil)

	assert.Nil(t, svc.VisibleSections(model.RoleCustomer))

	marketer := svc.VisibleSections(model.RoleMarketer)
	assert.Contains(t, marketer, SectionCheques)
	assert.NotContains(t, marketer, SectionEmployees)

	manager := svc.VisibleSections(model.RoleManager)
	assert.Contains(t, manager, SectionEmployees)
	assert.Contains(t, manager, SectionSettings)
}

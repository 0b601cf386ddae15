package service

import (
	"context"
	"testing"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerFixture() (CustomerService, *fakeCustomerGW, *model.CustomerUser, *model.CustomerUser) {
	reza := &model.CustomerUser{ID: uuid.New(), FirstName: "Reza", LastName: "Mohammadi", Active: true}
	sara := &model.CustomerUser{ID: uuid.New(), FirstName: "Sara", LastName: "Karimi", Active: true}
	gw := newFakeCustomerGW(reza, sara)
	return NewCustomerService(gw), gw, reza, sara
}

func TestCustomerGetScoped(t *testing.T) {
	svc, _, reza, _ := customerFixture()
	ctx := context.Background()

	resp, err := svc.Get(ctx, model.RestrictedScope([]uuid.UUID{reza.ID}), reza.ID)
	require.NoError(t, err)
	assert.Equal(t, reza.ID.String(), resp.ID)

	// Out of scope reads as absent, not forbidden.
	_, err = svc.Get(ctx, model.RestrictedScope([]uuid.UUID{uuid.New()}), reza.ID)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestCustomerTypeaheadFlush(t *testing.T) {
	svc, _, reza, sara := customerFixture()
	ctx := context.Background()
	caller := uuid.New()

	resp, err := svc.Typeahead(ctx, model.UnrestrictedScope(), caller, "reza", true)
	require.NoError(t, err)
	assert.Equal(t, "reza", resp.Query)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, reza.ID.String(), resp.Data[0].ID)

	// A later query supersedes: higher sequence, its own rows.
	resp2, err := svc.Typeahead(ctx, model.UnrestrictedScope(), caller, "sara", true)
	require.NoError(t, err)
	assert.Greater(t, resp2.Seq, resp.Seq)
	require.Len(t, resp2.Data, 1)
	assert.Equal(t, sara.ID.String(), resp2.Data[0].ID)
}

func TestCustomerTypeaheadDebounced(t *testing.T) {
	// Without flush the lookup fires after the debounce window and still
	// delivers the submitted query's rows.
	svc, _, _, sara := customerFixture()

	resp, err := svc.Typeahead(context.Background(), model.UnrestrictedScope(), uuid.New(), "karimi", false)
	require.NoError(t, err)
	assert.Equal(t, "karimi", resp.Query)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, sara.ID.String(), resp.Data[0].ID)
}

func TestCustomerTypeaheadScoped(t *testing.T) {
	svc, gw, reza, _ := customerFixture()
	ctx := context.Background()
	caller := uuid.New()

	// An empty restricted set short-circuits before the gateway.
	resp, err := svc.Typeahead(ctx, model.RestrictedScope(nil), caller, "reza", true)
	require.NoError(t, err)
	assert.Empty(t, resp.Data)
	assert.Equal(t, 0, gw.countListCalls())

	// Restricted to one customer: only that customer matches, even for a
	// fragment both names contain.
	resp, err = svc.Typeahead(ctx, model.RestrictedScope([]uuid.UUID{reza.ID}), caller, "a", true)
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, reza.ID.String(), resp.Data[0].ID)
}

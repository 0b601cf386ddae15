package service

import (
	"context"
	"testing"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/dto"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chequeFixture(t *testing.T) (ChequeService, *fakeChequeGW, *fakeChequeLogGW, *model.CustomerUser, *model.Employee) {
	t.Helper()
	customer := &model.CustomerUser{ID: uuid.New(), FirstName: "Sara", LastName: "Karimi"}
	manager := &model.Employee{ID: uuid.New(), Role: model.RoleSaleManager, Active: true}

	chequeGW := newFakeChequeGW()
	logGW := newFakeChequeLogGW()
	svc := NewChequeService(chequeGW, logGW, newFakeCustomerGW(customer), newFakeEmployeeGW(manager), nil)
	return svc, chequeGW, logGW, customer, manager
}

func validCreateReq(customer *model.CustomerUser, manager *model.Employee) dto.CreateChequeRequest {
	return dto.CreateChequeRequest{
		Number:     "123456",
		IssueDate:  "14030615",
		FaceAmount: 500_000,
		Bank:       "mellat",
		CustomerID: customer.ID.String(),
		ManagerID:  manager.ID.String(),
	}
}

func TestChequeCreate(t *testing.T) {
	svc, _, logGW, customer, manager := chequeFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateReq(customer, manager))
	require.NoError(t, err)
	assert.Equal(t, "created", resp.Status)
	assert.Equal(t, "14030615", resp.IssueDate)
	assert.Equal(t, "1403/06/15", displayASCII(resp.IssueDateFa))

	// Registration writes exactly one audit entry.
	assert.Len(t, logGW.entries, 1)
	assert.Equal(t, model.ChequeCreated, logGW.entries[0].Status)
}

// displayASCII transcodes local digits back to ASCII for assertions.
func displayASCII(s string) string {
	out := make([]rune, 0, len(s))
	for _, r := range s {
		if r >= '۰' && r <= '۹' {
			r = '0' + (r - '۰')
		}
		out = append(out, r)
	}
	return string(out)
}

func TestChequeCreateLocalDigits(t *testing.T) {
	svc, _, _, customer, manager := chequeFixture(t)

	req := validCreateReq(customer, manager)
	req.Number = "۱۲۳۴۵۶"
	req.IssueDate = "۱۴۰۳۰۶۱۵"

	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "123456", resp.Number)
	assert.Equal(t, "14030615", resp.IssueDate)
}

func TestChequeCreateRejectsBadInput(t *testing.T) {
	svc, _, _, customer, manager := chequeFixture(t)
	ctx := context.Background()

	cases := []struct {
		name   string
		mutate func(*dto.CreateChequeRequest)
	}{
		{"bad date", func(r *dto.CreateChequeRequest) { r.IssueDate = "14031301" }},
		{"impossible day", func(r *dto.CreateChequeRequest) { r.IssueDate = "14031230" }},
		{"zero amount", func(r *dto.CreateChequeRequest) { r.FaceAmount = 0 }},
		{"unknown bank", func(r *dto.CreateChequeRequest) { r.Bank = "chase" }},
		{"empty number", func(r *dto.CreateChequeRequest) { r.Number = "" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validCreateReq(customer, manager)
			tc.mutate(&req)
			_, err := svc.Create(ctx, req)
			require.Error(t, err)
			assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
		})
	}
}

func TestChequeCreateUnknownCustomer(t *testing.T) {
	svc, _, _, customer, manager := chequeFixture(t)

	req := validCreateReq(customer, manager)
	req.CustomerID = uuid.NewString()
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
}

func TestChequeStatusTransitions(t *testing.T) {
	svc, _, logGW, customer, manager := chequeFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateReq(customer, manager))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.UpdateStatus(ctx, id, dto.UpdateChequeStatusRequest{Status: "passed", Comment: "cleared by bank"})
	require.NoError(t, err)

	// A terminal cheque accepts no further status change, not even to the
	// same status.
	for _, next := range []string{"rejected", "canceled", "passed", "created"} {
		_, err = svc.UpdateStatus(ctx, id, dto.UpdateChequeStatusRequest{Status: next, Comment: "should fail"})
		require.Error(t, err, "transition to %s", next)
		assert.Equal(t, apperr.KindInvalidState, apperr.KindOf(err))
	}

	// One entry for registration, one for the single successful transition.
	assert.Len(t, logGW.entries, 2)
}

func TestChequeToggleSayyadiOnTerminal(t *testing.T) {
	svc, chequeGW, logGW, customer, manager := chequeFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateReq(customer, manager))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.UpdateStatus(ctx, id, dto.UpdateChequeStatusRequest{Status: "canceled", Comment: "void"})
	require.NoError(t, err)

	// Sayyadi stays togglable after the lifecycle is closed.
	entry, err := svc.ToggleSayyadi(ctx, id, dto.ToggleSayyadiRequest{Sayyadi: true})
	require.NoError(t, err)
	assert.True(t, entry.Sayyadi)
	assert.True(t, chequeGW.cheques[id].Sayyadi)
	assert.Len(t, logGW.entries, 3)
}

func TestChequeHistoryReverseChronological(t *testing.T) {
	svc, _, _, customer, manager := chequeFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateReq(customer, manager))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	_, err = svc.ToggleSayyadi(ctx, id, dto.ToggleSayyadiRequest{Sayyadi: true})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, id, dto.UpdateChequeStatusRequest{Status: "rejected", Comment: "insufficient funds"})
	require.NoError(t, err)

	history, err := svc.History(ctx, model.UnrestrictedScope(), id)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, "rejected", history[0].Status)
	assert.Equal(t, "insufficient funds", history[0].Comment)
	assert.Equal(t, "cheque registered", history[2].Comment)
	assert.True(t, history[0].CreatedAt > history[1].CreatedAt)
	assert.True(t, history[1].CreatedAt > history[2].CreatedAt)
}

func TestChequeListScoped(t *testing.T) {
	svc, _, _, customer, manager := chequeFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, validCreateReq(customer, manager))
	require.NoError(t, err)

	// Restricted to the cheque's customer: visible.
	list, err := svc.List(ctx, model.RestrictedScope([]uuid.UUID{customer.ID}), dto.ChequeFilter{PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(1), list.Count)

	// Restricted to an empty set: no results and no gateway query.
	list, err = svc.List(ctx, model.RestrictedScope(nil), dto.ChequeFilter{PageSize: 20})
	require.NoError(t, err)
	assert.Equal(t, int64(0), list.Count)
	assert.Empty(t, list.Data)
}

func TestChequeHistoryScoped(t *testing.T) {
	svc, _, _, customer, manager := chequeFixture(t)
	ctx := context.Background()

	resp, err := svc.Create(ctx, validCreateReq(customer, manager))
	require.NoError(t, err)
	id := uuid.MustParse(resp.ID)

	// The audit log of a cheque outside the caller's customer set reads as
	// absent, exactly like Get.
	_, err = svc.History(ctx, model.RestrictedScope([]uuid.UUID{uuid.New()}), id)
	require.Error(t, err)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))

	history, err := svc.History(ctx, model.RestrictedScope([]uuid.UUID{customer.ID}), id)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

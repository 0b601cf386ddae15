package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/apperr"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/gateway"
	"github.com/Pazh/alami-b2b-admin-sub000/internal/model"

	"github.com/google/uuid"
)

// In-memory gateway fakes. Each mirrors the remote data service closely
// enough for service-level behavior: ids are minted on create, lookups
// return the not-found kind, and the cheque-link fake enforces nothing —
// uniqueness is the reconciler's job, which is exactly what the tests exercise.

type fakeChequeGW struct {
	mu      sync.Mutex
	cheques map[uuid.UUID]*model.Cheque
	deleted []uuid.UUID
}

func newFakeChequeGW() *fakeChequeGW {
	return &fakeChequeGW{cheques: map[uuid.UUID]*model.Cheque{}}
}

func (f *fakeChequeGW) Create(_ context.Context, c *model.Cheque) (*model.Cheque, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	cp.ID = uuid.New()
	cp.CreatedAt = time.Now()
	f.cheques[cp.ID] = &cp
	out := cp
	return &out, nil
}

func (f *fakeChequeGW) FindByID(_ context.Context, id uuid.UUID) (*model.Cheque, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cheques[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "cheque not found")
	}
	cp := *c
	return &cp, nil
}

func (f *fakeChequeGW) UpdateStatus(_ context.Context, id uuid.UUID, status model.ChequeStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cheques[id]
	if !ok {
		return apperr.New(apperr.KindNotFound, "cheque not found")
	}
	c.Status = status
	return nil
}

func (f *fakeChequeGW) UpdateSayyadi(_ context.Context, id uuid.UUID, sayyadi bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.cheques[id]
	if !ok {
		return apperr.New(apperr.KindNotFound, "cheque not found")
	}
	c.Sayyadi = sayyadi
	return nil
}

func (f *fakeChequeGW) Delete(_ context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.cheques, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeChequeGW) List(_ context.Context, q gateway.ChequeQuery, _ gateway.Page) ([]model.Cheque, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Cheque
	for _, c := range f.cheques {
		if q.Status != "" && string(c.Status) != q.Status {
			continue
		}
		if len(q.CustomerIDs) > 0 && !containsID(q.CustomerIDs, c.CustomerID) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func containsID(ids []uuid.UUID, id uuid.UUID) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}

type fakeChequeLogGW struct {
	mu      sync.Mutex
	entries []model.ChequeLogEntry
	clock   time.Time
}

func newFakeChequeLogGW() *fakeChequeLogGW {
	return &fakeChequeLogGW{clock: time.Now()}
}

func (f *fakeChequeLogGW) Append(_ context.Context, e *model.ChequeLogEntry) (*model.ChequeLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *e
	cp.ID = uuid.New()
	f.clock = f.clock.Add(time.Second)
	cp.CreatedAt = f.clock
	f.entries = append(f.entries, cp)
	out := cp
	return &out, nil
}

func (f *fakeChequeLogGW) ListByCheque(_ context.Context, chequeID uuid.UUID, _ gateway.Page) ([]model.ChequeLogEntry, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ChequeLogEntry
	for _, e := range f.entries {
		if e.ChequeID == chequeID {
			out = append(out, e)
		}
	}
	return out, int64(len(out)), nil
}

type fakeCustomerGW struct {
	mu        sync.Mutex
	customers map[uuid.UUID]*model.CustomerUser
	listCalls int
}

func newFakeCustomerGW(customers ...*model.CustomerUser) *fakeCustomerGW {
	f := &fakeCustomerGW{customers: map[uuid.UUID]*model.CustomerUser{}}
	for _, c := range customers {
		f.customers[c.ID] = c
	}
	return f
}

func (f *fakeCustomerGW) FindByID(_ context.Context, id uuid.UUID) (*model.CustomerUser, error) {
	c, ok := f.customers[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "customer not found")
	}
	return c, nil
}

func (f *fakeCustomerGW) List(_ context.Context, q gateway.CustomerQuery, _ gateway.Page) ([]model.CustomerUser, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	var out []model.CustomerUser
	for _, c := range f.customers {
		if len(q.CustomerIDs) > 0 && !containsID(q.CustomerIDs, c.ID) {
			continue
		}
		if q.Name != "" && !strings.Contains(
			strings.ToLower(c.FirstName+" "+c.LastName), strings.ToLower(q.Name)) {
			continue
		}
		out = append(out, *c)
	}
	return out, int64(len(out)), nil
}

func (f *fakeCustomerGW) countListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

type fakeEmployeeGW struct {
	employees map[uuid.UUID]*model.Employee
}

func newFakeEmployeeGW(employees ...*model.Employee) *fakeEmployeeGW {
	f := &fakeEmployeeGW{employees: map[uuid.UUID]*model.Employee{}}
	for _, e := range employees {
		f.employees[e.ID] = e
	}
	return f
}

func (f *fakeEmployeeGW) FindByID(_ context.Context, id uuid.UUID) (*model.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "employee not found")
	}
	return e, nil
}

type fakeFactorGW struct {
	factors map[uuid.UUID]*model.Factor
}

func newFakeFactorGW(factors ...*model.Factor) *fakeFactorGW {
	f := &fakeFactorGW{factors: map[uuid.UUID]*model.Factor{}}
	for _, fac := range factors {
		f.factors[fac.ID] = fac
	}
	return f
}

func (f *fakeFactorGW) FindByID(_ context.Context, id uuid.UUID) (*model.Factor, error) {
	fac, ok := f.factors[id]
	if !ok {
		return nil, apperr.New(apperr.KindNotFound, "factor not found")
	}
	cp := *fac
	return &cp, nil
}

func (f *fakeFactorGW) List(_ context.Context, q gateway.FactorQuery, _ gateway.Page) ([]model.Factor, int64, error) {
	var out []model.Factor
	for _, fac := range f.factors {
		if len(q.CustomerIDs) > 0 && !containsID(q.CustomerIDs, fac.CustomerID) {
			continue
		}
		out = append(out, *fac)
	}
	return out, int64(len(out)), nil
}

type fakeFactorChequeGW struct {
	mu         sync.Mutex
	links      []model.FactorCheque
	failCreate bool // next Create fails with a transport error
}

func newFakeFactorChequeGW() *fakeFactorChequeGW { return &fakeFactorChequeGW{} }

func (f *fakeFactorChequeGW) Create(_ context.Context, factorID, chequeID uuid.UUID) (*model.FactorCheque, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failCreate {
		return nil, apperr.New(apperr.KindTransport, "link create failed")
	}
	link := model.FactorCheque{ID: uuid.New(), FactorID: factorID, ChequeID: chequeID}
	f.links = append(f.links, link)
	return &link, nil
}

func (f *fakeFactorChequeGW) Delete(_ context.Context, linkID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, l := range f.links {
		if l.ID == linkID {
			f.links = append(f.links[:i], f.links[i+1:]...)
			return nil
		}
	}
	return apperr.New(apperr.KindNotFound, "link not found")
}

func (f *fakeFactorChequeGW) ListByFactor(_ context.Context, factorID uuid.UUID) ([]model.FactorCheque, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.FactorCheque
	for _, l := range f.links {
		if l.FactorID == factorID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeFactorChequeGW) FindByCheque(_ context.Context, chequeID uuid.UUID) (*model.FactorCheque, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, l := range f.links {
		if l.ChequeID == chequeID {
			cp := l
			return &cp, nil
		}
	}
	return nil, nil
}

type fakeTransactionGW struct {
	mu  sync.Mutex
	txs []model.Transaction
}

func newFakeTransactionGW() *fakeTransactionGW { return &fakeTransactionGW{} }

func (f *fakeTransactionGW) Create(_ context.Context, t *model.Transaction) (*model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	cp.ID = uuid.New()
	f.txs = append(f.txs, cp)
	out := cp
	return &out, nil
}

func (f *fakeTransactionGW) ListByFactor(_ context.Context, factorID uuid.UUID) ([]model.Transaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.Transaction
	for _, t := range f.txs {
		if t.FactorID == factorID {
			out = append(out, t)
		}
	}
	return out, nil
}

type relationKey struct{ customer, manager uuid.UUID }

type fakeRelationGW struct {
	mu        sync.Mutex
	relations map[relationKey]*model.CustomerRelation
}

func newFakeRelationGW() *fakeRelationGW {
	return &fakeRelationGW{relations: map[relationKey]*model.CustomerRelation{}}
}

func (f *fakeRelationGW) Create(_ context.Context, customerID, managerID uuid.UUID) (*model.CustomerRelation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := relationKey{customerID, managerID}
	if _, exists := f.relations[key]; exists {
		return nil, apperr.New(apperr.KindConflict, "relation already exists")
	}
	rel := &model.CustomerRelation{
		ID:         uuid.New(),
		CustomerID: customerID,
		ManagerID:  managerID,
		CreatedAt:  time.Now(),
	}
	f.relations[key] = rel
	return rel, nil
}

func (f *fakeRelationGW) Delete(_ context.Context, customerID, managerID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := relationKey{customerID, managerID}
	if _, exists := f.relations[key]; !exists {
		return apperr.New(apperr.KindNotFound, "relation not found")
	}
	delete(f.relations, key)
	return nil
}

func (f *fakeRelationGW) List(_ context.Context, q gateway.RelationQuery, page gateway.Page) ([]model.CustomerRelation, int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var all []model.CustomerRelation
	for _, rel := range f.relations {
		if q.ManagerID != nil && rel.ManagerID != *q.ManagerID {
			continue
		}
		all = append(all, *rel)
	}
	// Page in arrival-independent but stable enough order for the drain loop.
	start := page.Index * page.Size
	if start >= len(all) {
		return nil, int64(len(all)), nil
	}
	end := start + page.Size
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], int64(len(all)), nil
}

package model

import "github.com/google/uuid"

// Scope is the customer visibility derived from a role: either unrestricted
// or restricted to an explicit customer-id set (possibly empty).
type Scope struct {
	unrestricted bool
	customerIDs  []uuid.UUID
}

// UnrestrictedScope sees every customer.
func UnrestrictedScope() Scope { return Scope{unrestricted: true} }

// RestrictedScope sees only ids. An empty set is valid and common — it means
// the caller sees nothing, and queries must short-circuit rather than be
// issued with an empty membership predicate.
func RestrictedScope(ids []uuid.UUID) Scope { return Scope{customerIDs: ids} }

// Unrestricted reports whether the scope imposes no customer filter.
func (s Scope) Unrestricted() bool { return s.unrestricted }

// Empty reports whether a restricted scope matches nothing.
func (s Scope) Empty() bool { return !s.unrestricted && len(s.customerIDs) == 0 }

// CustomerIDs returns the restricted id set; nil for unrestricted scopes.
func (s Scope) CustomerIDs() []uuid.UUID {
	if s.unrestricted {
		return nil
	}
	return s.customerIDs
}

// Allows reports whether a customer id falls inside the scope.
func (s Scope) Allows(id uuid.UUID) bool {
	if s.unrestricted {
		return true
	}
	for _, cid := range s.customerIDs {
		if cid == id {
			return true
		}
	}
	return false
}

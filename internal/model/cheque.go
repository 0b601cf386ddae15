package model

import (
	"time"

	"github.com/Pazh/alami-b2b-admin-sub000/internal/jalali"
	"github.com/google/uuid"
)

// ChequeStatus is the lifecycle state of a bank cheque.
// "created" is the only non-terminal status: once a cheque is passed,
// rejected or canceled, no further status write is accepted. (The legacy
// console allowed any status over any other; the strict table is deliberate.)
type ChequeStatus string

const (
	ChequeCreated  ChequeStatus = "created"
	ChequePassed   ChequeStatus = "passed"
	ChequeRejected ChequeStatus = "rejected"
	ChequeCanceled ChequeStatus = "canceled"
)

// Valid reports whether s is a known status.
func (s ChequeStatus) Valid() bool {
	switch s {
	case ChequeCreated, ChequePassed, ChequeRejected, ChequeCanceled:
		return true
	}
	return false
}

// Terminal reports whether s accepts no further status transitions.
func (s ChequeStatus) Terminal() bool { return s != ChequeCreated }

// CanTransitionTo implements the transition table: created → any, terminal → none.
func (s ChequeStatus) CanTransitionTo(next ChequeStatus) bool {
	return s == ChequeCreated && next.Valid()
}

// BankCode identifies the issuing bank.
type BankCode string

const (
	BankMelli       BankCode = "melli"
	BankMellat      BankCode = "mellat"
	BankSaderat     BankCode = "saderat"
	BankSepah       BankCode = "sepah"
	BankTejarat     BankCode = "tejarat"
	BankKeshavarzi  BankCode = "keshavarzi"
	BankMaskan      BankCode = "maskan"
	BankRefah       BankCode = "refah"
	BankParsian     BankCode = "parsian"
	BankPasargad    BankCode = "pasargad"
	BankEghtesad    BankCode = "eghtesadNovin"
	BankSaman       BankCode = "saman"
	BankAyandeh     BankCode = "ayandeh"
	BankShahr       BankCode = "shahr"
	BankPostBank    BankCode = "postBank"
	BankSarmayeh    BankCode = "sarmayeh"
	BankDey         BankCode = "dey"
	BankKarafarin   BankCode = "karafarin"
	BankSina        BankCode = "sina"
	BankGardeshgari BankCode = "gardeshgari"
)

// Valid reports whether b is a known bank.
func (b BankCode) Valid() bool {
	switch b {
	case BankMelli, BankMellat, BankSaderat, BankSepah, BankTejarat,
		BankKeshavarzi, BankMaskan, BankRefah, BankParsian, BankPasargad,
		BankEghtesad, BankSaman, BankAyandeh, BankShahr, BankPostBank,
		BankSarmayeh, BankDey, BankKarafarin, BankSina, BankGardeshgari:
		return true
	}
	return false
}

// Cheque is a bank cheque record. Sayyadi is the regulatory registration
// flag — independent of Status and togglable from any state.
type Cheque struct {
	ID          uuid.UUID      `json:"id"`
	Number      string         `json:"number"`
	IssueDate   jalali.DateKey `json:"issueDate"`
	FaceAmount  int64          `json:"faceAmount"` // rials, no decimal scaling
	Bank        BankCode       `json:"bank"`
	Status      ChequeStatus   `json:"status"`
	Sayyadi     bool           `json:"sayyadi"`
	CustomerID  uuid.UUID      `json:"customerId"`
	ManagerID   uuid.UUID      `json:"managerId"`
	Description *string        `json:"description,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// ChequeLogEntry is one immutable audit record. Every cheque mutation appends
// exactly one entry; entries are never modified or deleted and the log is
// total-ordered by CreatedAt.
type ChequeLogEntry struct {
	ID        uuid.UUID    `json:"id"`
	ChequeID  uuid.UUID    `json:"chequeId"`
	Status    ChequeStatus `json:"status"`
	Sayyadi   bool         `json:"sayyadi"`
	Comment   string       `json:"comment"`
	CreatedAt time.Time    `json:"createdAt"`
	// Cheque is the originating snapshot the data service returns with each
	// log entry; nil on entries built locally.
	Cheque *Cheque `json:"cheque,omitempty"`
}

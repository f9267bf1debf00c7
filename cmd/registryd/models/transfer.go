package models

import "time"

// TransferType distinguishes ownership changes from license grants
type TransferType string

const (
	// TransferFull changes ownership: creator_id moves to the recipient
	// and both creator index entries are updated.
	TransferFull TransferType = "FULL"

	// TransferLicense records a license grant for audit; ownership and
	// the creator index are untouched.
	TransferLicense TransferType = "LICENSE"
)

// Valid reports whether t is a known transfer type
func (t TransferType) Valid() bool {
	return t == TransferFull || t == TransferLicense
}

// Transfer is one immutable entry in an asset's transfer history
type Transfer struct {
	ID           string       `json:"id"`
	FromID       string       `json:"from_id"`
	ToID         string       `json:"to_id"`
	TransferDate time.Time    `json:"transfer_date"`
	TransferType TransferType `json:"transfer_type"`
}

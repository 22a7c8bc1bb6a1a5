package model

import (
	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

const userIDBytes = 16

// NewUserID returns a random account id: a version 4 UUID in base58.
func NewUserID() UserID {
	raw := uuid.New()
	return UserID(base58.Encode(raw[:]))
}

// WellFormed reports whether id decodes to a full UUID. It says nothing about
// whether the account exists.
func (id UserID) WellFormed() bool {
	return len(base58.Decode(string(id))) == userIDBytes
}

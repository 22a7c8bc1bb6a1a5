package model

import "time"

type UserID string // opaque account id, base58 encoded

// Balance maps a token symbol to the quantity held.
type Balance map[string]float64

type User struct {
	ID                 UserID    `db:"ID" json:"uid"`
	CreatedAt          time.Time `db:"CreatedAt" json:"createdAt"`
	Login              string    `db:"Login" json:"login"`
	Password           string    `db:"Password" json:"-"`
	Online             bool      `db:"Online" json:"online"`
	Verified           bool      `db:"Verified" json:"verified"`
	Phone              *string   `db:"Phone" json:"phone,omitempty"`
	Age                *int      `db:"Age" json:"age,omitempty"`
	CardNumber         *string   `db:"CardNumber" json:"-"`
	Geo                *string   `db:"Geo" json:"geo,omitempty"`
	Balance            Balance   `db:"-" json:"balance"`
	TransactionHistory []string  `db:"-" json:"transactionHistory"`
}

// NewUser builds an offline, unverified account holding every seed token at zero.
func NewUser(login, password string, seedTokens []string) *User {
	balance := make(Balance, len(seedTokens))
	for _, token := range seedTokens {
		balance[token] = 0
	}
	return &User{
		ID:                 NewUserID(),
		CreatedAt:          time.Now().UTC(),
		Login:              login,
		Password:           password,
		Balance:            balance,
		TransactionHistory: []string{},
	}
}

// Clone returns a copy that shares no mutable state with u.
// The optional fields are never written through, only replaced.
func (u *User) Clone() *User {
	c := *u
	c.Balance = make(Balance, len(u.Balance))
	for token, amount := range u.Balance {
		c.Balance[token] = amount
	}
	c.TransactionHistory = append(make([]string, 0, len(u.TransactionHistory)), u.TransactionHistory...)
	return &c
}

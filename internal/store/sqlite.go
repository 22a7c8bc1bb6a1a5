package store

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/nrednav/cuid2"
	"uk.co.dudmesh.ledger/internal/model"
)

const userColumns = `ID, CreatedAt, Login, Password, Online, Verified, Phone, Age, CardNumber, Geo`

type sqliteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens a private in-memory database. It is gone once closed.
func NewSQLiteStore() (*sqliteStore, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", cuid2.Generate())
	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// the database lives as long as its last connection
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	store := &sqliteStore{db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return store, nil
}

func (s *sqliteStore) createTables() error {
	_, err := s.db.Exec(`create table if not exists user(
		Seq        integer primary key autoincrement,
		ID         text not null unique,
		CreatedAt  DATETIME not null,
		Login      text not null unique,
		Password   text not null,
		Online     boolean not null default 0,
		Verified   boolean not null default 0,
		Phone      text null,
		Age        integer null,
		CardNumber text null,
		Geo        text null
	)`)
	if err != nil {
		return fmt.Errorf("creating user table: %w", err)
	}

	_, err = s.db.Exec(`create table if not exists balance(
		UserID text not null,
		Token  text not null,
		Amount real not null,
		primary key (UserID, Token)
	)`)
	if err != nil {
		return fmt.Errorf("creating balance table: %w", err)
	}

	_, err = s.db.Exec(`create table if not exists history(
		Seq    integer primary key autoincrement,
		UserID text not null,
		Entry  text not null
	)`)
	if err != nil {
		return fmt.Errorf("creating history table: %w", err)
	}

	return nil
}

func (s *sqliteStore) Close() error {
	return s.db.Close()
}

func (s *sqliteStore) Insert(user *model.User) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	var taken int
	if err := tx.Get(&taken, `select count(*) from user where Login = ?`, user.Login); err != nil {
		return fmt.Errorf("checking login: %w", err)
	}
	if taken > 0 {
		return model.ErrorLoginTaken
	}

	res, err := tx.NamedExec(`insert into user
		(`+userColumns+`)
		values(:ID, :CreatedAt, :Login, :Password, :Online, :Verified, :Phone, :Age, :CardNumber, :Geo)`, user)
	if err != nil {
		return fmt.Errorf("inserting user: %w", err)
	}
	if rows, err := res.RowsAffected(); err != nil {
		return fmt.Errorf("getting rows affected: %w", err)
	} else if rows != 1 {
		return fmt.Errorf("expected 1 row to be affected, got %d", rows)
	}

	if err := writeBalance(tx, user); err != nil {
		return err
	}
	if err := appendHistory(tx, user, 0); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing insert: %w", err)
	}
	return nil
}

func (s *sqliteStore) ByLogin(login string) (*model.User, error) {
	return s.fetch(`select `+userColumns+` from user where Login = ?`, login)
}

func (s *sqliteStore) ByID(id model.UserID) (*model.User, error) {
	return s.fetch(`select `+userColumns+` from user where ID = ?`, id)
}

func (s *sqliteStore) ByPhone(phone string) (*model.User, error) {
	return s.fetch(`select `+userColumns+` from user where Phone = ? order by Seq limit 1`, phone)
}

func (s *sqliteStore) fetch(query string, arg interface{}) (*model.User, error) {
	user := &model.User{}
	err := s.db.Get(user, query, arg)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrorUserNotFound
		}
		return nil, fmt.Errorf("fetching user: %w", err)
	}

	rows := []struct {
		Token  string  `db:"Token"`
		Amount float64 `db:"Amount"`
	}{}
	if err := s.db.Select(&rows, `select Token, Amount from balance where UserID = ?`, user.ID); err != nil {
		return nil, fmt.Errorf("fetching balance: %w", err)
	}
	user.Balance = make(model.Balance, len(rows))
	for _, row := range rows {
		user.Balance[row.Token] = row.Amount
	}

	user.TransactionHistory = []string{}
	if err := s.db.Select(&user.TransactionHistory, `select Entry from history where UserID = ? order by Seq`, user.ID); err != nil {
		return nil, fmt.Errorf("fetching history: %w", err)
	}

	return user, nil
}

func (s *sqliteStore) Update(users ...*model.User) error {
	tx, err := s.db.Beginx()
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	for _, user := range users {
		res, err := tx.NamedExec(`update user set
			Password = :Password, Online = :Online, Verified = :Verified,
			Phone = :Phone, Age = :Age, CardNumber = :CardNumber, Geo = :Geo
			where ID = :ID`, user)
		if err != nil {
			return fmt.Errorf("updating user: %w", err)
		}
		if rows, err := res.RowsAffected(); err != nil {
			return fmt.Errorf("getting rows affected: %w", err)
		} else if rows != 1 {
			return model.ErrorUserNotFound
		}

		if _, err := tx.Exec(`delete from balance where UserID = ?`, user.ID); err != nil {
			return fmt.Errorf("clearing balance: %w", err)
		}
		if err := writeBalance(tx, user); err != nil {
			return err
		}

		var recorded int
		if err := tx.Get(&recorded, `select count(*) from history where UserID = ?`, user.ID); err != nil {
			return fmt.Errorf("counting history: %w", err)
		}
		if err := appendHistory(tx, user, recorded); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing update: %w", err)
	}
	return nil
}

func writeBalance(tx *sqlx.Tx, user *model.User) error {
	for token, amount := range user.Balance {
		_, err := tx.Exec(`insert into balance (UserID, Token, Amount) values(?, ?, ?)`, user.ID, token, amount)
		if err != nil {
			return fmt.Errorf("inserting balance: %w", err)
		}
	}
	return nil
}

// appendHistory stores the entries past the first recorded ones; history is append-only.
func appendHistory(tx *sqlx.Tx, user *model.User, recorded int) error {
	if recorded > len(user.TransactionHistory) {
		return fmt.Errorf("history of %s shrank from %d to %d entries", user.ID, recorded, len(user.TransactionHistory))
	}
	for _, entry := range user.TransactionHistory[recorded:] {
		_, err := tx.Exec(`insert into history (UserID, Entry) values(?, ?)`, user.ID, entry)
		if err != nil {
			return fmt.Errorf("inserting history: %w", err)
		}
	}
	return nil
}

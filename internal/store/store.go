// store.go
//
// Citenote: manuscripts, papers and citations with session authentication
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of citenote.
// citenote is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// citenote is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with citenote.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package store

import (
	"context"
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// ErrDuplicate is returned when an insert or update violates a unique constraint.
var ErrDuplicate = errors.New("duplicate record")

// Store bounds every database interaction with a timeout.
type Store struct {
	db      *gorm.DB
	timeout time.Duration
}

// New wraps db. A non-positive timeout leaves calls bounded only by the caller's context.
func New(db *gorm.DB, timeout time.Duration) *Store {
	return &Store{db: db, timeout: timeout}
}

// DB returns the underlying connection.
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

// Transaction runs fn in a single transaction. Any error rolls it back.
func (s *Store) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	err := s.db.WithContext(ctx).Transaction(fn)
	return timedOut(ctx, err, "transaction")
}

// Read runs fn outside a transaction.
func (s *Store) Read(ctx context.Context, fn func(db *gorm.DB) error) error {
	ctx, cancel := s.bound(ctx)
	defer cancel()

	err := fn(s.db.WithContext(ctx))
	return timedOut(ctx, err, "read")
}

func timedOut(ctx context.Context, err error, op string) error {
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return errors.Wrapf(ctx.Err(), "store: %s timed out", op)
	}
	return err
}

// Lock adds a row-level write lock to the next query.
func Lock(db *gorm.DB) *gorm.DB {
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

// quiet silences record-not-found noise on lookups.
func quiet(db *gorm.DB) *gorm.DB {
	return db.Session(&gorm.Session{Logger: db.Logger.LogMode(logger.Silent)})
}

// FindByField returns the record whose field equals value, or nil when none does.
func FindByField[T any](db *gorm.DB, field string, value interface{}) (*T, error) {
	var rec T
	err := quiet(db).Where(clause.Eq{Column: clause.Column{Name: field}, Value: value}).Take(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "store: find by %s", field)
	}
	return &rec, nil
}

// FindByID returns the record with the given primary key, or nil.
func FindByID[T any](db *gorm.DB, id uint) (*T, error) {
	return FindByField[T](db, "id", id)
}

// ListAll returns every record ordered by primary key.
func ListAll[T any](db *gorm.DB) ([]T, error) {
	var recs []T
	if err := db.Order("id").Find(&recs).Error; err != nil {
		return nil, errors.Wrap(err, "store: list")
	}
	return recs, nil
}

// Create inserts rec, reporting unique violations as ErrDuplicate.
func Create[T any](db *gorm.DB, rec *T) error {
	return classify(db.Create(rec).Error, "create")
}

// Updates applies column changes to the rows matched by db.
func Updates[T any](db *gorm.DB, changes map[string]interface{}) error {
	return classify(db.Model(new(T)).Updates(changes).Error, "update")
}

// Delete removes rec by primary key.
func Delete[T any](db *gorm.DB, rec *T) error {
	return classify(db.Delete(rec).Error, "delete")
}

func classify(err error, op string) error {
	if err == nil {
		return nil
	}
	if IsDuplicate(err) {
		return ErrDuplicate
	}
	return errors.Wrapf(err, "store: %s", op)
}

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return errors.Is(err, ErrDuplicate) || errors.Is(err, gorm.ErrDuplicatedKey)
}

// Package store persists portfolio content: the about and logo singletons,
// categories, images, references and the links between them.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jmoiron/sqlx"
)

// ErrNotFound is returned when a requested entity does not exist.
var ErrNotFound = errors.New("not found")

// Optional carries a partial-update field. Set distinguishes "not supplied"
// from a supplied zero value such as position 0 or is_active false.
type Optional[T any] struct {
	Value T
	Set   bool
}

// Some returns a set Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Value: v, Set: true}
}

// Unset returns an Optional that leaves the stored value untouched.
func Unset[T any]() Optional[T] {
	return Optional[T]{}
}

// Get returns the held value when set, otherwise fallback.
func (o Optional[T]) Get(fallback T) T {
	if o.Set {
		return o.Value
	}
	return fallback
}

// UnmarshalJSON treats an explicit null the same as a missing key.
func (o *Optional[T]) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*o = Optional[T]{}
		return nil
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*o = Some(v)
	return nil
}

// NewIDSet builds an id set, skipping empty strings.
func NewIDSet(ids ...string) mapset.Set[string] {
	s := mapset.NewSet[string]()
	for _, id := range ids {
		if id != "" {
			s.Add(id)
		}
	}
	return s
}

// SortedIDs returns the members of s in lexical order. A nil set is empty.
func SortedIDs(s mapset.Set[string]) []string {
	if s == nil {
		return []string{}
	}
	ids := s.ToSlice()
	slices.Sort(ids)
	return ids
}

// binder is satisfied by both *sqlx.DB and *sqlx.Tx.
type binder interface {
	Rebind(string) string
}

type queryer interface {
	sqlx.QueryerContext
	binder
}

type execer interface {
	sqlx.ExecerContext
	binder
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nextSeq returns the next insertion-order value for table. It must run
// inside the inserting transaction so concurrent writers serialize on it.
func nextSeq(ctx context.Context, tx *sqlx.Tx, table string) (int64, error) {
	var seq int64
	if err := tx.GetContext(ctx, &seq, `SELECT COALESCE(MAX(seq), 0) + 1 FROM `+table); err != nil {
		return 0, fmt.Errorf("next seq for %s: %w", table, err)
	}
	return seq, nil
}

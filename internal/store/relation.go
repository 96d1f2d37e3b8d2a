package store

import (
	"context"
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/jmoiron/sqlx"
)

// Relation is one direction of a many-to-many link table. Writes always
// replace an owner's whole member set inside the caller's transaction.
type Relation struct {
	Table  string
	Owner  string
	Member string
}

var (
	imageCategories = Relation{Table: "image_categories", Owner: "image_id", Member: "category_id"}
	imageReferences = Relation{Table: "reference_images", Owner: "image_id", Member: "reference_id"}
	referenceImages = Relation{Table: "reference_images", Owner: "reference_id", Member: "image_id"}
)

// Replace makes members the exact member set of owner.
func (r Relation) Replace(ctx context.Context, tx *sqlx.Tx, owner string, members mapset.Set[string]) error {
	if err := r.RemoveOwner(ctx, tx, owner); err != nil {
		return err
	}
	for _, m := range SortedIDs(members) {
		_, err := tx.ExecContext(ctx, tx.Rebind(
			`INSERT INTO `+r.Table+` (`+r.Owner+`, `+r.Member+`) VALUES (?, ?)`), owner, m)
		if err != nil {
			return fmt.Errorf("link %s: %w", r.Table, err)
		}
	}
	return nil
}

// Members returns the member set of owner. Duplicate rows collapse.
func (r Relation) Members(ctx context.Context, q queryer, owner string) (mapset.Set[string], error) {
	var ids []string
	err := sqlx.SelectContext(ctx, q, &ids, q.Rebind(
		`SELECT `+r.Member+` FROM `+r.Table+` WHERE `+r.Owner+` = ?`), owner)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.Table, err)
	}
	return NewIDSet(ids...), nil
}

// All loads every owner's member set in one query, for list reads.
func (r Relation) All(ctx context.Context, q queryer) (map[string]mapset.Set[string], error) {
	var rows []struct {
		Owner  string `db:"owner_id"`
		Member string `db:"member_id"`
	}
	err := sqlx.SelectContext(ctx, q, &rows,
		`SELECT `+r.Owner+` AS owner_id, `+r.Member+` AS member_id FROM `+r.Table)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", r.Table, err)
	}
	out := make(map[string]mapset.Set[string])
	for _, row := range rows {
		s, ok := out[row.Owner]
		if !ok {
			s = mapset.NewSet[string]()
			out[row.Owner] = s
		}
		s.Add(row.Member)
	}
	return out, nil
}

// RemoveOwner drops every link row held by owner.
func (r Relation) RemoveOwner(ctx context.Context, e execer, owner string) error {
	_, err := e.ExecContext(ctx, e.Rebind(`DELETE FROM `+r.Table+` WHERE `+r.Owner+` = ?`), owner)
	if err != nil {
		return fmt.Errorf("unlink %s: %w", r.Table, err)
	}
	return nil
}

// RemoveMember drops every link row pointing at member.
func (r Relation) RemoveMember(ctx context.Context, e execer, member string) error {
	_, err := e.ExecContext(ctx, e.Rebind(`DELETE FROM `+r.Table+` WHERE `+r.Member+` = ?`), member)
	if err != nil {
		return fmt.Errorf("unlink %s: %w", r.Table, err)
	}
	return nil
}

// setOrEmpty never hands a nil set to callers.
func setOrEmpty(s mapset.Set[string]) mapset.Set[string] {
	if s == nil {
		return mapset.NewSet[string]()
	}
	return s
}

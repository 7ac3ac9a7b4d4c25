package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/example/drillbot/pkg/models"
)

// ListRepository handles database operations for lists and their entries
type ListRepository struct {
	db *sqlx.DB
	sb sq.StatementBuilderType
}

// NewListRepository creates a repository using the placeholder style of the
// connection's driver.
func NewListRepository(db *sqlx.DB) *ListRepository {
	var ph sq.PlaceholderFormat = sq.Question
	if db.DriverName() == "postgres" {
		ph = sq.Dollar
	}
	return &ListRepository{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(ph),
	}
}

func (r *ListRepository) listQuery() sq.SelectBuilder {
	return r.sb.
		Select("l.id", "l.name", "l.created_at", "COUNT(e.id) AS entry_count").
		From("lists l").
		LeftJoin("entries e ON e.list_id = l.id").
		GroupBy("l.id", "l.name", "l.created_at")
}

// All returns every list ordered by name
func (r *ListRepository) All(ctx context.Context) ([]models.List, error) {
	query, args, err := r.listQuery().OrderBy("l.name").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	var lists []models.List
	if err := r.db.SelectContext(ctx, &lists, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}
	return lists, nil
}

// ByID returns a list by ID
func (r *ListRepository) ByID(ctx context.Context, id int64) (models.List, error) {
	return r.getOne(ctx, sq.Eq{"l.id": id})
}

// ByName returns a list by its exact name
func (r *ListRepository) ByName(ctx context.Context, name string) (models.List, error) {
	return r.getOne(ctx, sq.Eq{"l.name": name})
}

func (r *ListRepository) getOne(ctx context.Context, where sq.Eq) (models.List, error) {
	var list models.List

	query, args, err := r.listQuery().Where(where).ToSql()
	if err != nil {
		return list, fmt.Errorf("build list query: %w", err)
	}

	if err := r.db.GetContext(ctx, &list, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return list, fmt.Errorf("list %v: %w", where, ErrNotFound)
		}
		return list, fmt.Errorf("failed to get list: %w", err)
	}
	return list, nil
}

// returningID reports whether inserts must return the new ID themselves.
// postgres has no LastInsertId.
func (r *ListRepository) returningID() bool {
	return r.db.DriverName() == "postgres"
}

func (r *ListRepository) createQuery(name string) sq.InsertBuilder {
	insert := r.sb.Insert("lists").Columns("name").Values(name)
	if r.returningID() {
		insert = insert.Suffix("RETURNING id")
	}
	return insert
}

// Create inserts a new, empty list and returns its ID
func (r *ListRepository) Create(ctx context.Context, name string) (int64, error) {
	query, args, err := r.createQuery(name).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	if r.returningID() {
		var id int64
		if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&id); err != nil {
			return 0, fmt.Errorf("failed to create list %q: %w", name, err)
		}
		return id, nil
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("failed to create list %q: %w", name, err)
	}
	return res.LastInsertId()
}

// Entries returns the entries of a list in their original order
func (r *ListRepository) Entries(ctx context.Context, listID int64) ([]models.Entry, error) {
	query, args, err := r.sb.
		Select("id", "list_id", "position", "term", "definition").
		From("entries").
		Where(sq.Eq{"list_id": listID}).
		OrderBy("position", "id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build entries query: %w", err)
	}

	var entries []models.Entry
	if err := r.db.SelectContext(ctx, &entries, query, args...); err != nil {
		return nil, fmt.Errorf("failed to get entries for list %d: %w", listID, err)
	}
	return entries, nil
}

// ReplaceEntries swaps the content of a list in one transaction. Positions
// are assigned from the slice order.
func (r *ListRepository) ReplaceEntries(ctx context.Context, listID int64, entries []models.Entry) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.sb.Delete("entries").Where(sq.Eq{"list_id": listID}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to clear list %d: %w", listID, err)
	}

	if len(entries) > 0 {
		insert := r.sb.Insert("entries").Columns("list_id", "position", "term", "definition")
		for i, e := range entries {
			insert = insert.Values(listID, i, e.Term, e.Definition)
		}
		query, args, err := insert.ToSql()
		if err != nil {
			return fmt.Errorf("build insert: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert entries for list %d: %w", listID, err)
		}
	}

	return tx.Commit()
}

// Delete removes a list and its entries
func (r *ListRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	query, args, err := r.sb.Delete("entries").Where(sq.Eq{"list_id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to delete entries of list %d: %w", id, err)
	}

	query, args, err = r.sb.Delete("lists").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("build delete: %w", err)
	}
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to delete list %d: %w", id, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("list %d: %w", id, ErrNotFound)
	}

	return tx.Commit()
}

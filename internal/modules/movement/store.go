// README: Movement ledger store backed by PostgreSQL.
package movement

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"convoy/internal/types"
)

const insertSQL = `
        INSERT INTO asset_movements (
            asset_id, from_kind, from_name, to_kind, to_name, trip_id, note, created_at
        ) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

// Execer is satisfied by both pgxpool.Pool and pgx.Tx, so ledger inserts can
// join the transaction that performs the matching status write.
type Execer interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// Insert appends one ledger row using the caller's transaction or pool.
func Insert(ctx context.Context, db Execer, r Record) error {
	_, err := db.Exec(ctx, insertSQL, insertArgs(r)...)
	return err
}

// Queue adds the insert for r to a batch, for cascades writing N rows at once.
func Queue(b *pgx.Batch, r Record) {
	b.Queue(insertSQL, insertArgs(r)...)
}

func insertArgs(r Record) []any {
	var tripID *string
	if r.TripID != nil {
		v := string(*r.TripID)
		tripID = &v
	}
	return []any{
		string(r.AssetID),
		string(r.FromKind),
		r.FromName,
		string(r.ToKind),
		r.ToName,
		tripID,
		r.Note,
		r.CreatedAt,
	}
}

type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

func (s *Store) Append(ctx context.Context, r Record) error {
	return Insert(ctx, s.db, r)
}

// ListByAsset returns the most recent movements for an asset, newest first.
func (s *Store) ListByAsset(ctx context.Context, assetID types.ID, limit int) ([]Record, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	rows, err := s.db.Query(ctx, `
        SELECT id, asset_id, from_kind, from_name, to_kind, to_name, trip_id, note, created_at
        FROM asset_movements
        WHERE asset_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2`, string(assetID), limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var r Record
		var tripID sql.NullString
		if err := rows.Scan(
			&r.ID, &r.AssetID, &r.FromKind, &r.FromName, &r.ToKind, &r.ToName,
			&tripID, &r.Note, &r.CreatedAt,
		); err != nil {
			return nil, err
		}
		if tripID.Valid {
			id := types.ID(tripID.String)
			r.TripID = &id
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

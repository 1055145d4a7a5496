package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
	"github.com/PPanwar29/Streamify/internal/domain/repository"
)

// SQLSTATE for unique constraint violations.
const uniqueViolation = "23505"

type FriendRequestRepository struct {
	pool *pgxpool.Pool
}

func NewFriendRequestRepository(pool *pgxpool.Pool) *FriendRequestRepository {
	return &FriendRequestRepository{pool: pool}
}

const requestColumns = `id, sender_id, recipient_id, status, created_at, updated_at`

func scanRequest(row pgx.Row) (*entity.FriendRequest, error) {
	fr := &entity.FriendRequest{}
	if err := row.Scan(&fr.ID, &fr.SenderID, &fr.RecipientID, &fr.Status,
		&fr.CreatedAt, &fr.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return fr, nil
}

func (r *FriendRequestRepository) Create(fr *entity.FriendRequest) error {
	ctx := context.Background()
	if fr.Status == "" {
		fr.Status = entity.RequestStatusPending
	}
	row := r.pool.QueryRow(ctx, `
		INSERT INTO friend_requests (sender_id, recipient_id, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, fr.SenderID, fr.RecipientID, fr.Status)
	if err := row.Scan(&fr.ID, &fr.CreatedAt, &fr.UpdatedAt); err != nil {
		// A concurrent send for the same pair loses the race against the
		// pending-pair unique index.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *FriendRequestRepository) GetByID(id string) (*entity.FriendRequest, error) {
	ctx := context.Background()
	return scanRequest(r.pool.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM friend_requests
		WHERE id = $1
	`, id))
}

// FindBetween matches the pair in either direction so a pending A->B request
// also blocks B->A.
func (r *FriendRequestRepository) FindBetween(a, b string) (*entity.FriendRequest, error) {
	ctx := context.Background()
	fr, err := scanRequest(r.pool.QueryRow(ctx, `
		SELECT `+requestColumns+`
		FROM friend_requests
		WHERE (sender_id = $1 AND recipient_id = $2)
		   OR (sender_id = $2 AND recipient_id = $1)
		LIMIT 1
	`, a, b))
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return fr, err
}

func (r *FriendRequestRepository) UpdateStatus(id, status string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		UPDATE friend_requests
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, status, time.Now(), id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FriendRequestRepository) Delete(id string) error {
	ctx := context.Background()
	res, err := r.pool.Exec(ctx, `
		DELETE FROM friend_requests
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *FriendRequestRepository) ListByRecipient(recipientID, status string) ([]*entity.FriendRequest, error) {
	return r.list(`recipient_id`, recipientID, status)
}

func (r *FriendRequestRepository) ListBySender(senderID, status string) ([]*entity.FriendRequest, error) {
	return r.list(`sender_id`, senderID, status)
}

func (r *FriendRequestRepository) list(column, id, status string) ([]*entity.FriendRequest, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+requestColumns+`
		FROM friend_requests
		WHERE `+column+` = $1 AND status = $2
		ORDER BY created_at DESC
	`, id, status)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	requests := make([]*entity.FriendRequest, 0)
	for rows.Next() {
		fr, err := scanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, fr)
	}
	return requests, rows.Err()
}

var _ repository.FriendRequestRepository = (*FriendRequestRepository)(nil)

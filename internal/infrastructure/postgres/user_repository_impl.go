package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/PPanwar29/Streamify/internal/domain/entity"
	"github.com/PPanwar29/Streamify/internal/domain/repository"
)

const userColumns = `id, fullname, email, password_hash, bio, profile_pic,
	native_language, learning_language, location, is_onboarded, created_at, updated_at`

const userColumnsAliased = `u.id, u.fullname, u.email, u.password_hash, u.bio, u.profile_pic,
	u.native_language, u.learning_language, u.location, u.is_onboarded, u.created_at, u.updated_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func scanUser(row pgx.Row) (*entity.User, error) {
	u := &entity.User{}
	if err := row.Scan(&u.ID, &u.Fullname, &u.Email, &u.Password, &u.Bio, &u.ProfilePic,
		&u.NativeLanguage, &u.LearningLanguage, &u.Location, &u.IsOnboarded,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

func (r *UserRepository) Create(u *entity.User) error {
	ctx := context.Background()
	row := r.pool.QueryRow(ctx, `
		INSERT INTO users (fullname, email, password_hash, profile_pic)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`, u.Fullname, u.Email, u.Password, u.ProfilePic)

	return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserRepository) GetByID(id string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE id = $1
	`, id))
}

func (r *UserRepository) GetByEmail(email string) (*entity.User, error) {
	ctx := context.Background()
	return scanUser(r.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
}

func (r *UserRepository) Update(u *entity.User) error {
	ctx := context.Background()
	u.UpdatedAt = time.Now()

	res, err := r.pool.Exec(ctx, `
		UPDATE users
		SET fullname = $1, bio = $2, profile_pic = $3, native_language = $4,
		    learning_language = $5, location = $6, is_onboarded = $7, updated_at = $8
		WHERE id = $9
	`, u.Fullname, u.Bio, u.ProfilePic, u.NativeLanguage,
		u.LearningLanguage, u.Location, u.IsOnboarded, u.UpdatedAt, u.ID)
	if err != nil {
		return err
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

func (r *UserRepository) AddFriend(userID, friendID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		INSERT INTO friendships (user_id, friend_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, friend_id) DO NOTHING
	`, userID, friendID)
	return err
}

func (r *UserRepository) RemoveFriend(userID, friendID string) error {
	ctx := context.Background()
	_, err := r.pool.Exec(ctx, `
		DELETE FROM friendships
		WHERE user_id = $1 AND friend_id = $2
	`, userID, friendID)
	return err
}

func (r *UserRepository) IsFriend(userID, friendID string) (bool, error) {
	ctx := context.Background()
	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM friendships
			WHERE user_id = $1 AND friend_id = $2
		)
	`, userID, friendID).Scan(&exists)
	return exists, err
}

func (r *UserRepository) ListFriends(userID string) ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumnsAliased+`
		FROM users u
		JOIN friendships f ON f.friend_id = u.id
		WHERE f.user_id = $1
		ORDER BY u.fullname
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func (r *UserRepository) ListRecommended(userID string) ([]*entity.User, error) {
	ctx := context.Background()
	rows, err := r.pool.Query(ctx, `
		SELECT `+userColumnsAliased+`
		FROM users u
		WHERE u.id <> $1
		  AND u.is_onboarded
		  AND NOT EXISTS (
			SELECT 1 FROM friendships f
			WHERE f.user_id = $1 AND f.friend_id = u.id
		  )
		ORDER BY u.created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectUsers(rows)
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	users := make([]*entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

var _ repository.UserRepository = (*UserRepository)(nil)

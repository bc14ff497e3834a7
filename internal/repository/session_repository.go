package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestaoplus/admin-gateway/internal/entity"
)

// SessionRepository is the durable session store. Sessions are keyed by the
// backend bearer token so a browser reload restores the profile without a
// backend round-trip.
type SessionRepository struct {
	db *pgxpool.Pool
}

func NewSessionRepository(pool *pgxpool.Pool) *SessionRepository {
	return &SessionRepository{
		db: pool,
	}
}

type userData struct {
	ID        int64      `json:"id"`
	Name      string     `json:"name"`
	CPF       string     `json:"cpf"`
	BirthDate *time.Time `json:"birthDate,omitempty"`
	Email     string     `json:"email"`
	Phone     string     `json:"phone,omitempty"`
	Role      string     `json:"role"`
	CompanyID *int64     `json:"companyId,omitempty"`
}

func (r *SessionRepository) SaveSession(ctx context.Context, s entity.Session) error {
	data, err := json.Marshal(userData{
		ID:        s.User.ID,
		Name:      s.User.Name,
		CPF:       s.User.CPF,
		BirthDate: s.User.BirthDate,
		Email:     s.User.Email,
		Phone:     s.User.Phone,
		Role:      string(s.User.Role),
		CompanyID: s.User.CompanyID,
	})
	if err != nil {
		return fmt.Errorf("marshal user data: %w", err)
	}

	const q = `
	INSERT INTO sessions (id, token, user_data, expires_at, created_at)
	VALUES ($1, $2, $3, $4, $5)
	ON CONFLICT (token) DO UPDATE
	SET user_data = EXCLUDED.user_data, expires_at = EXCLUDED.expires_at`

	_, err = r.db.Exec(ctx, q, s.ID, s.Token, data, s.ExpiresAt, s.CreatedAt)
	if err != nil {
		return err
	}

	return nil
}

func (r *SessionRepository) SessionByToken(ctx context.Context, token string) (entity.Session, error) {
	q, args, err := sq.Select("id", "token", "user_data", "expires_at", "created_at").
		From("sessions").
		Where(sq.Eq{"token": token}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return entity.Session{}, fmt.Errorf("build query: %w", err)
	}

	var (
		s    entity.Session
		data []byte
	)

	err = r.db.QueryRow(ctx, q, args...).Scan(&s.ID, &s.Token, &data, &s.ExpiresAt, &s.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.Session{}, entity.ErrNotFound
		}

		return entity.Session{}, err
	}

	var u userData

	err = json.Unmarshal(data, &u)
	if err != nil {
		return entity.Session{}, fmt.Errorf("unmarshal user data: %w", err)
	}

	s.User = entity.User{
		ID:        u.ID,
		Name:      u.Name,
		CPF:       u.CPF,
		BirthDate: u.BirthDate,
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      entity.UserRole(u.Role),
		CompanyID: u.CompanyID,
	}

	return s, nil
}

func (r *SessionRepository) DeleteSession(ctx context.Context, token string) error {
	const q = `DELETE FROM sessions WHERE token = $1`

	_, err := r.db.Exec(ctx, q, token)
	if err != nil {
		return err
	}

	return nil
}

func (r *SessionRepository) DeleteByUserID(ctx context.Context, userID int64) error {
	const q = `DELETE FROM sessions WHERE (user_data->>'id')::bigint = $1`

	_, err := r.db.Exec(ctx, q, userID)
	if err != nil {
		return err
	}

	return nil
}

func (r *SessionRepository) CleanExpired(ctx context.Context) error {
	const q = `DELETE FROM sessions WHERE expires_at < NOW()`

	_, err := r.db.Exec(ctx, q)
	if err != nil {
		return err
	}

	return nil
}

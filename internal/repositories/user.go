package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	m "inkfolio/internal/models"
)

var userColumns = []string{
	"id", "name", "email", "encrypted_password", "image",
	"portfolio", "favorites", "created_at", "updated_at",
}

// SQLUserStore persists users in the relational database. Portfolio and
// favorites are stored as JSON text columns so the record keeps its whole
// relationship state in one row; concurrent updates to the same user are
// last-write-wins, which the services layer documents rather than fixes.
type SQLUserStore struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

func NewSQLUserStore(db *sql.DB, driver string) *SQLUserStore {
	return &SQLUserStore{db: db, sb: Builder(driver)}
}

func (s *SQLUserStore) List(ctx context.Context) ([]m.User, error) {
	query, args, err := s.sb.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)

	if err != nil {
		log.Error().Err(err).Msg("Error listing users")
		return nil, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	defer rows.Close()

	users := []m.User{}

	for rows.Next() {
		user, err := scanUser(rows)

		if err != nil {
			return nil, err
		}

		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	return users, nil
}

func (s *SQLUserStore) Get(ctx context.Context, id string) (m.User, error) {
	return s.getBy(ctx, squirrel.Eq{"id": id}, id)
}

func (s *SQLUserStore) GetByName(ctx context.Context, name string) (m.User, error) {
	return s.getBy(ctx, squirrel.Eq{"name": name}, name)
}

func (s *SQLUserStore) getBy(ctx context.Context, cond squirrel.Eq, key string) (m.User, error) {
	query, args, err := s.sb.Select(userColumns...).
		From("users").
		Where(cond).
		Limit(1).
		ToSql()

	if err != nil {
		return m.User{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	user, err := scanUser(s.db.QueryRowContext(ctx, query, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return m.User{}, fmt.Errorf("user %s: %w", key, m.ErrNotFound)
	}

	return user, err
}

func (s *SQLUserStore) Create(ctx context.Context, draft m.User) (m.User, error) {
	now := time.Now()

	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	portfolio, favorites, err := encodeLists(draft.Portfolio, draft.Favorites)

	if err != nil {
		return m.User{}, err
	}

	query, args, err := s.sb.Insert("users").
		Columns(userColumns...).
		Values(draft.ID, draft.Name, draft.Email, draft.EncryptedPassword, draft.Image,
			portfolio, favorites, draft.CreatedAt, draft.UpdatedAt).
		ToSql()

	if err != nil {
		return m.User{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error().Err(err).Str("user", draft.Name).Msg("Error creating user")
		return m.User{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	return s.Get(ctx, draft.ID)
}

func (s *SQLUserStore) Update(ctx context.Context, id string, record m.User) (m.User, error) {
	record.UpdatedAt = time.Now()

	portfolio, favorites, err := encodeLists(record.Portfolio, record.Favorites)

	if err != nil {
		return m.User{}, err
	}

	query, args, err := s.sb.Update("users").
		Set("name", record.Name).
		Set("email", record.Email).
		Set("encrypted_password", record.EncryptedPassword).
		Set("image", record.Image).
		Set("portfolio", portfolio).
		Set("favorites", favorites).
		Set("updated_at", record.UpdatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return m.User{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)

	if err != nil {
		return m.User{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	affected, _ := result.RowsAffected()

	if affected == 0 {
		return m.User{}, fmt.Errorf("user %s: %w", id, m.ErrNotFound)
	}

	return s.Get(ctx, id)
}

func (s *SQLUserStore) Delete(ctx context.Context, id string) error {
	query, args, err := s.sb.Delete("users").Where(squirrel.Eq{"id": id}).ToSql()

	if err != nil {
		return fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)

	if err != nil {
		return fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	affected, _ := result.RowsAffected()

	if affected == 0 {
		return fmt.Errorf("user %s: %w", id, m.ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (m.User, error) {
	var (
		user      m.User
		portfolio string
		favorites string
	)

	err := row.Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.EncryptedPassword,
		&user.Image,
		&portfolio,
		&favorites,
		&user.CreatedAt,
		&user.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m.User{}, err
		}

		return m.User{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	if user.Portfolio, err = decodeList(portfolio); err != nil {
		return m.User{}, err
	}

	if user.Favorites, err = decodeList(favorites); err != nil {
		return m.User{}, err
	}

	return user, nil
}

func encodeLists(portfolio, favorites []string) (string, string, error) {
	p, err := encodeList(portfolio)

	if err != nil {
		return "", "", err
	}

	f, err := encodeList(favorites)

	if err != nil {
		return "", "", err
	}

	return p, f, nil
}

func encodeList(ids []string) (string, error) {
	if ids == nil {
		ids = []string{}
	}

	raw, err := json.Marshal(ids)

	if err != nil {
		return "", fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	return string(raw), nil
}

func decodeList(raw string) ([]string, error) {
	ids := []string{}

	if raw == "" {
		return ids, nil
	}

	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	return ids, nil
}

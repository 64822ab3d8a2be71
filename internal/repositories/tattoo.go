package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	m "inkfolio/internal/models"
)

var tattooColumns = []string{
	"id", "owner_id", "design", "style", "image", "favorites", "created_at", "updated_at",
}

// SQLTattooStore persists tattoos in the relational database.
type SQLTattooStore struct {
	db *sql.DB
	sb squirrel.StatementBuilderType
}

func NewSQLTattooStore(db *sql.DB, driver string) *SQLTattooStore {
	return &SQLTattooStore{db: db, sb: Builder(driver)}
}

func (s *SQLTattooStore) List(ctx context.Context) ([]m.Tattoo, error) {
	query, args, err := s.sb.Select(tattooColumns...).
		From("tattoos").
		OrderBy("created_at ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)

	if err != nil {
		log.Error().Err(err).Msg("Error listing tattoos")
		return nil, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	defer rows.Close()

	tattoos := []m.Tattoo{}

	for rows.Next() {
		tattoo, err := scanTattoo(rows)

		if err != nil {
			return nil, err
		}

		tattoos = append(tattoos, tattoo)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	return tattoos, nil
}

func (s *SQLTattooStore) Get(ctx context.Context, id string) (m.Tattoo, error) {
	query, args, err := s.sb.Select(tattooColumns...).
		From("tattoos").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		return m.Tattoo{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	tattoo, err := scanTattoo(s.db.QueryRowContext(ctx, query, args...))

	if errors.Is(err, sql.ErrNoRows) {
		return m.Tattoo{}, fmt.Errorf("tattoo %s: %w", id, m.ErrNotFound)
	}

	return tattoo, err
}

func (s *SQLTattooStore) Create(ctx context.Context, draft m.Tattoo) (m.Tattoo, error) {
	now := time.Now()

	draft.ID = uuid.NewString()
	draft.CreatedAt = now
	draft.UpdatedAt = now

	query, args, err := s.sb.Insert("tattoos").
		Columns(tattooColumns...).
		Values(draft.ID, draft.Owner, draft.Design, draft.Style, draft.Image,
			draft.Favorites, draft.CreatedAt, draft.UpdatedAt).
		ToSql()

	if err != nil {
		return m.Tattoo{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		log.Error().Err(err).Str("owner", draft.Owner).Msg("Error creating tattoo")
		return m.Tattoo{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	return s.Get(ctx, draft.ID)
}

func (s *SQLTattooStore) Update(ctx context.Context, id string, record m.Tattoo) (m.Tattoo, error) {
	record.UpdatedAt = time.Now()

	query, args, err := s.sb.Update("tattoos").
		Set("design", record.Design).
		Set("style", record.Style).
		Set("image", record.Image).
		Set("favorites", record.Favorites).
		Set("updated_at", record.UpdatedAt).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return m.Tattoo{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)

	if err != nil {
		return m.Tattoo{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	affected, _ := result.RowsAffected()

	if affected == 0 {
		return m.Tattoo{}, fmt.Errorf("tattoo %s: %w", id, m.ErrNotFound)
	}

	return s.Get(ctx, id)
}

func (s *SQLTattooStore) Delete(ctx context.Context, id string) error {
	query, args, err := s.sb.Delete("tattoos").Where(squirrel.Eq{"id": id}).ToSql()

	if err != nil {
		return fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	result, err := s.db.ExecContext(ctx, query, args...)

	if err != nil {
		return fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	affected, _ := result.RowsAffected()

	if affected == 0 {
		return fmt.Errorf("tattoo %s: %w", id, m.ErrNotFound)
	}

	return nil
}

func scanTattoo(row rowScanner) (m.Tattoo, error) {
	var tattoo m.Tattoo

	err := row.Scan(
		&tattoo.ID,
		&tattoo.Owner,
		&tattoo.Design,
		&tattoo.Style,
		&tattoo.Image,
		&tattoo.Favorites,
		&tattoo.CreatedAt,
		&tattoo.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return m.Tattoo{}, err
		}

		return m.Tattoo{}, fmt.Errorf("%w: %v", m.ErrPersistence, err)
	}

	return tattoo, nil
}

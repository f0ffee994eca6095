package player

import (
	"context"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"
)

var ErrBlankName = errors.New("player name is blank")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Upsert resolves a player by case-insensitive name, creating it when absent.
// The unique index on lower(name) makes this a single atomic statement; the
// stored spelling of an existing player is kept.
func (r *repository) Upsert(ctx context.Context, name string) (*Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrBlankName
	}

	query := `
		INSERT INTO players (name)
		VALUES ($1)
		ON CONFLICT ((lower(name))) DO UPDATE SET name = players.name
		RETURNING id, name, email, created_at
	`

	var p Player
	if err := r.db.GetContext(ctx, &p, query, name); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *repository) List(ctx context.Context) ([]Player, error) {
	query := `
		SELECT id, name, email, created_at
		FROM players
		ORDER BY lower(name) ASC
	`

	players := []Player{}
	if err := r.db.SelectContext(ctx, &players, query); err != nil {
		return nil, err
	}

	return players, nil
}

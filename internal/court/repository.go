package court

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type Repository interface {
	List(ctx context.Context) ([]Court, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) List(ctx context.Context) ([]Court, error) {
	query := `
		SELECT id, name, hourly_rate, created_at
		FROM courts
		ORDER BY id ASC
	`

	courts := []Court{}
	if err := r.db.SelectContext(ctx, &courts, query); err != nil {
		return nil, err
	}

	return courts, nil
}

package player

import "context"

type Repository interface {
	Upsert(ctx context.Context, name string) (*Player, error)
	List(ctx context.Context) ([]Player, error)
}

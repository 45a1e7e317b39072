package postgres

import (
	"context"
	"fmt"

	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type ReasonRepository struct {
	pool *pgxpool.Pool
}

func (r *ReasonRepository) List(ctx context.Context) ([]domain.Reason, error) {
	rows, err := r.pool.Query(ctx, `select id, label from reasons order by id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query reasons: %w", err)
	}
	defer rows.Close()

	reasons := make([]domain.Reason, 0, 16)
	for rows.Next() {
		var reason domain.Reason
		if err = rows.Scan(&reason.ID, &reason.Label); err != nil {
			return nil, fmt.Errorf("failed to scan reason: %w", err)
		}
		reasons = append(reasons, reason)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reasons: %w", err)
	}
	return reasons, nil
}

func (r *ReasonRepository) GetByID(ctx context.Context, id int64) (domain.Reason, error) {
	return getReason(ctx, r.pool, id)
}

func NewReasonRepository(pool *pgxpool.Pool) *ReasonRepository {
	return &ReasonRepository{pool: pool}
}

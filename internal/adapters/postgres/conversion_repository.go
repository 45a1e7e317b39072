package postgres

import (
	"context"
	"errors"
	"fmt"

	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// ConversionRepository stores conversions in postgres. Numerics travel as text
// in both directions so no precision is lost on the way.
type ConversionRepository struct {
	pool *pgxpool.Pool
}

func (r *ConversionRepository) Create(ctx context.Context, c domain.Conversion) (domain.StoredConversion, error) {
	const q = `
		insert into conversions (amount, base_currency, target_currency, converted_amount, conversion_rate, reason_id)
		values ($1::numeric, $2, $3, $4::numeric, $5::numeric, $6)
		returning id, created_at;
	`

	stored := domain.StoredConversion{Conversion: c}

	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		if c.ReasonID != nil {
			reason, err := getReason(ctx, tx, *c.ReasonID)
			if err != nil {
				return err
			}
			stored.Reason = &reason
		}

		return tx.QueryRow(ctx, q,
			c.Amount.String(),
			c.BaseCurrency,
			c.TargetCurrency,
			c.ConvertedAmount.String(),
			c.ConversionRate.String(),
			c.ReasonID,
		).Scan(&stored.ID, &stored.CreatedAt)
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindReasonNotFound {
			return domain.StoredConversion{}, err
		}
		return domain.StoredConversion{}, fmt.Errorf("failed to insert conversion %s/%s: %w", c.BaseCurrency, c.TargetCurrency, err)
	}
	return stored, nil
}

func (r *ConversionRepository) ListAll(ctx context.Context) ([]domain.StoredConversion, error) {
	const q = `
		select c.id, c.amount::text, c.base_currency, c.target_currency,
		       c.converted_amount::text, c.conversion_rate::text, c.reason_id, r.label, c.created_at
		from conversions c left join reasons r on r.id = c.reason_id
		order by c.created_at desc, c.id desc;
	`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}
	defer rows.Close()

	conversions := make([]domain.StoredConversion, 0, 64)
	for rows.Next() {
		var (
			sc                      domain.StoredConversion
			amount, converted, rate string
			reasonLabel             *string
		)
		if err = rows.Scan(
			&sc.ID,
			&amount,
			&sc.BaseCurrency,
			&sc.TargetCurrency,
			&converted,
			&rate,
			&sc.ReasonID,
			&reasonLabel,
			&sc.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan conversion: %w", err)
		}
		if sc.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("bad amount for conversion %d: %w", sc.ID, err)
		}
		if sc.ConvertedAmount, err = decimal.NewFromString(converted); err != nil {
			return nil, fmt.Errorf("bad converted amount for conversion %d: %w", sc.ID, err)
		}
		if sc.ConversionRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("bad rate for conversion %d: %w", sc.ID, err)
		}
		if sc.ReasonID != nil && reasonLabel != nil {
			sc.Reason = &domain.Reason{ID: *sc.ReasonID, Label: *reasonLabel}
		}
		conversions = append(conversions, sc)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating conversions: %w", err)
	}
	return conversions, nil
}

func NewConversionRepository(pool *pgxpool.Pool) *ConversionRepository {
	return &ConversionRepository{pool: pool}
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func getReason(ctx context.Context, q querier, id int64) (domain.Reason, error) {
	var reason domain.Reason
	err := q.QueryRow(ctx, `select id, label from reasons where id = $1`, id).Scan(&reason.ID, &reason.Label)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Reason{}, domain.ReasonNotFound(fmt.Sprintf("Reason %d not found", id))
		}
		return domain.Reason{}, fmt.Errorf("failed to select reason %d: %w", id, err)
	}
	return reason, nil
}

package sqlite

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fxconvert/internal/domain"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

var seedReasons = []reasonModel{
	{ID: 1, Label: "Travel"},
	{ID: 2, Label: "Shopping"},
	{ID: 3, Label: "Business"},
	{ID: 4, Label: "Education"},
	{ID: 5, Label: "Investment"},
	{ID: 6, Label: "Other"},
}

type reasonModel struct {
	ID    int64  `gorm:"primaryKey;column:id"`
	Label string `gorm:"uniqueIndex;not null;column:label"`
}

func (reasonModel) TableName() string { return "reasons" }

// Decimals are kept as text columns; decimal.Decimal handles both directions.
type conversionModel struct {
	ID              int64           `gorm:"primaryKey;autoIncrement;column:id"`
	Amount          decimal.Decimal `gorm:"type:text;not null;column:amount"`
	BaseCurrency    string          `gorm:"size:3;not null;column:base_currency"`
	TargetCurrency  string          `gorm:"size:3;not null;column:target_currency"`
	ConvertedAmount decimal.Decimal `gorm:"type:text;not null;column:converted_amount"`
	ConversionRate  decimal.Decimal `gorm:"type:text;not null;column:conversion_rate"`
	ReasonID        *int64          `gorm:"column:reason_id"`
	Reason          *reasonModel    `gorm:"foreignKey:ReasonID"`
	CreatedAt       time.Time       `gorm:"index:conversions_created_at_idx,sort:desc;not null;column:created_at"`
}

func (conversionModel) TableName() string { return "conversions" }

func (m conversionModel) toDomain() domain.StoredConversion {
	sc := domain.StoredConversion{
		Conversion: domain.Conversion{
			Amount:          m.Amount,
			BaseCurrency:    m.BaseCurrency,
			TargetCurrency:  m.TargetCurrency,
			ConvertedAmount: m.ConvertedAmount,
			ConversionRate:  m.ConversionRate,
			ReasonID:        m.ReasonID,
		},
		ID:        m.ID,
		CreatedAt: m.CreatedAt,
	}
	if m.Reason != nil {
		sc.Reason = &domain.Reason{ID: m.Reason.ID, Label: m.Reason.Label}
	}
	return sc
}

// Store is a single-file conversion store for local runs. It implements both
// the conversion and the reason repositories.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// Open creates or opens the database at path and brings its schema up to date.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(path+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite %q failed: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)

	s := &Store{db: db, now: time.Now}
	if err = s.migrate(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlite migrate failed: %w", err)
	}
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	if err := s.db.WithContext(ctx).AutoMigrate(&reasonModel{}, &conversionModel{}); err != nil {
		return err
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(&seedReasons).Error
}

func (s *Store) Create(ctx context.Context, c domain.Conversion) (domain.StoredConversion, error) {
	m := conversionModel{
		Amount:          c.Amount,
		BaseCurrency:    c.BaseCurrency,
		TargetCurrency:  c.TargetCurrency,
		ConvertedAmount: c.ConvertedAmount,
		ConversionRate:  c.ConversionRate,
		ReasonID:        c.ReasonID,
		CreatedAt:       s.now().UTC().Truncate(time.Microsecond),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.ReasonID != nil {
			reason, err := findReason(tx, *c.ReasonID)
			if err != nil {
				return err
			}
			m.Reason = &reason
		}
		return tx.Omit(clause.Associations).Create(&m).Error
	})
	if err != nil {
		if domain.KindOf(err) == domain.KindReasonNotFound {
			return domain.StoredConversion{}, err
		}
		return domain.StoredConversion{}, fmt.Errorf("failed to insert conversion %s/%s: %w", c.BaseCurrency, c.TargetCurrency, err)
	}
	return m.toDomain(), nil
}

func (s *Store) ListAll(ctx context.Context) ([]domain.StoredConversion, error) {
	var models []conversionModel
	err := s.db.WithContext(ctx).
		Preload("Reason").
		Order("created_at desc").
		Order("id desc").
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query conversions: %w", err)
	}

	conversions := make([]domain.StoredConversion, 0, len(models))
	for _, m := range models {
		conversions = append(conversions, m.toDomain())
	}
	return conversions, nil
}

func (s *Store) List(ctx context.Context) ([]domain.Reason, error) {
	var models []reasonModel
	if err := s.db.WithContext(ctx).Order("id").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to query reasons: %w", err)
	}
	reasons := make([]domain.Reason, 0, len(models))
	for _, m := range models {
		reasons = append(reasons, domain.Reason{ID: m.ID, Label: m.Label})
	}
	return reasons, nil
}

func (s *Store) GetByID(ctx context.Context, id int64) (domain.Reason, error) {
	m, err := findReason(s.db.WithContext(ctx), id)
	if err != nil {
		return domain.Reason{}, err
	}
	return domain.Reason{ID: m.ID, Label: m.Label}, nil
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func findReason(db *gorm.DB, id int64) (reasonModel, error) {
	var m reasonModel
	if err := db.First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return reasonModel{}, domain.ReasonNotFound(fmt.Sprintf("Reason %d not found", id))
		}
		return reasonModel{}, fmt.Errorf("failed to select reason %d: %w", id, err)
	}
	return m, nil
}

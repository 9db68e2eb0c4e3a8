package store

import (
	"context"

	"backoffice/internal/models"
)

type ChartStore struct {
	db DB
}

func NewChartStore(db DB) *ChartStore {
	return &ChartStore{db: db}
}

func (s *ChartStore) GetByCode(ctx context.Context, code string) (models.ChartAccount, error) {
	var row models.ChartAccount
	err := s.db.GetContext(ctx, &row, `
		SELECT id, code, name, category, is_current, created_at
		FROM chart_of_accounts
		WHERE code = $1
	`, code)
	if err != nil {
		return models.ChartAccount{}, err
	}
	return row, nil
}

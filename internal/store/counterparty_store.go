package store

import (
	"context"

	"backoffice/internal/models"
)

type CounterpartyStore struct {
	db DB
}

func NewCounterpartyStore(db DB) *CounterpartyStore {
	return &CounterpartyStore{db: db}
}

func (s *CounterpartyStore) GetByID(ctx context.Context, counterpartyID string) (models.Counterparty, error) {
	var row models.Counterparty
	err := s.db.GetContext(ctx, &row, `
		SELECT id, name, kind, created_at
		FROM counterparties
		WHERE id = $1
	`, counterpartyID)
	if err != nil {
		return models.Counterparty{}, err
	}
	return row, nil
}

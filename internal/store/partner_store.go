package store

import (
	"context"

	"backoffice/internal/models"
)

type PartnerStore struct {
	db DB
}

func NewPartnerStore(db DB) *PartnerStore {
	return &PartnerStore{db: db}
}

func (s *PartnerStore) List(ctx context.Context) ([]models.Partner, error) {
	var rows []models.Partner
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, name, profit_percentage, created_at
		FROM partners
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

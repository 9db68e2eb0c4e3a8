package store

import "context"

type AuditStore struct {
	db DB
}

func NewAuditStore(db DB) *AuditStore {
	return &AuditStore{db: db}
}

// Log records an operational event: batch registrations and swallowed
// secondary-write failures both land here so the bookkeeping projection can
// be reconciled later.
func (s *AuditStore) Log(ctx context.Context, actorID, action, entityType, entityID, data string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_log (actor_id, action, entity_type, entity_id, data)
		VALUES ($1, $2, $3, $4, $5)
	`, actorID, action, entityType, entityID, data)
	return err
}

func (s *AuditStore) List(ctx context.Context, limit, offset int) ([]map[string]any, error) {
	type row struct {
		ID         int64  `db:"id"`
		ActorID    string `db:"actor_id"`
		Action     string `db:"action"`
		EntityType string `db:"entity_type"`
		EntityID   string `db:"entity_id"`
		Data       string `db:"data"`
		CreatedAt  any    `db:"created_at"`
	}
	var rows []row
	err := s.db.SelectContext(ctx, &rows, `
		SELECT id, actor_id, action, entity_type, entity_id, data, created_at
		FROM audit_log
		ORDER BY id DESC
		LIMIT $1 OFFSET $2
	`, limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]map[string]any, 0, len(rows))
	for _, r := range rows {
		out = append(out, map[string]any{
			"id":          r.ID,
			"actor_id":    r.ActorID,
			"action":      r.Action,
			"entity_type": r.EntityType,
			"entity_id":   r.EntityID,
			"data":        r.Data,
			"created_at":  r.CreatedAt,
		})
	}
	return out, nil
}

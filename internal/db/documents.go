package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/masar-app/masar/internal/types"
)

// SaveCVDocument upserts the single draft a user keeps
func (db *DB) SaveCVDocument(ctx context.Context, userID uuid.UUID, cv *types.CVRecord) error {
	content, err := json.Marshal(cv)
	if err != nil {
		return fmt.Errorf("failed to marshal cv document: %w", err)
	}

	_, err = db.pool.Exec(ctx,
		`INSERT INTO cv_documents (user_id, content)
		 VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET content = $2, updated_at = NOW()`,
		userID, content,
	)
	if err != nil {
		return fmt.Errorf("failed to save cv document: %w", err)
	}
	return nil
}

// GetCVDocument retrieves a user's draft. Returns nil when the user has
// not saved one yet; a corrupt stored document also reads as absent.
func (db *DB) GetCVDocument(ctx context.Context, userID uuid.UUID) (*CVDocument, error) {
	var doc CVDocument
	var content []byte
	var slug *string
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, content, share_slug, updated_at
		 FROM cv_documents WHERE user_id = $1`,
		userID,
	).Scan(&doc.UserID, &content, &slug, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cv document: %w", err)
	}

	if err := json.Unmarshal(content, &doc.Content); err != nil {
		return nil, nil
	}
	if slug != nil {
		doc.ShareSlug = *slug
	}
	return &doc, nil
}

// SetShareSlug publishes a user's draft under a public slug. An empty
// slug unpublishes it.
func (db *DB) SetShareSlug(ctx context.Context, userID uuid.UUID, slug string) error {
	var value *string
	if slug != "" {
		value = &slug
	}
	result, err := db.pool.Exec(ctx,
		`UPDATE cv_documents SET share_slug = $1, updated_at = NOW() WHERE user_id = $2`,
		value, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set share slug: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("no cv document for user: %s", userID)
	}
	return nil
}

// GetCVByShareSlug resolves a public slug to the published document.
// Returns nil when no document carries the slug.
func (db *DB) GetCVByShareSlug(ctx context.Context, slug string) (*CVDocument, error) {
	var doc CVDocument
	var content []byte
	err := db.pool.QueryRow(ctx,
		`SELECT user_id, content, updated_at
		 FROM cv_documents WHERE share_slug = $1`,
		slug,
	).Scan(&doc.UserID, &content, &doc.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cv by slug: %w", err)
	}

	if err := json.Unmarshal(content, &doc.Content); err != nil {
		return nil, nil
	}
	doc.ShareSlug = slug
	return &doc, nil
}

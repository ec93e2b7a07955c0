package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication inserts a job application and returns its ID
func (db *DB) CreateApplication(ctx context.Context, userID uuid.UUID, company, roleTitle, notes string) (uuid.UUID, error) {
	var id uuid.UUID
	err := db.pool.QueryRow(ctx,
		`INSERT INTO job_applications (user_id, company, role_title, notes)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		userID, company, roleTitle, notes,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to create application: %w", err)
	}
	return id, nil
}

// GetApplication retrieves one application. Returns nil when not found.
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*JobApplication, error) {
	var a JobApplication
	err := db.pool.QueryRow(ctx,
		`SELECT id, user_id, company, role_title, status, notes, created_at, updated_at
		 FROM job_applications WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.UserID, &a.Company, &a.RoleTitle, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &a, nil
}

// ListApplications retrieves a user's applications, newest first
func (db *DB) ListApplications(ctx context.Context, userID uuid.UUID) ([]JobApplication, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, user_id, company, role_title, status, notes, created_at, updated_at
		 FROM job_applications WHERE user_id = $1 ORDER BY created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []JobApplication
	for rows.Next() {
		var a JobApplication
		if err := rows.Scan(&a.ID, &a.UserID, &a.Company, &a.RoleTitle, &a.Status, &a.Notes, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, a)
	}
	return apps, nil
}

// UpdateApplicationStatus moves an application through the pipeline
func (db *DB) UpdateApplicationStatus(ctx context.Context, id uuid.UUID, status, notes string) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE job_applications SET status = $1, notes = $2, updated_at = NOW() WHERE id = $3`,
		status, notes, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

// DeleteApplication removes an application
func (db *DB) DeleteApplication(ctx context.Context, id uuid.UUID) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM job_applications WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete application: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", id)
	}
	return nil
}

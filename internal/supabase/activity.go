package supabase

import (
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/Catacombb/f9-sub000/internal/models"
)

// InsertActivity appends one immutable log row. status_change rows are
// written by the database trigger, not through here.
func (d *DatabaseClient) InsertActivity(projectID uuid.UUID, userID *uuid.UUID, activityType string, details any) error {
	payload, err := json.Marshal(details)
	if err != nil {
		return fmt.Errorf("failed to encode activity details: %w", err)
	}
	_, err = d.db.Exec(`
		INSERT INTO activities (project_id, user_id, activity_type, details)
		VALUES ($1, $2, $3, $4)
	`, projectID, userID, activityType, payload)
	if err != nil {
		return fmt.Errorf("failed to insert activity: %w", err)
	}
	return nil
}

func (d *DatabaseClient) listActivities(query string, args ...any) ([]models.Activity, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list activities: %w", err)
	}
	defer rows.Close()

	var activities []models.Activity
	for rows.Next() {
		var a models.Activity
		var actor uuid.NullUUID
		if err := rows.Scan(&a.ID, &a.ProjectID, &actor, &a.ActivityType, &a.Details, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan activity: %w", err)
		}
		if actor.Valid {
			id := actor.UUID
			a.UserID = &id
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}

func (d *DatabaseClient) ListActivities(projectID uuid.UUID) ([]models.Activity, error) {
	return d.listActivities(`
		SELECT id, project_id, user_id, activity_type, details, created_at
		FROM activities
		WHERE project_id = $1
		ORDER BY created_at DESC
	`, projectID)
}

// RecentActivities feeds the dashboard timeline. A nil userID returns the
// admin view across all projects.
func (d *DatabaseClient) RecentActivities(userID *uuid.UUID, limit int) ([]models.Activity, error) {
	if userID == nil {
		return d.listActivities(`
			SELECT id, project_id, user_id, activity_type, details, created_at
			FROM activities
			ORDER BY created_at DESC
			LIMIT $1
		`, limit)
	}
	return d.listActivities(`
		SELECT a.id, a.project_id, a.user_id, a.activity_type, a.details, a.created_at
		FROM activities a
		JOIN projects p ON p.id = a.project_id
		WHERE p.user_id = $1
		ORDER BY a.created_at DESC
		LIMIT $2
	`, *userID, limit)
}

// CountProjectsByStatus aggregates for the dashboard landing page.
func (d *DatabaseClient) CountProjectsByStatus(userID *uuid.UUID) (map[string]int, error) {
	query := `
		SELECT status, COUNT(*)
		FROM projects
		GROUP BY status
	`
	args := []any{}
	if userID != nil {
		query = `
			SELECT status, COUNT(*)
			FROM projects
			WHERE user_id = $1
			GROUP BY status
		`
		args = append(args, *userID)
	}

	r, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}
	defer r.Close()

	counts := map[string]int{}
	for r.Next() {
		var status string
		var n int
		if err := r.Scan(&status, &n); err != nil {
			return nil, fmt.Errorf("failed to scan status count: %w", err)
		}
		counts[status] = n
	}
	return counts, r.Err()
}

// RecentProjects returns the newest-updated projects for the dashboard.
func (d *DatabaseClient) RecentProjects(userID *uuid.UUID, limit int) ([]models.Project, error) {
	if userID == nil {
		return d.listProjects(`
			SELECT `+projectColumns+`
			FROM projects
			ORDER BY updated_at DESC
			LIMIT $1
		`, limit)
	}
	return d.listProjects(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2
	`, *userID, limit)
}

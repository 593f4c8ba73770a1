package supabase

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/lib/pq"

	"github.com/Catacombb/f9-sub000/internal/models"
)

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(connectionString string) (*DatabaseClient, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

const projectColumns = `id, user_id, client_name, project_address, contact_email, contact_phone,
	project_type, project_description, budget_range, move_in_preference,
	status, status_updated_at, version, created_at, updated_at`

func scanProject(row interface{ Scan(...any) error }) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID, &p.UserID, &p.ClientName, &p.ProjectAddress, &p.ContactEmail, &p.ContactPhone,
		&p.ProjectType, &p.ProjectDescription, &p.BudgetRange, &p.MoveInPreference,
		&p.Status, &p.StatusUpdatedAt, &p.Version, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (d *DatabaseClient) GetProject(projectID uuid.UUID) (*models.Project, error) {
	p, err := scanProject(d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1
	`, projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

func (d *DatabaseClient) GetProjectForUser(projectID, userID uuid.UUID) (*models.Project, error) {
	p, err := scanProject(d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE id = $1 AND user_id = $2
	`, projectID, userID))
	if err != nil {
		return nil, fmt.Errorf("failed to get project: %w", err)
	}
	return p, nil
}

// MostRecentProject returns the caller's newest project, or nil when the
// user has none yet.
func (d *DatabaseClient) MostRecentProject(userID uuid.UUID) (*models.Project, error) {
	p, err := scanProject(d.db.QueryRow(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`, userID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get most recent project: %w", err)
	}
	return p, nil
}

// InsertProject creates the user's project row. The unique index on user_id
// makes creation idempotent: when a concurrent writer got there first this
// returns uuid.Nil with no error and the caller re-resolves.
func (d *DatabaseClient) InsertProject(userID uuid.UUID) (uuid.UUID, error) {
	var id uuid.UUID
	err := d.db.QueryRow(`
		INSERT INTO projects (user_id, status)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO NOTHING
		RETURNING id
	`, userID, models.StatusBrief).Scan(&id)
	if err == sql.ErrNoRows {
		return uuid.Nil, nil
	}
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to insert project: %w", err)
	}
	return id, nil
}

// UpdateProjectVersioned writes the project row conditioned on the version
// the caller read. A false return means a concurrent writer landed first and
// the save must be treated as a conflict.
func (d *DatabaseClient) UpdateProjectVersioned(p *models.Project, expectedVersion int) (bool, error) {
	res, err := d.db.Exec(`
		UPDATE projects
		SET client_name = $1, project_address = $2, contact_email = $3, contact_phone = $4,
			project_type = $5, project_description = $6, budget_range = $7, move_in_preference = $8,
			version = $9, updated_at = NOW()
		WHERE id = $10 AND version = $11
	`, p.ClientName, p.ProjectAddress, p.ContactEmail, p.ContactPhone,
		p.ProjectType, p.ProjectDescription, p.BudgetRange, p.MoveInPreference,
		expectedVersion+1, p.ID, expectedVersion)
	if err != nil {
		return false, fmt.Errorf("failed to update project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}

// UpdateProjectStatus persists a validated status transition. The
// log_status_change trigger appends the matching activity row.
func (d *DatabaseClient) UpdateProjectStatus(projectID uuid.UUID, status string) (*models.Project, error) {
	p, err := scanProject(d.db.QueryRow(`
		UPDATE projects
		SET status = $1, status_updated_at = NOW(), updated_at = NOW()
		WHERE id = $2
		RETURNING `+projectColumns+`
	`, status, projectID))
	if err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	return p, nil
}

func (d *DatabaseClient) listProjects(query string, args ...any) ([]models.Project, error) {
	rows, err := d.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, *p)
	}
	return projects, rows.Err()
}

func (d *DatabaseClient) ListProjects() ([]models.Project, error) {
	return d.listProjects(`
		SELECT ` + projectColumns + `
		FROM projects
		ORDER BY updated_at DESC
	`)
}

func (d *DatabaseClient) ListProjectsForUser(userID uuid.UUID) ([]models.Project, error) {
	return d.listProjects(`
		SELECT `+projectColumns+`
		FROM projects
		WHERE user_id = $1
		ORDER BY updated_at DESC
	`, userID)
}

func (d *DatabaseClient) ListProjectIDs() ([]uuid.UUID, error) {
	rows, err := d.db.Query(`SELECT id FROM projects`)
	if err != nil {
		return nil, fmt.Errorf("failed to list project ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan project id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// DeleteProject removes the aggregate root; child tables cascade.
func (d *DatabaseClient) DeleteProject(projectID uuid.UUID) error {
	_, err := d.db.Exec(`
		DELETE FROM projects
		WHERE id = $1
	`, projectID)
	return err
}

func (d *DatabaseClient) GetUserProfile(userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := d.db.QueryRow(`
		SELECT id, full_name, email, role, created_at
		FROM user_profiles
		WHERE id = $1
	`, userID).Scan(&profile.ID, &profile.FullName, &profile.Email, &profile.Role, &profile.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to get user profile: %w", err)
	}
	return &profile, nil
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

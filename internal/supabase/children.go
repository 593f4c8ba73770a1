package supabase

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/Catacombb/f9-sub000/internal/models"
)

// Child collections are replaced wholesale on every save: delete all rows for
// the project, then bulk-insert the supplied set. No per-row diffing. Each row
// carries its slice index as position; rows land with identical created_at, so
// position is what keeps reload order matching the order the client sent.

func (d *DatabaseClient) ReplaceRooms(projectID uuid.UUID, rooms []models.Room) error {
	if _, err := d.db.Exec(`DELETE FROM rooms WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete rooms: %w", err)
	}
	if len(rooms) == 0 {
		return nil
	}

	values := make([]string, 0, len(rooms))
	args := make([]any, 0, len(rooms)*7)
	for i, r := range rooms {
		base := i * 7
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, projectID, r.Type, r.Quantity,
			r.Details.EncodeDescription(), r.CustomName, pq.Array(r.PrimaryUsers), i)
	}
	_, err := d.db.Exec(`
		INSERT INTO rooms (project_id, type, quantity, description, custom_name, primary_users, position)
		VALUES `+strings.Join(values, ", "), args...)
	if err != nil {
		return fmt.Errorf("failed to insert rooms: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetRooms(projectID uuid.UUID) ([]models.Room, error) {
	rows, err := d.db.Query(`
		SELECT id, type, quantity, description, custom_name, primary_users
		FROM rooms
		WHERE project_id = $1
		ORDER BY position ASC, id ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get rooms: %w", err)
	}
	defer rows.Close()

	var result []models.Room
	for rows.Next() {
		var r models.Room
		var description string
		if err := rows.Scan(&r.ID, &r.Type, &r.Quantity, &description, &r.CustomName,
			pq.Array(&r.PrimaryUsers)); err != nil {
			return nil, fmt.Errorf("failed to scan room: %w", err)
		}
		r.Details = models.DecodeRoomDescription(description)
		result = append(result, r)
	}
	return result, rows.Err()
}

func (d *DatabaseClient) ReplaceOccupants(projectID uuid.UUID, occupants []models.Occupant) error {
	if _, err := d.db.Exec(`DELETE FROM occupants WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete occupants: %w", err)
	}
	if len(occupants) == 0 {
		return nil
	}

	values := make([]string, 0, len(occupants))
	args := make([]any, 0, len(occupants)*5)
	for i, o := range occupants {
		base := i * 5
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5))
		args = append(args, projectID, o.Type, o.Name, o.Notes, i)
	}
	_, err := d.db.Exec(`
		INSERT INTO occupants (project_id, type, name, notes, position)
		VALUES `+strings.Join(values, ", "), args...)
	if err != nil {
		return fmt.Errorf("failed to insert occupants: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetOccupants(projectID uuid.UUID) ([]models.Occupant, error) {
	rows, err := d.db.Query(`
		SELECT id, type, name, notes
		FROM occupants
		WHERE project_id = $1
		ORDER BY position ASC, id ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get occupants: %w", err)
	}
	defer rows.Close()

	var result []models.Occupant
	for rows.Next() {
		var o models.Occupant
		if err := rows.Scan(&o.ID, &o.Type, &o.Name, &o.Notes); err != nil {
			return nil, fmt.Errorf("failed to scan occupant: %w", err)
		}
		result = append(result, o)
	}
	return result, rows.Err()
}

func (d *DatabaseClient) ReplaceProfessionals(projectID uuid.UUID, professionals []models.Professional) error {
	if _, err := d.db.Exec(`DELETE FROM professionals WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete professionals: %w", err)
	}
	if len(professionals) == 0 {
		return nil
	}

	values := make([]string, 0, len(professionals))
	args := make([]any, 0, len(professionals)*7)
	for i, p := range professionals {
		base := i * 7
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d, $%d, $%d, $%d)",
			base+1, base+2, base+3, base+4, base+5, base+6, base+7))
		args = append(args, projectID, p.Type, p.Name, p.Contact, p.Notes, p.IsCustom, i)
	}
	_, err := d.db.Exec(`
		INSERT INTO professionals (project_id, type, name, contact, notes, is_custom, position)
		VALUES `+strings.Join(values, ", "), args...)
	if err != nil {
		return fmt.Errorf("failed to insert professionals: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetProfessionals(projectID uuid.UUID) ([]models.Professional, error) {
	rows, err := d.db.Query(`
		SELECT id, type, name, contact, notes, is_custom
		FROM professionals
		WHERE project_id = $1
		ORDER BY position ASC, id ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get professionals: %w", err)
	}
	defer rows.Close()

	var result []models.Professional
	for rows.Next() {
		var p models.Professional
		if err := rows.Scan(&p.ID, &p.Type, &p.Name, &p.Contact, &p.Notes, &p.IsCustom); err != nil {
			return nil, fmt.Errorf("failed to scan professional: %w", err)
		}
		result = append(result, p)
	}
	return result, rows.Err()
}

func (d *DatabaseClient) ReplaceInspiration(projectID uuid.UUID, entries []models.InspirationEntry) error {
	if _, err := d.db.Exec(`DELETE FROM inspiration_entries WHERE project_id = $1`, projectID); err != nil {
		return fmt.Errorf("failed to delete inspiration entries: %w", err)
	}
	if len(entries) == 0 {
		return nil
	}

	values := make([]string, 0, len(entries))
	args := make([]any, 0, len(entries)*4)
	for i, e := range entries {
		base := i * 4
		values = append(values, fmt.Sprintf("($%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4))
		args = append(args, projectID, e.Link, e.Description, i)
	}
	_, err := d.db.Exec(`
		INSERT INTO inspiration_entries (project_id, link, description, position)
		VALUES `+strings.Join(values, ", "), args...)
	if err != nil {
		return fmt.Errorf("failed to insert inspiration entries: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetInspiration(projectID uuid.UUID) ([]models.InspirationEntry, error) {
	rows, err := d.db.Query(`
		SELECT id, link, description
		FROM inspiration_entries
		WHERE project_id = $1
		ORDER BY position ASC, id ASC
	`, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to get inspiration entries: %w", err)
	}
	defer rows.Close()

	var result []models.InspirationEntry
	for rows.Next() {
		var e models.InspirationEntry
		if err := rows.Scan(&e.ID, &e.Link, &e.Description); err != nil {
			return nil, fmt.Errorf("failed to scan inspiration entry: %w", err)
		}
		result = append(result, e)
	}
	return result, rows.Err()
}

// UpsertSettings lazily creates the 1:1 settings row on first save and
// updates it afterwards.
func (d *DatabaseClient) UpsertSettings(s *models.ProjectSettings) error {
	_, err := d.db.Exec(`
		INSERT INTO project_settings (
			project_id, budget_flexibility, finance_notes, daily_routine, entertaining_style,
			special_requirements, site_constraints, site_features, orientation, access_notes,
			spaces_notes, architecture_styles, external_materials, internal_finishes,
			sustainability_goals, preferred_delivery, tendering_notes, preferred_contact,
			best_times, communication_notes, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, NOW())
		ON CONFLICT (project_id) DO UPDATE SET
			budget_flexibility = EXCLUDED.budget_flexibility,
			finance_notes = EXCLUDED.finance_notes,
			daily_routine = EXCLUDED.daily_routine,
			entertaining_style = EXCLUDED.entertaining_style,
			special_requirements = EXCLUDED.special_requirements,
			site_constraints = EXCLUDED.site_constraints,
			site_features = EXCLUDED.site_features,
			orientation = EXCLUDED.orientation,
			access_notes = EXCLUDED.access_notes,
			spaces_notes = EXCLUDED.spaces_notes,
			architecture_styles = EXCLUDED.architecture_styles,
			external_materials = EXCLUDED.external_materials,
			internal_finishes = EXCLUDED.internal_finishes,
			sustainability_goals = EXCLUDED.sustainability_goals,
			preferred_delivery = EXCLUDED.preferred_delivery,
			tendering_notes = EXCLUDED.tendering_notes,
			preferred_contact = EXCLUDED.preferred_contact,
			best_times = EXCLUDED.best_times,
			communication_notes = EXCLUDED.communication_notes,
			updated_at = NOW()
	`, s.ProjectID, s.BudgetFlexibility, s.FinanceNotes, s.DailyRoutine, s.EntertainingStyle,
		s.SpecialRequirements, pq.Array(s.SiteConstraints), pq.Array(s.SiteFeatures),
		s.Orientation, s.AccessNotes, s.SpacesNotes, pq.Array(s.ArchitectureStyles),
		pq.Array(s.ExternalMaterials), pq.Array(s.InternalFinishes), s.SustainabilityGoals,
		s.PreferredDelivery, s.TenderingNotes, s.PreferredContact, pq.Array(s.BestTimes),
		s.CommunicationNotes)
	if err != nil {
		return fmt.Errorf("failed to upsert project settings: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetSettings(projectID uuid.UUID) (*models.ProjectSettings, error) {
	var s models.ProjectSettings
	err := d.db.QueryRow(`
		SELECT project_id, budget_flexibility, finance_notes, daily_routine, entertaining_style,
			special_requirements, site_constraints, site_features, orientation, access_notes,
			spaces_notes, architecture_styles, external_materials, internal_finishes,
			sustainability_goals, preferred_delivery, tendering_notes, preferred_contact,
			best_times, communication_notes, updated_at
		FROM project_settings
		WHERE project_id = $1
	`, projectID).Scan(
		&s.ProjectID, &s.BudgetFlexibility, &s.FinanceNotes, &s.DailyRoutine, &s.EntertainingStyle,
		&s.SpecialRequirements, pq.Array(&s.SiteConstraints), pq.Array(&s.SiteFeatures),
		&s.Orientation, &s.AccessNotes, &s.SpacesNotes, pq.Array(&s.ArchitectureStyles),
		pq.Array(&s.ExternalMaterials), pq.Array(&s.InternalFinishes), &s.SustainabilityGoals,
		&s.PreferredDelivery, &s.TenderingNotes, &s.PreferredContact, pq.Array(&s.BestTimes),
		&s.CommunicationNotes, &s.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get project settings: %w", err)
	}
	return &s, nil
}

func (d *DatabaseClient) UpsertSummary(projectID uuid.UUID, s *models.Summary) error {
	_, err := d.db.Exec(`
		INSERT INTO summaries (project_id, generated_text, edited_text, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (project_id) DO UPDATE SET
			generated_text = EXCLUDED.generated_text,
			edited_text = EXCLUDED.edited_text,
			updated_at = NOW()
	`, projectID, s.GeneratedText, s.EditedText)
	if err != nil {
		return fmt.Errorf("failed to upsert summary: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetSummary(projectID uuid.UUID) (*models.Summary, error) {
	var s models.Summary
	var updatedAt time.Time
	err := d.db.QueryRow(`
		SELECT generated_text, edited_text, updated_at
		FROM summaries
		WHERE project_id = $1
	`, projectID).Scan(&s.GeneratedText, &s.EditedText, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get summary: %w", err)
	}
	s.UpdatedAt = &updatedAt
	return &s, nil
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Project status wire values. These literals are shared with the hosted
// database and the dashboard; renaming any of them requires a migration.
const (
	StatusBrief    = "brief"
	StatusSent     = "sent"
	StatusComplete = "complete"
)

// Project is the aggregate root for one client engagement.
type Project struct {
	ID                 uuid.UUID `json:"id"`
	UserID             uuid.UUID `json:"user_id"`
	ClientName         string    `json:"client_name"`
	ProjectAddress     string    `json:"project_address"`
	ContactEmail       string    `json:"contact_email"`
	ContactPhone       string    `json:"contact_phone"`
	ProjectType        string    `json:"project_type"`
	ProjectDescription string    `json:"project_description"`
	BudgetRange        string    `json:"budget_range"`
	MoveInPreference   string    `json:"move_in_preference"`
	Status             string    `json:"status"`
	StatusUpdatedAt    time.Time `json:"status_updated_at"`
	Version            int       `json:"version"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// ProjectSettings is the 1:1 bag of optional preference fields, created
// lazily on first save.
type ProjectSettings struct {
	ProjectID           uuid.UUID `json:"project_id"`
	BudgetFlexibility   string    `json:"budget_flexibility"`
	FinanceNotes        string    `json:"finance_notes"`
	DailyRoutine        string    `json:"daily_routine"`
	EntertainingStyle   string    `json:"entertaining_style"`
	SpecialRequirements string    `json:"special_requirements"`
	SiteConstraints     []string  `json:"site_constraints"`
	SiteFeatures        []string  `json:"site_features"`
	Orientation         string    `json:"orientation"`
	AccessNotes         string    `json:"access_notes"`
	SpacesNotes         string    `json:"spaces_notes"`
	ArchitectureStyles  []string  `json:"architecture_styles"`
	ExternalMaterials   []string  `json:"external_materials"`
	InternalFinishes    []string  `json:"internal_finishes"`
	SustainabilityGoals string    `json:"sustainability_goals"`
	PreferredDelivery   string    `json:"preferred_delivery"`
	TenderingNotes      string    `json:"tendering_notes"`
	PreferredContact    string    `json:"preferred_contact"`
	BestTimes           []string  `json:"best_times"`
	CommunicationNotes  string    `json:"communication_notes"`
	UpdatedAt           time.Time `json:"updated_at"`
}

// Room, Occupant, Professional and InspirationEntry are full-replace child
// collections: every save deletes the project's rows and re-inserts the
// complete in-memory set.

type Room struct {
	ID           uuid.UUID   `json:"id,omitempty"`
	Type         string      `json:"type"`
	Quantity     int         `json:"quantity"`
	CustomName   string      `json:"custom_name,omitempty"`
	PrimaryUsers []string    `json:"primary_users,omitempty"`
	Details      RoomDetails `json:"details"`
}

type Occupant struct {
	ID    uuid.UUID `json:"id,omitempty"`
	Type  string    `json:"type"`
	Name  string    `json:"name"`
	Notes string    `json:"notes,omitempty"`
}

type Professional struct {
	ID       uuid.UUID `json:"id,omitempty"`
	Type     string    `json:"type"`
	Name     string    `json:"name"`
	Contact  string    `json:"contact,omitempty"`
	Notes    string    `json:"notes,omitempty"`
	IsCustom bool      `json:"is_custom"`
}

type InspirationEntry struct {
	ID          uuid.UUID `json:"id,omitempty"`
	Link        string    `json:"link"`
	Description string    `json:"description,omitempty"`
}

// ProjectFile is the metadata row for one uploaded storage object.
type ProjectFile struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	UserID      uuid.UUID `json:"user_id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type"`
	Size        int64     `json:"size"`
	Category    string    `json:"category"`
	StoragePath string    `json:"storage_path"`
	StorageURL  string    `json:"storage_url"`
	CreatedAt   time.Time `json:"created_at"`
}

// User roles.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
)

type UserProfile struct {
	ID        uuid.UUID `json:"id"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

package models

import (
	"encoding/json"
	"time"
)

// Brief is the full in-progress design brief as the wizard edits it: one
// nested record keyed by section. Saves always carry the complete snapshot;
// the persistence layer replaces child collections wholesale rather than
// diffing them.
type Brief struct {
	ProjectInfo   ProjectInfo          `json:"project_info"`
	Budget        BudgetSection        `json:"budget"`
	Lifestyle     LifestyleSection     `json:"lifestyle"`
	Site          SiteSection          `json:"site"`
	Spaces        SpacesSection        `json:"spaces"`
	Architecture  ArchitectureSection  `json:"architecture"`
	Contractors   ContractorsSection   `json:"contractors"`
	Communication CommunicationSection `json:"communication"`
	Inspiration   []InspirationEntry   `json:"inspiration"`
	Summary       Summary              `json:"summary"`

	// Files grouped by category. Entries without a storage path are raw
	// uploads pending reconciliation.
	Files map[string][]BriefFile `json:"files,omitempty"`

	// Version is the project version this snapshot was loaded at. A save is
	// rejected as a conflict when the stored version has moved past it.
	Version int `json:"version"`
}

type ProjectInfo struct {
	ClientName         string `json:"client_name"`
	ProjectAddress     string `json:"project_address"`
	ContactEmail       string `json:"contact_email"`
	ContactPhone       string `json:"contact_phone"`
	ProjectType        string `json:"project_type"`
	ProjectDescription string `json:"project_description"`
	MoveInPreference   string `json:"move_in_preference"`
}

type BudgetSection struct {
	BudgetRange       string `json:"budget_range"`
	BudgetFlexibility string `json:"budget_flexibility"`
	FinanceNotes      string `json:"finance_notes"`
}

type LifestyleSection struct {
	Occupants           []Occupant `json:"occupants"`
	DailyRoutine        string     `json:"daily_routine"`
	EntertainingStyle   string     `json:"entertaining_style"`
	SpecialRequirements string     `json:"special_requirements"`
}

type SiteSection struct {
	SiteConstraints []string `json:"site_constraints"`
	SiteFeatures    []string `json:"site_features"`
	Orientation     string   `json:"orientation"`
	AccessNotes     string   `json:"access_notes"`
}

type SpacesSection struct {
	Rooms           []Room `json:"rooms"`
	AdditionalNotes string `json:"additional_notes"`
}

type ArchitectureSection struct {
	Styles              []string `json:"styles"`
	ExternalMaterials   []string `json:"external_materials"`
	InternalFinishes    []string `json:"internal_finishes"`
	SustainabilityGoals string   `json:"sustainability_goals"`
}

type ContractorsSection struct {
	Professionals     []Professional `json:"professionals"`
	PreferredDelivery string         `json:"preferred_delivery"`
	TenderingNotes    string         `json:"tendering_notes"`
}

type CommunicationSection struct {
	PreferredMethod string   `json:"preferred_method"`
	BestTimes       []string `json:"best_times"`
	AdditionalNotes string   `json:"additional_notes"`
}

// RoomDetails is the free-form answer block stored JSON-encoded in a room's
// description column.
type RoomDetails struct {
	Level    string   `json:"level,omitempty"`
	Fixtures []string `json:"fixtures,omitempty"`
	Finishes string   `json:"finishes,omitempty"`
	Notes    string   `json:"notes,omitempty"`
}

// EncodeDescription serializes the details for storage.
func (d RoomDetails) EncodeDescription() string {
	b, err := json.Marshal(d)
	if err != nil {
		return "{}"
	}
	return string(b)
}

// DecodeRoomDescription parses a stored description column back into its
// details block. Unparseable legacy values come back as plain notes.
func DecodeRoomDescription(s string) RoomDetails {
	var d RoomDetails
	if s == "" {
		return d
	}
	if err := json.Unmarshal([]byte(s), &d); err != nil {
		return RoomDetails{Notes: s}
	}
	return d
}

// BriefFile is one entry in a category file list. Already-uploaded entries
// carry StoragePath/StorageURL; raw entries carry Data and are uploaded
// during reconciliation.
type BriefFile struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	ContentType string `json:"content_type,omitempty"`
	Size        int64  `json:"size,omitempty"`
	Category    string `json:"category,omitempty"`
	StoragePath string `json:"storage_path,omitempty"`
	StorageURL  string `json:"storage_url,omitempty"`
	Data        []byte `json:"data,omitempty"`
}

// Uploaded reports whether this entry already has a storage object behind it.
func (f BriefFile) Uploaded() bool {
	return f.StoragePath != ""
}

// File categories accepted by the upload and reconciliation paths.
const (
	FileCategoryInspiration   = "inspiration"
	FileCategorySiteDocuments = "site_documents"
	FileCategoryFloorPlans    = "floor_plans"
	FileCategoryDocuments     = "documents"
)

var FileCategories = []string{
	FileCategoryInspiration,
	FileCategorySiteDocuments,
	FileCategoryFloorPlans,
	FileCategoryDocuments,
}

func ValidFileCategory(category string) bool {
	for _, c := range FileCategories {
		if c == category {
			return true
		}
	}
	return false
}

// Summary is the 1:1 narrative block: the generated text plus any client
// edits. Upserted on save.
type Summary struct {
	GeneratedText string     `json:"generated_text"`
	EditedText    string     `json:"edited_text"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

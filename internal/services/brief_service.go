package services

import (
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Catacombb/f9-sub000/internal/models"
)

// SaveResult is the persistence contract. Conflict means the stored version
// moved past the version the caller loaded: no writes were performed and the
// caller must reload and retry, there is no merge.
type SaveResult struct {
	Success   bool
	Conflict  bool
	ProjectID uuid.UUID
	Brief     *models.Brief
}

// BriefService owns the read-modify-write cycle for a design brief: the
// version-checked project row, the full-replace child collections, the
// settings and summary upserts, and file reconciliation.
type BriefService struct {
	store Store
	files *FileService
	rpc   ProjectCreator
	log   *zap.SugaredLogger
}

func NewBriefService(store Store, files *FileService, rpc ProjectCreator, log *zap.SugaredLogger) *BriefService {
	return &BriefService{store: store, files: files, rpc: rpc, log: log}
}

// GetOrCreateProject resolves the caller's single project, creating it when
// none exists. Creation is idempotent under races: the hosted RPC and the
// direct-insert fallback both hit the unique user_id index, and the final
// re-check collapses both outcomes onto one row.
func (s *BriefService) GetOrCreateProject(userID uuid.UUID) (*models.Project, error) {
	existing, err := s.store.MostRecentProject(userID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	created := false
	if s.rpc != nil {
		if _, err := s.rpc.CreateClientProject(userID); err != nil {
			s.log.Warnw("create_client_project rpc failed, falling back to direct insert",
				"user_id", userID, "error", err)
		} else {
			created = true
		}
	}

	if !created {
		if _, err := s.store.InsertProject(userID); err != nil {
			return nil, err
		}
	}

	project, err := s.store.MostRecentProject(userID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, fmt.Errorf("project creation for user %s left no row", userID)
	}
	return project, nil
}

// SaveBrief performs the optimistic-locked save. projectID may be uuid.Nil,
// in which case the caller's project is resolved or created first and the
// snapshot's version baseline is taken from the stored row.
func (s *BriefService) SaveBrief(userID, projectID uuid.UUID, brief *models.Brief) (*SaveResult, error) {
	var project *models.Project
	var err error

	expected := brief.Version
	if projectID == uuid.Nil {
		project, err = s.GetOrCreateProject(userID)
		if err != nil {
			return nil, err
		}
		projectID = project.ID
		expected = project.Version
	} else {
		project, err = s.store.GetProject(projectID)
		if err != nil {
			return nil, err
		}
	}

	// Sole concurrency guard: a newer stored version means another writer
	// landed since this snapshot was loaded.
	if project.Version > expected {
		return &SaveResult{Conflict: true, ProjectID: projectID}, nil
	}

	row := projectRowFromBrief(project, brief)
	ok, err := s.store.UpdateProjectVersioned(row, expected)
	if err != nil {
		return nil, err
	}
	if !ok {
		// A concurrent writer won between our read and the conditional
		// update; the write matched zero rows.
		return &SaveResult{Conflict: true, ProjectID: projectID}, nil
	}
	newVersion := expected + 1

	// Child-table writes are independent round trips. A failure here is
	// logged but does not fail the save: the primary row already carries the
	// new version and availability wins over strict atomicity.
	if err := s.store.ReplaceRooms(projectID, brief.Spaces.Rooms); err != nil {
		s.log.Errorw("failed to replace rooms", "project_id", projectID, "error", err)
	}
	if err := s.store.ReplaceOccupants(projectID, brief.Lifestyle.Occupants); err != nil {
		s.log.Errorw("failed to replace occupants", "project_id", projectID, "error", err)
	}
	if err := s.store.ReplaceProfessionals(projectID, brief.Contractors.Professionals); err != nil {
		s.log.Errorw("failed to replace professionals", "project_id", projectID, "error", err)
	}
	if err := s.store.ReplaceInspiration(projectID, brief.Inspiration); err != nil {
		s.log.Errorw("failed to replace inspiration entries", "project_id", projectID, "error", err)
	}
	if err := s.store.UpsertSettings(settingsFromBrief(projectID, brief)); err != nil {
		s.log.Errorw("failed to upsert settings", "project_id", projectID, "error", err)
	}
	if err := s.store.UpsertSummary(projectID, &brief.Summary); err != nil {
		s.log.Errorw("failed to upsert summary", "project_id", projectID, "error", err)
	}

	normalized := s.files.Reconcile(userID, projectID, brief.Files)

	saved := *brief
	saved.Files = normalized
	saved.Version = newVersion

	return &SaveResult{Success: true, ProjectID: projectID, Brief: &saved}, nil
}

// LoadBrief assembles the full snapshot from the project row and every child
// table. The returned brief is the caller's baseline for conflict checks.
func (s *BriefService) LoadBrief(projectID uuid.UUID) (*models.Brief, *models.Project, error) {
	project, err := s.store.GetProject(projectID)
	if err != nil {
		return nil, nil, err
	}

	brief := &models.Brief{
		ProjectInfo: models.ProjectInfo{
			ClientName:         project.ClientName,
			ProjectAddress:     project.ProjectAddress,
			ContactEmail:       project.ContactEmail,
			ContactPhone:       project.ContactPhone,
			ProjectType:        project.ProjectType,
			ProjectDescription: project.ProjectDescription,
			MoveInPreference:   project.MoveInPreference,
		},
		Budget:  models.BudgetSection{BudgetRange: project.BudgetRange},
		Version: project.Version,
	}

	rooms, err := s.store.GetRooms(projectID)
	if err != nil {
		return nil, nil, err
	}
	brief.Spaces.Rooms = rooms

	occupants, err := s.store.GetOccupants(projectID)
	if err != nil {
		return nil, nil, err
	}
	brief.Lifestyle.Occupants = occupants

	professionals, err := s.store.GetProfessionals(projectID)
	if err != nil {
		return nil, nil, err
	}
	brief.Contractors.Professionals = professionals

	inspiration, err := s.store.GetInspiration(projectID)
	if err != nil {
		return nil, nil, err
	}
	brief.Inspiration = inspiration

	settings, err := s.store.GetSettings(projectID)
	if err != nil {
		return nil, nil, err
	}
	if settings != nil {
		applySettings(brief, settings)
	}

	summary, err := s.store.GetSummary(projectID)
	if err != nil {
		return nil, nil, err
	}
	if summary != nil {
		brief.Summary = *summary
	}

	files, err := s.store.ListProjectFiles(projectID)
	if err != nil {
		return nil, nil, err
	}
	if len(files) > 0 {
		brief.Files = make(map[string][]models.BriefFile)
		for _, f := range files {
			brief.Files[f.Category] = append(brief.Files[f.Category], models.BriefFile{
				ID:          f.ID.String(),
				Name:        f.Name,
				ContentType: f.ContentType,
				Size:        f.Size,
				Category:    f.Category,
				StoragePath: f.StoragePath,
				StorageURL:  f.StorageURL,
			})
		}
	}

	return brief, project, nil
}

// DeleteProject removes the aggregate and its storage objects. Child rows
// cascade database-side.
func (s *BriefService) DeleteProject(projectID uuid.UUID) error {
	if err := s.files.PurgeProject(projectID); err != nil {
		s.log.Errorw("failed to purge project storage", "project_id", projectID, "error", err)
	}
	return s.store.DeleteProject(projectID)
}

func projectRowFromBrief(current *models.Project, brief *models.Brief) *models.Project {
	row := *current
	row.ClientName = brief.ProjectInfo.ClientName
	row.ProjectAddress = brief.ProjectInfo.ProjectAddress
	row.ContactEmail = brief.ProjectInfo.ContactEmail
	row.ContactPhone = brief.ProjectInfo.ContactPhone
	row.ProjectType = brief.ProjectInfo.ProjectType
	row.ProjectDescription = brief.ProjectInfo.ProjectDescription
	row.BudgetRange = brief.Budget.BudgetRange
	row.MoveInPreference = brief.ProjectInfo.MoveInPreference
	return &row
}

func settingsFromBrief(projectID uuid.UUID, brief *models.Brief) *models.ProjectSettings {
	return &models.ProjectSettings{
		ProjectID:           projectID,
		BudgetFlexibility:   brief.Budget.BudgetFlexibility,
		FinanceNotes:        brief.Budget.FinanceNotes,
		DailyRoutine:        brief.Lifestyle.DailyRoutine,
		EntertainingStyle:   brief.Lifestyle.EntertainingStyle,
		SpecialRequirements: brief.Lifestyle.SpecialRequirements,
		SiteConstraints:     brief.Site.SiteConstraints,
		SiteFeatures:        brief.Site.SiteFeatures,
		Orientation:         brief.Site.Orientation,
		AccessNotes:         brief.Site.AccessNotes,
		SpacesNotes:         brief.Spaces.AdditionalNotes,
		ArchitectureStyles:  brief.Architecture.Styles,
		ExternalMaterials:   brief.Architecture.ExternalMaterials,
		InternalFinishes:    brief.Architecture.InternalFinishes,
		SustainabilityGoals: brief.Architecture.SustainabilityGoals,
		PreferredDelivery:   brief.Contractors.PreferredDelivery,
		TenderingNotes:      brief.Contractors.TenderingNotes,
		PreferredContact:    brief.Communication.PreferredMethod,
		BestTimes:           brief.Communication.BestTimes,
		CommunicationNotes:  brief.Communication.AdditionalNotes,
	}
}

func applySettings(brief *models.Brief, s *models.ProjectSettings) {
	brief.Budget.BudgetFlexibility = s.BudgetFlexibility
	brief.Budget.FinanceNotes = s.FinanceNotes
	brief.Lifestyle.DailyRoutine = s.DailyRoutine
	brief.Lifestyle.EntertainingStyle = s.EntertainingStyle
	brief.Lifestyle.SpecialRequirements = s.SpecialRequirements
	brief.Site.SiteConstraints = s.SiteConstraints
	brief.Site.SiteFeatures = s.SiteFeatures
	brief.Site.Orientation = s.Orientation
	brief.Site.AccessNotes = s.AccessNotes
	brief.Spaces.AdditionalNotes = s.SpacesNotes
	brief.Architecture.Styles = s.ArchitectureStyles
	brief.Architecture.ExternalMaterials = s.ExternalMaterials
	brief.Architecture.InternalFinishes = s.InternalFinishes
	brief.Architecture.SustainabilityGoals = s.SustainabilityGoals
	brief.Contractors.PreferredDelivery = s.PreferredDelivery
	brief.Contractors.TenderingNotes = s.TenderingNotes
	brief.Communication.PreferredMethod = s.PreferredContact
	brief.Communication.BestTimes = s.BestTimes
	brief.Communication.AdditionalNotes = s.CommunicationNotes
}

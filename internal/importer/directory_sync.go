package importer

import "github.com/opsdesk-dev/status-board/backend/internal/domain"

// RosterRecord is one line of an uploaded staff roster.
type RosterRecord struct {
	EmployeeCode string `json:"employeeCode"`
	Name         string `json:"name"`
	Department   string `json:"department"`
	Group        string `json:"group"`
}

// SyncPlan is the diff between an uploaded roster and the live directory.
type SyncPlan struct {
	Add        []RosterRecord        `json:"add"`
	Update     []RosterRecord        `json:"update"`
	Deactivate []*domain.StaffMember `json:"deactivate"`
}

type SyncSummary struct {
	AddedCount       int `json:"addedCount"`
	UpdatedCount     int `json:"updatedCount"`
	DeactivatedCount int `json:"deactivatedCount"`
}

// DirectorySync is the staff-directory bulk-sync path. It shares the
// idempotent-batch shape of the schedule importer but targets the directory
// and never touches scheduling invariants.
type DirectorySync interface {
	Plan(roster []RosterRecord) (*SyncPlan, error)
	Apply(plan *SyncPlan) (*SyncSummary, error)
}

// DirectoryStore is the slice of the repository the sync path needs.
type DirectoryStore interface {
	GetAllStaff() ([]*domain.StaffMember, error)
	CreateStaff(staff *domain.StaffMember) error
	UpdateStaff(staff *domain.StaffMember) error
}

// Syncer is the repository-backed DirectorySync.
type Syncer struct {
	store DirectoryStore
}

func NewSyncer(store DirectoryStore) *Syncer {
	return &Syncer{store: store}
}

func (s *Syncer) Plan(roster []RosterRecord) (*SyncPlan, error) {
	live, err := s.store.GetAllStaff()
	if err != nil {
		return nil, err
	}
	return DiffRoster(live, roster), nil
}

// Apply executes a plan against the directory. Updates go through the
// staff version check, so a concurrent directory edit fails the sync
// instead of being silently overwritten.
func (s *Syncer) Apply(plan *SyncPlan) (*SyncSummary, error) {
	summary := &SyncSummary{}

	var liveByCode map[string]*domain.StaffMember
	if len(plan.Update) > 0 {
		live, err := s.store.GetAllStaff()
		if err != nil {
			return nil, err
		}
		liveByCode = make(map[string]*domain.StaffMember, len(live))
		for _, staff := range live {
			liveByCode[staff.EmployeeCode] = staff
		}
	}

	for _, rec := range plan.Add {
		staff := &domain.StaffMember{
			Name:         rec.Name,
			EmployeeCode: rec.EmployeeCode,
			Department:   rec.Department,
			Group:        rec.Group,
			IsActive:     true,
		}
		if err := s.store.CreateStaff(staff); err != nil {
			return summary, err
		}
		summary.AddedCount++
	}

	for _, rec := range plan.Update {
		staff, ok := liveByCode[rec.EmployeeCode]
		if !ok {
			continue
		}
		staff.Name = rec.Name
		staff.Department = rec.Department
		staff.Group = rec.Group
		// an updated record also reactivates a returning employee
		staff.IsActive = true
		if err := s.store.UpdateStaff(staff); err != nil {
			return summary, err
		}
		summary.UpdatedCount++
	}

	for _, staff := range plan.Deactivate {
		staff.IsActive = false
		if err := s.store.UpdateStaff(staff); err != nil {
			return summary, err
		}
		summary.DeactivatedCount++
	}

	return summary, nil
}

// DiffRoster computes the sync plan: uploaded records missing from the live
// directory are added, changed ones updated, and live active staff absent
// from the upload deactivated.
func DiffRoster(live []*domain.StaffMember, uploaded []RosterRecord) *SyncPlan {
	plan := &SyncPlan{
		Add:        make([]RosterRecord, 0),
		Update:     make([]RosterRecord, 0),
		Deactivate: make([]*domain.StaffMember, 0),
	}

	liveByCode := make(map[string]*domain.StaffMember, len(live))
	for _, s := range live {
		liveByCode[s.EmployeeCode] = s
	}

	seen := make(map[string]bool, len(uploaded))
	for _, rec := range uploaded {
		if rec.EmployeeCode == "" || seen[rec.EmployeeCode] {
			continue
		}
		seen[rec.EmployeeCode] = true

		s, exists := liveByCode[rec.EmployeeCode]
		if !exists {
			plan.Add = append(plan.Add, rec)
			continue
		}
		if s.Name != rec.Name || s.Department != rec.Department || s.Group != rec.Group || !s.IsActive {
			plan.Update = append(plan.Update, rec)
		}
	}

	for _, s := range live {
		if s.IsActive && !seen[s.EmployeeCode] {
			plan.Deactivate = append(plan.Deactivate, s)
		}
	}

	return plan
}

package dialog

import (
	"time"

	"github.com/google/uuid"
)

// State is a named position in the intake flow.
type State string

const (
	StateWelcome     State = "WELCOME"
	StateAge         State = "AGE"
	StateLocation    State = "LOCATION"
	StateSymptoms    State = "SYMPTOMS"
	StateOnset       State = "ONSET"
	StateCourse      State = "COURSE"
	StateAggravating State = "AGGRAVATING"
	StateRelieving   State = "RELIEVING"
	StateAssociated  State = "ASSOCIATED"
	StateSeverity    State = "SEVERITY"
	StateImpact      State = "IMPACT"
	StateSafety      State = "SAFETY"
	StateReview      State = "REVIEW"
	StateDone        State = "DONE"
)

// PathStep is one breadcrumb element of a tree traversal.
type PathStep struct {
	Id    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Level int       `json:"level"`
}

// SelectedItem is one member of an in-progress multi-select set.
type SelectedItem struct {
	Id   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Complaint holds every field collected for one chief complaint.
// Severity is nil when the patient gave no usable score ("unscored").
type Complaint struct {
	LocationId  *uuid.UUID `json:"location_id,omitempty"`
	Location    string     `json:"location,omitempty"`
	Symptoms    []string   `json:"symptoms,omitempty"`
	Onset       string     `json:"onset,omitempty"`
	Course      string     `json:"course,omitempty"`
	Aggravating string     `json:"aggravating,omitempty"`
	Relieving   string     `json:"relieving,omitempty"`
	Associated  []string   `json:"associated,omitempty"`
	Severity    *int       `json:"severity,omitempty"`
	Impact      string     `json:"impact,omitempty"`
	SafetyFlags []string   `json:"safety_flags,omitempty"`
}

// Session is the single mutable document for one conversation key.
// It is fetched at the start of a turn and written back exactly once.
type Session struct {
	Key              string         `json:"key"`
	FlowState        State          `json:"flow_state"`
	SelectionPath    []PathStep     `json:"selection_path,omitempty"`
	PendingSelection []SelectedItem `json:"pending_selection,omitempty"`
	CurrentPage      int            `json:"current_page,omitempty"`
	PatientName      string         `json:"patient_name,omitempty"`
	PatientAge       *int           `json:"patient_age,omitempty"`
	Complaints       []Complaint    `json:"complaints,omitempty"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	EndedAt          *time.Time     `json:"ended_at,omitempty"`
}

// NewSession creates a fresh document in the entry state.
func NewSession(key string) *Session {
	now := time.Now().UTC()
	return &Session{
		Key:       key,
		FlowState: StateWelcome,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// CurrentComplaint returns the complaint being collected, or nil if none
// has been opened yet.
func (s *Session) CurrentComplaint() *Complaint {
	if len(s.Complaints) == 0 {
		return nil
	}
	return &s.Complaints[len(s.Complaints)-1]
}

// Patch is a partial update to a Session. Nil pointers and nil slices leave
// the corresponding field untouched; the Clear flags act as deletion markers
// so a field can be emptied rather than skipped by the merge.
type Patch struct {
	// Reset wipes every collected field and returns the document to the
	// entry state in place, keeping the key and creation time. Used by the
	// restart command; the document is never hard-deleted.
	Reset bool

	FlowState *State

	SelectionPath      []PathStep
	ClearSelectionPath bool

	PendingSelection      []SelectedItem
	ClearPendingSelection bool

	CurrentPage *int

	PatientName *string
	PatientAge  *int

	Complaints      []Complaint
	ClearComplaints bool

	EndedAt *time.Time
}

// IsZero reports whether applying the patch would change nothing.
func (p Patch) IsZero() bool {
	return !p.Reset && p.FlowState == nil &&
		p.SelectionPath == nil && !p.ClearSelectionPath &&
		p.PendingSelection == nil && !p.ClearPendingSelection &&
		p.CurrentPage == nil &&
		p.PatientName == nil && p.PatientAge == nil &&
		p.Complaints == nil && !p.ClearComplaints &&
		p.EndedAt == nil
}

// ApplyTo merges the patch into the session field by field. Untouched fields
// keep their prior value, which is what keeps concurrent turns for the same
// key from clobbering each other's unrelated writes.
func (p Patch) ApplyTo(s *Session) {
	if p.Reset {
		*s = Session{Key: s.Key, FlowState: StateWelcome, CreatedAt: s.CreatedAt}
	}
	if p.FlowState != nil {
		s.FlowState = *p.FlowState
	}
	if p.ClearSelectionPath {
		s.SelectionPath = nil
	} else if p.SelectionPath != nil {
		s.SelectionPath = p.SelectionPath
	}
	if p.ClearPendingSelection {
		s.PendingSelection = nil
	} else if p.PendingSelection != nil {
		s.PendingSelection = p.PendingSelection
	}
	if p.CurrentPage != nil {
		s.CurrentPage = *p.CurrentPage
	}
	if p.PatientName != nil {
		s.PatientName = *p.PatientName
	}
	if p.PatientAge != nil {
		s.PatientAge = p.PatientAge
	}
	if p.ClearComplaints {
		s.Complaints = nil
	} else if p.Complaints != nil {
		s.Complaints = p.Complaints
	}
	if p.EndedAt != nil {
		s.EndedAt = p.EndedAt
	}
	s.UpdatedAt = time.Now().UTC()
}

func statePtr(st State) *State { return &st }

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

package dialog

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestPatchApplyLeavesUntouchedFields(t *testing.T) {
	s := NewSession("628111")
	s.FlowState = StateOnset
	s.PatientName = "Maria"
	age := 41
	s.PatientAge = &age
	s.Complaints = []Complaint{{Location: "Chest"}}

	Patch{FlowState: statePtr(StateCourse)}.ApplyTo(s)

	if s.FlowState != StateCourse {
		t.Errorf("FlowState = %s, want COURSE", s.FlowState)
	}
	if s.PatientName != "Maria" || s.PatientAge == nil || *s.PatientAge != 41 {
		t.Errorf("identity fields were clobbered: %+v", s)
	}
	if len(s.Complaints) != 1 || s.Complaints[0].Location != "Chest" {
		t.Errorf("complaints were clobbered: %+v", s.Complaints)
	}
}

func TestPatchClearMarkers(t *testing.T) {
	s := NewSession("628111")
	s.SelectionPath = []PathStep{{Id: uuid.New(), Name: "Head"}}
	s.PendingSelection = []SelectedItem{{Id: uuid.New(), Name: "Cough"}}

	// A nil slice in the patch means untouched, not cleared.
	Patch{CurrentPage: intPtr(2)}.ApplyTo(s)
	if len(s.SelectionPath) != 1 || len(s.PendingSelection) != 1 {
		t.Fatalf("nil slices must not clear: %+v", s)
	}

	Patch{ClearSelectionPath: true, ClearPendingSelection: true}.ApplyTo(s)
	if s.SelectionPath != nil || s.PendingSelection != nil {
		t.Fatalf("clear markers did not clear: %+v", s)
	}
}

func TestPatchReset(t *testing.T) {
	s := NewSession("628111")
	created := s.CreatedAt
	s.FlowState = StateReview
	s.PatientName = "Maria"
	age := 41
	s.PatientAge = &age
	s.Complaints = []Complaint{{Location: "Chest"}}
	s.PendingSelection = []SelectedItem{{Id: uuid.New(), Name: "Cough"}}

	Patch{Reset: true}.ApplyTo(s)

	if s.Key != "628111" || !s.CreatedAt.Equal(created) {
		t.Errorf("reset must keep key and creation time: %+v", s)
	}
	if s.FlowState != StateWelcome {
		t.Errorf("FlowState = %s, want WELCOME", s.FlowState)
	}
	if s.PatientName != "" || s.PatientAge != nil || s.Complaints != nil || s.PendingSelection != nil {
		t.Errorf("reset left collected data behind: %+v", s)
	}
}

func TestPatchEndedAt(t *testing.T) {
	s := NewSession("628111")
	now := time.Now().UTC()

	Patch{FlowState: statePtr(StateDone), EndedAt: &now}.ApplyTo(s)

	if s.EndedAt == nil || !s.EndedAt.Equal(now) {
		t.Errorf("EndedAt = %v, want %v", s.EndedAt, now)
	}
}

func TestPatchIsZero(t *testing.T) {
	if !(Patch{}).IsZero() {
		t.Error("empty patch must be zero")
	}
	if (Patch{Reset: true}).IsZero() {
		t.Error("reset patch is not zero")
	}
	if (Patch{ClearPendingSelection: true}).IsZero() {
		t.Error("clear marker is not zero")
	}
	if (Patch{CurrentPage: intPtr(1)}).IsZero() {
		t.Error("page patch is not zero")
	}
}

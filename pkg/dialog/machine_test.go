package dialog

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// newMachineFixture builds a machine over a small catalog:
//
//	1. Head & Face
//	     1. Eyes (leaf, 2 symptoms)
//	     2. Ears (leaf, 2 symptoms)
//	2. Chest (leaf, 4 symptoms)
//	3. Skin  (leaf, no symptoms -> free-text fallback)
func newMachineFixture() (*Machine, map[string]Node) {
	head := Node{Id: uuid.New(), Name: "Head & Face", Level: 0, HasChildren: true}
	chest := Node{Id: uuid.New(), Name: "Chest", Level: 0}
	skin := Node{Id: uuid.New(), Name: "Skin", Level: 0}
	eyes := Node{Id: uuid.New(), ParentId: &head.Id, Name: "Eyes", Level: 1}
	ears := Node{Id: uuid.New(), ParentId: &head.Id, Name: "Ears", Level: 1}

	tree := &stubTreeSource{children: map[uuid.UUID][]Node{
		uuid.Nil: {head, chest, skin},
		head.Id:  {eyes, ears},
	}}
	items := &stubItemSource{items: map[uuid.UUID][]Item{
		chest.Id: {
			{Id: uuid.New(), Name: "Cough"},
			{Id: uuid.New(), Name: "Fever"},
			{Id: uuid.New(), Name: "Wheezing"},
			{Id: uuid.New(), Name: "Fatigue"},
		},
		eyes.Id: {
			{Id: uuid.New(), Name: "Blurred vision"},
			{Id: uuid.New(), Name: "Eye pain"},
		},
		ears.Id: {
			{Id: uuid.New(), Name: "Ear pain"},
			{Id: uuid.New(), Name: "Ringing"},
		},
	}}

	m := NewMachine(tree, items, 6, DefaultCommands())
	return m, map[string]Node{"head": head, "chest": chest, "skin": skin, "eyes": eyes, "ears": ears}
}

// turn dispatches one message and applies the resulting patch, the way the
// service layer does between turns.
func turn(t *testing.T, m *Machine, s *Session, input string) TurnOutput {
	t.Helper()
	out, err := m.Turn(context.Background(), s, input)
	if err != nil {
		t.Fatalf("Turn(%q): %v", input, err)
	}
	out.Patch.ApplyTo(s)
	return out
}

func TestMachineFullIntake(t *testing.T) {
	m, _ := newMachineFixture()
	s := NewSession("628555000111")

	out := turn(t, m, s, "Maria Lopez")
	if s.FlowState != StateAge || s.PatientName != "Maria Lopez" {
		t.Fatalf("after name: %+v", s)
	}
	if out.Reply != promptAge {
		t.Fatalf("Reply = %q, want age prompt", out.Reply)
	}

	out = turn(t, m, s, "41")
	if s.FlowState != StateLocation || s.PatientAge == nil || *s.PatientAge != 41 {
		t.Fatalf("after age: %+v", s)
	}
	if len(s.Complaints) != 1 {
		t.Fatalf("Complaints = %+v, want one opened", s.Complaints)
	}
	if !strings.Contains(out.Reply, "Where is the problem?") {
		t.Fatalf("Reply = %q, want root menu", out.Reply)
	}

	out = turn(t, m, s, "2") // Chest, a root-level leaf
	if s.FlowState != StateSymptoms {
		t.Fatalf("after location: state = %s", s.FlowState)
	}
	if s.Complaints[0].Location != "Chest" || s.Complaints[0].LocationId == nil {
		t.Fatalf("complaint location not set: %+v", s.Complaints[0])
	}
	if !strings.Contains(out.Reply, "Which symptoms apply?") {
		t.Fatalf("Reply = %q, want symptom page", out.Reply)
	}

	turn(t, m, s, "1,3") // toggle Cough and Wheezing
	if len(s.PendingSelection) != 2 {
		t.Fatalf("PendingSelection = %+v, want 2 toggled", s.PendingSelection)
	}

	out = turn(t, m, s, "6") // 4 items on one page: 5=clear, 6=confirm
	if s.FlowState != StateOnset {
		t.Fatalf("after confirm: state = %s", s.FlowState)
	}
	if got := s.Complaints[0].Symptoms; !reflect.DeepEqual(got, []string{"Cough", "Wheezing"}) {
		t.Fatalf("Symptoms = %v, want [Cough Wheezing]", got)
	}
	if len(s.PendingSelection) != 0 {
		t.Fatalf("pending selection must be cleared after confirm: %+v", s.PendingSelection)
	}
	if out.Reply != promptOnset {
		t.Fatalf("Reply = %q, want onset prompt", out.Reply)
	}

	turn(t, m, s, "3 days ago")
	turn(t, m, s, "getting worse")
	turn(t, m, s, "climbing stairs")
	turn(t, m, s, "resting")
	turn(t, m, s, "fever, chills")
	if s.FlowState != StateSeverity {
		t.Fatalf("after associated: state = %s", s.FlowState)
	}
	if got := s.Complaints[0].Associated; !reflect.DeepEqual(got, []string{"fever", "chills"}) {
		t.Fatalf("Associated = %v", got)
	}

	turn(t, m, s, "7")
	if s.Complaints[0].Severity == nil || *s.Complaints[0].Severity != 7 {
		t.Fatalf("Severity = %v, want 7", s.Complaints[0].Severity)
	}

	turn(t, m, s, "cannot sleep through the night")
	out = turn(t, m, s, "no")
	if s.FlowState != StateReview {
		t.Fatalf("after safety: state = %s", s.FlowState)
	}
	if s.Complaints[0].SafetyFlags != nil {
		t.Fatalf("SafetyFlags = %v, want none", s.Complaints[0].SafetyFlags)
	}
	if !strings.Contains(out.Reply, "Here is what I have") || !strings.Contains(out.Reply, "Severity: 7/10") {
		t.Fatalf("Reply = %q, want review", out.Reply)
	}

	out = turn(t, m, s, "1")
	if s.FlowState != StateDone || s.EndedAt == nil {
		t.Fatalf("after confirm review: %+v", s)
	}
	if out.Completed == nil {
		t.Fatal("confirmed review must produce a record")
	}
	rec := out.Completed
	if rec.ConversationKey != "628555000111" || rec.PatientName != "Maria Lopez" {
		t.Fatalf("record identity: %+v", rec)
	}
	if !strings.Contains(rec.Summary, "Patient: Maria Lopez") || !strings.Contains(rec.Summary, "Cough, Wheezing") {
		t.Fatalf("Summary = %q", rec.Summary)
	}

	out = turn(t, m, s, "hello again")
	if out.Reply != replyAfterDone || out.Completed != nil {
		t.Fatalf("after done: %+v", out)
	}
}

func TestMachineValidationReprompts(t *testing.T) {
	m, _ := newMachineFixture()

	s := NewSession("1")
	out := turn(t, m, s, "   ")
	if s.FlowState != StateWelcome {
		t.Fatalf("empty name must not advance, state = %s", s.FlowState)
	}
	if !strings.Contains(out.Reply, noticeAnswerRequired) {
		t.Fatalf("Reply = %q", out.Reply)
	}

	turn(t, m, s, "Maria")
	out = turn(t, m, s, "forty-one")
	if s.FlowState != StateAge {
		t.Fatalf("bad age must not advance, state = %s", s.FlowState)
	}
	if !strings.Contains(out.Reply, noticeNumberRequired) || !strings.Contains(out.Reply, promptAge) {
		t.Fatalf("Reply = %q, want notice plus the same question", out.Reply)
	}
}

func TestMachineSeverityNeverBlocks(t *testing.T) {
	m, _ := newMachineFixture()

	tests := []struct {
		name  string
		input string
		want  *int
	}{
		{name: "in range", input: "10", want: intPtr(10)},
		{name: "zero", input: "0", want: intPtr(0)},
		{name: "out of range", input: "15", want: nil},
		{name: "non-numeric", input: "really bad", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession("1")
			s.FlowState = StateSeverity
			s.Complaints = []Complaint{{Location: "Chest"}}

			out := turn(t, m, s, tt.input)
			if s.FlowState != StateImpact {
				t.Fatalf("severity must always advance, state = %s", s.FlowState)
			}
			if out.Reply != promptImpact {
				t.Fatalf("Reply = %q", out.Reply)
			}
			got := s.Complaints[0].Severity
			if (got == nil) != (tt.want == nil) || (got != nil && *got != *tt.want) {
				t.Fatalf("Severity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestMachineRestartMidSelection(t *testing.T) {
	m, nodes := newMachineFixture()

	s := NewSession("628")
	s.FlowState = StateSymptoms
	s.PatientName = "Maria"
	chestId := nodes["chest"].Id
	s.Complaints = []Complaint{{LocationId: &chestId, Location: "Chest"}}
	s.PendingSelection = []SelectedItem{{Id: uuid.New(), Name: "Cough"}}
	s.CurrentPage = 1

	out := turn(t, m, s, "RESTART")
	if out.Reply != replyRestarted {
		t.Fatalf("Reply = %q", out.Reply)
	}
	if !out.Patch.Reset {
		t.Fatal("restart must reset the document")
	}
	if s.FlowState != StateWelcome || s.PatientName != "" || s.PendingSelection != nil || s.Complaints != nil {
		t.Fatalf("after restart: %+v", s)
	}
	if s.Key != "628" {
		t.Fatal("restart must keep the conversation key")
	}
}

func TestMachineEndCommand(t *testing.T) {
	m, _ := newMachineFixture()

	s := NewSession("628")
	s.FlowState = StateCourse
	s.Complaints = []Complaint{{Location: "Chest"}}

	out := turn(t, m, s, "end")
	if out.Reply != replyEnded {
		t.Fatalf("Reply = %q", out.Reply)
	}
	if s.FlowState != StateDone || s.EndedAt == nil {
		t.Fatalf("after end: %+v", s)
	}

	// The document survives; further messages get the closed notice.
	out = turn(t, m, s, "are you there?")
	if out.Reply != replyAfterDone {
		t.Fatalf("Reply = %q", out.Reply)
	}
}

func TestMachineBackCommand(t *testing.T) {
	m, _ := newMachineFixture()

	s := NewSession("628")
	s.FlowState = StateCourse
	s.Complaints = []Complaint{{Location: "Chest", Onset: "yesterday"}}

	out := turn(t, m, s, "back")
	if s.FlowState != StateOnset {
		t.Fatalf("back from COURSE landed on %s", s.FlowState)
	}
	if !strings.Contains(out.Reply, replyWentBack) || !strings.Contains(out.Reply, promptOnset) {
		t.Fatalf("Reply = %q", out.Reply)
	}
}

func TestMachineBackAtEntryIsNoOp(t *testing.T) {
	m, _ := newMachineFixture()
	s := NewSession("628")

	out := turn(t, m, s, "back")
	if s.FlowState != StateWelcome {
		t.Fatalf("state = %s", s.FlowState)
	}
	if out.Reply != promptName {
		t.Fatalf("Reply = %q, want the name question again", out.Reply)
	}
}

func TestMachineEmptyCatalogFallsBackToFreeText(t *testing.T) {
	m, _ := newMachineFixture()

	s := NewSession("628")
	s.FlowState = StateLocation
	s.PatientName = "Maria"
	s.Complaints = []Complaint{{}}

	out := turn(t, m, s, "3") // Skin: leaf with no symptom rows
	if s.FlowState != StateSymptoms {
		t.Fatalf("state = %s", s.FlowState)
	}
	if out.Reply != promptSymptomsFallback {
		t.Fatalf("Reply = %q, want free-text fallback", out.Reply)
	}

	out = turn(t, m, s, "itching; dry patches")
	if s.FlowState != StateOnset {
		t.Fatalf("state = %s", s.FlowState)
	}
	if got := s.Complaints[0].Symptoms; !reflect.DeepEqual(got, []string{"itching", "dry patches"}) {
		t.Fatalf("Symptoms = %v", got)
	}
}

func TestMachineAbandonSelectionReturnsToLocation(t *testing.T) {
	m, nodes := newMachineFixture()

	s := NewSession("628")
	s.FlowState = StateSymptoms
	chestId := nodes["chest"].Id
	s.Complaints = []Complaint{{LocationId: &chestId, Location: "Chest"}}
	s.PendingSelection = []SelectedItem{{Id: uuid.New(), Name: "Cough"}}
	s.CurrentPage = 1

	out := turn(t, m, s, "0")
	if s.FlowState != StateLocation {
		t.Fatalf("state = %s", s.FlowState)
	}
	if s.PendingSelection != nil {
		t.Fatalf("pending must be discarded on abandon: %+v", s.PendingSelection)
	}
	if !strings.Contains(out.Reply, "Where is the problem?") {
		t.Fatalf("Reply = %q, want root menu", out.Reply)
	}
}

func TestMachineReviewBranches(t *testing.T) {
	base := func() *Session {
		s := NewSession("628")
		s.FlowState = StateReview
		s.PatientName = "Maria"
		s.Complaints = []Complaint{{Location: "Chest", Symptoms: []string{"Cough"}, Onset: "yesterday"}}
		return s
	}
	m, _ := newMachineFixture()

	t.Run("add another complaint", func(t *testing.T) {
		s := base()
		out := turn(t, m, s, "2")
		if s.FlowState != StateLocation || len(s.Complaints) != 2 {
			t.Fatalf("after add: %+v", s)
		}
		if s.Complaints[0].Location != "Chest" {
			t.Fatal("first complaint must survive")
		}
		if !strings.Contains(out.Reply, "Where is the problem?") {
			t.Fatalf("Reply = %q", out.Reply)
		}
	})

	t.Run("redo current complaint", func(t *testing.T) {
		s := base()
		turn(t, m, s, "3")
		if s.FlowState != StateLocation || len(s.Complaints) != 1 {
			t.Fatalf("after redo: %+v", s)
		}
		if s.Complaints[0].Location != "" || s.Complaints[0].Symptoms != nil {
			t.Fatalf("redo must wipe the complaint: %+v", s.Complaints[0])
		}
	})

	t.Run("unknown choice reprompts", func(t *testing.T) {
		s := base()
		out := turn(t, m, s, "7")
		if s.FlowState != StateReview {
			t.Fatalf("state = %s", s.FlowState)
		}
		if !strings.Contains(out.Reply, noticeOutOfRange) || !strings.Contains(out.Reply, "Here is what I have") {
			t.Fatalf("Reply = %q", out.Reply)
		}
	})
}

// Turn must be a pure function of (session, input): redelivered messages
// produce the identical patch and reply, so retries cannot corrupt state.
func TestMachineTurnIsPure(t *testing.T) {
	m, _ := newMachineFixture()

	s := NewSession("628")
	s.FlowState = StateOnset
	s.PatientName = "Maria"
	s.Complaints = []Complaint{{Location: "Chest"}}

	first, err := m.Turn(context.Background(), s, "since last night")
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}
	second, err := m.Turn(context.Background(), s, "since last night")
	if err != nil {
		t.Fatalf("Turn: %v", err)
	}

	if first.Reply != second.Reply {
		t.Errorf("replies differ: %q vs %q", first.Reply, second.Reply)
	}
	if !reflect.DeepEqual(first.Patch, second.Patch) {
		t.Errorf("patches differ:\n%+v\n%+v", first.Patch, second.Patch)
	}
}

func TestMachineSymptomsWithoutLocationRecovers(t *testing.T) {
	m, _ := newMachineFixture()

	s := NewSession("628")
	s.FlowState = StateSymptoms // no complaint opened, no location

	out := turn(t, m, s, "1")
	if s.FlowState != StateLocation {
		t.Fatalf("state = %s, want recovery to LOCATION", s.FlowState)
	}
	if !strings.Contains(out.Reply, noticeLocationFirst) {
		t.Fatalf("Reply = %q", out.Reply)
	}
}

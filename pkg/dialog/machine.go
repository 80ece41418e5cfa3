package dialog

import (
	"context"
	"strconv"
	"strings"
	"time"
)

// Record is the structured result of a finished intake, handed to the caller
// for downstream processing when the review is confirmed.
type Record struct {
	ConversationKey string
	PatientName     string
	PatientAge      *int
	Complaints      []Complaint
	Summary         string
	CompletedAt     time.Time
}

// TurnOutput is what one dispatched turn produced: the session patch to
// persist, the reply to send, and optionally a completed record.
type TurnOutput struct {
	Patch     Patch
	Reply     string
	Completed *Record
}

// Machine is the intake flow state machine. It is stateless itself: all
// conversation state lives in the Session passed through each turn, so any
// number of request handlers can share one Machine.
type Machine struct {
	tree     *TreeNavigator
	selector *PagedMultiSelector
	commands Commands
}

func NewMachine(tree TreeSource, items ItemSource, pageSize int, commands Commands) *Machine {
	return &Machine{
		tree:     NewTreeNavigator(tree),
		selector: NewPagedMultiSelector(items, pageSize),
		commands: commands,
	}
}

// Entry returns the reply for a brand-new conversation. The first inbound
// message only opens the session; its text is not an answer to anything.
func (m *Machine) Entry() string {
	return promptWelcome
}

// Turn dispatches one inbound message against the session. The global
// command layer runs first and short-circuits the per-state handlers when it
// matches. Turn never mutates the session; the caller applies and persists
// the returned patch.
func (m *Machine) Turn(ctx context.Context, s *Session, input string) (TurnOutput, error) {
	switch m.commands.Match(input) {
	case CommandRestart:
		return TurnOutput{Patch: Patch{Reset: true}, Reply: replyRestarted}, nil
	case CommandEnd:
		now := time.Now().UTC()
		return TurnOutput{
			Patch: Patch{
				FlowState:             statePtr(StateDone),
				EndedAt:               &now,
				ClearSelectionPath:    true,
				ClearPendingSelection: true,
			},
			Reply: replyEnded,
		}, nil
	case CommandBack:
		return m.stepBack(ctx, s)
	}

	switch s.FlowState {
	case StateWelcome:
		return m.collectName(input)
	case StateAge:
		return m.collectAge(ctx, input)
	case StateLocation:
		return m.navigateLocation(ctx, s, input)
	case StateSymptoms:
		return m.selectSymptoms(ctx, s, input)
	case StateOnset:
		return m.collectText(s, input, StateCourse, promptOnset, promptCourse, func(c *Complaint, v string) { c.Onset = v })
	case StateCourse:
		return m.collectText(s, input, StateAggravating, promptCourse, promptAggr, func(c *Complaint, v string) { c.Course = v })
	case StateAggravating:
		return m.collectText(s, input, StateRelieving, promptAggr, promptRelief, func(c *Complaint, v string) { c.Aggravating = v })
	case StateRelieving:
		return m.collectText(s, input, StateAssociated, promptRelief, promptAssoc, func(c *Complaint, v string) { c.Relieving = v })
	case StateAssociated:
		return m.collectList(s, input, StateSeverity, promptAssoc, promptSever, func(c *Complaint, vs []string) { c.Associated = vs })
	case StateSeverity:
		return m.collectSeverity(s, input)
	case StateImpact:
		return m.collectText(s, input, StateSafety, promptImpact, promptSafety, func(c *Complaint, v string) { c.Impact = v })
	case StateSafety:
		return m.collectSafety(s, input)
	case StateReview:
		return m.handleReview(ctx, s, input)
	case StateDone:
		return TurnOutput{Reply: replyAfterDone}, nil
	}

	// Unknown state in a stored document; recover at the entry state rather
	// than failing the turn.
	return TurnOutput{Patch: Patch{Reset: true}, Reply: replyRestarted}, nil
}

func (m *Machine) collectName(input string) (TurnOutput, error) {
	name := strings.TrimSpace(input)
	if name == "" {
		return TurnOutput{Reply: noticeAnswerRequired + "\n\n" + promptName}, nil
	}
	return TurnOutput{
		Patch: Patch{FlowState: statePtr(StateAge), PatientName: strPtr(name)},
		Reply: promptAge,
	}, nil
}

func (m *Machine) collectAge(ctx context.Context, input string) (TurnOutput, error) {
	age, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil || age < 0 || age > 130 {
		return TurnOutput{Reply: noticeNumberRequired + "\n\n" + promptAge}, nil
	}
	// Identification is done; open the first complaint and start the
	// location drill-down.
	prompt, err := m.tree.Prompt(ctx, nil)
	if err != nil {
		return TurnOutput{}, err
	}
	return TurnOutput{
		Patch: Patch{
			FlowState:  statePtr(StateLocation),
			PatientAge: intPtr(age),
			Complaints: []Complaint{{}},
		},
		Reply: prompt,
	}, nil
}

func (m *Machine) navigateLocation(ctx context.Context, s *Session, input string) (TurnOutput, error) {
	res, err := m.tree.Step(ctx, s.SelectionPath, input)
	if err != nil {
		return TurnOutput{}, err
	}
	if !res.Done {
		p := Patch{SelectionPath: res.Path}
		if len(res.Path) == 0 {
			p.SelectionPath = nil
			p.ClearSelectionPath = true
		}
		return TurnOutput{Patch: p, Reply: res.Reply}, nil
	}

	complaints := cloneComplaints(s)
	c := lastComplaint(&complaints)
	c.LocationId = &res.Leaf.Id
	c.Location = res.Leaf.Name

	patch := Patch{
		FlowState:          statePtr(StateSymptoms),
		Complaints:         complaints,
		ClearSelectionPath: true,
		CurrentPage:        intPtr(1),
	}
	sel, err := m.selector.Prompt(ctx, res.Leaf.Id, nil, 1)
	if err != nil {
		return TurnOutput{}, err
	}
	reply := sel.Reply
	if sel.Empty {
		reply = promptSymptomsFallback
	}
	return TurnOutput{Patch: patch, Reply: reply}, nil
}

func (m *Machine) selectSymptoms(ctx context.Context, s *Session, input string) (TurnOutput, error) {
	c := s.CurrentComplaint()
	if c == nil || c.LocationId == nil {
		// Multi-select reached without a resolved location: reset to the
		// nearest well-defined prior state instead of failing the turn.
		prompt, err := m.tree.Prompt(ctx, nil)
		if err != nil {
			return TurnOutput{}, err
		}
		patch := Patch{
			FlowState:             statePtr(StateLocation),
			ClearSelectionPath:    true,
			ClearPendingSelection: true,
		}
		return TurnOutput{Patch: patch, Reply: noticeLocationFirst + "\n\n" + prompt}, nil
	}

	res, err := m.selector.Step(ctx, *c.LocationId, s.PendingSelection, s.CurrentPage, input)
	if err != nil {
		return TurnOutput{}, err
	}

	switch {
	case res.Empty:
		// Free-text fallback: the catalog has no rows for this leaf, so the
		// message itself is the delimited symptom list.
		names := SplitTextTokens(input)
		if len(names) == 0 {
			return TurnOutput{Reply: noticeAnswerRequired + "\n\n" + promptSymptomsFallback}, nil
		}
		return m.finishSymptoms(s, names)

	case res.Abandoned:
		prompt, perr := m.tree.Prompt(ctx, nil)
		if perr != nil {
			return TurnOutput{}, perr
		}
		patch := Patch{
			FlowState:             statePtr(StateLocation),
			ClearPendingSelection: true,
			CurrentPage:           intPtr(1),
		}
		return TurnOutput{Patch: patch, Reply: prompt}, nil

	case res.Done:
		names := make([]string, len(res.Selected))
		for i, sel := range res.Selected {
			names[i] = sel.Name
		}
		return m.finishSymptoms(s, names)

	default:
		patch := Patch{CurrentPage: intPtr(res.Page)}
		if len(res.Pending) == 0 {
			patch.ClearPendingSelection = true
		} else {
			patch.PendingSelection = res.Pending
		}
		return TurnOutput{Patch: patch, Reply: res.Reply}, nil
	}
}

func (m *Machine) finishSymptoms(s *Session, names []string) (TurnOutput, error) {
	complaints := cloneComplaints(s)
	lastComplaint(&complaints).Symptoms = names
	patch := Patch{
		FlowState:             statePtr(StateOnset),
		Complaints:            complaints,
		ClearPendingSelection: true,
		CurrentPage:           intPtr(1),
	}
	return TurnOutput{Patch: patch, Reply: promptOnset}, nil
}

func (m *Machine) collectText(s *Session, input string, next State, ownPrompt, nextPrompt string, set func(*Complaint, string)) (TurnOutput, error) {
	v := strings.TrimSpace(input)
	if v == "" {
		return TurnOutput{Reply: noticeAnswerRequired + "\n\n" + ownPrompt}, nil
	}
	complaints := cloneComplaints(s)
	set(lastComplaint(&complaints), v)
	return TurnOutput{
		Patch: Patch{FlowState: statePtr(next), Complaints: complaints},
		Reply: nextPrompt,
	}, nil
}

func (m *Machine) collectList(s *Session, input string, next State, ownPrompt, nextPrompt string, set func(*Complaint, []string)) (TurnOutput, error) {
	vs := SplitTextTokens(input)
	if isNegation(input) {
		vs = nil
	} else if len(vs) == 0 {
		return TurnOutput{Reply: noticeAnswerRequired + "\n\n" + ownPrompt}, nil
	}
	complaints := cloneComplaints(s)
	set(lastComplaint(&complaints), vs)
	return TurnOutput{
		Patch: Patch{FlowState: statePtr(next), Complaints: complaints},
		Reply: nextPrompt,
	}, nil
}

// collectSeverity never blocks the flow: a score outside 0..10 or a
// non-numeric answer is stored as unscored and the intake moves on.
func (m *Machine) collectSeverity(s *Session, input string) (TurnOutput, error) {
	complaints := cloneComplaints(s)
	c := lastComplaint(&complaints)
	if v, err := strconv.Atoi(strings.TrimSpace(input)); err == nil && v >= 0 && v <= 10 {
		c.Severity = &v
	} else {
		c.Severity = nil
	}
	return TurnOutput{
		Patch: Patch{FlowState: statePtr(StateImpact), Complaints: complaints},
		Reply: promptImpact,
	}, nil
}

func (m *Machine) collectSafety(s *Session, input string) (TurnOutput, error) {
	vs := SplitTextTokens(input)
	if isNegation(input) {
		vs = nil
	}
	complaints := cloneComplaints(s)
	lastComplaint(&complaints).SafetyFlags = vs

	next := *s
	next.Complaints = complaints
	return TurnOutput{
		Patch: Patch{FlowState: statePtr(StateReview), Complaints: complaints},
		Reply: RenderReview(&next),
	}, nil
}

func (m *Machine) handleReview(ctx context.Context, s *Session, input string) (TurnOutput, error) {
	switch strings.TrimSpace(input) {
	case "1":
		now := time.Now().UTC()
		record := &Record{
			ConversationKey: s.Key,
			PatientName:     s.PatientName,
			PatientAge:      s.PatientAge,
			Complaints:      cloneComplaints(s),
			Summary:         RenderSummary(s),
			CompletedAt:     now,
		}
		patch := Patch{FlowState: statePtr(StateDone), EndedAt: &now}
		return TurnOutput{Patch: patch, Reply: replyDone, Completed: record}, nil

	case "2":
		complaints := append(cloneComplaints(s), Complaint{})
		return m.toLocation(ctx, complaints)

	case "3":
		// Coarse-grained edit: wipe the current complaint and collect it
		// again from the top.
		complaints := cloneComplaints(s)
		*lastComplaint(&complaints) = Complaint{}
		return m.toLocation(ctx, complaints)
	}
	return TurnOutput{Reply: noticeOutOfRange + "\n\n" + RenderReview(s)}, nil
}

func (m *Machine) toLocation(ctx context.Context, complaints []Complaint) (TurnOutput, error) {
	prompt, err := m.tree.Prompt(ctx, nil)
	if err != nil {
		return TurnOutput{}, err
	}
	patch := Patch{
		FlowState:             statePtr(StateLocation),
		Complaints:            complaints,
		ClearSelectionPath:    true,
		ClearPendingSelection: true,
		CurrentPage:           intPtr(1),
	}
	return TurnOutput{Patch: patch, Reply: prompt}, nil
}

func (m *Machine) stepBack(ctx context.Context, s *Session) (TurnOutput, error) {
	prev, ok := PredecessorOf(s.FlowState)
	if !ok {
		// Entry state: back is a no-op beyond re-showing the prompt.
		return TurnOutput{Reply: promptName}, nil
	}
	patch := Patch{
		FlowState:             statePtr(prev),
		ClearSelectionPath:    true,
		ClearPendingSelection: true,
		CurrentPage:           intPtr(1),
	}
	prompt, err := m.promptFor(ctx, s, prev)
	if err != nil {
		return TurnOutput{}, err
	}
	return TurnOutput{Patch: patch, Reply: replyWentBack + "\n\n" + prompt}, nil
}

// promptFor renders the question a state asks on entry, used when the back
// command lands on it without that state having produced its own reply.
func (m *Machine) promptFor(ctx context.Context, s *Session, st State) (string, error) {
	switch st {
	case StateWelcome:
		return promptName, nil
	case StateAge:
		return promptAge, nil
	case StateLocation:
		return m.tree.Prompt(ctx, nil)
	case StateSymptoms:
		c := s.CurrentComplaint()
		if c == nil || c.LocationId == nil {
			return m.tree.Prompt(ctx, nil)
		}
		res, err := m.selector.Prompt(ctx, *c.LocationId, nil, 1)
		if err != nil {
			return "", err
		}
		if res.Empty {
			return promptSymptomsFallback, nil
		}
		return res.Reply, nil
	case StateOnset:
		return promptOnset, nil
	case StateCourse:
		return promptCourse, nil
	case StateAggravating:
		return promptAggr, nil
	case StateRelieving:
		return promptRelief, nil
	case StateAssociated:
		return promptAssoc, nil
	case StateSeverity:
		return promptSever, nil
	case StateImpact:
		return promptImpact, nil
	case StateSafety:
		return promptSafety, nil
	case StateReview:
		return RenderReview(s), nil
	}
	return promptName, nil
}

func cloneComplaints(s *Session) []Complaint {
	return append([]Complaint(nil), s.Complaints...)
}

// lastComplaint returns the complaint under collection, appending an empty
// one if the slice is somehow empty so handlers always have a target.
func lastComplaint(cs *[]Complaint) *Complaint {
	if len(*cs) == 0 {
		*cs = append(*cs, Complaint{})
	}
	return &(*cs)[len(*cs)-1]
}

// SplitTextTokens splits free text on the same delimiter set the selector
// accepts, for delimited-list answers and the empty-catalog fallback.
func SplitTextTokens(raw string) []string {
	fields := strings.FieldsFunc(raw, selectDelimiters)
	var out []string
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f != "" {
			out = append(out, f)
		}
	}
	return out
}

func isNegation(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "no", "none", "n", "-", "nothing":
		return true
	}
	return false
}

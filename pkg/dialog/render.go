package dialog

import (
	"fmt"
	"strconv"
	"strings"
)

// Validation notices prefixed onto a re-rendered prompt.
const (
	noticeNumberRequired   = "Please answer with the number of an option."
	noticeOutOfRange       = "That number is not on the menu."
	noticeInvalidChoice    = "None of that matched an option on this page."
	noticeNothingSelected  = "Nothing is selected yet. Toggle at least one item before confirming."
	noticeSelectionCleared = "Selection cleared."
	noticeAnswerRequired   = "Please give a short answer."
	noticeLocationFirst    = "Let's pick the body area first."
)

const replyWentBack = "Going back one step."

// Fixed prompts for the plain field-collection states.
const (
	promptWelcome = "Welcome to the clinic intake assistant. I will ask a few short questions so the doctor can prepare for your visit.\n\nFirst, what is the patient's full name?"
	promptName    = "What is the patient's full name?"
	promptAge     = "How old is the patient? Please answer with a number."
	promptOnset   = "When did it start? (e.g. \"3 days ago\", \"last night\")"
	promptCourse  = "Since it started, is it getting better, worse, or staying the same?"
	promptAggr    = "Does anything make it worse?"
	promptRelief  = "Does anything make it better?"
	promptAssoc   = "Any other symptoms alongside it? Separate several with commas, or answer \"no\"."
	promptSever   = "On a scale of 0 to 10, how bad is it right now?"
	promptImpact  = "How is this affecting daily life (sleep, work, eating)?"
	promptSafety  = "Any of the following: fainting, severe bleeding, trouble breathing, chest pain? List any that apply, or answer \"no\"."

	replyEnded     = "Thank you. The intake has been closed. Send any message to reach us again."
	replyRestarted = "Starting over.\n\n" + promptWelcome
	replyDone      = "Thank you! Your intake is complete and has been passed to the clinic. We will be in touch shortly."
	replyAfterDone = "This intake is already complete. Send \"restart\" to begin a new one."

	// ReplyBusy and ReplyUnavailable are the only replies the service layer
	// emits on its own, when a turn cannot be completed.
	ReplyBusy        = "We are a little busy right now. Please send your message again in a moment."
	ReplyUnavailable = "The service is temporarily unavailable. Please try again shortly."

	notStated = "not stated"
)

// RenderTreeMenu renders one level of the drill-down as a 1-based numbered
// list plus the constant back option.
func RenderTreeMenu(path []PathStep, children []Node, notice string) string {
	var b strings.Builder
	if notice != "" {
		b.WriteString(notice)
		b.WriteString("\n\n")
	}
	if len(path) == 0 {
		b.WriteString("Where is the problem? Pick the area that fits best:\n")
	} else {
		b.WriteString("You picked: ")
		b.WriteString(renderBreadcrumb(path))
		b.WriteString("\nNarrow it down:\n")
	}
	if len(children) == 0 {
		// Data fault upstream of the conversation; report and wait.
		b.WriteString("\nNo options are available here yet. Please try again later, or send 0 to go back.")
		return b.String()
	}
	for i, c := range children {
		fmt.Fprintf(&b, "%d. %s\n", i+1, c.Name)
	}
	b.WriteString("0. Go back one level")
	return b.String()
}

// RenderSelectPage renders one page of the multi-select with checkbox marks
// and the positionally numbered controls.
func RenderSelectPage(pageItems []Item, pending []SelectedItem, page, pages int, ctl Controls, notice string) string {
	selected := make(map[string]bool, len(pending))
	for _, s := range pending {
		selected[s.Id.String()] = true
	}

	var b strings.Builder
	if notice != "" {
		b.WriteString(notice)
		b.WriteString("\n\n")
	}
	fmt.Fprintf(&b, "Which symptoms apply? (page %d/%d, %d selected)\nSend one or more numbers to toggle, e.g. \"1,3\".\n", page, pages, len(pending))
	for i, it := range pageItems {
		mark := "[ ]"
		if selected[it.Id.String()] {
			mark = "[x]"
		}
		fmt.Fprintf(&b, "%d. %s %s\n", i+1, mark, it.Name)
	}
	if ctl.Prev != 0 {
		fmt.Fprintf(&b, "%d. Previous page\n", ctl.Prev)
	}
	if ctl.Next != 0 {
		fmt.Fprintf(&b, "%d. Next page\n", ctl.Next)
	}
	fmt.Fprintf(&b, "%d. Clear selection\n", ctl.Clear)
	fmt.Fprintf(&b, "%d. Done selecting\n", ctl.Confirm)
	b.WriteString("0. Back to body area")
	return b.String()
}

const promptSymptomsFallback = "What symptoms do you have? List them separated by commas."

// RenderReview renders the deterministic summary of everything collected so
// far, with placeholders for fields the patient skipped.
func RenderReview(s *Session) string {
	var b strings.Builder
	b.WriteString("Here is what I have:\n\n")
	b.WriteString(RenderSummary(s))
	b.WriteString("\n\n1. Looks right, send it to the clinic\n2. Add another complaint\n3. Redo this complaint")
	return b.String()
}

// RenderSummary is the record handed downstream; it must stay deterministic
// for a given session.
func RenderSummary(s *Session) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Patient: %s\n", orPlaceholder(s.PatientName))
	if s.PatientAge != nil {
		fmt.Fprintf(&b, "Age: %d\n", *s.PatientAge)
	} else {
		fmt.Fprintf(&b, "Age: %s\n", notStated)
	}
	for i := range s.Complaints {
		c := &s.Complaints[i]
		fmt.Fprintf(&b, "\nComplaint %d:\n", i+1)
		fmt.Fprintf(&b, "  Location: %s\n", orPlaceholder(c.Location))
		fmt.Fprintf(&b, "  Symptoms: %s\n", orPlaceholderList(c.Symptoms))
		fmt.Fprintf(&b, "  Onset: %s\n", orPlaceholder(c.Onset))
		fmt.Fprintf(&b, "  Course: %s\n", orPlaceholder(c.Course))
		fmt.Fprintf(&b, "  Worse with: %s\n", orPlaceholder(c.Aggravating))
		fmt.Fprintf(&b, "  Better with: %s\n", orPlaceholder(c.Relieving))
		fmt.Fprintf(&b, "  Associated: %s\n", orPlaceholderList(c.Associated))
		if c.Severity != nil {
			fmt.Fprintf(&b, "  Severity: %s/10\n", strconv.Itoa(*c.Severity))
		} else {
			fmt.Fprintf(&b, "  Severity: unscored\n")
		}
		fmt.Fprintf(&b, "  Impact: %s\n", orPlaceholder(c.Impact))
		fmt.Fprintf(&b, "  Safety flags: %s\n", orPlaceholderList(c.SafetyFlags))
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderBreadcrumb(path []PathStep) string {
	names := make([]string, len(path))
	for i, p := range path {
		names[i] = p.Name
	}
	return strings.Join(names, " > ")
}

func orPlaceholder(v string) string {
	if strings.TrimSpace(v) == "" {
		return notStated
	}
	return v
}

func orPlaceholderList(vs []string) string {
	if len(vs) == 0 {
		return notStated
	}
	return strings.Join(vs, ", ")
}

package dialog

import (
	"context"
	"reflect"
	"strings"
	"testing"

	"github.com/google/uuid"
)

// stubItemSource serves a fixed item list per context id.
type stubItemSource struct {
	items map[uuid.UUID][]Item
}

func (s *stubItemSource) ItemsFor(_ context.Context, contextId uuid.UUID) ([]Item, error) {
	return s.items[contextId], nil
}

func TestControlIndexes(t *testing.T) {
	tests := []struct {
		name      string
		itemCount int
		hasPrev   bool
		hasNext   bool
		want      Controls
	}{
		{
			name:      "single page",
			itemCount: 4,
			want:      Controls{Clear: 5, Confirm: 6},
		},
		{
			name:      "first of many",
			itemCount: 6,
			hasNext:   true,
			want:      Controls{Next: 7, Clear: 8, Confirm: 9},
		},
		{
			name:      "middle page",
			itemCount: 6,
			hasPrev:   true,
			hasNext:   true,
			want:      Controls{Prev: 7, Next: 8, Clear: 9, Confirm: 10},
		},
		{
			name:      "short last page",
			itemCount: 2,
			hasPrev:   true,
			want:      Controls{Prev: 3, Clear: 4, Confirm: 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ControlIndexes(tt.itemCount, tt.hasPrev, tt.hasNext)
			if got != tt.want {
				t.Errorf("ControlIndexes = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSplitIndexTokens(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []int
	}{
		{name: "single", raw: "3", want: []int{3}},
		{name: "comma list", raw: "1,3,5", want: []int{1, 3, 5}},
		{name: "mixed delimiters", raw: "1; 3、5，7", want: []int{1, 3, 5, 7}},
		{name: "duplicates collapse", raw: "2,2,2", want: []int{2}},
		{name: "first-seen order kept", raw: "5,1,5,3,1", want: []int{5, 1, 3}},
		{name: "non-numeric dropped", raw: "1, two, 3", want: []int{1, 3}},
		{name: "all junk", raw: "maybe later", want: nil},
		{name: "empty", raw: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitIndexTokens(tt.raw)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitIndexTokens(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func newSelectorFixture(t *testing.T, itemNames []string, pageSize int) (*PagedMultiSelector, uuid.UUID, []Item) {
	t.Helper()
	leafId := uuid.New()
	items := make([]Item, len(itemNames))
	for i, name := range itemNames {
		items[i] = Item{Id: uuid.New(), Name: name, SortOrder: i}
	}
	src := &stubItemSource{items: map[uuid.UUID][]Item{leafId: items}}
	return NewPagedMultiSelector(src, pageSize), leafId, items
}

func TestSelectorBatchToggle(t *testing.T) {
	sel, leafId, items := newSelectorFixture(t, []string{"Cough", "Fever", "Wheezing", "Fatigue"}, 6)

	res, err := sel.Step(context.Background(), leafId, nil, 1, "1,3")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res.Done || res.Abandoned || res.Empty {
		t.Fatalf("unexpected terminal result: %+v", res)
	}
	if len(res.Pending) != 2 || res.Pending[0].Id != items[0].Id || res.Pending[1].Id != items[2].Id {
		t.Fatalf("Pending = %+v, want items 1 and 3", res.Pending)
	}

	// Toggling one of them again removes it and keeps the other's position.
	res, err = sel.Step(context.Background(), leafId, res.Pending, 1, "1")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(res.Pending) != 1 || res.Pending[0].Id != items[2].Id {
		t.Fatalf("Pending after re-toggle = %+v, want item 3 only", res.Pending)
	}
}

func TestSelectorToggleKeepsInsertionOrder(t *testing.T) {
	sel, leafId, items := newSelectorFixture(t, []string{"A", "B", "C", "D"}, 6)

	res, err := sel.Step(context.Background(), leafId, nil, 1, "3,1,4")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	wantIds := []uuid.UUID{items[2].Id, items[0].Id, items[3].Id}
	if len(res.Pending) != len(wantIds) {
		t.Fatalf("Pending = %+v, want 3 items", res.Pending)
	}
	for i, want := range wantIds {
		if res.Pending[i].Id != want {
			t.Fatalf("Pending[%d] = %s, out of toggle order", i, res.Pending[i].Name)
		}
	}
}

func TestSelectorPagination(t *testing.T) {
	names := []string{"A", "B", "C", "D", "E", "F", "G"}
	sel, leafId, items := newSelectorFixture(t, names, 3)
	ctx := context.Background()

	// Page 1 of 3: items 1..3, next=4, clear=5, confirm=6.
	res, err := sel.Step(ctx, leafId, nil, 1, "4")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res.Page != 2 {
		t.Fatalf("Page = %d, want 2", res.Page)
	}
	if !strings.Contains(res.Reply, "page 2/3") {
		t.Fatalf("Reply missing page header: %q", res.Reply)
	}

	// Page 2: items 1..3 are D,E,F; toggling 2 selects E.
	res, err = sel.Step(ctx, leafId, res.Pending, res.Page, "2")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(res.Pending) != 1 || res.Pending[0].Id != items[4].Id {
		t.Fatalf("Pending = %+v, want E", res.Pending)
	}

	// Page 2 of 3: prev=4, next=5, clear=6, confirm=7.
	res, err = sel.Step(ctx, leafId, res.Pending, res.Page, "7")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.Done || len(res.Selected) != 1 || res.Selected[0].Name != "E" {
		t.Fatalf("confirm result = %+v, want Done with E", res)
	}
}

func TestSelectorControlsShiftOnLastPage(t *testing.T) {
	// 7 items, page size 3: last page has one item, so prev=2, clear=3,
	// confirm=4. The same number means different things on different pages.
	sel, leafId, items := newSelectorFixture(t, []string{"A", "B", "C", "D", "E", "F", "G"}, 3)
	ctx := context.Background()

	res, err := sel.Step(ctx, leafId, nil, 3, "1")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(res.Pending) != 1 || res.Pending[0].Id != items[6].Id {
		t.Fatalf("Pending = %+v, want G", res.Pending)
	}

	res, err = sel.Step(ctx, leafId, res.Pending, 3, "4")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.Done || len(res.Selected) != 1 {
		t.Fatalf("confirm on last page = %+v, want Done", res)
	}
}

func TestSelectorConfirmEmptyReprompts(t *testing.T) {
	sel, leafId, _ := newSelectorFixture(t, []string{"A", "B"}, 6)

	res, err := sel.Step(context.Background(), leafId, nil, 1, "4")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if res.Done {
		t.Fatal("confirm with empty set must not complete")
	}
	if !strings.Contains(res.Reply, noticeNothingSelected) {
		t.Fatalf("Reply = %q, want nothing-selected notice", res.Reply)
	}
}

func TestSelectorClear(t *testing.T) {
	sel, leafId, items := newSelectorFixture(t, []string{"A", "B"}, 6)
	pending := []SelectedItem{{Id: items[0].Id, Name: "A"}}

	res, err := sel.Step(context.Background(), leafId, pending, 1, "3")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(res.Pending) != 0 {
		t.Fatalf("Pending = %+v, want empty after clear", res.Pending)
	}
	if !strings.Contains(res.Reply, noticeSelectionCleared) {
		t.Fatalf("Reply = %q, want cleared notice", res.Reply)
	}
}

func TestSelectorAbandonDiscardsPending(t *testing.T) {
	sel, leafId, items := newSelectorFixture(t, []string{"A", "B"}, 6)
	pending := []SelectedItem{{Id: items[1].Id, Name: "B"}}

	res, err := sel.Step(context.Background(), leafId, pending, 1, "0")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.Abandoned || res.Done {
		t.Fatalf("result = %+v, want Abandoned", res)
	}
	if len(res.Pending) != 0 {
		t.Fatalf("Pending = %+v, want discarded", res.Pending)
	}
}

func TestSelectorOutOfRangeBatchIgnored(t *testing.T) {
	sel, leafId, items := newSelectorFixture(t, []string{"A", "B", "C"}, 6)

	// 99 is outside the page; 2 still toggles.
	res, err := sel.Step(context.Background(), leafId, nil, 1, "99,2")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(res.Pending) != 1 || res.Pending[0].Id != items[1].Id {
		t.Fatalf("Pending = %+v, want B only", res.Pending)
	}

	// A batch where nothing matches re-renders with a notice.
	res, err = sel.Step(context.Background(), leafId, nil, 1, "77,88")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if len(res.Pending) != 0 || !strings.Contains(res.Reply, noticeInvalidChoice) {
		t.Fatalf("result = %+v, want invalid-choice reprompt", res)
	}
}

func TestSelectorEmptyCatalog(t *testing.T) {
	src := &stubItemSource{items: map[uuid.UUID][]Item{}}
	sel := NewPagedMultiSelector(src, 6)

	res, err := sel.Step(context.Background(), uuid.New(), nil, 1, "1")
	if err != nil {
		t.Fatalf("Step: %v", err)
	}
	if !res.Empty {
		t.Fatalf("result = %+v, want Empty", res)
	}
}

func TestSelectorRenderMarksPending(t *testing.T) {
	sel, leafId, items := newSelectorFixture(t, []string{"Cough", "Fever"}, 6)
	pending := []SelectedItem{{Id: items[1].Id, Name: "Fever"}}

	res, err := sel.Prompt(context.Background(), leafId, pending, 1)
	if err != nil {
		t.Fatalf("Prompt: %v", err)
	}
	if !strings.Contains(res.Reply, "[x] Fever") || !strings.Contains(res.Reply, "[ ] Cough") {
		t.Fatalf("Reply = %q, want checkbox marks", res.Reply)
	}
	if !strings.Contains(res.Reply, "1 selected") {
		t.Fatalf("Reply = %q, want selected count", res.Reply)
	}
}

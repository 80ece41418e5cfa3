package dialog

import (
	"context"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// PagedMultiSelector drives a toggleable multi-select over a flat catalog
// split into fixed-size pages. Item indices are 1-based per page; control
// indices (prev/next/clear/confirm) are assigned positionally after the last
// item and recomputed on every render.
type PagedMultiSelector struct {
	source   ItemSource
	pageSize int
}

func NewPagedMultiSelector(source ItemSource, pageSize int) *PagedMultiSelector {
	if pageSize < 1 {
		pageSize = 1
	}
	return &PagedMultiSelector{source: source, pageSize: pageSize}
}

// Controls holds the menu numbers of the non-item actions for one render.
// A zero Prev/Next means the control is absent on this page.
type Controls struct {
	Prev    int
	Next    int
	Clear   int
	Confirm int
}

// ControlIndexes assigns control numbers sequentially after the page's last
// item index. Identity is positional: it must be recomputed every render.
func ControlIndexes(itemCount int, hasPrev, hasNext bool) Controls {
	next := itemCount + 1
	var c Controls
	if hasPrev {
		c.Prev = next
		next++
	}
	if hasNext {
		c.Next = next
		next++
	}
	c.Clear = next
	c.Confirm = next + 1
	return c
}

// SelectResult is the outcome of one multi-select turn.
type SelectResult struct {
	// Done is true once the set was confirmed; Selected holds the final
	// members in the order they were first added.
	Done     bool
	Selected []SelectedItem
	// Abandoned is true when the user exited with 0; the pending set is
	// discarded.
	Abandoned bool
	// Pending and Page are the episode state to persist for the next turn.
	Pending []SelectedItem
	Page    int
	// Empty is true when the catalog had no rows at all; the caller must
	// fall back to free-text collection.
	Empty bool
	Reply string
}

// Step consumes one message of an active selection episode.
func (m *PagedMultiSelector) Step(ctx context.Context, contextId uuid.UUID, pending []SelectedItem, page int, input string) (SelectResult, error) {
	items, err := m.source.ItemsFor(ctx, contextId)
	if err != nil {
		return SelectResult{}, err
	}
	if len(items) == 0 {
		return SelectResult{Empty: true}, nil
	}

	pages := (len(items) + m.pageSize - 1) / m.pageSize
	page = clampPage(page, pages)

	start := (page - 1) * m.pageSize
	end := start + m.pageSize
	if end > len(items) {
		end = len(items)
	}
	pageItems := items[start:end]
	ctl := ControlIndexes(len(pageItems), page > 1, page < pages)

	nums := SplitIndexTokens(input)
	if len(nums) == 1 {
		switch nums[0] {
		case 0:
			return SelectResult{Abandoned: true}, nil
		case ctl.Prev:
			if ctl.Prev != 0 {
				return m.render(items, pending, page-1, pages, "")
			}
		case ctl.Next:
			if ctl.Next != 0 {
				return m.render(items, pending, page+1, pages, "")
			}
		case ctl.Clear:
			return m.render(items, nil, page, pages, noticeSelectionCleared)
		case ctl.Confirm:
			if len(pending) == 0 {
				return m.render(items, pending, page, pages, noticeNothingSelected)
			}
			return SelectResult{Done: true, Selected: pending}, nil
		}
	}

	// Batch toggle: every number inside this page's item range flips the
	// matching item; everything else in the batch is ignored.
	next := append([]SelectedItem(nil), pending...)
	touched := false
	for _, v := range nums {
		if v < 1 || v > len(pageItems) {
			continue
		}
		next = toggle(next, pageItems[v-1])
		touched = true
	}
	if !touched {
		return m.render(items, pending, page, pages, noticeInvalidChoice)
	}
	return m.render(items, next, page, pages, "")
}

// Prompt renders the episode's current page without consuming input.
func (m *PagedMultiSelector) Prompt(ctx context.Context, contextId uuid.UUID, pending []SelectedItem, page int) (SelectResult, error) {
	items, err := m.source.ItemsFor(ctx, contextId)
	if err != nil {
		return SelectResult{}, err
	}
	if len(items) == 0 {
		return SelectResult{Empty: true}, nil
	}
	pages := (len(items) + m.pageSize - 1) / m.pageSize
	return m.render(items, pending, clampPage(page, pages), pages, "")
}

func (m *PagedMultiSelector) render(items []Item, pending []SelectedItem, page, pages int, notice string) (SelectResult, error) {
	page = clampPage(page, pages)
	start := (page - 1) * m.pageSize
	end := start + m.pageSize
	if end > len(items) {
		end = len(items)
	}
	pageItems := items[start:end]
	ctl := ControlIndexes(len(pageItems), page > 1, page < pages)
	reply := RenderSelectPage(pageItems, pending, page, pages, ctl, notice)
	return SelectResult{Pending: pending, Page: page, Reply: reply}, nil
}

// toggle flips membership of item in the set, keeping ids unique and
// preserving the order in which surviving members were first added.
func toggle(set []SelectedItem, item Item) []SelectedItem {
	for i, sel := range set {
		if sel.Id == item.Id {
			return append(set[:i], set[i+1:]...)
		}
	}
	return append(set, SelectedItem{Id: item.Id, Name: item.Name})
}

func clampPage(page, pages int) int {
	if page < 1 {
		return 1
	}
	if page > pages {
		return pages
	}
	return page
}

// selectDelimiters covers ASCII and fullwidth list punctuation so one
// message can toggle several items ("1,3,5", "1、3").
var selectDelimiters = func(r rune) bool {
	switch r {
	case ',', ';', '，', '；', '、', ' ', '\t', '\n', '\r':
		return true
	}
	return false
}

// SplitIndexTokens splits raw input into de-duplicated integers, preserving
// first-seen order. Non-numeric tokens are dropped.
func SplitIndexTokens(raw string) []int {
	fields := strings.FieldsFunc(raw, selectDelimiters)
	seen := make(map[int]bool, len(fields))
	var out []int
	for _, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			continue
		}
		if seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}

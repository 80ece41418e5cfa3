package dialog

import (
	"context"
	"strconv"
	"strings"
)

// TreeNavigator walks a user down the hierarchical catalog one level per
// turn, by 1-based menu index. Input "0" pops one level; a selection that
// has no children completes the traversal.
type TreeNavigator struct {
	source TreeSource
}

func NewTreeNavigator(source TreeSource) *TreeNavigator {
	return &TreeNavigator{source: source}
}

// TreeResult is the outcome of one navigation turn.
type TreeResult struct {
	// Done is true once a leaf has been reached. Leaf then holds the
	// resolved terminal step and Path is cleared.
	Done bool
	Leaf *PathStep
	// Path is the selection path after this turn.
	Path []PathStep
	// Reply is the rendered menu (or completion notice) for this turn.
	Reply string
}

// Step consumes one message while navigating. path is the breadcrumb from
// the session; it is never mutated in place.
func (n *TreeNavigator) Step(ctx context.Context, path []PathStep, input string) (TreeResult, error) {
	input = strings.TrimSpace(input)

	idx, numeric := parseIndex(input)
	if !numeric {
		reply, err := n.renderLevel(ctx, path, noticeNumberRequired)
		return TreeResult{Path: path, Reply: reply}, err
	}

	if idx == 0 {
		// Pop one level; popping past the root is a no-op.
		next := path
		if len(next) > 0 {
			next = append([]PathStep(nil), next[:len(next)-1]...)
		}
		reply, err := n.renderLevel(ctx, next, "")
		return TreeResult{Path: next, Reply: reply}, err
	}

	children, err := n.childrenAt(ctx, path)
	if err != nil {
		return TreeResult{}, err
	}
	if idx < 1 || idx > len(children) {
		reply, rerr := n.renderLevel(ctx, path, noticeOutOfRange)
		return TreeResult{Path: path, Reply: reply}, rerr
	}

	chosen := children[idx-1]
	step := PathStep{Id: chosen.Id, Name: chosen.Name, Level: chosen.Level}
	next := append(append([]PathStep(nil), path...), step)

	// The fetch result, not the HasChildren hint, decides leaf-ness so a
	// stale hint cannot strand the traversal.
	grandchildren, err := n.source.ChildrenOf(ctx, &chosen.Id)
	if err != nil {
		return TreeResult{}, err
	}
	if len(grandchildren) == 0 {
		return TreeResult{Done: true, Leaf: &step, Path: nil}, nil
	}

	reply := RenderTreeMenu(next, grandchildren, "")
	return TreeResult{Path: next, Reply: reply}, nil
}

// Prompt renders the menu for the current position without consuming input,
// used when the flow first enters the navigation state.
func (n *TreeNavigator) Prompt(ctx context.Context, path []PathStep) (string, error) {
	return n.renderLevel(ctx, path, "")
}

func (n *TreeNavigator) childrenAt(ctx context.Context, path []PathStep) ([]Node, error) {
	if len(path) == 0 {
		return n.source.ChildrenOf(ctx, nil)
	}
	last := path[len(path)-1]
	return n.source.ChildrenOf(ctx, &last.Id)
}

func (n *TreeNavigator) renderLevel(ctx context.Context, path []PathStep, notice string) (string, error) {
	children, err := n.childrenAt(ctx, path)
	if err != nil {
		return "", err
	}
	return RenderTreeMenu(path, children, notice), nil
}

func parseIndex(input string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(input))
	if err != nil {
		return 0, false
	}
	return v, true
}

package domain

import "github.com/fabulark/fabula/pkg/history"

// Branch is one option of a Choice node.
// Wrong marks branches that eventually lead back to the choice.
type Branch struct {
	Text  string `json:"text"`
	Wrong bool   `json:"wrong"`
}

// Choice is the payload of a multi-way decision node. Branches are a dense
// ordered list; edges refer to a branch by its position (the edge handle),
// so any reordering or deletion must be mirrored on the edges through
// graph.RemapHandles / graph.DeleteBranchEdges.
type Choice struct {
	Title    string                      `json:"title"`
	Branches []Branch                    `json:"branches"`
	History  history.Stack[TextSnapshot] `json:"history"`
}

// CurrentText returns the generated narration under the history cursor, if any.
func (c Choice) CurrentText() string {
	snap, err := c.History.Current()
	if err != nil {
		return ""
	}
	return snap.Text
}

// WithSnapshot records a newly generated narration for the decision point.
func (c Choice) WithSnapshot(snap TextSnapshot) Choice {
	c.History = c.History.Push(snap)
	return c
}

// WithTitle replaces the choice's question.
func (c Choice) WithTitle(title string) Choice {
	c.Title = title
	return c
}

// BranchTexts returns the branch texts in order.
func (c Choice) BranchTexts() []string {
	texts := make([]string, len(c.Branches))
	for i, b := range c.Branches {
		texts[i] = b.Text
	}
	return texts
}

// WithBranch replaces the branch at index i. Out-of-range indices are a no-op.
func (c Choice) WithBranch(i int, b Branch) Choice {
	if i < 0 || i >= len(c.Branches) {
		return c
	}
	branches := append([]Branch(nil), c.Branches...)
	branches[i] = b
	c.Branches = branches
	return c
}

// WithBranchText replaces the text of the branch at index i.
func (c Choice) WithBranchText(i int, text string) Choice {
	if i < 0 || i >= len(c.Branches) {
		return c
	}
	return c.WithBranch(i, Branch{Text: text, Wrong: c.Branches[i].Wrong})
}

// WithBranchWrong replaces the correctness flag of the branch at index i.
func (c Choice) WithBranchWrong(i int, wrong bool) Choice {
	if i < 0 || i >= len(c.Branches) {
		return c
	}
	return c.WithBranch(i, Branch{Text: c.Branches[i].Text, Wrong: wrong})
}

// AppendBranch adds a branch at the end of the list.
// The new branch has no edge until one is drawn, so no reconciliation is needed.
func (c Choice) AppendBranch(b Branch) Choice {
	branches := make([]Branch, len(c.Branches), len(c.Branches)+1)
	copy(branches, c.Branches)
	c.Branches = append(branches, b)
	return c
}

// MoveBranch moves the branch at index from to index to, shifting the branches
// in between. It returns the permuted choice together with the index
// permutation to feed graph.RemapHandles: perm[k] is the index the branch now
// at position k occupied before the move.
//
// Example: moving index 3 to the head of a 4-branch list yields
// perm = [3, 0, 1, 2].
//
// Out-of-range indices (or from == to) return the receiver and a nil permutation.
func (c Choice) MoveBranch(from, to int) (Choice, []int) {
	n := len(c.Branches)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return c, nil
	}

	perm := make([]int, 0, n)
	for i := 0; i < n; i++ {
		perm = append(perm, i)
	}
	moved := perm[from]
	perm = append(perm[:from], perm[from+1:]...)
	perm = append(perm[:to], append([]int{moved}, perm[to:]...)...)

	branches := make([]Branch, n)
	for k, old := range perm {
		branches[k] = c.Branches[old]
	}
	c.Branches = branches
	return c, perm
}

// DeleteBranch removes the branch at index k; branches after k shift down one
// position. Out-of-range indices are a no-op. The matching edge cleanup is
// graph.DeleteBranchEdges.
func (c Choice) DeleteBranch(k int) Choice {
	if k < 0 || k >= len(c.Branches) {
		return c
	}
	branches := make([]Branch, 0, len(c.Branches)-1)
	branches = append(branches, c.Branches[:k]...)
	branches = append(branches, c.Branches[k+1:]...)
	c.Branches = branches
	return c
}

// Package history implements bounded undo/redo over opaque snapshots.
// Snapshots are whole values, not diffs; the depth cap keeps memory flat no
// matter how long an editing session runs.
package history

// DefaultDepth is the cap used when no explicit depth is configured.
const DefaultDepth = 20

// Log holds the past and future stacks. Push records the state that existed
// before a committed mutation; Undo and Redo exchange snapshots with the
// caller's current state so nothing is lost crossing the boundary.
type Log[S any] struct {
	past   []S
	future []S
	depth  int
}

// New returns an empty log capped at depth entries. Non-positive depths
// fall back to DefaultDepth.
func New[S any](depth int) *Log[S] {
	if depth <= 0 {
		depth = DefaultDepth
	}
	return &Log[S]{depth: depth}
}

// Push records the pre-mutation snapshot. A new mutation forks the
// timeline, so the future stack clears; the oldest entry drops once the
// depth cap is hit.
func (l *Log[S]) Push(snapshot S) {
	l.past = append(l.past, snapshot)
	if len(l.past) > l.depth {
		copy(l.past, l.past[1:])
		l.past = l.past[:len(l.past)-1]
	}
	l.future = nil
}

// Undo pops the most recent past snapshot and stores current on the future
// stack. The second return is false when there is nothing to undo.
func (l *Log[S]) Undo(current S) (S, bool) {
	if len(l.past) == 0 {
		var zero S
		return zero, false
	}
	restored := l.past[len(l.past)-1]
	l.past = l.past[:len(l.past)-1]
	l.future = append(l.future, current)
	return restored, true
}

// Redo pops the most recent future snapshot and stores current on the past
// stack. The second return is false when there is nothing to redo.
func (l *Log[S]) Redo(current S) (S, bool) {
	if len(l.future) == 0 {
		var zero S
		return zero, false
	}
	restored := l.future[len(l.future)-1]
	l.future = l.future[:len(l.future)-1]
	l.past = append(l.past, current)
	return restored, true
}

// CanUndo reports whether an undo step is available.
func (l *Log[S]) CanUndo() bool {
	return len(l.past) > 0
}

// CanRedo reports whether a redo step is available.
func (l *Log[S]) CanRedo() bool {
	return len(l.future) > 0
}

// Clear drops both stacks.
func (l *Log[S]) Clear() {
	l.past = nil
	l.future = nil
}

package history

// State holds a linear edit history around a present value.
type State[T any] struct {
	Past    []T
	Present T
	Future  []T
}

// New creates a history with the given present value and empty past and
// future.
func New[T any](present T) State[T] {
	return State[T]{Present: present}
}

// Push commits next as the new present. The old present moves onto the
// past and the future is cleared: a new commit invalidates the redo
// chain.
func Push[T any](s State[T], next T) State[T] {
	past := make([]T, len(s.Past), len(s.Past)+1)
	copy(past, s.Past)
	return State[T]{
		Past:    append(past, s.Present),
		Present: next,
	}
}

// Undo steps back one commit. On an empty past it returns the state
// unchanged.
func Undo[T any](s State[T]) State[T] {
	if len(s.Past) == 0 {
		return s
	}
	past := make([]T, len(s.Past)-1)
	copy(past, s.Past[:len(s.Past)-1])

	future := make([]T, 0, len(s.Future)+1)
	future = append(future, s.Present)
	future = append(future, s.Future...)

	return State[T]{
		Past:    past,
		Present: s.Past[len(s.Past)-1],
		Future:  future,
	}
}

// Redo steps forward one undone commit. On an empty future it returns the
// state unchanged.
func Redo[T any](s State[T]) State[T] {
	if len(s.Future) == 0 {
		return s
	}
	past := make([]T, len(s.Past), len(s.Past)+1)
	copy(past, s.Past)

	future := make([]T, len(s.Future)-1)
	copy(future, s.Future[1:])

	return State[T]{
		Past:    append(past, s.Present),
		Present: s.Future[0],
		Future:  future,
	}
}

// CanUndo reports whether an Undo would change the state.
func (s State[T]) CanUndo() bool { return len(s.Past) > 0 }

// CanRedo reports whether a Redo would change the state.
func (s State[T]) CanRedo() bool { return len(s.Future) > 0 }

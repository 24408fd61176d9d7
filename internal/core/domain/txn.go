package domain

import "go.trai.ch/zerr"

// Frame is one atomic unit of the undo log: an ordered list of commands
// that undo and redo together.
type Frame struct {
	Name     string
	Commands []Command
}

type openFrame struct {
	frame    *Frame
	disabled bool
}

// Log is the transaction/undo log of one graph. Every mutation of the graph
// flows through Enact, which executes the command and records it into the
// current frame; the log is the sole mutation entry point so the dirty
// propagator runs exactly once per logical edit. The log is not safe for
// concurrent writers; graph mutation is single-threaded by contract.
type Log struct {
	graph *Graph

	undoStack []*Frame
	redoStack []*Frame
	open      []openFrame
	disabled  int
}

// Begin opens a named frame. Frames nest; closing a nested frame merges its
// commands into the parent.
func (l *Log) Begin(name string) {
	l.open = append(l.open, openFrame{frame: &Frame{Name: name}})
}

// BeginDisabled opens a frame whose commands execute but are not recorded
// and whose dirty propagations do not emit the dirtied signal. Used when a
// larger undoable operation wants its internal steps to be atomic rather
// than individually undoable. Nested disabled frames compose.
func (l *Log) BeginDisabled() {
	l.open = append(l.open, openFrame{frame: &Frame{}, disabled: true})
	l.disabled++
}

// End closes the innermost frame.
func (l *Log) End() error {
	if len(l.open) == 0 {
		return ErrNoOpenFrame
	}
	of := l.open[len(l.open)-1]
	l.open = l.open[:len(l.open)-1]
	if of.disabled {
		l.disabled--
		return nil
	}
	if len(of.frame.Commands) == 0 {
		return nil
	}
	if len(l.open) > 0 {
		parent := l.open[len(l.open)-1].frame
		parent.Commands = append(parent.Commands, of.frame.Commands...)
		return nil
	}
	l.undoStack = append(l.undoStack, of.frame)
	l.redoStack = nil
	return nil
}

// Enact executes the command and records it. Validation errors surface
// before anything is recorded, leaving the graph unmodified. Outside any
// frame a command forms its own single-command frame.
func (l *Log) Enact(cmd Command) error {
	if err := cmd.Do(l.graph); err != nil {
		return err
	}
	if l.disabled > 0 {
		return nil
	}
	if len(l.open) > 0 {
		f := l.open[len(l.open)-1].frame
		f.Commands = append(f.Commands, cmd)
		return nil
	}
	l.undoStack = append(l.undoStack, &Frame{Name: cmd.Tag(), Commands: []Command{cmd}})
	l.redoStack = nil
	return nil
}

// Undo reverses the most recent frame, executing its commands' inverses in
// reverse order.
func (l *Log) Undo() error {
	if len(l.open) > 0 {
		return ErrOpenFrame
	}
	if len(l.undoStack) == 0 {
		return ErrNothingToUndo
	}
	f := l.undoStack[len(l.undoStack)-1]
	l.undoStack = l.undoStack[:len(l.undoStack)-1]
	for i := len(f.Commands) - 1; i >= 0; i-- {
		if err := f.Commands[i].Undo(l.graph); err != nil {
			return zerr.With(zerr.Wrap(err, "undo failed"), "frame", f.Name)
		}
	}
	l.redoStack = append(l.redoStack, f)
	return nil
}

// Redo re-executes the most recently undone frame in forward order.
func (l *Log) Redo() error {
	if len(l.open) > 0 {
		return ErrOpenFrame
	}
	if len(l.redoStack) == 0 {
		return ErrNothingToRedo
	}
	f := l.redoStack[len(l.redoStack)-1]
	l.redoStack = l.redoStack[:len(l.redoStack)-1]
	for _, cmd := range f.Commands {
		if err := cmd.Do(l.graph); err != nil {
			return zerr.With(zerr.Wrap(err, "redo failed"), "frame", f.Name)
		}
	}
	l.undoStack = append(l.undoStack, f)
	return nil
}

// CanUndo reports whether the undo stack is non-empty.
func (l *Log) CanUndo() bool { return len(l.undoStack) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (l *Log) CanRedo() bool { return len(l.redoStack) > 0 }

// UndoFrames returns a copy of the undo stack for inspection, oldest first.
func (l *Log) UndoFrames() []*Frame {
	out := make([]*Frame, len(l.undoStack))
	copy(out, l.undoStack)
	return out
}

// suppressed reports whether dirtied signals are currently suppressed.
func (l *Log) suppressed() bool { return l.disabled > 0 }

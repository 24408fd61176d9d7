package domain

import "go.trai.ch/zerr"

var (
	// ErrCycleDetected is returned when a connection edit would make the
	// dataflow graph cyclic.
	ErrCycleDetected = zerr.New("connection would create a cycle")

	// ErrTypeMismatch is returned when a value or connection does not match
	// the plug's declared type.
	ErrTypeMismatch = zerr.New("type mismatch")

	// ErrDirectionMismatch is returned when a computed output plug is given
	// an input connection.
	ErrDirectionMismatch = zerr.New("computed output cannot take an input")

	// ErrNotAnInputPlug is returned when a value is set on a plug that does
	// not accept one.
	ErrNotAnInputPlug = zerr.New("plug does not accept a value")

	// ErrPlugConnected is returned when a value is set on a plug that is
	// driven by a connection.
	ErrPlugConnected = zerr.New("plug is driven by a connection")

	// ErrPlugNotFound is returned when a plug path does not resolve.
	ErrPlugNotFound = zerr.New("plug not found")

	// ErrNodeNotFound is returned when a node path does not resolve.
	ErrNodeNotFound = zerr.New("node not found")

	// ErrUnknownKind is returned when a kind name is not in the registry.
	ErrUnknownKind = zerr.New("unknown node kind")

	// ErrDuplicateName is returned when a child with the same name already
	// exists.
	ErrDuplicateName = zerr.New("name already in use")

	// ErrAlreadyOwned is returned when attaching a component that already
	// has a parent.
	ErrAlreadyOwned = zerr.New("component already has a parent")

	// ErrDetached is returned when a mutation targets a component that is
	// not part of the graph.
	ErrDetached = zerr.New("component is not attached to the graph")

	// ErrNoValue is returned when a structured or typeless plug is read as
	// a value.
	ErrNoValue = zerr.New("plug has no value")

	// ErrNothingToUndo is returned by Undo on an empty log.
	ErrNothingToUndo = zerr.New("nothing to undo")

	// ErrNothingToRedo is returned by Redo on an empty redo stack.
	ErrNothingToRedo = zerr.New("nothing to redo")

	// ErrOpenFrame is returned when undo or redo runs while a frame is
	// still open.
	ErrOpenFrame = zerr.New("transaction frame still open")

	// ErrNoOpenFrame is returned when a frame is closed without being open.
	ErrNoOpenFrame = zerr.New("no open transaction frame")

	// ErrDefinitionLoad is returned after a reference reload whose
	// definition source reported non-fatal errors. The graph is left in its
	// best-effort migrated state; callers may tolerate this error.
	ErrDefinitionLoad = zerr.New("definition loaded with errors")
)

package icy

// atomicGroup accumulates undo operations opened by BeginAtomicUndo until
// EndAtomicUndo closes them into a single AtomicUndo pushed onto the
// enclosing stack (which may itself be another atomicGroup, supporting
// nested groups).
type atomicGroup struct {
	description string
	opType      OperationType
	ops         []UndoOperation
}

// EditState owns a Buffer and the undo/redo stacks that record every
// mutation made through its methods. It is the only
// sanctioned way to mutate a Buffer when undo history must be preserved;
// direct Buffer/Layer mutation bypasses the undo stack entirely (used by
// format loaders and the WithLayerMutNoUndo escape hatch).
type EditState struct {
	Buffer       *Buffer
	CurrentLayer int
	Caret        Caret
	Selection    *Selection
	SelectionMask *SelectionMask

	undoStack []UndoOperation
	redoStack []UndoOperation
	groups    []*atomicGroup

	dirtyBuffer  bool
	dirtyPalette bool

	replaying bool // true while Undo/Redo is itself invoking Undo()/Redo()
}

// NewEditState wraps buf in a fresh edit session: current layer 0, a
// default caret, no selection, empty undo/redo stacks.
func NewEditState(buf *Buffer) *EditState {
	return &EditState{
		Buffer:        buf,
		CurrentLayer:  0,
		Caret:         NewCaret(),
		SelectionMask: NewSelectionMask(),
	}
}

// pushUndo records op as the most recent mutation. If a BeginAtomicUndo
// group is open, op is appended to it instead of the top-level stack.
// Any non-replay push clears the redo stack: a fresh mutation makes the
// previously-undone future unreachable.
func (es *EditState) pushUndo(op UndoOperation) {
	if len(es.groups) > 0 {
		g := es.groups[len(es.groups)-1]
		g.ops = append(g.ops, op)
		return
	}
	es.undoStack = append(es.undoStack, op)
	if !es.replaying {
		es.redoStack = nil
	}
	if op.ChangesData() {
		es.dirtyBuffer = true
	}
}

// BeginAtomicUndo opens a transactional group: subsequent mutations
// accumulate into a private stack instead of pushing directly onto the
// outer undo stack. Must be paired with EndAtomicUndo.
func (es *EditState) BeginAtomicUndo(description string, opType OperationType) {
	es.groups = append(es.groups, &atomicGroup{description: description, opType: opType})
}

// EndAtomicUndo closes the innermost open group, pushing one AtomicUndo
// recording its children in order. A group with zero recorded children
// is dropped silently (nothing to undo).
func (es *EditState) EndAtomicUndo() {
	if len(es.groups) == 0 {
		return
	}
	g := es.groups[len(es.groups)-1]
	es.groups = es.groups[:len(es.groups)-1]
	if len(g.ops) == 0 {
		return
	}
	es.pushUndo(&AtomicUndo{description: g.description, opType: g.opType, ops: g.ops})
}

// CanUndo reports whether Undo would have any effect.
func (es *EditState) CanUndo() bool { return len(es.undoStack) > 0 }

// CanRedo reports whether Redo would have any effect.
func (es *EditState) CanRedo() bool { return len(es.redoStack) > 0 }

// Undo pops and reverses the most recent top-level operation. If the
// operation errors, the failure propagates and the stacks are left
// unchanged (the operation itself is responsible for rolling back any
// partially-applied children — see AtomicUndo.Undo).
func (es *EditState) Undo() error {
	if len(es.undoStack) == 0 {
		return nil
	}
	op := es.undoStack[len(es.undoStack)-1]
	es.replaying = true
	err := op.Undo(es)
	es.replaying = false
	if err != nil {
		return err
	}
	es.undoStack = es.undoStack[:len(es.undoStack)-1]
	es.redoStack = append(es.redoStack, op)
	if op.ChangesData() {
		es.dirtyBuffer = true
	}
	return nil
}

// Redo pops and reapplies the most recently undone operation.
func (es *EditState) Redo() error {
	if len(es.redoStack) == 0 {
		return nil
	}
	op := es.redoStack[len(es.redoStack)-1]
	es.replaying = true
	err := op.Redo(es)
	es.replaying = false
	if err != nil {
		return err
	}
	es.redoStack = es.redoStack[:len(es.redoStack)-1]
	es.undoStack = append(es.undoStack, op)
	if op.ChangesData() {
		es.dirtyBuffer = true
	}
	return nil
}

// IsBufferDirty reports and does not clear the buffer-dirty flag.
func (es *EditState) IsBufferDirty() bool { return es.dirtyBuffer }

// ClearBufferDirty clears the buffer-dirty flag, as sampled by a renderer.
func (es *EditState) ClearBufferDirty() { es.dirtyBuffer = false }

// IsPaletteDirty reports the palette-dirty flag.
func (es *EditState) IsPaletteDirty() bool { return es.dirtyPalette }

// ClearPaletteDirty clears the palette-dirty flag.
func (es *EditState) ClearPaletteDirty() { es.dirtyPalette = false }

// ClampCurrentLayer keeps CurrentLayer valid after a layer removal.
func (es *EditState) ClampCurrentLayer() {
	n := len(es.Buffer.layers)
	if n == 0 {
		es.CurrentLayer = 0
		return
	}
	if es.CurrentLayer >= n {
		es.CurrentLayer = n - 1
	}
	if es.CurrentLayer < 0 {
		es.CurrentLayer = 0
	}
}

// currentLayer returns the current layer, or an error if CurrentLayer is
// out of range.
func (es *EditState) currentLayer() (*Layer, error) {
	if es.CurrentLayer < 0 || es.CurrentLayer >= len(es.Buffer.layers) {
		return nil, NewCurrentLayerInvalidError()
	}
	return es.Buffer.layers[es.CurrentLayer], nil
}

package icy

// OperationType groups undo operations for coalescing/UI purposes (e.g.
// successive single-character typing operations merge into one undo step
// in a host editor, while a paste never coalesces with anything).
type OperationType int

const (
	OperationTypeUnknown OperationType = iota
	OperationTypeEditChar
	OperationTypeLayer
	OperationTypeSelection
	OperationTypePalette
	OperationTypeFont
	OperationTypeTag
	OperationTypeBuffer
)

// UndoOperation is the capability set every undoable edit implements.
// It is a closed set only in the sense that every
// implementation lives in this package; Go has no sealed-interface
// mechanism, so exhaustiveness is enforced by code review and the
// DESIGN.md grounding ledger rather than the compiler.
type UndoOperation interface {
	Description() string
	OperationType() OperationType
	ChangesData() bool
	Undo(es *EditState) error
	Redo(es *EditState) error
}

// Cloneable is implemented by undo operations that can be safely reused
// across multiple EditState instances sharing a nested stack (AtomicUndo).
type Cloneable interface {
	TryClone() UndoOperation
}

// baseOp provides the common "selection-only ops don't dirty the buffer"
// default of ChangesData() == true; selection/caret-only ops embed
// baseOp{changesData: false} instead.
type baseOp struct {
	changesData bool
}

func (b baseOp) ChangesData() bool { return b.changesData }

// dataOp is the default for operations that do mutate buffer contents.
var dataOp = baseOp{changesData: true}

// selectionOp is the default for operations that only affect
// selection/caret state; selection-only ops return false.
var selectionOp = baseOp{changesData: false}

package icy

// AtomicUndo groups a sequence of UndoOperation values recorded between a
// BeginAtomicUndo/EndAtomicUndo pair into one undo step. Undo replays the
// children in reverse order; Redo replays them in original order. If a
// child fails partway, the siblings already applied are unwound in
// reverse before the error propagates, so the observable state equals
// the pre-group state.
type AtomicUndo struct {
	description string
	opType      OperationType
	ops         []UndoOperation
}

func (a *AtomicUndo) Description() string      { return a.description }
func (a *AtomicUndo) OperationType() OperationType { return a.opType }

func (a *AtomicUndo) ChangesData() bool {
	for _, op := range a.ops {
		if op.ChangesData() {
			return true
		}
	}
	return false
}

func (a *AtomicUndo) Undo(es *EditState) error {
	for i := len(a.ops) - 1; i >= 0; i-- {
		if err := a.ops[i].Undo(es); err != nil {
			for j := i + 1; j < len(a.ops); j++ {
				a.ops[j].Redo(es)
			}
			return err
		}
	}
	return nil
}

func (a *AtomicUndo) Redo(es *EditState) error {
	for i, op := range a.ops {
		if err := op.Redo(es); err != nil {
			for j := i - 1; j >= 0; j-- {
				a.ops[j].Undo(es)
			}
			return err
		}
	}
	return nil
}

// ReversedUndo wraps another UndoOperation with Undo/Redo swapped. Used by
// SwitchPalette and InverseSelection, which record an operation whose
// old and new states are given in swapped order.
type ReversedUndo struct {
	Inner UndoOperation
}

func (r *ReversedUndo) Description() string          { return r.Inner.Description() }
func (r *ReversedUndo) OperationType() OperationType { return r.Inner.OperationType() }
func (r *ReversedUndo) ChangesData() bool            { return r.Inner.ChangesData() }
func (r *ReversedUndo) Undo(es *EditState) error     { return r.Inner.Redo(es) }
func (r *ReversedUndo) Redo(es *EditState) error     { return r.Inner.Undo(es) }

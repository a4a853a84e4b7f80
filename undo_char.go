package icy

// UndoSetChar records a single-cell overwrite on one layer: pos, the cell
// value that was there before, and the value written.
type UndoSetChar struct {
	baseOp
	Layer    int
	Pos      Position
	OldValue AttributedChar
	NewValue AttributedChar
}

func (u *UndoSetChar) Description() string          { return "Set Character" }
func (u *UndoSetChar) OperationType() OperationType { return OperationTypeEditChar }

func (u *UndoSetChar) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(u.Layer)
	if l == nil {
		return NewInvalidLayerError(u.Layer)
	}
	l.SetChar(u.Pos, u.OldValue)
	b.bumpVersion()
	return nil
}

func (u *UndoSetChar) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(u.Layer)
	if l == nil {
		return NewInvalidLayerError(u.Layer)
	}
	l.SetChar(u.Pos, u.NewValue)
	b.bumpVersion()
	return nil
}

// UndoSwapChar records exchanging the cells at P1 and P2 on one layer.
// Undo and Redo are the same operation (swapping twice is the identity),
// so both simply perform the swap again.
type UndoSwapChar struct {
	baseOp
	Layer  int
	P1, P2 Position
}

func (u *UndoSwapChar) Description() string          { return "Swap Character" }
func (u *UndoSwapChar) OperationType() OperationType { return OperationTypeEditChar }

func (u *UndoSwapChar) swap(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(u.Layer)
	if l == nil {
		return NewInvalidLayerError(u.Layer)
	}
	l.SwapChar(u.P1, u.P2)
	b.bumpVersion()
	return nil
}

func (u *UndoSwapChar) Undo(es *EditState) error { return u.swap(es) }
func (u *UndoSwapChar) Redo(es *EditState) error { return u.swap(es) }

// ClearLayerOperation records wiping every cell on a layer, keeping the
// prior contents for undo.
type ClearLayerOperation struct {
	baseOp
	Layer    int
	OldLines []Line
}

func (c *ClearLayerOperation) Description() string          { return "Clear Layer" }
func (c *ClearLayerOperation) OperationType() OperationType { return OperationTypeEditChar }

func (c *ClearLayerOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(c.Layer)
	if l == nil {
		return NewInvalidLayerError(c.Layer)
	}
	l.Lines = c.OldLines
	b.bumpVersion()
	return nil
}

func (c *ClearLayerOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(c.Layer)
	if l == nil {
		return NewInvalidLayerError(c.Layer)
	}
	l.Lines = nil
	b.bumpVersion()
	return nil
}

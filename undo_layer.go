package icy

// AddLayerOperation records inserting a new layer at Index.
type AddLayerOperation struct {
	baseOp
	Index int
	Layer *Layer
}

func (a *AddLayerOperation) Description() string          { return "Add Layer" }
func (a *AddLayerOperation) OperationType() OperationType { return OperationTypeLayer }

func (a *AddLayerOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if a.Index < 0 || a.Index > len(b.layers) {
		return NewInvalidLayerError(a.Index)
	}
	b.layers = append(b.layers, nil)
	copy(b.layers[a.Index+1:], b.layers[a.Index:])
	b.layers[a.Index] = a.Layer
	b.bumpVersion()
	return nil
}

func (a *AddLayerOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if a.Index < 0 || a.Index >= len(b.layers) {
		return NewInvalidLayerError(a.Index)
	}
	b.layers = append(b.layers[:a.Index], b.layers[a.Index+1:]...)
	b.bumpVersion()
	es.ClampCurrentLayer()
	return nil
}

// RemoveLayerOperation records deleting the layer at Index.
type RemoveLayerOperation struct {
	baseOp
	Index int
	Layer *Layer
}

func (r *RemoveLayerOperation) Description() string          { return "Remove Layer" }
func (r *RemoveLayerOperation) OperationType() OperationType { return OperationTypeLayer }

func (r *RemoveLayerOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.Index < 0 || r.Index >= len(b.layers) {
		return NewInvalidLayerError(r.Index)
	}
	r.Layer = b.layers[r.Index]
	b.layers = append(b.layers[:r.Index], b.layers[r.Index+1:]...)
	b.bumpVersion()
	es.ClampCurrentLayer()
	return nil
}

func (r *RemoveLayerOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if r.Index < 0 || r.Index > len(b.layers) {
		return NewInvalidLayerError(r.Index)
	}
	b.layers = append(b.layers, nil)
	copy(b.layers[r.Index+1:], b.layers[r.Index:])
	b.layers[r.Index] = r.Layer
	b.bumpVersion()
	return nil
}

// swapLayerOperation records exchanging two adjacent layer slots; used for
// both RaiseLayer and LowerLayer since swapping twice is the identity.
type swapLayerOperation struct {
	baseOp
	desc   string
	A, B   int
}

func (s *swapLayerOperation) Description() string          { return s.desc }
func (s *swapLayerOperation) OperationType() OperationType { return OperationTypeLayer }

func (s *swapLayerOperation) swap(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	if s.A < 0 || s.B < 0 || s.A >= len(b.layers) || s.B >= len(b.layers) {
		return NewInvalidLayerError(s.A)
	}
	b.layers[s.A], b.layers[s.B] = b.layers[s.B], b.layers[s.A]
	b.bumpVersion()
	if es.CurrentLayer == s.A {
		es.CurrentLayer = s.B
	} else if es.CurrentLayer == s.B {
		es.CurrentLayer = s.A
	}
	return nil
}

func (s *swapLayerOperation) Undo(es *EditState) error { return s.swap(es) }
func (s *swapLayerOperation) Redo(es *EditState) error { return s.swap(es) }

// ToggleLayerVisibilityOperation flips a layer's Visible flag.
type ToggleLayerVisibilityOperation struct {
	baseOp
	Index int
}

func (t *ToggleLayerVisibilityOperation) Description() string          { return "Toggle Layer Visibility" }
func (t *ToggleLayerVisibilityOperation) OperationType() OperationType { return OperationTypeLayer }

func (t *ToggleLayerVisibilityOperation) toggle(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(t.Index)
	if l == nil {
		return NewInvalidLayerError(t.Index)
	}
	l.Properties.Visible = !l.Properties.Visible
	b.bumpVersion()
	return nil
}

func (t *ToggleLayerVisibilityOperation) Undo(es *EditState) error { return t.toggle(es) }
func (t *ToggleLayerVisibilityOperation) Redo(es *EditState) error { return t.toggle(es) }

// MoveLayerOperation records repositioning a layer's Offset.
type MoveLayerOperation struct {
	baseOp
	Index          int
	OldOff, NewOff Position
}

func (m *MoveLayerOperation) Description() string          { return "Move Layer" }
func (m *MoveLayerOperation) OperationType() OperationType { return OperationTypeLayer }

func (m *MoveLayerOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(m.Index)
	if l == nil {
		return NewInvalidLayerError(m.Index)
	}
	l.SetOffset(m.OldOff)
	b.bumpVersion()
	return nil
}

func (m *MoveLayerOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(m.Index)
	if l == nil {
		return NewInvalidLayerError(m.Index)
	}
	l.SetOffset(m.NewOff)
	b.bumpVersion()
	return nil
}

// SetLayerSizeOperation records resizing a single layer.
type SetLayerSizeOperation struct {
	baseOp
	Index            int
	OldSize, NewSize Size
	OldLines         []Line
}

func (s *SetLayerSizeOperation) Description() string          { return "Set Layer Size" }
func (s *SetLayerSizeOperation) OperationType() OperationType { return OperationTypeLayer }

func (s *SetLayerSizeOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(s.Index)
	if l == nil {
		return NewInvalidLayerError(s.Index)
	}
	l.SetSize(s.OldSize)
	l.Lines = s.OldLines
	b.bumpVersion()
	return nil
}

func (s *SetLayerSizeOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(s.Index)
	if l == nil {
		return NewInvalidLayerError(s.Index)
	}
	l.SetSize(s.NewSize)
	b.bumpVersion()
	return nil
}

// UpdateLayerPropertiesOperation records a wholesale Properties swap
// (title/visibility/lock/alpha/mode/tint changes made via a properties
// dialog in a host editor all go through this one operation).
type UpdateLayerPropertiesOperation struct {
	baseOp
	Index     int
	OldProps  Properties
	NewProps  Properties
}

func (u *UpdateLayerPropertiesOperation) Description() string          { return "Update Layer Properties" }
func (u *UpdateLayerPropertiesOperation) OperationType() OperationType { return OperationTypeLayer }

func (u *UpdateLayerPropertiesOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(u.Index)
	if l == nil {
		return NewInvalidLayerError(u.Index)
	}
	l.Properties = u.OldProps
	b.bumpVersion()
	return nil
}

func (u *UpdateLayerPropertiesOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(u.Index)
	if l == nil {
		return NewInvalidLayerError(u.Index)
	}
	l.Properties = u.NewProps
	b.bumpVersion()
	return nil
}

// MergeLayerDownOperation records flattening layer Index into Index-1,
// removing Index afterward. Redo requires a layer below Index to exist.
type MergeLayerDownOperation struct {
	baseOp
	Index       int
	TopBefore   *Layer
	BottomBefore *Layer
}

func (m *MergeLayerDownOperation) Description() string          { return "Merge Layer Down" }
func (m *MergeLayerDownOperation) OperationType() OperationType { return OperationTypeLayer }

func (m *MergeLayerDownOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	if m.Index <= 0 || m.Index >= len(b.layers) {
		b.mu.Unlock()
		return NewMergeLayerDownError()
	}
	top := b.layers[m.Index]
	bottom := b.layers[m.Index-1]
	m.TopBefore = top.Clone()
	m.BottomBefore = bottom.Clone()
	bottom.Stamp(Position{X: top.Offset.X - bottom.Offset.X, Y: top.Offset.Y - bottom.Offset.Y}, top)
	b.layers = append(b.layers[:m.Index], b.layers[m.Index+1:]...)
	b.bumpVersion()
	b.mu.Unlock()
	es.ClampCurrentLayer()
	return nil
}

func (m *MergeLayerDownOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	idx := m.Index - 1
	if idx < 0 || idx >= len(b.layers) {
		return NewInvalidLayerError(idx)
	}
	b.layers[idx] = m.BottomBefore
	b.layers = append(b.layers, nil)
	copy(b.layers[m.Index+1:], b.layers[m.Index:])
	b.layers[m.Index] = m.TopBefore
	b.bumpVersion()
	return nil
}

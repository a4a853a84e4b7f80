package icy

// SetSelectionOperation records replacing the active drag Selection.
type SetSelectionOperation struct {
	baseOp
	Old, New *Selection
}

func (s *SetSelectionOperation) Description() string          { return "Select" }
func (s *SetSelectionOperation) OperationType() OperationType { return OperationTypeSelection }

func (s *SetSelectionOperation) Undo(es *EditState) error { es.Selection = s.Old; return nil }
func (s *SetSelectionOperation) Redo(es *EditState) error { es.Selection = s.New; return nil }

// SetSelectionMaskOperation records replacing the SelectionMask wholesale
// (used by AddSelectionToMask, InverseSelection, and explicit mask loads).
type SetSelectionMaskOperation struct {
	baseOp
	Old, New *SelectionMask
}

func (s *SetSelectionMaskOperation) Description() string          { return "Set Selection Mask" }
func (s *SetSelectionMaskOperation) OperationType() OperationType { return OperationTypeSelection }

func (s *SetSelectionMaskOperation) Undo(es *EditState) error { es.SelectionMask = s.Old; return nil }
func (s *SetSelectionMaskOperation) Redo(es *EditState) error { es.SelectionMask = s.New; return nil }

// DeselectOperation records clearing both the active Selection and the
// SelectionMask in one step ("Select Nothing").
type DeselectOperation struct {
	baseOp
	OldSelection *Selection
	OldMask      *SelectionMask
}

func (d *DeselectOperation) Description() string          { return "Select Nothing" }
func (d *DeselectOperation) OperationType() OperationType { return OperationTypeSelection }

func (d *DeselectOperation) Redo(es *EditState) error {
	d.OldSelection = es.Selection
	d.OldMask = es.SelectionMask
	es.Selection = nil
	es.SelectionMask = NewSelectionMask()
	return nil
}

func (d *DeselectOperation) Undo(es *EditState) error {
	es.Selection = d.OldSelection
	es.SelectionMask = d.OldMask
	return nil
}

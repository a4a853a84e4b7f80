package icy

// ResizeBufferOperation records changing the buffer's declared size and,
// for every layer whose size matched the old buffer size exactly (i.e.
// layers that track the canvas rather than a fixed sprite), resizing them
// to match.
type ResizeBufferOperation struct {
	baseOp
	OldSize, NewSize Size
	TrackedLayers    []int
	OldLayerSizes    []Size
	OldLayerLines    [][]Line
}

func (r *ResizeBufferOperation) Description() string          { return "Resize Buffer" }
func (r *ResizeBufferOperation) OperationType() OperationType { return OperationTypeBuffer }

func (r *ResizeBufferOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	r.TrackedLayers = r.TrackedLayers[:0]
	r.OldLayerSizes = r.OldLayerSizes[:0]
	r.OldLayerLines = r.OldLayerLines[:0]
	for i, l := range b.layers {
		if l.Size() == r.OldSize {
			r.TrackedLayers = append(r.TrackedLayers, i)
			r.OldLayerSizes = append(r.OldLayerSizes, l.Size())
			lines := make([]Line, len(l.Lines))
			for j, ln := range l.Lines {
				lines[j] = ln.Clone()
			}
			r.OldLayerLines = append(r.OldLayerLines, lines)
			l.SetSize(r.NewSize)
		}
	}
	b.size = r.NewSize
	b.terminalState.resetTabStops(r.NewSize.Width)
	b.bumpVersion()
	return nil
}

func (r *ResizeBufferOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	for n, idx := range r.TrackedLayers {
		if idx < 0 || idx >= len(b.layers) {
			continue
		}
		l := b.layers[idx]
		l.SetSize(r.OldLayerSizes[n])
		l.Lines = r.OldLayerLines[n]
	}
	b.size = r.OldSize
	b.terminalState.resetTabStops(r.OldSize.Width)
	b.bumpVersion()
	return nil
}

// CropOperation records trimming every layer to a sub-rectangle of the
// buffer and shrinking the buffer to match.
type CropOperation struct {
	baseOp
	Rect          Rectangle
	OldSize       Size
	OldLayerData  []*Layer
}

func (c *CropOperation) Description() string          { return "Crop" }
func (c *CropOperation) OperationType() OperationType { return OperationTypeBuffer }

func (c *CropOperation) Redo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	c.OldSize = b.size
	c.OldLayerData = make([]*Layer, len(b.layers))
	for i, l := range b.layers {
		c.OldLayerData[i] = l.Clone()
		cropped := NewLayer(l.Properties.Title, c.Rect.Size)
		cropped.Properties = l.Properties.Clone()
		cropped.Role = l.Role
		cropped.DefaultFontPage = l.DefaultFontPage
		cropped.Transparency = l.Transparency
		cropped.Offset = l.Offset
		for y := 0; y < c.Rect.Size.Height; y++ {
			for x := 0; x < c.Rect.Size.Width; x++ {
				cropped.SetChar(Position{X: x, Y: y}, l.CharAt(Position{X: c.Rect.Start.X + x, Y: c.Rect.Start.Y + y}))
			}
		}
		b.layers[i] = cropped
	}
	b.size = c.Rect.Size
	b.terminalState.resetTabStops(c.Rect.Size.Width)
	b.bumpVersion()
	return nil
}

func (c *CropOperation) Undo(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	for i, l := range c.OldLayerData {
		if i < len(b.layers) {
			b.layers[i] = l
		}
	}
	b.size = c.OldSize
	b.terminalState.resetTabStops(c.OldSize.Width)
	b.bumpVersion()
	return nil
}

// RotateLayerOperation records a 180-degree rotation of the current layer
// (used by host editors as a "flip" operation; 90-degree rotation would
// change aspect ratio and is left to a host's own composition).
type RotateLayerOperation struct {
	baseOp
	Index   int
	OldLines []Line
}

func (o *RotateLayerOperation) Description() string          { return "Rotate Layer" }
func (o *RotateLayerOperation) OperationType() OperationType { return OperationTypeLayer }

func (o *RotateLayerOperation) rotate(es *EditState) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(o.Index)
	if l == nil {
		return NewInvalidLayerError(o.Index)
	}
	o.OldLines = make([]Line, len(l.Lines))
	for i, ln := range l.Lines {
		o.OldLines[i] = ln.Clone()
	}
	w, h := l.size.Width, l.size.Height
	rotated := make([]Line, h)
	for y := 0; y < h; y++ {
		line := make(Line, w)
		for x := 0; x < w; x++ {
			line[x] = l.CharAt(Position{X: w - 1 - x, Y: h - 1 - y})
		}
		rotated[y] = line
	}
	l.Lines = rotated
	b.bumpVersion()
	return nil
}

func (o *RotateLayerOperation) Undo(es *EditState) error { return o.rotate(es) }
func (o *RotateLayerOperation) Redo(es *EditState) error { return o.rotate(es) }

// scrollWholeLayerOperation records scrolling an entire layer's content
// (not just the margin region) up or down by one row, wrapping the
// departing row to the opposite edge so Undo is simply scrolling back.
type scrollWholeLayerOperation struct {
	baseOp
	desc  string
	Index int
	Down  bool
}

func (s *scrollWholeLayerOperation) Description() string          { return s.desc }
func (s *scrollWholeLayerOperation) OperationType() OperationType { return OperationTypeEditChar }

func (s *scrollWholeLayerOperation) apply(es *EditState, down bool) error {
	b := es.Buffer
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(s.Index)
	if l == nil {
		return NewInvalidLayerError(s.Index)
	}
	h := l.size.Height
	if h == 0 {
		return nil
	}
	for len(l.Lines) < h {
		l.Lines = append(l.Lines, nil)
	}
	if down {
		last := l.Lines[h-1]
		copy(l.Lines[1:h], l.Lines[0:h-1])
		l.Lines[0] = last
	} else {
		first := l.Lines[0]
		copy(l.Lines[0:h-1], l.Lines[1:h])
		l.Lines[h-1] = first
	}
	b.bumpVersion()
	return nil
}

func (s *scrollWholeLayerOperation) Redo(es *EditState) error { return s.apply(es, s.Down) }
func (s *scrollWholeLayerOperation) Undo(es *EditState) error { return s.apply(es, !s.Down) }

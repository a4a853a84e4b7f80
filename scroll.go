package icy

// scrollRegion returns the current margin rectangle of layer l, clamped to
// the buffer and layer bounds.
func (b *Buffer) scrollRegionLocked(l *Layer) Rectangle {
	ts := b.terminalState
	top, bottom := ts.MarginTop, ts.MarginBottom
	left, right := ts.MarginLeft, ts.MarginRight
	if bottom >= l.size.Height {
		bottom = l.size.Height - 1
	}
	if right >= l.size.Width {
		right = l.size.Width - 1
	}
	if top < 0 {
		top = 0
	}
	if left < 0 {
		left = 0
	}
	if bottom < top || right < left {
		return Rectangle{}
	}
	return Rectangle{Start: Position{left, top}, Size: Size{Width: right - left + 1, Height: bottom - top + 1}}
}

// ScrollUp scrolls layerIdx's margin region up by n rows, discarding the
// top n rows and filling the bottom with invisible cells.
func (b *Buffer) ScrollUp(layerIdx, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(layerIdx)
	if l == nil || n <= 0 {
		return
	}
	r := b.scrollRegionLocked(l)
	for i := 0; i < n; i++ {
		for y := r.Start.Y; y < r.Bottom()-1; y++ {
			for x := r.Start.X; x < r.Right(); x++ {
				l.SetChar(Position{x, y}, l.CharAt(Position{x, y + 1}))
			}
		}
		lastY := r.Bottom() - 1
		for x := r.Start.X; x < r.Right(); x++ {
			l.SetChar(Position{x, lastY}, Invisible())
		}
	}
	b.bumpVersion()
}

// ScrollDown scrolls layerIdx's margin region down by n rows.
func (b *Buffer) ScrollDown(layerIdx, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(layerIdx)
	if l == nil || n <= 0 {
		return
	}
	r := b.scrollRegionLocked(l)
	for i := 0; i < n; i++ {
		for y := r.Bottom() - 1; y > r.Start.Y; y-- {
			for x := r.Start.X; x < r.Right(); x++ {
				l.SetChar(Position{x, y}, l.CharAt(Position{x, y - 1}))
			}
		}
		for x := r.Start.X; x < r.Right(); x++ {
			l.SetChar(Position{x, r.Start.Y}, Invisible())
		}
	}
	b.bumpVersion()
}

// ScrollLeft scrolls layerIdx's margin region left by n columns.
func (b *Buffer) ScrollLeft(layerIdx, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(layerIdx)
	if l == nil || n <= 0 {
		return
	}
	r := b.scrollRegionLocked(l)
	for i := 0; i < n; i++ {
		for y := r.Start.Y; y < r.Bottom(); y++ {
			for x := r.Start.X; x < r.Right()-1; x++ {
				l.SetChar(Position{x, y}, l.CharAt(Position{x + 1, y}))
			}
			l.SetChar(Position{r.Right() - 1, y}, Invisible())
		}
	}
	b.bumpVersion()
}

// ScrollRight scrolls layerIdx's margin region right by n columns.
func (b *Buffer) ScrollRight(layerIdx, n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	l := b.layerLocked(layerIdx)
	if l == nil || n <= 0 {
		return
	}
	r := b.scrollRegionLocked(l)
	for i := 0; i < n; i++ {
		for y := r.Start.Y; y < r.Bottom(); y++ {
			for x := r.Right() - 1; x > r.Start.X; x-- {
				l.SetChar(Position{x, y}, l.CharAt(Position{x - 1, y}))
			}
			l.SetChar(Position{r.Start.X, y}, Invisible())
		}
	}
	b.bumpVersion()
}

func (b *Buffer) layerLocked(i int) *Layer {
	if i < 0 || i >= len(b.layers) {
		return nil
	}
	return b.layers[i]
}

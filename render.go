package icy

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// RenderOptions controls RenderRegionToRGBA's pixel output.
type RenderOptions struct {
	BlinkOn            bool
	Selection          *SelectionMask
	SelectionForeground RGB
	SelectionBackground RGB
	HasSelectionColors  bool
	OverrideScanLines   bool // doubles cell height (scanline emulation)
	AspectRatioCorrect  bool // applies use_aspect_ratio scaling
}

// RenderRegionToRGBA is the pure rendering adapter (C9): given a buffer
// snapshot, a cell rectangle and rendering options, it produces
// deterministic row-major RGBA bytes sized to the rectangle's pixel
// extent. It has no global state and depends only on its arguments plus
// the buffer's current (locked) contents, so callers may cache results
// keyed on (buffer version, rect, blink, selection).
func (b *Buffer) RenderRegionToRGBA(rect Rectangle, opts RenderOptions) (Size, []byte) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	font := b.fonts[0]
	if font == nil {
		font = BuiltinFallbackFont()
	}
	cw, ch := font.Size().Width, font.Size().Height
	pixelHeight := ch
	if opts.OverrideScanLines {
		pixelHeight *= 2
	}

	pixelSize := Size{Width: rect.Size.Width * cw, Height: rect.Size.Height * pixelHeight}
	img := image.NewRGBA(image.Rect(0, 0, pixelSize.Width, pixelSize.Height))

	for cy := 0; cy < rect.Size.Height; cy++ {
		for cx := 0; cx < rect.Size.Width; cx++ {
			pos := Position{X: rect.Start.X + cx, Y: rect.Start.Y + cy}
			cell := b.compositeLocked(pos)
			fg, bg := b.resolveCellColorsLocked(cell, pos, opts)
			glyphFont := b.fonts[cell.Attribute.FontPage]
			if glyphFont == nil {
				glyphFont = font
			}
			b.blitCellLocked(img, cx*cw, cy*pixelHeight, cw, pixelHeight, cell, glyphFont, fg, bg)
		}
	}

	if opts.AspectRatioCorrect && b.UseAspectRatio {
		scaled := scaleAspect(img)
		return Size{Width: scaled.Bounds().Dx(), Height: scaled.Bounds().Dy()}, scaled.Pix
	}
	return pixelSize, img.Pix
}

func (b *Buffer) resolveCellColorsLocked(cell AttributedChar, pos Position, opts RenderOptions) (color.RGBA, color.RGBA) {
	fgRGB := cell.Attribute.Foreground.Resolve(b.palette)
	bgRGB := cell.Attribute.Background.Resolve(b.palette)
	if cell.Attribute.Attr&AttrInverse != 0 {
		fgRGB, bgRGB = bgRGB, fgRGB
	}
	fg := color.RGBA{R: fgRGB.R, G: fgRGB.G, B: fgRGB.B, A: 255}
	bg := color.RGBA{R: bgRGB.R, G: bgRGB.G, B: bgRGB.B, A: 255}

	if opts.Selection != nil && opts.Selection.IsSelected(pos) && opts.HasSelectionColors {
		fg = color.RGBA{R: opts.SelectionForeground.R, G: opts.SelectionForeground.G, B: opts.SelectionForeground.B, A: 255}
		bg = color.RGBA{R: opts.SelectionBackground.R, G: opts.SelectionBackground.G, B: opts.SelectionBackground.B, A: 255}
	}

	// Blinking characters are drawn as their background color when not
	// in the visible blink phase.
	blinking := cell.Attribute.Attr&(AttrBlink|AttrFastBlink) != 0
	if blinking && !opts.BlinkOn {
		fg = bg
	}
	return fg, bg
}

func (b *Buffer) blitCellLocked(img *image.RGBA, x0, y0, cw, ch int, cell AttributedChar, font *BitFont, fg, bg color.RGBA) {
	for y := 0; y < ch; y++ {
		fontY := y
		if ch != font.Size().Height && font.Size().Height > 0 {
			fontY = y * font.Size().Height / ch
		}
		for x := 0; x < cw; x++ {
			px := bg
			if cell.IsVisible() && font.Pixel(cell.Ch, x, fontY) {
				px = fg
			}
			img.SetRGBA(x0+x, y0+y, px)
		}
	}
}

// scaleAspect stretches the image vertically by 20/16 (a 16-pixel cell
// row becomes 20 pixels high), via golang.org/x/image/draw's
// nearest-neighbor scaler (kept sharp-edged for block-character art).
func scaleAspect(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	// Non-square pixel correction: stretch vertically by 20/16.
	dstH := b.Dy() * 20 / 16
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), dstH))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}

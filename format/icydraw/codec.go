package icydraw

import (
	"bytes"
	"fmt"
	"image"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"

	icy "github.com/icy-engine/icy-core"
)

// maxChunkBytes bounds a single LAYER_<i> chunk's payload before a
// continuation chunk is started.
// A flat byte-stream split is used rather than a strictly row-aligned
// one: continuation chunks for one slot are concatenated back into a
// single buffer before decoding, so the split point never affects the
// decoded result (see DESIGN.md).
const maxChunkBytes = 3 * 1024 * 1024

// maxPreviewLines caps how many rows the visible PNG preview renders
// to keep the embedded image small for tall pieces.
const maxPreviewLines = 200

// SaveOptions controls SaveBuffer's preview rendering.
type SaveOptions struct {
	// MaxPreviewLines overrides maxPreviewLines when positive.
	MaxPreviewLines int
}

// SaveBuffer serializes b into the chunked-PNG container: a
// real PNG (decodable by any PNG reader as a preview image) followed by
// ICED/SAUCE/PALETTE/FONT_*/LAYER_*/TAG/END text chunks carrying the
// complete model.
func SaveBuffer(b *icy.Buffer, opts SaveOptions) ([]byte, error) {
	size := b.Size()
	previewCap := maxPreviewLines
	if opts.MaxPreviewLines > 0 {
		previewCap = opts.MaxPreviewLines
	}
	previewRows := size.Height
	if previewRows > previewCap {
		previewRows = previewCap
	}
	pixelSize, pix := b.RenderRegionToRGBA(icy.Rectangle{Start: icy.Position{}, Size: icy.Size{Width: size.Width, Height: previewRows}}, icy.RenderOptions{BlinkOn: true})
	previewImg := &image.RGBA{Pix: pix, Stride: pixelSize.Width * 4, Rect: image.Rect(0, 0, pixelSize.Width, pixelSize.Height)}

	basePNG, err := encodePreviewPNG(previewImg)
	if err != nil {
		return nil, err
	}

	var textChunks []rawChunk
	addText := func(keyword string, payload []byte) error {
		typ, data, err := encodeTextChunk(keyword, payload)
		if err != nil {
			return err
		}
		textChunks = append(textChunks, rawChunk{Type: typ, Data: data})
		return nil
	}

	hdr := header{
		Version:     formatVersion,
		BufferType:  uint16(b.BufferType()),
		IceMode:     uint8(b.IceMode()),
		PaletteMode: uint8(b.PaletteModeTag()),
		FontMode:    uint8(b.FontModeTag()),
		Width:       uint32(size.Width),
		Height:      uint32(size.Height),
	}
	if err := addText("ICED", hdr.encode()); err != nil {
		return nil, err
	}

	if m := b.SauceMeta(); m != nil {
		if err := addText("SAUCE", encodeSauce(m)); err != nil {
			return nil, err
		}
	}

	if p := b.Palette(); !p.IsDefault() {
		if err := addText("PALETTE", encodePalette(p)); err != nil {
			return nil, err
		}
	}

	fonts := b.FontIter()
	pages := make([]int, 0, len(fonts))
	for page := range fonts {
		pages = append(pages, int(page))
	}
	sort.Ints(pages)
	for _, page := range pages {
		f := fonts[uint8(page)]
		var body bytes.Buffer
		putString(&body, f.Name())
		body.Write(f.ToPSF2Bytes())
		if err := addText(fmt.Sprintf("FONT_%d", page), body.Bytes()); err != nil {
			return nil, err
		}
	}

	for i, l := range b.Layers() {
		blob := encodeLayer(l)
		for start, part := 0, 0; start < len(blob); part++ {
			end := start + maxChunkBytes
			if end > len(blob) {
				end = len(blob)
			}
			keyword := fmt.Sprintf("LAYER_%d", i)
			if part > 0 {
				keyword = fmt.Sprintf("LAYER_%d~%d", i, part)
			}
			if err := addText(keyword, blob[start:end]); err != nil {
				return nil, err
			}
			start = end
		}
	}

	if tags := b.Tags(); len(tags) > 0 {
		if err := addText("TAG", encodeTags(tags)); err != nil {
			return nil, err
		}
	}

	if err := addText("END", nil); err != nil {
		return nil, err
	}

	return spliceTextChunks(basePNG, textChunks)
}

// LoadBuffer parses a container built by SaveBuffer (or a compatible
// writer) back into a fully populated *icy.Buffer.
func LoadBuffer(data []byte) (*icy.Buffer, error) {
	chunks, err := readRawChunks(data)
	if err != nil {
		return nil, err
	}

	layerParts := map[int]map[int][]byte{}
	fontParts := map[int][]byte{}
	var hdr *header
	var sauceMeta *icy.SauceMetadata
	var palette *icy.Palette
	var tags []icy.Tag

	for _, c := range chunks {
		if c.Type != "zTXt" {
			continue
		}
		keyword, payload, err := decodeTextChunk(c.Data)
		if err != nil {
			return nil, err
		}
		switch {
		case keyword == "ICED":
			h, err := decodeHeader(payload)
			if err != nil {
				return nil, err
			}
			hdr = &h
		case keyword == "SAUCE":
			m, err := decodeSauce(payload)
			if err != nil {
				return nil, err
			}
			sauceMeta = m
		case keyword == "PALETTE":
			p, err := decodePalette(payload)
			if err != nil {
				return nil, err
			}
			palette = p
		case keyword == "TAG":
			t, err := decodeTags(payload)
			if err != nil {
				return nil, err
			}
			tags = t
		case keyword == "END":
			// terminal marker, nothing to do
		case strings.HasPrefix(keyword, "FONT_"):
			slot, err := strconv.Atoi(strings.TrimPrefix(keyword, "FONT_"))
			if err != nil {
				return nil, newLoadingError(keyword, "bad font slot: "+err.Error())
			}
			fontParts[slot] = payload
		case strings.HasPrefix(keyword, "LAYER_"):
			idx, part, err := parseLayerKeyword(keyword)
			if err != nil {
				return nil, err
			}
			if layerParts[idx] == nil {
				layerParts[idx] = map[int][]byte{}
			}
			layerParts[idx][part] = payload
		default:
			// Unknown chunk keywords are logged through the standard log
			// package and skipped, so newer writers stay loadable.
			log.Printf("icydraw: skipping unknown chunk %q", keyword)
		}
	}

	if hdr == nil {
		return nil, newLoadingError("ICED", "missing required header chunk")
	}

	b := icy.NewBuffer(icy.Size{Width: int(hdr.Width), Height: int(hdr.Height)})
	b.SetBufferType(icy.BufferType(hdr.BufferType))
	b.SetIceMode(icy.IceMode(hdr.IceMode))
	b.SetPaletteModeTag(icy.PaletteMode(hdr.PaletteMode))
	b.SetFontModeTag(icy.FontMode(hdr.FontMode))
	if sauceMeta != nil {
		b.SetSauceMeta(sauceMeta)
	}
	if palette != nil {
		b.SetPalette(palette)
	}
	if tags != nil {
		b.SetTags(tags)
	}

	fontSlots := make([]int, 0, len(fontParts))
	for slot := range fontParts {
		fontSlots = append(fontSlots, slot)
	}
	sort.Ints(fontSlots)
	for _, slot := range fontSlots {
		r := bytes.NewReader(fontParts[slot])
		name, err := readString(r)
		if err != nil {
			return nil, newLoadingError(fmt.Sprintf("FONT_%d", slot), "reading name: "+err.Error())
		}
		rest, err := io.ReadAll(r)
		if err != nil {
			return nil, newLoadingError(fmt.Sprintf("FONT_%d", slot), "reading PSF2 body: "+err.Error())
		}
		font, err := icy.BitFontFromBytes(name, rest)
		if err != nil {
			return nil, newLoadingError(fmt.Sprintf("FONT_%d", slot), err.Error())
		}
		b.SetFont(uint8(slot), font)
	}

	layerIdxs := make([]int, 0, len(layerParts))
	for idx := range layerParts {
		layerIdxs = append(layerIdxs, idx)
	}
	sort.Ints(layerIdxs)
	layers := make([]*icy.Layer, 0, len(layerIdxs))
	for _, idx := range layerIdxs {
		parts := layerParts[idx]
		partNums := make([]int, 0, len(parts))
		for n := range parts {
			partNums = append(partNums, n)
		}
		sort.Ints(partNums)
		var blob bytes.Buffer
		for _, n := range partNums {
			blob.Write(parts[n])
		}
		if blob.Len() == 0 {
			continue
		}
		layer, err := decodeLayer(blob.Bytes())
		if err != nil {
			return nil, err
		}
		layers = append(layers, layer)
	}
	if len(layers) > 0 {
		b.ReplaceLayers(layers)
	}

	return b, nil
}

func parseLayerKeyword(keyword string) (idx, part int, err error) {
	rest := strings.TrimPrefix(keyword, "LAYER_")
	if tilde := strings.IndexByte(rest, '~'); tilde >= 0 {
		idx, err = strconv.Atoi(rest[:tilde])
		if err != nil {
			return 0, 0, newLoadingError(keyword, "bad layer index: "+err.Error())
		}
		part, err = strconv.Atoi(rest[tilde+1:])
		if err != nil {
			return 0, 0, newLoadingError(keyword, "bad continuation number: "+err.Error())
		}
		return idx, part, nil
	}
	idx, err = strconv.Atoi(rest)
	if err != nil {
		return 0, 0, newLoadingError(keyword, "bad layer index: "+err.Error())
	}
	return idx, 0, nil
}

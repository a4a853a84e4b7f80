package icy

// UnderlineStyle represents different underline rendering styles
type UnderlineStyle int

const (
	UnderlineNone   UnderlineStyle = iota // No underline
	UnderlineSingle                       // Single straight underline (default)
	UnderlineDouble                       // Double underline
	UnderlineCurly                        // Curly/wavy underline
	UnderlineDotted                       // Dotted underline
	UnderlineDashed                       // Dashed underline
)

// runeRange is a closed [Lo, Hi] codepoint interval.
type runeRange struct {
	Lo, Hi rune
}

// wideRanges lists the East-Asian Wide and Fullwidth blocks whose glyphs
// occupy two terminal cells. Condensed from UAX #11; kept sorted for the
// binary search in inRanges.
var wideRanges = []runeRange{
	{0x1100, 0x115F}, // Hangul Jamo
	{0x2E80, 0x303E}, // CJK radicals, Kangxi, CJK symbols
	{0x3041, 0x33FF}, // Hiragana .. CJK compatibility
	{0x3400, 0x4DBF}, // CJK extension A
	{0x4E00, 0x9FFF}, // CJK unified ideographs
	{0xA000, 0xA4CF}, // Yi
	{0xA960, 0xA97F}, // Hangul Jamo extended-A
	{0xAC00, 0xD7A3}, // Hangul syllables
	{0xF900, 0xFAFF}, // CJK compatibility ideographs
	{0xFE10, 0xFE19}, // vertical forms
	{0xFE30, 0xFE6F}, // CJK compatibility forms, small variants
	{0xFF00, 0xFF60}, // fullwidth forms
	{0xFFE0, 0xFFE6}, // fullwidth signs
	{0x1F300, 0x1F64F}, // pictographs, emoticons
	{0x1F900, 0x1F9FF}, // supplemental pictographs
	{0x20000, 0x2FFFD}, // CJK extension B..F
	{0x30000, 0x3FFFD}, // CJK extension G
}

// combiningRanges lists the zero-width marks and joiners that attach to a
// preceding character instead of occupying a cell.
var combiningRanges = []runeRange{
	{0x0300, 0x036F}, // combining diacritical marks
	{0x0483, 0x0489}, // Cyrillic combining
	{0x0591, 0x05BD}, // Hebrew points
	{0x05BF, 0x05BF},
	{0x05C1, 0x05C2},
	{0x05C4, 0x05C5},
	{0x05C7, 0x05C7},
	{0x0610, 0x061A}, // Arabic marks
	{0x064B, 0x065F},
	{0x0670, 0x0670},
	{0x06D6, 0x06DC},
	{0x06DF, 0x06E4},
	{0x0E31, 0x0E31}, // Thai vowels/tones
	{0x0E34, 0x0E3A},
	{0x0E47, 0x0E4E},
	{0x200B, 0x200F}, // zero-width space/joiners, direction marks
	{0x20D0, 0x20FF}, // combining marks for symbols
	{0xFE00, 0xFE0F}, // variation selectors
	{0xFE20, 0xFE2F}, // combining half marks
	{0xFEFF, 0xFEFF}, // zero-width no-break space
}

func inRanges(r rune, ranges []runeRange) bool {
	lo, hi := 0, len(ranges)-1
	for lo <= hi {
		mid := (lo + hi) / 2
		switch {
		case r < ranges[mid].Lo:
			hi = mid - 1
		case r > ranges[mid].Hi:
			lo = mid + 1
		default:
			return true
		}
	}
	return false
}

// IsCombiningMark reports whether r is a zero-width mark that attaches to
// the preceding character rather than occupying a cell of its own.
func IsCombiningMark(r rune) bool {
	return inRanges(r, combiningRanges)
}

// CharCellWidth returns the number of terminal cells r occupies: 0 for
// combining marks and zero-width joiners, 2 for East-Asian wide and
// fullwidth glyphs, 1 for everything else. EditState.TypeChar advances
// the caret by this amount.
func CharCellWidth(r rune) int {
	if IsCombiningMark(r) {
		return 0
	}
	if inRanges(r, wideRanges) {
		return 2
	}
	return 1
}

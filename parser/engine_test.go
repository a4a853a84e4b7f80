package parser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingHandler captures every tokenizer callback for inspection.
type recordingHandler struct {
	printables []byte
	c0s        []byte
	escapes    []byte
	csis       []struct {
		final, private, interm byte
		params                 []int
	}
	oscs, dcss, apss []string
	errors           []ParseError
}

func (h *recordingHandler) HandlePrintable(b byte) { h.printables = append(h.printables, b) }
func (h *recordingHandler) HandleC0(b byte)        { h.c0s = append(h.c0s, b) }
func (h *recordingHandler) HandleEscape(final byte) {
	h.escapes = append(h.escapes, final)
}
func (h *recordingHandler) HandleCSI(final, private, interm byte, params []int, raw []string) {
	h.csis = append(h.csis, struct {
		final, private, interm byte
		params                 []int
	}{final, private, interm, append([]int(nil), params...)})
}
func (h *recordingHandler) HandleOSC(body string)      { h.oscs = append(h.oscs, body) }
func (h *recordingHandler) HandleDCS(body string)      { h.dcss = append(h.dcss, body) }
func (h *recordingHandler) HandleAPS(body string)      { h.apss = append(h.apss, body) }
func (h *recordingHandler) ReportError(err ParseError) { h.errors = append(h.errors, err) }

func TestCSISplitAcrossFeedCalls(t *testing.T) {
	h := &recordingHandler{}
	e := NewEngine(h)
	e.Feed([]byte("\x1b["))
	e.Feed([]byte("3"))
	e.Feed([]byte("1m"))

	require.Len(t, h.csis, 1)
	assert.Equal(t, byte('m'), h.csis[0].final)
	assert.Equal(t, []int{31}, h.csis[0].params)
	assert.Empty(t, h.printables, "no bytes of the split sequence may leak as printables")
}

func TestOSCTerminatedByBEL(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1b]2;hello\x07X"))

	require.Equal(t, []string{"2;hello"}, h.oscs)
	assert.Equal(t, []byte("X"), h.printables)
}

func TestOSCTerminatedByEscBackslashDoesNotLeakBackslash(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1b]2;hello\x1b\\X"))

	require.Equal(t, []string{"2;hello"}, h.oscs)
	assert.Equal(t, []byte("X"), h.printables, "the ST backslash must be consumed, not printed")
}

func TestStringTerminatedBy8BitST(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1bPdata\x9c"))
	assert.Equal(t, []string{"data"}, h.dcss)
}

func TestEscInsideStringStartsNewSequence(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1b]0;t\x1b[1m"))

	// The new ESC terminates the OSC and opens a CSI.
	require.Equal(t, []string{"0;t"}, h.oscs)
	require.Len(t, h.csis, 1)
	assert.Equal(t, byte('m'), h.csis[0].final)
}

func TestAPSBody(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1b_payload\x1b\\"))
	assert.Equal(t, []string{"payload"}, h.apss)
}

func TestPlainEscapeFinal(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1bD\x1b7"))
	assert.Equal(t, []byte{'D', '7'}, h.escapes)
}

func TestCSIParameterListBounded(t *testing.T) {
	h := &recordingHandler{}
	var sb strings.Builder
	sb.WriteString("\x1b[")
	for i := 0; i < 100; i++ {
		sb.WriteString("1;")
	}
	sb.WriteString("m")
	NewEngine(h).Feed([]byte(sb.String()))

	require.Len(t, h.csis, 1)
	assert.LessOrEqual(t, len(h.csis[0].params), maxCSIParams)
}

func TestCSIPrivateMarkerAndIntermediate(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1b[?25h\x1b[2$w"))

	require.Len(t, h.csis, 2)
	assert.Equal(t, byte('?'), h.csis[0].private)
	assert.Equal(t, byte('h'), h.csis[0].final)
	assert.Equal(t, byte('$'), h.csis[1].interm)
	assert.Equal(t, byte('w'), h.csis[1].final)
}

func TestUTF8PrintablePassthrough(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("héllo"))
	assert.Equal(t, "héllo", string(h.printables))
}

func TestControlBytesDispatchToC0(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("a\r\n\tb"))
	assert.Equal(t, []byte{0x0D, 0x0A, 0x09}, h.c0s)
	assert.Equal(t, []byte("ab"), h.printables)
}

// Parser totality: an arbitrary byte soup terminates, emits a
// well-formed stream, and leaves at most one in-progress sequence.
func TestParserTotalityOnArbitraryBytes(t *testing.T) {
	h := &recordingHandler{}
	e := NewEngine(h)
	data := make([]byte, 1<<20)
	state := uint32(0x12345678)
	for i := range data {
		state = state*1664525 + 1013904223
		data[i] = byte(state >> 24)
	}
	e.Feed(data) // must not panic or hang
}

func TestSubparamSplit(t *testing.T) {
	base, subs := ParseSubparams("38:2:255:128:64")
	assert.Equal(t, 38, base)
	assert.Equal(t, []int{2, 255, 128, 64}, subs)

	base, subs = ParseSubparams("4")
	assert.Equal(t, 4, base)
	assert.Empty(t, subs)
}

func TestCharsetDesignationSwallowsDesignator(t *testing.T) {
	h := &recordingHandler{}
	NewEngine(h).Feed([]byte("\x1b(Bx"))

	assert.Equal(t, []byte{'('}, h.escapes)
	assert.Equal(t, []byte("x"), h.printables, "the designator byte must not print")
}

package ansi

import (
	"fmt"
)

// DeviceAttributesExtended builds the extended DA response,
// CSI <73;99;121;84;101;114;109; MAJOR ; MINOR ; PATCH c
// ("IcyTerm" spelled out as decimal codes of its ASCII letters).
func DeviceAttributesExtended(major, minor, patch int) string {
	return fmt.Sprintf("\x1b[<73;99;121;84;101;114;109;%d;%d;%dc", major, minor, patch)
}

// CTermDeviceAttributes builds the fixed CTerm DA response.
func CTermDeviceAttributes() string { return "\x1b[<1;2;3;4;5;6;7c" }

// DECRQUPSSResponse builds the DECRQUPSS macro-space report.
func DECRQUPSSResponse() string { return "\x1b[32767*{" }

// DECRQCRAResponse computes the DECRQCRA checksum of a rectangle: the sum
// of CRC-16 over each visible cell's ch/attr/fg/bg bytes (big-endian),
// returned as a `DCS <label> ! ~ <hex4> ST` response.
func DECRQCRAResponse(label int, cells []CRACell) string {
	var sum uint32
	for _, c := range cells {
		sum += uint32(crc16CCITT(c.bytes()))
	}
	return fmt.Sprintf("\x1bP%d!~%04X\x1b\\", label, sum&0xFFFF)
}

// CRACell is the byte view of one cell's ch/attr/fg/bg fields used by the
// DECRQCRA checksum.
type CRACell struct {
	Ch            rune
	Attr          uint16
	Foreground    uint32
	Background    uint32
}

func (c CRACell) bytes() []byte {
	b := make([]byte, 0, 4+2+4+4)
	b = append(b, byte(c.Ch>>24), byte(c.Ch>>16), byte(c.Ch>>8), byte(c.Ch))
	b = append(b, byte(c.Attr>>8), byte(c.Attr))
	b = append(b, byte(c.Foreground>>24), byte(c.Foreground>>16), byte(c.Foreground>>8), byte(c.Foreground))
	b = append(b, byte(c.Background>>24), byte(c.Background>>16), byte(c.Background>>8), byte(c.Background))
	return b
}

// crc16CCITT computes CRC-16/CCITT-FALSE (poly 0x1021, init 0xFFFF), the
// variant DEC terminals use for DECRQCRA. No pack example wires a CRC-16
// library (golang.org/x/image/golang-image's CRC needs are 32-bit PNG
// checksums); this one polynomial is small enough that hand-rolling it
// here is the documented stdlib exception (see DESIGN.md).
func crc16CCITT(data []byte) uint16 {
	var crc uint16 = 0xFFFF
	for _, b := range data {
		crc ^= uint16(b) << 8
		for i := 0; i < 8; i++ {
			if crc&0x8000 != 0 {
				crc = crc<<1 ^ 0x1021
			} else {
				crc <<= 1
			}
		}
	}
	return crc
}

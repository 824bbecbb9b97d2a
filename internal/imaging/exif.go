package imaging

import "encoding/binary"

// ReadJPEGOrientation scans a JPEG byte buffer for the EXIF orientation tag
// (0x0112 in IFD0) and returns it, or 0 if the buffer carries no EXIF APP1
// segment or no orientation tag. It is a narrow, byte-buffer-native subset
// of a general EXIF reader: only the one tag spec.md's Preprocessor needs.
func ReadJPEGOrientation(data []byte) int {
	tiffStart, ok := findTIFFStart(data)
	if !ok {
		return 0
	}
	return readOrientationTag(data, tiffStart)
}

func findTIFFStart(data []byte) (int, bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, false
	}
	i := 2
	for i+4 < len(data) {
		if data[i] != 0xFF {
			i++
			continue
		}
		marker := data[i+1]
		if marker == 0xDA {
			break
		}
		segLen := int(data[i+2])<<8 | int(data[i+3])
		if marker == 0xE1 && segLen >= 8 && i+10 <= len(data) && string(data[i+4:i+10]) == "Exif\x00\x00" {
			return i + 10, true
		}
		if segLen <= 2 {
			i += 2
		} else {
			i += 2 + segLen
		}
	}
	return 0, false
}

func readOrientationTag(data []byte, tiffStart int) int {
	if tiffStart+8 > len(data) {
		return 0
	}
	var order binary.ByteOrder
	switch {
	case data[tiffStart] == 'M' && data[tiffStart+1] == 'M':
		order = binary.BigEndian
	case data[tiffStart] == 'I' && data[tiffStart+1] == 'I':
		order = binary.LittleEndian
	default:
		return 0
	}
	if order.Uint16(data[tiffStart+2:tiffStart+4]) != 0x002A {
		return 0
	}
	ifdOff := int(order.Uint32(data[tiffStart+4 : tiffStart+8]))
	absIfd := tiffStart + ifdOff
	if ifdOff <= 0 || absIfd+2 > len(data) {
		return 0
	}
	nEntries := int(order.Uint16(data[absIfd : absIfd+2]))
	entriesBase := absIfd + 2
	for e := 0; e < nEntries; e++ {
		ent := entriesBase + e*12
		if ent+12 > len(data) {
			break
		}
		tag := order.Uint16(data[ent : ent+2])
		if tag != 0x0112 {
			continue
		}
		typ := order.Uint16(data[ent+2 : ent+4])
		if typ != 3 { // SHORT
			return 0
		}
		return int(order.Uint16(data[ent+8 : ent+10]))
	}
	return 0
}

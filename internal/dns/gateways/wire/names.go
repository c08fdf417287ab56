// Package wire provides encoding and decoding of DNS messages on the wire,
// per RFC 1035, including label compression via pointers into the message.
package wire

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

// maxNameLength is the maximum length, in bytes, of an encoded domain name
// including every length octet and the terminating root label.
const maxNameLength = 255

// maxLabelLength is the maximum length of a single label.
const maxLabelLength = 63

// offsetMap tracks, for each distinct name suffix already written into a
// message, the byte offset at which it begins. encodeName consults it to
// emit a compression pointer instead of repeating a suffix, and records
// every new suffix it writes so later records can point back to it.
type offsetMap map[string]int

// newOffsetMap returns an empty offset table.
func newOffsetMap() offsetMap {
	return make(offsetMap)
}

// decodeName reads a domain name starting at offset in data, following any
// compression pointers it encounters, and returns the decoded name plus
// the offset immediately following the name's on-the-wire representation
// (which, for a name ending in a pointer, is the position after the two
// pointer bytes -- not the position the pointer jumps to).
func decodeName(data []byte, offset int) (string, int, error) {
	var labels []string
	visited := make(map[int]struct{})
	pos := offset
	end := -1 // offset immediately following the name as it appears inline
	total := 0

	for {
		if pos < 0 || pos >= len(data) {
			return "", 0, fmt.Errorf("%w: name offset %d out of bounds", domain.ErrMalformedName, pos)
		}
		length := int(data[pos])

		switch {
		case length == 0:
			pos++
			if end == -1 {
				end = pos
			}
			// The root name (no labels) decodes to ".".
			name := strings.Join(labels, ".") + "."
			return name, end, nil

		case length&0xC0 == 0xC0:
			if pos+1 >= len(data) {
				return "", 0, fmt.Errorf("%w: truncated compression pointer", domain.ErrMalformedName)
			}
			ptr := (length&0x3F)<<8 | int(data[pos+1])
			if end == -1 {
				end = pos + 2
			}
			if _, seen := visited[ptr]; seen {
				return "", 0, fmt.Errorf("%w: compression pointer cycle at offset %d", domain.ErrMalformedName, ptr)
			}
			visited[ptr] = struct{}{}
			if ptr >= pos {
				return "", 0, fmt.Errorf("%w: compression pointer does not point backward", domain.ErrMalformedName)
			}
			pos = ptr

		case length&0xC0 != 0:
			return "", 0, fmt.Errorf("%w: reserved label length bits at offset %d", domain.ErrMalformedName, pos)

		default:
			pos++
			if pos+length > len(data) {
				return "", 0, fmt.Errorf("%w: label runs past end of message", domain.ErrMalformedName)
			}
			labels = append(labels, string(data[pos:pos+length]))
			pos += length
			total += length + 1
			if total > maxNameLength {
				return "", 0, fmt.Errorf("%w: name exceeds %d bytes", domain.ErrMalformedName, maxNameLength)
			}
		}
	}
}

// encodeName writes name into buf starting at wire position pos (pos is
// the absolute offset buf's next byte will occupy in the final message),
// compressing against any suffix already recorded in offsets. Every
// suffix written is recorded in offsets so subsequent names can point
// back into this one.
func encodeName(buf *bytes.Buffer, name string, offsets offsetMap, pos int) error {
	if name != "" && name != "." && !strings.HasSuffix(name, ".") {
		return fmt.Errorf("%w: name %q must end with a trailing dot", domain.ErrMalformedName, name)
	}
	name = strings.TrimSuffix(name, ".")
	if name == "" {
		buf.WriteByte(0)
		return nil
	}

	labels := strings.Split(name, ".")
	written := 0
	for i := range labels {
		suffix := strings.ToLower(strings.Join(labels[i:], "."))
		if target, ok := offsets[suffix]; ok {
			ptr := uint16(0xC000 | target)
			buf.WriteByte(byte(ptr >> 8))
			buf.WriteByte(byte(ptr))
			return nil
		}

		// Pointers only reach 14 bits; suffixes beyond that can never be
		// compressed against, so there's no point recording them.
		if pos+written <= 0x3FFF {
			offsets[suffix] = pos + written
		}

		label := labels[i]
		if len(label) == 0 {
			return fmt.Errorf("%w: empty label in name %q", domain.ErrMalformedName, name)
		}
		if len(label) > maxLabelLength {
			return fmt.Errorf("%w: label %q exceeds %d bytes", domain.ErrLabelTooLong, label, maxLabelLength)
		}
		buf.WriteByte(byte(len(label)))
		buf.WriteString(label)
		written += len(label) + 1
	}
	buf.WriteByte(0)
	return nil
}

package wire

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func TestEncodeRecord_BackpatchesRDLengthAfterCompression(t *testing.T) {
	var buf bytes.Buffer
	offsets := newOffsetMap()

	// Write "example.com." first so the NS record's target can compress
	// against it -- its encoded rdlength must reflect the 2-byte pointer,
	// not the uncompressed name length.
	if err := encodeName(&buf, "example.com.", offsets, 0); err != nil {
		t.Fatalf("encodeName: %v", err)
	}
	wirePos := buf.Len()

	rec := domain.Record{
		Name:  "example.com.",
		Type:  domain.RRTypeNS,
		Class: domain.RRClassIN,
		TTL:   3600,
		RData: domain.NS{Target: "example.com."},
	}
	if err := encodeRecord(&buf, rec, offsets, wirePos); err != nil {
		t.Fatalf("encodeRecord: %v", err)
	}

	data := buf.Bytes()
	decoded, next, err := decodeRecord(data, wirePos)
	if err != nil {
		t.Fatalf("decodeRecord: %v", err)
	}
	if next != len(data) {
		t.Errorf("decodeRecord consumed %d bytes, expected %d", next, len(data))
	}

	ns, ok := decoded.RData.(domain.NS)
	if !ok || ns.Target != "example.com." {
		t.Fatalf("unexpected decoded RData: %+v", decoded.RData)
	}

	// The NS record's name is itself compressed to a 2-byte pointer, so
	// the rdlength field starts at: 2 (name ptr) + 2 (type) + 2 (class) +
	// 4 (ttl) = 10 bytes in. Its value must reflect the 2-byte rdata
	// pointer, not len("example.com.") encoded uncompressed.
	rdlengthOffset := wirePos + 10
	gotRDLength := binary.BigEndian.Uint16(data[rdlengthOffset : rdlengthOffset+2])
	if gotRDLength != 2 {
		t.Errorf("rdlength = %d, want 2 (compressed pointer)", gotRDLength)
	}
	if decoded.RDLength != 2 {
		t.Errorf("decoded.RDLength = %d, want 2", decoded.RDLength)
	}
}

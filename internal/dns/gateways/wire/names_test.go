package wire

import (
	"bytes"
	"errors"
	"testing"

	"github.com/nyxdns/recurdns/internal/dns/domain"
)

func TestEncodeDecodeName_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	offsets := newOffsetMap()
	if err := encodeName(&buf, "www.example.com.", offsets, 0); err != nil {
		t.Fatalf("encodeName: %v", err)
	}

	name, n, err := decodeName(buf.Bytes(), 0)
	if err != nil {
		t.Fatalf("decodeName: %v", err)
	}
	if name != "www.example.com." {
		t.Errorf("got name %q, want %q", name, "www.example.com.")
	}
	if n != buf.Len() {
		t.Errorf("got end offset %d, want %d", n, buf.Len())
	}
}

func TestEncodeName_RootLabel(t *testing.T) {
	var buf bytes.Buffer
	offsets := newOffsetMap()
	if err := encodeName(&buf, "", offsets, 0); err != nil {
		t.Fatalf("encodeName: %v", err)
	}
	if got := buf.Bytes(); !bytes.Equal(got, []byte{0}) {
		t.Errorf("got %v, want [0]", got)
	}
}

func TestEncodeName_Compression(t *testing.T) {
	var buf bytes.Buffer
	offsets := newOffsetMap()

	if err := encodeName(&buf, "example.com.", offsets, 0); err != nil {
		t.Fatalf("encodeName first: %v", err)
	}
	firstLen := buf.Len()

	if err := encodeName(&buf, "www.example.com.", offsets, firstLen); err != nil {
		t.Fatalf("encodeName second: %v", err)
	}

	// "www" label (1 length byte + 3 chars) followed by a 2-byte pointer,
	// not a full repeat of "example.com.".
	secondPartLen := buf.Len() - firstLen
	if secondPartLen != 1+3+2 {
		t.Errorf("expected compressed second name to take %d bytes, took %d", 1+3+2, secondPartLen)
	}

	data := buf.Bytes()
	name, _, err := decodeName(data, firstLen)
	if err != nil {
		t.Fatalf("decodeName compressed: %v", err)
	}
	if name != "www.example.com." {
		t.Errorf("got %q, want %q", name, "www.example.com.")
	}
}

func TestDecodeName_PointerCycle(t *testing.T) {
	// Offset 0 points to itself: 0xC0 0x00.
	data := []byte{0xC0, 0x00}
	_, _, err := decodeName(data, 0)
	if err == nil {
		t.Fatal("expected error for self-referential pointer, got nil")
	}
	if !errors.Is(err, domain.ErrMalformedName) {
		t.Errorf("expected ErrMalformedName, got %v", err)
	}
}

func TestDecodeName_PointerMustPointBackward(t *testing.T) {
	// Pointer at offset 0 pointing forward to offset 2.
	data := []byte{0xC0, 0x02, 0x00}
	_, _, err := decodeName(data, 0)
	if !errors.Is(err, domain.ErrMalformedName) {
		t.Errorf("expected ErrMalformedName for forward pointer, got %v", err)
	}
}

func TestEncodeName_LabelTooLong(t *testing.T) {
	var buf bytes.Buffer
	offsets := newOffsetMap()
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	err := encodeName(&buf, string(long)+".com.", offsets, 0)
	if !errors.Is(err, domain.ErrLabelTooLong) {
		t.Errorf("expected ErrLabelTooLong, got %v", err)
	}
}

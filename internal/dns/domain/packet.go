package domain

// Packet represents a complete DNS message: the fixed header plus its
// four variable-length sections. Wire encoding and decoding, including
// name compression, live in the wire package.
type Packet struct {
	Header     Header
	Questions  []Question
	Answers    []Record
	Authority  []Record
	Additional []Record
}

// NewQueryPacket builds a minimal outbound query packet for a single
// question, with RD set and all counts/sections otherwise empty. The
// caller supplies the transaction ID, normally a random value chosen per
// hop.
func NewQueryPacket(id uint16, q Question) Packet {
	return Packet{
		Header: Header{
			ID:      id,
			QR:      false,
			Opcode:  0,
			RD:      true,
			QDCount: 1,
		},
		Questions: []Question{q},
	}
}

// IsError reports whether the packet's header carries a non-success
// RCode.
func (p Packet) IsError() bool {
	return p.Header.RCode != RCodeNoError
}

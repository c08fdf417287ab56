package domain

// Unknown is the RDATA of any RR type this resolver does not decode
// structurally. The raw rdata bytes are preserved verbatim so the record
// can still be relayed (e.g. as an additional-section passenger) without
// loss.
type Unknown struct {
	RRT RRType
	Raw []byte
}

// Type implements RData.
func (u Unknown) Type() RRType { return u.RRT }

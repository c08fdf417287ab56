package domain

// AAAA is the RDATA of an AAAA record: a 128-bit IPv6 address.
type AAAA struct {
	Address [16]byte
}

// Type implements RData.
func (AAAA) Type() RRType { return RRTypeAAAA }

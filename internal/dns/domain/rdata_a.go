package domain

// A is the RDATA of an A record: a 32-bit IPv4 address.
type A struct {
	Address [4]byte
}

// Type implements RData.
func (A) Type() RRType { return RRTypeA }

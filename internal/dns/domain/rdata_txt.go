package domain

// TXT is the RDATA of a TXT record: one or more character-strings, each
// at most 255 bytes.
type TXT struct {
	Segments [][]byte
}

// Type implements RData.
func (TXT) Type() RRType { return RRTypeTXT }

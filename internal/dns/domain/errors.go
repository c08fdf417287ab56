package domain

import "errors"

// Sentinel errors returned by the wire codec and resolver. Call sites wrap
// these with fmt.Errorf("%w: ...") to attach context without losing the
// ability to errors.Is against the taxonomy below.
var (
	// ErrShortBuffer means a buffer was smaller than the structure being
	// decoded required.
	ErrShortBuffer = errors.New("dns: short buffer")

	// ErrMalformedName means a domain name failed to decode: a reserved
	// label prefix, a pointer outside the packet, a pointer cycle, or a
	// decoded name longer than 255 bytes.
	ErrMalformedName = errors.New("dns: malformed name")

	// ErrLabelTooLong means a label exceeded 63 bytes during encoding.
	ErrLabelTooLong = errors.New("dns: label too long")

	// ErrInvalidRdataLength means a fixed-width RDATA type's rdlength did
	// not match its required size.
	ErrInvalidRdataLength = errors.New("dns: invalid rdata length")

	// ErrUpstreamIO means a socket operation to an upstream server failed.
	ErrUpstreamIO = errors.New("dns: upstream i/o error")

	// ErrUpstreamTimeout means an upstream server did not respond within
	// the configured timeout and retry budget.
	ErrUpstreamTimeout = errors.New("dns: upstream timeout")

	// ErrResolutionExhausted means the resolver hit its iteration or
	// recursion-depth bound before reaching an answer, or a glue-less
	// delegation's name server resolved to no address.
	ErrResolutionExhausted = errors.New("dns: resolution exhausted")
)

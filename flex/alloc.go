package flex

/*------------------------------------------------------------------
 *
 * Purpose:	Model the allocator collaborator spec.md §1 names as
 *		external ("a few kilobytes of RAM"): a pluggable seam so
 *		the growable byte buffers in alpha.go / parked.go can be
 *		made to fail growth in tests and exercise the
 *		rollback-on-failure behaviour §4.7/§4.8/§7 require, without
 *		this package ever calling into a real embedded allocator.
 *
 *------------------------------------------------------------------*/

// Allocator grows a byte buffer, preserving its existing content. It reports
// false (and leaves old untouched) to simulate allocation failure.
type Allocator interface {
	Grow(old []byte, newLen int) (buf []byte, ok bool)
}

type defaultAllocator struct{}

func (defaultAllocator) Grow(old []byte, newLen int) ([]byte, bool) {
	buf := make([]byte, newLen)
	copy(buf, old)
	return buf, true
}

// DefaultAllocator never fails; it models a hosted target where byte-buffer
// growth for message assembly is effectively unconstrained.
var DefaultAllocator Allocator = defaultAllocator{}

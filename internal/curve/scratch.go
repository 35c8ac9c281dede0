package curve

import (
	"math/big"
	"sync"
)

// The Newton loops burn through a handful of big.Int temporaries per call,
// and batch quoting runs thousands of calls per cycle. Temporaries come from
// a shared pool; results returned to callers are always freshly allocated.
var intPool = sync.Pool{
	New: func() interface{} {
		return new(big.Int)
	},
}

// scratch tracks the integers one solver call borrows from the pool so they
// can be returned together when the call ends.
type scratch struct {
	borrowed []*big.Int
}

var scratchPool = sync.Pool{
	New: func() interface{} {
		return &scratch{borrowed: make([]*big.Int, 0, 12)}
	},
}

func newScratch() *scratch {
	return scratchPool.Get().(*scratch)
}

// get borrows a zeroed integer for the lifetime of the scratch.
func (s *scratch) get() *big.Int {
	bi := intPool.Get().(*big.Int)
	bi.SetUint64(0)
	s.borrowed = append(s.borrowed, bi)
	return bi
}

// release returns every borrowed integer. Values handed to callers must be
// copies, never scratch members.
func (s *scratch) release() {
	for i, bi := range s.borrowed {
		intPool.Put(bi)
		s.borrowed[i] = nil
	}
	s.borrowed = s.borrowed[:0]
	scratchPool.Put(s)
}

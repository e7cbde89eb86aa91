package vangerssrv

import "sync"

// bytePool is a pool of reusable read buffers, adapted from the teacher's
// BytePool to size the raw socket-read scratch space each connection reuses
// across its lifetime instead of allocating one per Read call.
type bytePool struct {
	pool sync.Pool
}

func newBytePool(defaultCap int) *bytePool {
	p := &bytePool{}
	p.pool.New = func() any {
		return make([]byte, defaultCap)
	}
	return p
}

func (p *bytePool) Get() []byte {
	return p.pool.Get().([]byte)
}

func (p *bytePool) Put(b []byte) {
	if b == nil {
		return
	}
	p.pool.Put(b)
}

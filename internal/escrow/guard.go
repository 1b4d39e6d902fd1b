package escrow

import (
	"errors"

	"github.com/puzpuzpuz/xsync"
)

// ErrReentrancy is returned when a signature-gated operation on a pool is
// entered while another one is still executing.
var ErrReentrancy = errors.New("operation is already executing")

// Guard serializes signature-gated operations per pool. Acquire must be
// paired with the returned release on every exit path:
//
//	release, err := guard.Acquire(poolID)
//	if err != nil { ... }
//	defer release()
type Guard struct {
	executing *xsync.MapOf[string, bool]
}

func NewGuard() *Guard {
	return &Guard{executing: xsync.NewMapOf[bool]()}
}

func (g *Guard) Acquire(key string) (func(), error) {
	if _, loaded := g.executing.LoadOrStore(key, true); loaded {
		return nil, ErrReentrancy
	}

	return func() { g.executing.Delete(key) }, nil
}

package ctree

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// Fingerprint hashes the shape and names of the function body. Addresses and
// the function's own name are left out, so the same code lifted at another
// base or under another name hashes the same.
func (f *Func) Fingerprint() uint64 {
	if f == nil || f.Body == nil {
		return 0
	}
	h := fingerprinter{d: xxhash.New()}
	Walk(f.Body, nil, VisitorFuncs{
		Expr: func(e *Expr, _ Node) Signal {
			h.token(e.Kind())
			h.count(len(Children(e)))
			h.token(e.Name)
			h.token(e.Value)
			return Continue
		},
		Insn: func(i *Insn, _ Node) Signal {
			h.token(i.Kind())
			h.count(len(Children(i)))
			h.token(i.Label)
			h.token(i.Target)
			h.count(len(i.Cases))
			for _, c := range i.Cases {
				h.count(len(c.Values))
				for _, v := range c.Values {
					h.token(v)
				}
			}
			return Continue
		},
	})
	return h.d.Sum64()
}

// fingerprinter feeds a digest with length-prefixed tokens, so names and
// literals may hold any byte without two bodies running together.
type fingerprinter struct {
	d   *xxhash.Digest
	buf [binary.MaxVarintLen64]byte
}

func (h *fingerprinter) count(n int) {
	k := binary.PutUvarint(h.buf[:], uint64(n))
	_, _ = h.d.Write(h.buf[:k])
}

func (h *fingerprinter) token(s string) {
	h.count(len(s))
	_, _ = h.d.WriteString(s)
}

package ovpapi

import (
	"encoding/json"
	"fmt"
)

// ForwardRef is a deferred value inside a multirequest: a placeholder the
// server resolves against the result of an earlier operation in the same
// batch. It marshals to the wire form "{<index>:result:<path>}", where index
// is the 1-based batch position of the referenced operation.
type ForwardRef struct {
	Index int
	Path  string
}

// Result returns a forward reference to a field of the response at the given
// 1-based batch position.
func Result(index int, path string) ForwardRef {
	return ForwardRef{Index: index, Path: path}
}

// AnonymousKS references the session token produced by an anonymous login
// operation placed at batch position 1.
func AnonymousKS() ForwardRef {
	return Result(1, "ks")
}

func (r ForwardRef) String() string {
	return fmt.Sprintf("{%d:result:%s}", r.Index, r.Path)
}

func (r ForwardRef) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.String())
}

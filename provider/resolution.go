package provider

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/streamkit/ovp/media"
)

// Resolution is the handle for one in-flight resolution. The completion
// callback fires exactly once on every code path.
type Resolution struct {
	cancelled atomic.Bool
	once      sync.Once
}

// Cancel requests best-effort cancellation. The flag is consulted only at
// the boundary before the completion fires: a cancelled resolution
// completes with context.Canceled instead of its result. Cancellation
// cannot abort a transport call already in flight, and calling Cancel
// after the completion has fired is a no-op; the delivered result is
// never suppressed retroactively.
func (r *Resolution) Cancel() {
	r.cancelled.Store(true)
}

func (r *Resolution) deliverEntry(callback func(*media.Entry, error), entry *media.Entry, err error) {
	r.once.Do(func() {
		if r.cancelled.Load() {
			callback(nil, context.Canceled)
			return
		}
		callback(entry, err)
	})
}

func (r *Resolution) deliverPlaylist(callback func(*media.Playlist, error), playlist *media.Playlist, err error) {
	r.once.Do(func() {
		if r.cancelled.Load() {
			callback(nil, context.Canceled)
			return
		}
		callback(playlist, err)
	})
}

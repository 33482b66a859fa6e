package responsive

import (
	"context"
	"sync"

	"github.com/withgalaxy/responsive/pkg/breakpoint"
)

// Updates subscribes to d and delivers each snapshot on the returned
// channel, starting with the current one. A reader that falls behind only
// sees the newest pending snapshot. The subscription ends and the channel
// closes when ctx is done.
func (d *Dispatcher) Updates(ctx context.Context) <-chan breakpoint.Screens {
	out := make(chan breakpoint.Screens, 1)
	var mu sync.Mutex
	closed := false

	deliver := func(screens breakpoint.Screens) {
		mu.Lock()
		defer mu.Unlock()
		if closed {
			return
		}
		select {
		case out <- screens:
			return
		default:
		}
		// Replace the stale value nobody has read yet.
		select {
		case <-out:
		default:
		}
		out <- screens
	}

	tok := d.Subscribe(deliver)

	go func() {
		<-ctx.Done()
		d.Unsubscribe(tok)
		mu.Lock()
		closed = true
		close(out)
		mu.Unlock()
	}()

	return out
}

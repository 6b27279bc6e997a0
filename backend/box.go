package backend

import (
	"context"
	"sync"
)

// box holds the latest value of T and hands it to every subscriber. Slow
// subscribers only ever see the newest value.
type box[T any] struct {
	lock  sync.Mutex
	value T
	set   bool
	subs  map[chan T]struct{}
}

// Store replaces the boxed value and notifies subscribers.
func (b *box[T]) Store(v T) {
	b.lock.Lock()
	defer b.lock.Unlock()
	b.value = v
	b.set = true
	for ch := range b.subs {
		// Drop a stale value the subscriber has not read yet.
		select {
		case <-ch:
		default:
		}
		ch <- v
	}
}

// Load returns the boxed value and whether one was ever stored.
func (b *box[T]) Load() (T, bool) {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.value, b.set
}

// Stream emits the current value (if any) followed by every later one. The
// channel is closed when ctx is done.
func (b *box[T]) Stream(ctx context.Context) <-chan T {
	ch := make(chan T, 1)
	b.lock.Lock()
	if b.subs == nil {
		b.subs = make(map[chan T]struct{})
	}
	if b.set {
		ch <- b.value
	}
	b.subs[ch] = struct{}{}
	b.lock.Unlock()
	go func() {
		<-ctx.Done()
		b.lock.Lock()
		defer b.lock.Unlock()
		delete(b.subs, ch)
		close(ch)
	}()
	return ch
}

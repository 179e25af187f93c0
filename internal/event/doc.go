// Package event provides the synchronous event bus that carries content
// change notifications from the engine to observers such as the terminal
// host and scripts.
//
// # Event Topics
//
// Events use hierarchical topics with dot notation:
//
//	buffer.content.inserted    - Text was inserted
//	buffer.content.deleted     - The rune after the cursor was deleted
//	buffer.content.removed     - The rune before the cursor was removed
//	config.reloaded            - The configuration file changed on disk
//
// Subscriptions accept the wildcards "*" (one segment) and "**" (zero or
// more segments), so "buffer.content.*" observes every content change.
//
// # Delivery
//
// Publish delivers to every matching subscription in the caller's
// goroutine, in subscription order, before it returns. A handler may
// publish or subscribe again without deadlocking. A handler that panics is
// reported as a *PanicError and does not prevent delivery to the others.
//
// # Usage
//
//	bus := event.NewBus()
//	sub, _ := bus.SubscribeFunc("buffer.content.*", func(ctx context.Context, ev any) error {
//	    e := ev.(event.Event[events.BufferContentChanged])
//	    log.Printf("%s at %d", e.Payload.Kind, e.Payload.Offset)
//	    return nil
//	})
//	defer bus.Unsubscribe(sub)
package event

// Package events defines the typed payloads published on the event bus.
//
// Each payload has a topic constant. Events are created with event.NewEvent:
//
//	evt := event.NewEvent(events.TopicBufferContentInserted,
//	    events.BufferContentChanged{BufferID: id, Offset: 4, Text: "x"},
//	    "engine",
//	)
//	bus.Publish(ctx, evt)
package events

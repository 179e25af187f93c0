package buffer

// Option is a functional option for configuring a Buffer.
type Option func(*Buffer)

// WithCapacity pre-sizes the underlying gap buffer.
func WithCapacity(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.capacity = n
		}
	}
}

// WithID sets the buffer identity reported in change events.
func WithID(id string) Option {
	return func(b *Buffer) {
		if id != "" {
			b.id = id
		}
	}
}

// WithListener registers a listener at creation time.
func WithListener(l Listener) Option {
	return func(b *Buffer) {
		if l != nil {
			b.AddListener(l)
		}
	}
}

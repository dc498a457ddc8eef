package core

// Limiter bounds how many downstream calls a flow fans out at once, so a
// wide search cannot flood the owning services.
type Limiter struct {
	slots chan struct{}
}

func NewLimiter(maxConcurrent int) *Limiter {
	if maxConcurrent < 1 {
		maxConcurrent = 1
	}
	return &Limiter{slots: make(chan struct{}, maxConcurrent)}
}

// Run executes fn holding a semaphore slot. The slot is released even if
// fn panics; the panic is re-raised for the caller's recover.
func (l *Limiter) Run(fn func()) {
	l.slots <- struct{}{}
	defer func() { <-l.slots }()
	fn()
}

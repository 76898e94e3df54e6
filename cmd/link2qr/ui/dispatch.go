package ui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"
)

// dispatchMsg carries a closure from a background goroutine onto the
// bubbletea event loop, where it runs inside Update.
type dispatchMsg struct {
	fn func()
}

// Dispatcher hands closures to a running tea.Program.
type Dispatcher struct {
	mu sync.Mutex
	p  *tea.Program
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Attach binds the dispatcher to p. Closures dispatched before Attach are
// dropped.
func (d *Dispatcher) Attach(p *tea.Program) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.p = p
}

func (d *Dispatcher) Dispatch(fn func()) {
	d.mu.Lock()
	p := d.p
	d.mu.Unlock()

	if p == nil {
		return
	}
	p.Send(dispatchMsg{fn: fn})
}

package debounce

import (
	"container/heap"
	"sync"
	"time"
)

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// Scheduler runs callbacks after a delay on the thread that owns the caller's
// state. Cancel is idempotent and accepts handles that already fired.
type Scheduler interface {
	Schedule(delay time.Duration, fn func()) Handle
	Cancel(h Handle)
}

// Dispatcher runs fn on the owning event loop.
type Dispatcher interface {
	Dispatch(fn func())
}

// DispatchFunc adapts a function to a Dispatcher.
type DispatchFunc func(fn func())

func (f DispatchFunc) Dispatch(fn func()) {
	f(fn)
}

// Inline runs dispatched functions immediately on the calling goroutine.
var Inline Dispatcher = DispatchFunc(func(fn func()) { fn() })

// TimerScheduler arms real timers and hands their expiry to a Dispatcher.
// Whether a handle is still armed is decided when the dispatched expiry runs,
// so a callback never runs after Cancel for its handle has returned on the
// owning loop, even if the timer already expired.
type TimerScheduler struct {
	disp Dispatcher

	mu    sync.Mutex
	next  Handle
	armed map[Handle]*time.Timer
}

func NewTimerScheduler(disp Dispatcher) *TimerScheduler {
	return &TimerScheduler{
		disp:  disp,
		armed: make(map[Handle]*time.Timer),
	}
}

func (s *TimerScheduler) Schedule(delay time.Duration, fn func()) Handle {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.next++
	h := s.next
	s.armed[h] = time.AfterFunc(delay, func() {
		s.disp.Dispatch(func() { s.fire(h, fn) })
	})
	return h
}

func (s *TimerScheduler) fire(h Handle, fn func()) {
	s.mu.Lock()
	_, ok := s.armed[h]
	delete(s.armed, h)
	s.mu.Unlock()

	if ok {
		fn()
	}
}

func (s *TimerScheduler) Cancel(h Handle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if t, ok := s.armed[h]; ok {
		t.Stop()
		delete(s.armed, h)
	}
}

// Armed reports how many callbacks are scheduled and not yet run or cancelled.
func (s *TimerScheduler) Armed() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.armed)
}

// VirtualScheduler is a manual clock. Nothing fires until Advance.
type VirtualScheduler struct {
	now    time.Duration
	next   Handle
	timers timerQueue
	index  map[Handle]*virtualTimer
}

type virtualTimer struct {
	handle Handle
	due    time.Duration
	fn     func()
	pos    int
}

func NewVirtualScheduler() *VirtualScheduler {
	return &VirtualScheduler{
		index: make(map[Handle]*virtualTimer),
	}
}

func (s *VirtualScheduler) Schedule(delay time.Duration, fn func()) Handle {
	if delay < 0 {
		delay = 0
	}
	s.next++
	t := &virtualTimer{handle: s.next, due: s.now + delay, fn: fn}
	heap.Push(&s.timers, t)
	s.index[t.handle] = t
	return t.handle
}

func (s *VirtualScheduler) Cancel(h Handle) {
	t, ok := s.index[h]
	if !ok {
		return
	}
	heap.Remove(&s.timers, t.pos)
	delete(s.index, h)
}

// Advance moves the clock forward by d, firing every callback that comes due
// in deadline order. Callbacks may schedule or cancel further callbacks.
func (s *VirtualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for len(s.timers) > 0 && s.timers[0].due <= target {
		t := heap.Pop(&s.timers).(*virtualTimer)
		delete(s.index, t.handle)
		s.now = t.due
		t.fn()
	}
	s.now = target
}

func (s *VirtualScheduler) Now() time.Duration {
	return s.now
}

func (s *VirtualScheduler) Armed() int {
	return len(s.timers)
}

type timerQueue []*virtualTimer

func (q timerQueue) Len() int { return len(q) }

func (q timerQueue) Less(i, j int) bool {
	if q[i].due == q[j].due {
		return q[i].handle < q[j].handle
	}
	return q[i].due < q[j].due
}

func (q timerQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].pos = i
	q[j].pos = j
}

func (q *timerQueue) Push(x any) {
	t := x.(*virtualTimer)
	t.pos = len(*q)
	*q = append(*q, t)
}

func (q *timerQueue) Pop() any {
	old := *q
	n := len(old)
	t := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return t
}

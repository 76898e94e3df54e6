package debounce

import (
	"sync"
	"testing"
	"time"
)

const interval = 300 * time.Millisecond

func TestDebouncer_CoalescesBurst(t *testing.T) {
	sched := NewVirtualScheduler()
	fired := 0
	d := New(sched, interval, func() { fired++ }, nil)

	for i := 0; i < 10; i++ {
		d.Trigger()
		if sched.Armed() != 1 {
			t.Fatalf("expected exactly one armed timer after trigger %d, got %d", i, sched.Armed())
		}
		sched.Advance(50 * time.Millisecond)
	}

	if fired != 0 {
		t.Errorf("expected no fire during burst, got %d", fired)
	}

	sched.Advance(interval)

	if fired != 1 {
		t.Errorf("expected exactly one fire after quiet period, got %d", fired)
	}
	if d.Pending() {
		t.Error("expected nothing pending after fire")
	}
	if sched.Armed() != 0 {
		t.Errorf("expected no armed timers, got %d", sched.Armed())
	}
}

func TestDebouncer_FiresAtExactInterval(t *testing.T) {
	sched := NewVirtualScheduler()
	fired := 0
	d := New(sched, interval, func() { fired++ }, nil)
	if d.Interval() != interval {
		t.Fatalf("expected interval %s, got %s", interval, d.Interval())
	}

	d.Trigger()
	sched.Advance(interval - time.Millisecond)
	if fired != 0 {
		t.Fatalf("expected no fire before the interval, got %d", fired)
	}

	sched.Advance(time.Millisecond)
	if fired != 1 {
		t.Errorf("expected fire at the interval, got %d", fired)
	}
}

func TestDebouncer_SeparateQuietPeriodsFireSeparately(t *testing.T) {
	sched := NewVirtualScheduler()
	fired := 0
	d := New(sched, interval, func() { fired++ }, nil)

	d.Trigger()
	sched.Advance(interval)
	d.Trigger()
	sched.Advance(interval)

	if fired != 2 {
		t.Errorf("expected 2 fires, got %d", fired)
	}
}

func TestDebouncer_Disabled(t *testing.T) {
	sched := NewVirtualScheduler()
	fired := 0
	d := New(sched, interval, func() { fired++ }, nil)

	d.SetEnabled(false)

	for i := 0; i < 5; i++ {
		if d.Trigger() {
			t.Fatal("expected Trigger to report disabled")
		}
	}
	sched.Advance(time.Second)

	if fired != 0 {
		t.Errorf("expected no fire while disabled, got %d", fired)
	}
	if sched.Armed() != 0 {
		t.Errorf("expected no armed timers, got %d", sched.Armed())
	}
}

func TestDebouncer_DisableCancelsPending(t *testing.T) {
	sched := NewVirtualScheduler()
	fired := 0
	d := New(sched, interval, func() { fired++ }, nil)

	d.Trigger()
	d.SetEnabled(false)
	sched.Advance(time.Second)

	if fired != 0 {
		t.Errorf("expected pending fire to be cancelled, got %d", fired)
	}

	d.SetEnabled(true)
	if !d.Trigger() {
		t.Fatal("expected Trigger to schedule once re-enabled")
	}
	sched.Advance(interval)
	if fired != 1 {
		t.Errorf("expected 1 fire after re-enable, got %d", fired)
	}
}

func TestDebouncer_CancelIsIdempotent(t *testing.T) {
	sched := NewVirtualScheduler()
	d := New(sched, interval, func() {}, nil)

	d.Cancel()
	d.Trigger()
	d.Cancel()
	d.Cancel()

	if d.Pending() {
		t.Error("expected nothing pending")
	}
	if sched.Armed() != 0 {
		t.Errorf("expected no armed timers, got %d", sched.Armed())
	}
}

func TestDebouncer_RetriggerFromCallback(t *testing.T) {
	sched := NewVirtualScheduler()
	fired := 0
	var d *Debouncer
	d = New(sched, interval, func() {
		fired++
		if fired < 3 {
			d.Trigger()
		}
	}, nil)

	d.Trigger()
	sched.Advance(10 * interval)

	if fired != 3 {
		t.Errorf("expected 3 chained fires, got %d", fired)
	}
}

func TestDebouncer_WithTimerScheduler(t *testing.T) {
	loop := make(chan func(), 16)
	sched := NewTimerScheduler(DispatchFunc(func(fn func()) { loop <- fn }))

	done := make(chan struct{})
	d := New(sched, 20*time.Millisecond, func() { close(done) }, nil)

	for i := 0; i < 5; i++ {
		d.Trigger()
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case fn := <-loop:
			fn()
		case <-done:
			if sched.Armed() != 0 {
				t.Errorf("expected no armed timers after fire, got %d", sched.Armed())
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for debounced fire")
		}
	}
}

func TestTimerScheduler_CancelAfterExpiryBeforeDispatch(t *testing.T) {
	var mu sync.Mutex
	var queued []func()
	sched := NewTimerScheduler(DispatchFunc(func(fn func()) {
		mu.Lock()
		queued = append(queued, fn)
		mu.Unlock()
	}))

	ran := false
	h := sched.Schedule(time.Millisecond, func() { ran = true })

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(queued)
		mu.Unlock()
		if n > 0 {
			break
		}
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for timer expiry")
		}
		time.Sleep(time.Millisecond)
	}

	// The timer expired and its callback is queued on the loop; cancelling
	// now must still prevent it from running.
	sched.Cancel(h)

	mu.Lock()
	for _, fn := range queued {
		fn()
	}
	mu.Unlock()

	if ran {
		t.Error("expected cancelled callback not to run")
	}
}

func TestTimerScheduler_CancelUnknownHandle(t *testing.T) {
	sched := NewTimerScheduler(Inline)
	sched.Cancel(0)
	sched.Cancel(42)

	if sched.Armed() != 0 {
		t.Errorf("expected no armed timers, got %d", sched.Armed())
	}
}

func TestVirtualScheduler_OrderAndCancel(t *testing.T) {
	sched := NewVirtualScheduler()
	var order []string

	sched.Schedule(30*time.Millisecond, func() { order = append(order, "c") })
	b := sched.Schedule(20*time.Millisecond, func() { order = append(order, "b") })
	sched.Schedule(10*time.Millisecond, func() { order = append(order, "a") })
	sched.Schedule(10*time.Millisecond, func() { order = append(order, "a2") })

	sched.Cancel(b)
	sched.Cancel(b)
	sched.Advance(25 * time.Millisecond)

	if len(order) != 2 || order[0] != "a" || order[1] != "a2" {
		t.Fatalf("expected [a a2], got %v", order)
	}
	if sched.Now() != 25*time.Millisecond {
		t.Errorf("expected clock at 25ms, got %s", sched.Now())
	}

	sched.Advance(10 * time.Millisecond)
	if len(order) != 3 || order[2] != "c" {
		t.Errorf("expected c to fire last, got %v", order)
	}
}

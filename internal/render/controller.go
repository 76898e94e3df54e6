// Package render owns the auto-render state machine: the current input, the
// last good artifact and the status line.
package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/Varun5711/link2qr/internal/debounce"
	"github.com/Varun5711/link2qr/internal/logger"
	"github.com/Varun5711/link2qr/internal/qrcode"
)

type Options struct {
	Interval     time.Duration
	AutoMode     bool
	Async        bool // generate on a worker goroutine
	VerifyOnSave bool
}

type origin int

const (
	originAuto origin = iota
	originManual
)

// Controller is confined to one event loop. Every exported method must be
// called from that loop; worker results come back through the Dispatcher.
type Controller struct {
	gen  qrcode.Service
	sink Sink
	disp debounce.Dispatcher
	log  *logger.Logger

	debouncer *debounce.Debouncer
	async     bool
	verify    bool

	input    string
	artifact *qrcode.Artifact
	status   Status
	seq      uint64
	autoSeq  uint64 // seq of the latest automatic generation
}

func NewController(gen qrcode.Service, sink Sink, sched debounce.Scheduler, disp debounce.Dispatcher, opts Options, log *logger.Logger) *Controller {
	if disp == nil {
		disp = debounce.Inline
	}

	c := &Controller{
		gen:    gen,
		sink:   sink,
		disp:   disp,
		log:    log,
		async:  opts.Async,
		verify: opts.VerifyOnSave,
	}
	c.debouncer = debounce.New(sched, opts.Interval, c.OnQuietPeriodElapsed, log.With("debounce"))
	c.debouncer.SetEnabled(opts.AutoMode)

	if opts.AutoMode {
		c.setStatus(Status{Kind: StatusWaiting})
	} else {
		c.setStatus(Status{Kind: StatusAutoOff})
	}
	return c
}

// OnChange records the new input and, in auto mode, re-arms the quiet timer.
func (c *Controller) OnChange(text string) {
	c.input = text

	if !c.debouncer.Trigger() {
		c.setStatus(Status{Kind: StatusAutoOff})
		return
	}
	c.setStatus(Status{Kind: StatusPending})
}

// OnQuietPeriodElapsed renders the input as it is now, not as it was when the
// timer was armed.
func (c *Controller) OnQuietPeriodElapsed() {
	text := strings.TrimSpace(c.input)

	if text == "" {
		c.seq++
		c.setArtifact(nil)
		c.setStatus(Status{Kind: StatusWaiting})
		return
	}

	c.generate(text, originAuto)
}

// ManualGenerate renders the current input immediately. Pending automatic
// renders are left alone; whichever result arrives last wins.
func (c *Controller) ManualGenerate() {
	text := strings.TrimSpace(c.input)

	if text == "" {
		c.sink.Notify(Notice{Kind: NoticeWarning, Title: "Nothing to encode", Message: ErrEmptyInput.Error()})
		return
	}

	c.generate(text, originManual)
}

// Clear empties the input, drops the artifact, disarms the quiet timer and
// discards any generation still in flight.
func (c *Controller) Clear() {
	c.debouncer.Cancel()
	c.seq++
	c.input = ""
	c.setArtifact(nil)
	c.setStatus(Status{Kind: StatusCleared})
}

func (c *Controller) SetAutoMode(on bool) {
	if on == c.debouncer.Enabled() {
		return
	}

	c.debouncer.SetEnabled(on)
	if !on {
		if c.autoSeq == c.seq {
			// Drop an automatic render that may still be in flight.
			c.seq++
		}
		c.log.Info("auto-generate disabled")
		c.setStatus(Status{Kind: StatusAutoOff})
		return
	}

	c.log.Info("auto-generate enabled")
	if strings.TrimSpace(c.input) == "" {
		c.setStatus(Status{Kind: StatusWaiting})
		return
	}
	c.debouncer.Trigger()
	c.setStatus(Status{Kind: StatusPending})
}

func (c *Controller) ToggleAutoMode() {
	c.SetAutoMode(!c.debouncer.Enabled())
}

func (c *Controller) generate(text string, from origin) {
	c.seq++
	seq := c.seq
	if from == originAuto {
		c.autoSeq = seq
	}
	c.setStatus(Status{Kind: StatusGenerating})

	if !c.async {
		a, err := c.gen.Generate(text)
		c.finish(seq, from, a, err)
		return
	}

	go func() {
		a, err := c.gen.Generate(text)
		c.disp.Dispatch(func() { c.finish(seq, from, a, err) })
	}()
}

func (c *Controller) finish(seq uint64, from origin, a *qrcode.Artifact, err error) {
	if seq != c.seq {
		c.log.Debug("dropping stale generation %d (current %d)", seq, c.seq)
		return
	}

	if err != nil {
		reason := encodingReason(err)
		c.log.Warn("generation %d failed: %v", seq, err)
		c.setStatus(Status{Kind: StatusInvalid, Detail: reason})
		if from == originManual {
			c.sink.Notify(Notice{Kind: NoticeError, Title: "Cannot generate QR code", Message: reason})
		}
		return
	}

	c.log.Info("generation %d ready: artifact %s, version %d, %d bytes", seq, a.ID, a.Version, len(a.Text))
	c.setArtifact(a)
	if c.debouncer.Pending() {
		// A newer edit is still waiting for its quiet period.
		c.setStatus(Status{Kind: StatusPending})
		return
	}
	if from == originManual {
		c.setStatus(Status{Kind: StatusGenerated})
	} else {
		c.setStatus(Status{Kind: StatusReady})
	}
}

// RequireArtifact reports whether there is something to save and tells the
// user when there is not. UIs call it before prompting for a path.
func (c *Controller) RequireArtifact() bool {
	if c.artifact == nil {
		c.sink.Notify(Notice{Kind: NoticeWarning, Title: "Not yet created", Message: ErrNoArtifact.Error()})
		return false
	}
	return true
}

// Save writes the current artifact as a PNG at path.
func (c *Controller) Save(path string) {
	if !c.RequireArtifact() {
		return
	}

	written, err := qrcode.SavePNG(path, c.artifact.Image)
	if err != nil {
		c.log.Error("save failed: %v", err)
		c.sink.Notify(Notice{Kind: NoticeError, Title: "Save failed", Message: err.Error()})
		return
	}

	c.log.Info("saved artifact %s to %s", c.artifact.ID, written)
	c.setStatus(Status{Kind: StatusSaved, Detail: written})

	if c.verify {
		if msg, ok := c.verifySaved(written); !ok {
			c.sink.Notify(Notice{Kind: NoticeWarning, Title: "Saved, but unreadable", Message: msg})
			return
		}
	}

	c.sink.Notify(Notice{Kind: NoticeInfo, Title: "Saved", Message: written})
}

func (c *Controller) verifySaved(path string) (string, bool) {
	got, err := qrcode.ScanFile(path)
	if err != nil {
		c.log.Warn("verification of %s failed: %v", path, err)
		return fmt.Sprintf("%s was written but could not be scanned back: %v", path, err), false
	}
	if got != c.artifact.Text {
		c.log.Warn("verification of %s decoded %q, expected %q", path, got, c.artifact.Text)
		return fmt.Sprintf("%s scans as %q instead of %q", path, got, c.artifact.Text), false
	}
	return "", true
}

// SuggestedFilename proposes a file name for the current artifact.
func (c *Controller) SuggestedFilename() string {
	if c.artifact == nil {
		return qrcode.SuggestFilename(c.input)
	}
	return qrcode.SuggestFilename(c.artifact.Text)
}

func (c *Controller) setArtifact(a *qrcode.Artifact) {
	c.artifact = a
	c.sink.ShowArtifact(a)
}

func (c *Controller) setStatus(s Status) {
	c.status = s
	c.sink.ShowStatus(s)
}

func (c *Controller) Input() string {
	return c.input
}

func (c *Controller) Artifact() *qrcode.Artifact {
	return c.artifact
}

func (c *Controller) Status() Status {
	return c.status
}

func (c *Controller) AutoMode() bool {
	return c.debouncer.Enabled()
}

// Pending reports whether a quiet-period timer is armed.
func (c *Controller) Pending() bool {
	return c.debouncer.Pending()
}

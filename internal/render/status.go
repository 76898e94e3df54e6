package render

import (
	"errors"
	"fmt"

	"github.com/Varun5711/link2qr/internal/qrcode"
)

var (
	ErrEmptyInput = errors.New("paste a link first")
	ErrNoArtifact = errors.New("generate a QR code before saving")
)

type StatusKind int

const (
	StatusWaiting StatusKind = iota
	StatusPending
	StatusGenerating
	StatusReady
	StatusGenerated
	StatusInvalid
	StatusAutoOff
	StatusCleared
	StatusSaved
)

var statusLabels = map[StatusKind]string{
	StatusWaiting:    "Waiting for input…",
	StatusPending:    "Typing…",
	StatusGenerating: "Generating…",
	StatusReady:      "Ready",
	StatusGenerated:  "Generated manually",
	StatusInvalid:    "Invalid URL",
	StatusAutoOff:    "Auto-generate off",
	StatusCleared:    "Cleared",
	StatusSaved:      "Saved",
}

// Status is the controller's last decision. Detail carries the failure reason
// for StatusInvalid and the written path for StatusSaved.
type Status struct {
	Kind   StatusKind
	Detail string
}

func (s Status) String() string {
	label, ok := statusLabels[s.Kind]
	if !ok {
		label = fmt.Sprintf("Status(%d)", int(s.Kind))
	}
	if s.Detail == "" {
		return label
	}
	return label + ": " + s.Detail
}

func (s Status) IsError() bool {
	return s.Kind == StatusInvalid
}

type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarning
	NoticeError
)

// Notice is a blocking message the user must acknowledge.
type Notice struct {
	Kind    NoticeKind
	Title   string
	Message string
}

// Sink receives every state change, synchronously, on the owning loop.
type Sink interface {
	ShowArtifact(a *qrcode.Artifact)
	ShowStatus(s Status)
	Notify(n Notice)
}

// encodingReason extracts the user-facing reason from a generation error.
func encodingReason(err error) string {
	var encErr *qrcode.EncodingError
	if errors.As(err, &encErr) {
		return encErr.Reason
	}
	return err.Error()
}

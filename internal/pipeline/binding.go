package pipeline

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"

	"github.com/couchcryptid/streetlight-dashboard/internal/domain"
)

// State is the binding's position in the render cycle.
type State int32

const (
	Idle State = iota
	Recomputing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recomputing:
		return "recomputing"
	default:
		return "unknown"
	}
}

// Binding holds one user's selection and the frame currently displayed for
// it. Select is the only way to change the selection; the bar and map are
// swapped together so readers never see a mixed frame.
type Binding struct {
	dashboard *Dashboard
	state     atomic.Int32

	mu    sync.Mutex // serializes Select and guards frame
	frame Frame
}

// NewBinding renders the default selection as the initial frame.
func NewBinding(ctx context.Context, d *Dashboard) *Binding {
	return &Binding{
		dashboard: d,
		frame:     d.Render(ctx, d.DefaultSelection()),
	}
}

// Select re-renders for sel and replaces the displayed frame.
func (b *Binding) Select(ctx context.Context, sel domain.Selection) Frame {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.state.Store(int32(Recomputing))
	defer b.state.Store(int32(Idle))

	b.frame = b.dashboard.Render(ctx, slices.Clone(sel))
	return b.frame
}

// Current returns the displayed frame.
func (b *Binding) Current() Frame {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

// Selection returns the selection of the displayed frame.
func (b *Binding) Selection() domain.Selection {
	return slices.Clone(b.Current().Selection)
}

// State reports where the binding is in its cycle.
func (b *Binding) State() State {
	return State(b.state.Load())
}

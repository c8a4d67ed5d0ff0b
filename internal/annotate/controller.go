package annotate

import (
	"io"
	"log/slog"

	"github.com/dbh/md-annotate/internal/selection"
)

// Controller applies user gestures to the label units of one text.
// It keeps no state between calls; the host owns the unit list and every
// method returns a new slice without touching its input.
type Controller struct {
	text   string
	logger *slog.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for diagnostics about ignored gestures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewController returns a controller for text.
func NewController(text string, opts ...Option) *Controller {
	c := &Controller{
		text:   text,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Text returns the text the controller annotates.
func (c *Controller) Text() string {
	return c.text
}

// Gesture is a completed mouse interaction. Chunk is the range of the chunk
// that received the click, if any.
type Gesture struct {
	Selection selection.Snapshot
	Chunk     *selection.Range
}

// Handle dispatches a gesture: a collapsed selection on a chunk removes the
// labels inside that chunk, any other selection applies label.
func (c *Controller) Handle(units []LabelUnit, label string, g Gesture) ([]LabelUnit, error) {
	if g.Selection.Collapsed() {
		if g.Chunk == nil {
			c.logger.Debug("ignoring click outside a chunk")
			return clone(units), nil
		}
		return c.RemoveLabelsInRange(units, g.Chunk.Start, g.Chunk.End), nil
	}
	return c.ApplyLabel(units, label, g.Selection)
}

// ApplyLabel adds label over the selected range. A selection that cannot be
// resolved leaves the units unchanged.
func (c *Controller) ApplyLabel(units []LabelUnit, label string, snap selection.Snapshot) ([]LabelUnit, error) {
	r, err := selection.Resolve(snap)
	if err != nil {
		if selection.IsNoop(err) {
			c.logger.Debug("selection ignored", "reason", err.Error())
			return clone(units), nil
		}
		return nil, err
	}
	return c.ApplyRange(units, label, r)
}

// ApplyRange adds label to every character in r and returns the compacted
// units.
func (c *Controller) ApplyRange(units []LabelUnit, label string, r selection.Range) ([]LabelUnit, error) {
	ix, err := BuildIndex(c.text, units)
	if err != nil {
		return nil, err
	}
	if err := ix.Paint(r.Start, r.End, label); err != nil {
		return nil, err
	}
	out := ix.LabelUnits()
	c.logger.Debug("label applied", "label", label, "range", r.String(), "units", len(out))
	return out, nil
}

// RemoveLabelsInRange drops every unit lying entirely within [start, end).
// Units that only partially overlap are kept.
func (c *Controller) RemoveLabelsInRange(units []LabelUnit, start, end int) []LabelUnit {
	out := make([]LabelUnit, 0, len(units))
	for _, u := range units {
		if start <= u.Start && u.End <= end {
			continue
		}
		out = append(out, u)
	}
	c.logger.Debug("labels removed", "range", selection.Range{Start: start, End: end}.String(), "removed", len(units)-len(out))
	return out
}

// RenderChunks returns the render partition of the text under units.
func (c *Controller) RenderChunks(units []LabelUnit) ([]ChunkUnit, error) {
	ix, err := BuildIndex(c.text, units)
	if err != nil {
		return nil, err
	}
	return ix.Chunks(), nil
}

func clone(units []LabelUnit) []LabelUnit {
	out := make([]LabelUnit, len(units))
	copy(out, units)
	return out
}

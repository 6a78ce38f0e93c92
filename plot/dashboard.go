package plot

import (
	"context"
	"io"
	"log/slog"

	"github.com/beeport/incentiviz/types"
)

// EventSource is the read-only event store the pipeline pulls from.
// *store.Store satisfies it.
type EventSource interface {
	EventsByKind(ctx context.Context, kind types.EventKind) ([]types.CollectedEvent, error)
	EventsByKindAtAnchorBlocks(ctx context.Context, kind, anchorKind types.EventKind) ([]types.CollectedEvent, error)
	KeysByKind(ctx context.Context, kind types.EventKind) ([]types.EventKey, error)
}

// Dashboard is one fully aligned, fully allocated figure, ready to render.
type Dashboard struct {
	Timeline    Timeline
	Projections []Projection
	Assignments []Assignment
	Title       string
	Subtitle    string
}

// BuildDashboard runs the batch pipeline: fetch each catalog metric,
// aggregate or extract its series, drop empty ones, align the remainder on a
// dense timeline and allocate axes. Returns a NO_DATA error when every
// requested series came back empty.
func BuildDashboard(ctx context.Context, src EventSource, metrics []Metric, logger *slog.Logger) (*Dashboard, error) {
	var (
		series  []*Series
		classes = make(map[string]Class)
	)

	// Anchor keys are shared by every windowed metric; fetched at most once.
	var anchorKeys []types.EventKey
	anchorKeysLoaded := false

	for _, m := range metrics {
		var s *Series
		switch {
		case m.Windowed:
			if !anchorKeysLoaded {
				keys, err := src.KeysByKind(ctx, AnchorKind)
				if err != nil {
					return nil, err
				}
				anchorKeys = keys
				anchorKeysLoaded = true
			}
			countable, err := src.KeysByKind(ctx, m.Kind)
			if err != nil {
				return nil, err
			}
			s = CountBetweenAnchors(m.Label, anchorKeys, countable)
		case m.AnchorGated:
			events, err := src.EventsByKindAtAnchorBlocks(ctx, m.Kind, AnchorKind)
			if err != nil {
				return nil, err
			}
			s = ExtractSeries(m.Label, events, m.Value, m.Filter, logger)
		default:
			events, err := src.EventsByKind(ctx, m.Kind)
			if err != nil {
				return nil, err
			}
			s = ExtractSeries(m.Label, events, m.Value, m.Filter, logger)
		}

		if s.Len() == 0 {
			logger.Debug("dropping empty series", slog.String("series", m.Label))
			continue
		}
		series = append(series, s)
		classes[m.Label] = m.Class
	}

	tl, err := BuildTimeline(series)
	if err != nil {
		return nil, err
	}

	projections := make([]Projection, 0, len(series))
	for _, s := range series {
		projections = append(projections, tl.Project(s))
	}

	assignments, err := Allocate(projections, classes)
	if err != nil {
		return nil, err
	}

	logger.Info("dashboard assembled",
		slog.Int("series", len(projections)),
		slog.Int64("min_block", tl.MinBlock),
		slog.Int64("max_block", tl.MaxBlock))

	return &Dashboard{
		Timeline:    tl,
		Projections: projections,
		Assignments: assignments,
	}, nil
}

// Render draws the dashboard with its own title and labels.
func (d *Dashboard) Render(w io.Writer, opts RenderOptions) error {
	if opts.Title == "" {
		opts.Title = d.Title
	}
	if opts.Subtitle == "" {
		opts.Subtitle = d.Subtitle
	}
	return Render(w, d.Timeline, d.Projections, d.Assignments, opts)
}

package insights

import (
	"context"
	"errors"

	"tableflip.dev/memoir/pkg/ai"
	"tableflip.dev/memoir/pkg/feature"
	fxinsights "tableflip.dev/memoir/pkg/feature/insights"
	"tableflip.dev/memoir/pkg/printers"
	"tableflip.dev/memoir/pkg/store"
)

// Insights prints the aggregate report for a window, optionally with
// the AI narrative.
type Insights struct {
	Window  string
	Analyze bool

	Persistence store.Persistence
	Generator   ai.Generator
}

func (i *Insights) Do(ctx context.Context) error {
	deps := fxinsights.Deps{Store: i.Persistence, AI: i.Generator}

	s := fxinsights.New()
	if i.Window != "" {
		s.WindowName = i.Window
	}
	s = feature.Drive(ctx, deps.Reduce, s, fxinsights.Load{})
	if s.Err != "" {
		return errors.New(s.Err)
	}

	pp := printers.PrettyPrint{}
	pp.Title("Insights (" + s.WindowName + ")")
	pp.Report(*s.Report)

	if i.Analyze {
		s = feature.Drive(ctx, deps.Reduce, s, fxinsights.Analyze{})
		if s.Err != "" {
			return errors.New(s.Err)
		}
		if s.Analysis != nil {
			pp.Analysis(*s.Analysis)
		}
	}
	return nil
}

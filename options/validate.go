package options

import (
	"fmt"

	"github.com/ctu-tools/panda/estimate"
)

// Validate checks the fatal-configuration invariants from §6/§7: a
// positive worker count, and a known strategy/metric. The -M/-P
// conflict (§6 exit codes: "conflicting -M and -P") is checked at flag
// parsing time in ParseArgs, since by the time Options exists the two
// flags have already been folded into EnabledActions["extdef-map"] plus
// ASTCTU.
func (o *Options) Validate() error {
	if o.Jobs < 1 {
		return fmt.Errorf("jobs must be >= 1, got %d", o.Jobs)
	}
	switch o.Strategy {
	case FIFO, LJF, SJF:
	default:
		return fmt.Errorf("unknown scheduler strategy %q (want fifo, ljf, or sjf)", o.Strategy)
	}
	switch o.Metric {
	case estimate.MetricLOC, estimate.MetricSemicolon, estimate.MetricComma:
	default:
		return fmt.Errorf("unknown job-size metric %q (want loc, semicolon, or comma)", o.Metric)
	}
	return nil
}

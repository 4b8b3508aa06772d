package astrodyn

import "time"

// SimulationObject is the lifecycle shared by every simulation entity: it is
// constructed with an initial epoch and explicitly advanced with UpdateState,
// which overwrites all cached derived state. No history is retained and there
// is no rollback. Entities are single-owner and not safe for concurrent use;
// simulate independent objects by giving each its own instance.
type SimulationObject interface {
	Name() string
	UpdateState(epoch time.Time) error
}

package messages

import (
	"time"

	"github.com/LeonardoBeccarini/evap_project/internal/model/entities"
)

// DerivedQuantitiesEvent is published by the engine after every completed
// recomputation pass. Ticket identifies the pass (dedup on the consumer side
// relies on the payload hash, the ticket is for tracing).
type DerivedQuantitiesEvent struct {
	Ticket    string                     `json:"ticket"`
	Source    string                     `json:"source"`
	Method    string                     `json:"method"`
	State     entities.EnvState          `json:"state"`
	Derived   entities.DerivedQuantities `json:"derived"`
	Timestamp time.Time                  `json:"timestamp"`
}

package engine

// Result reports whether an action was applied. Rejected actions change
// nothing; Reason says why, so callers and tests can distinguish "nothing
// happened" from "your input was invalid".
type Result struct {
	OK     bool   `json:"ok"`
	Reason string `json:"reason,omitempty"`
}

func accepted() Result {
	return Result{OK: true}
}

func rejected(reason string) Result {
	return Result{OK: false, Reason: reason}
}

// Rejection reasons shared across actions.
const (
	ReasonGameOver      = "game over"
	ReasonWrongPhase    = "wrong phase"
	ReasonNotYourTurn   = "not the acting faction"
	ReasonUnknownUnit   = "unknown unit"
	ReasonUnknownHex    = "hex out of bounds"
	ReasonUnaffordable  = "insufficient resources"
	ReasonAlreadyActed  = "unit has already acted"
	ReasonIllegalTarget = "illegal target"
	ReasonNoSelection   = "no computed selection for unit"
	ReasonQueueFull     = "training queue full"
	ReasonNoPending     = "no pending combat"
)

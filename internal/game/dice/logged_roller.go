package dice

import "go.uber.org/zap"

// Roller wraps a Source and logger so every draw is visible at debug level.
// Roller itself satisfies Source and can be handed to any engine component.
type Roller struct {
	src    Source
	logger *zap.Logger
}

// NewLoggedRoller creates a Roller that draws from src and logs each draw to logger.
//
// Precondition: src must be non-nil. A nil logger is replaced with a no-op logger.
func NewLoggedRoller(src Source, logger *zap.Logger) *Roller {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Roller{src: src, logger: logger}
}

// Intn draws from the wrapped Source and logs the bound and the result.
//
// Precondition: n > 0.
// Postcondition: Returns a value in [0, n).
func (r *Roller) Intn(n int) int {
	v := r.src.Intn(n)
	r.logger.Debug("dice roll",
		zap.Int("bound", n),
		zap.Int("result", v),
	)
	return v
}

// Chance performs a labelled percentage roll and logs whether it succeeded.
//
// Postcondition: Returns true iff Intn(100) < chance.
func (r *Roller) Chance(label string, chance int) bool {
	roll := r.src.Intn(100)
	ok := roll < chance
	r.logger.Debug("dice chance",
		zap.String("label", label),
		zap.Int("chance", chance),
		zap.Int("roll", roll),
		zap.Bool("success", ok),
	)
	return ok
}

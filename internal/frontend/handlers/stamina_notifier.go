package handlers

import (
	"fmt"

	"github.com/cory-johannsen/delve/internal/game/character"
)

// LowStamina is the level at or below which spending stamina warns the player.
const LowStamina = 10

// staminaNotifier tells the player about notable stamina changes.
type staminaNotifier struct {
	term Terminal
	r    Renderer
	// showRecovery enables a line for every recovery tick.
	showRecovery bool
}

var _ character.StaminaObserver = (*staminaNotifier)(nil)

func (n *staminaNotifier) StaminaChanged(c *character.Character, old, new int) {
	switch {
	case new < old && new == 0:
		_ = n.term.WriteLine(n.r.Error(fmt.Sprintf("%s is completely exhausted and needs rest!", c.Name())))
	case new < old && new <= LowStamina:
		_ = n.term.WriteLine(n.r.Warn(fmt.Sprintf("%s is getting tired! (Stamina: %d)", c.Name(), new)))
	case new-old >= 10:
		_ = n.term.WriteLine(n.r.Good(fmt.Sprintf("%s feels refreshed! (+%d stamina)", c.Name(), new-old)))
	}
}

func (n *staminaNotifier) StaminaRecovered(c *character.Character, amount int) {
	if !n.showRecovery || amount <= 0 {
		return
	}
	_ = n.term.WriteLine(n.r.Good(fmt.Sprintf("%s naturally recovers %d stamina.", c.Name(), amount)))
}

package character

// StaminaObserver receives stamina notifications. Callbacks run on the
// goroutine that changed the stamina, after the character's lock is released,
// so observers may call back into the character.
type StaminaObserver interface {
	// StaminaChanged fires on every stamina change.
	StaminaChanged(c *Character, old, new int)
	// StaminaRecovered fires after a recovery tick restored amount stamina.
	StaminaRecovered(c *Character, amount int)
}

// AddObserver registers o. Registering the same observer twice is a no-op.
func (c *Character) AddObserver(o StaminaObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, existing := range c.observers {
		if existing == o {
			return
		}
	}
	c.observers = append(c.observers, o)
}

// RemoveObserver unregisters o.
func (c *Character) RemoveObserver(o StaminaObserver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, existing := range c.observers {
		if existing == o {
			c.observers = append(c.observers[:i:i], c.observers[i+1:]...)
			return
		}
	}
}

// observerList copies the observer slice.
//
// Precondition: c.mu is held.
func (c *Character) observerList() []StaminaObserver {
	if len(c.observers) == 0 {
		return nil
	}
	out := make([]StaminaObserver, len(c.observers))
	copy(out, c.observers)
	return out
}

func notifyChanged(obs []StaminaObserver, c *Character, before, after int) {
	for _, o := range obs {
		o.StaminaChanged(c, before, after)
	}
}

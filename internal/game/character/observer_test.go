package character_test

import (
	"testing"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/stretchr/testify/assert"
)

type recordingObserver struct {
	changes    [][2]int
	recoveries []int
}

func (r *recordingObserver) StaminaChanged(_ *character.Character, old, new int) {
	r.changes = append(r.changes, [2]int{old, new})
}

func (r *recordingObserver) StaminaRecovered(_ *character.Character, amount int) {
	r.recoveries = append(r.recoveries, amount)
}

func TestObserver_ReceivesChanges(t *testing.T) {
	c := mustNew(t, character.ClassWarrior)
	obs := &recordingObserver{}
	c.AddObserver(obs)
	c.AddObserver(obs)

	c.SpendStamina(10)
	c.RestoreStamina(4)
	assert.Equal(t, [][2]int{{100, 90}, {90, 94}}, obs.changes)
	assert.Empty(t, obs.recoveries)
}

func TestObserver_Recover(t *testing.T) {
	c := mustNew(t, character.ClassMage)
	obs := &recordingObserver{}
	c.AddObserver(obs)

	assert.Equal(t, 0, c.Recover(), "full stamina does not recover")
	c.SpendStamina(10)
	assert.Equal(t, 3, c.Recover())
	assert.Equal(t, []int{3}, obs.recoveries)
	assert.Equal(t, [2]int{110, 113}, obs.changes[len(obs.changes)-1])
}

func TestObserver_DeadCharactersDoNotRecover(t *testing.T) {
	c := mustNew(t, character.ClassWarrior)
	c.SpendStamina(50)
	c.ApplyDamage(1000)
	assert.Equal(t, 0, c.Recover())
	assert.Equal(t, 50, c.Stamina())
}

func TestObserver_Remove(t *testing.T) {
	c := mustNew(t, character.ClassWarrior)
	obs := &recordingObserver{}
	c.AddObserver(obs)
	c.RemoveObserver(obs)
	c.SpendStamina(10)
	assert.Empty(t, obs.changes)
}

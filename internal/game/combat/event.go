package combat

import "github.com/cory-johannsen/delve/internal/game/inventory"

// EventKind identifies what an Event describes.
type EventKind int

const (
	// EventPlayerAttack: the player hit Target for Amount.
	EventPlayerAttack EventKind = iota
	// EventTooTired: the player lacked stamina; nothing was spent or dealt.
	EventTooTired
	// EventRegenerated: Target healed Amount through its one-time regeneration.
	EventRegenerated
	// EventMonsterDefeated: Target reached 0 health and was removed.
	EventMonsterDefeated
	// EventLoot: a defeated monster yielded Amount gold and Items.
	EventLoot
	// EventMonsterAttack: Actor struck the player for Amount (0 on a miss).
	EventMonsterAttack
	// EventFleeSucceeded: the player escaped; the encounter ends.
	EventFleeSucceeded
	// EventFleeFailed: the escape roll failed; the round continues.
	EventFleeFailed
	// EventPlayerDefeated: the player's health reached 0.
	EventPlayerDefeated
	// EventVictory: the roster is empty.
	EventVictory
	// EventRoomEmpty: the generator produced no monsters for a room.
	EventRoomEmpty
	// EventFlavor carries narrative Text with no game effect.
	EventFlavor
	// EventRoomEntered: exploration reached room Amount of MaxHealth; Text names the dungeon.
	EventRoomEntered
	// EventRested: the player rested between rooms and regained Amount stamina.
	EventRested
	// EventItemDiscarded: a looted item did not fit in the inventory.
	EventItemDiscarded
)

// String returns a stable snake_case label, used as a log field.
func (k EventKind) String() string {
	switch k {
	case EventPlayerAttack:
		return "player_attack"
	case EventTooTired:
		return "too_tired"
	case EventRegenerated:
		return "regenerated"
	case EventMonsterDefeated:
		return "monster_defeated"
	case EventLoot:
		return "loot"
	case EventMonsterAttack:
		return "monster_attack"
	case EventFleeSucceeded:
		return "flee_succeeded"
	case EventFleeFailed:
		return "flee_failed"
	case EventPlayerDefeated:
		return "player_defeated"
	case EventVictory:
		return "victory"
	case EventRoomEmpty:
		return "room_empty"
	case EventFlavor:
		return "flavor"
	case EventRoomEntered:
		return "room_entered"
	case EventRested:
		return "rested"
	case EventItemDiscarded:
		return "item_discarded"
	default:
		return "unknown"
	}
}

// Event is one observable step of an encounter.
type Event struct {
	Kind   EventKind
	Round  int
	Actor  string
	Target string
	// TargetID is the monster instance ID for monster-targeted events.
	TargetID string
	Amount   int
	Strike   StrikeKind
	// Health and MaxHealth describe the affected party after the event.
	Health    int
	MaxHealth int
	Items     []inventory.Item
	Text      string
}

// Sink observes events. Sinks cannot influence the encounter.
type Sink interface {
	Event(Event)
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Event)

// Event calls f(e).
func (f SinkFunc) Event(e Event) { f(e) }

// MultiSink fans each event out to every non-nil sink in order.
type MultiSink []Sink

// Event forwards e to each sink.
func (m MultiSink) Event(e Event) {
	for _, s := range m {
		if s != nil {
			s.Event(e)
		}
	}
}

type nopSink struct{}

func (nopSink) Event(Event) {}

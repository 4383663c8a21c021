// Package narration writes the epilogue shown after a dungeon run. Narration
// is presentation only: it reads a finished run and never changes it.
package narration

import (
	"context"
	"fmt"
	"strings"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
)

// Narrator turns a finished run into a short epilogue.
type Narrator interface {
	Epilogue(ctx context.Context, c *character.Character, d dungeon.Dungeon, res dungeon.Result) (string, error)
}

// Static is the built-in narrator: one fixed sentence per outcome.
type Static struct{}

// Epilogue implements Narrator.
func (Static) Epilogue(_ context.Context, c *character.Character, d dungeon.Dungeon, res dungeon.Result) (string, error) {
	switch res.Outcome {
	case dungeon.OutcomeCompleted:
		return fmt.Sprintf("%s emerges from %s victorious, %d gold richer after %d rooms.",
			c.Name(), d.Name, res.Gold, res.RoomsCleared), nil
	case dungeon.OutcomeFailed:
		return fmt.Sprintf("%s fell in %s after clearing %d of %d rooms. The gold already won is all that remains.",
			c.Name(), d.Name, res.RoomsCleared, d.RoomCount), nil
	case dungeon.OutcomeFled:
		return fmt.Sprintf("%s flees %s, leaving %d rooms unexplored.",
			c.Name(), d.Name, d.RoomCount-res.RoomsCleared), nil
	default:
		return fmt.Sprintf("%s turns away from %s.", c.Name(), d.Name), nil
	}
}

// prompt describes res for a language model.
func prompt(c *character.Character, d dungeon.Dungeon, res dungeon.Result) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Write a two-sentence epilogue for a dungeon crawl in a text role-playing game.\n")
	fmt.Fprintf(&b, "Hero: %s the %s, level %d.\n", c.Name(), c.Class().DisplayName(), c.Level())
	fmt.Fprintf(&b, "Dungeon: %s. %s\n", d.Name, d.Description)
	fmt.Fprintf(&b, "Outcome: %s after clearing %d of %d rooms.\n", res.Outcome, res.RoomsCleared, d.RoomCount)
	fmt.Fprintf(&b, "Gold earned: %d.", res.Gold)
	if len(res.Items) > 0 {
		names := make([]string, len(res.Items))
		for i, it := range res.Items {
			names[i] = it.Name
		}
		fmt.Fprintf(&b, " Loot: %s.", strings.Join(names, ", "))
	}
	b.WriteString("\nReply with the epilogue only.")
	return b.String()
}

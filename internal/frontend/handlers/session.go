package handlers

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/command"
	"github.com/cory-johannsen/delve/internal/game/dice"
	"github.com/cory-johannsen/delve/internal/game/dungeon"
	"github.com/cory-johannsen/delve/internal/game/presence"
)

const banner = `
  ____       _
 |  _ \  ___| |_   _____
 | | | |/ _ \ \ \ / / _ \
 | |_| |  __/ |\ V /  __/
 |____/ \___|_| \_/ \___|
`

// errQuit unwinds the menus when the player quits.
var errQuit = errors.New("player quit")

var (
	mainCommands      = command.MainMenu()
	characterCommands = command.CharacterMenu()
	inventoryCommands = command.InventoryMenu()
	combatCommands    = command.CombatMenu()
)

// session is one player's menu loop. It owns the current character.
type session struct {
	id       string
	term     Terminal
	r        Renderer
	deps     Deps
	explorer *dungeon.Explorer
	src      dice.Source
	prompter *terminalPrompter
	notifier *staminaNotifier
	log      *zap.Logger

	char *character.Character
}

func (s *session) run(ctx context.Context) error {
	_ = s.term.WriteLine(s.r.Title(banner))
	_ = s.term.WriteLine("Fight your way through the dungeons. Type help at any menu.")
	for {
		err := s.mainMenu(ctx)
		if err == nil {
			err = s.characterMenu(ctx)
		}
		switch {
		case errors.Is(err, errQuit):
			_ = s.term.WriteLine("Farewell, adventurer.")
			s.log.Info("player quit")
			return nil
		case err != nil:
			if ctx.Err() != nil {
				_ = s.term.WriteLine(s.r.Warn("The dungeon gates are closing. Goodbye!"))
			}
			return err
		}
	}
}

// mainMenu runs until a character is attached.
func (s *session) mainMenu(ctx context.Context) error {
	for s.char == nil {
		_ = s.term.WriteLine("\n" + s.r.Title("Main menu") + "\n" + mainCommands.Listing())
		line, err := ask(ctx, s.term, s.r.Prompt("> "))
		if err != nil {
			return err
		}
		cmd, args, ok := s.resolve(mainCommands, line)
		if !ok {
			continue
		}
		switch cmd.Handler {
		case command.HandlerNew:
			err = s.createCharacter(ctx, args.RawArgs)
		case command.HandlerLoad:
			err = s.loadCharacter(ctx, args.RawArgs)
		case command.HandlerList:
			err = s.listCharacters(ctx)
		case command.HandlerDelete:
			err = s.deleteCharacter(ctx, args.RawArgs)
		case command.HandlerWho:
			s.who()
		case command.HandlerQuit:
			return errQuit
		case command.HandlerHelp:
			_ = s.term.WriteLine("Choose a number or type the command name.")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// characterMenu runs until the player leaves the character or quits.
func (s *session) characterMenu(ctx context.Context) error {
	for s.char != nil {
		_ = s.term.WriteLine("\n" + s.r.Title(s.char.Name()+"'s menu") + "\n" + characterCommands.Listing())
		line, err := ask(ctx, s.term, s.r.Prompt(fmt.Sprintf("[%s HP %d/%d ST %d/%d] > ",
			s.char.Name(), s.char.Health(), s.char.MaxHealth(), s.char.Stamina(), s.char.MaxStamina())))
		if err != nil {
			return err
		}
		cmd, args, ok := s.resolve(characterCommands, line)
		if !ok {
			continue
		}
		switch cmd.Handler {
		case command.HandlerExplore:
			err = s.explore(ctx, args.RawArgs)
		case command.HandlerStatus:
			_ = s.term.WriteLine(s.r.Status(s.char))
		case command.HandlerInventory:
			err = s.inventoryMenu(ctx)
		case command.HandlerTrain:
			s.train()
		case command.HandlerRest:
			s.char.Rest()
			_ = s.term.WriteLine(s.r.Good("You rest and recover fully."))
		case command.HandlerSave:
			err = s.saveCharacter(ctx)
		case command.HandlerWho:
			s.who()
		case command.HandlerBack:
			s.detach()
		case command.HandlerQuit:
			return errQuit
		case command.HandlerHelp:
			_ = s.term.WriteLine("Choose a number or type the command name. explore accepts a dungeon number or name.")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// resolve matches line against menu. It reports false for a blank line and
// warns about unknown commands.
func (s *session) resolve(menu *command.Registry, line string) (*command.Command, command.ParseResult, bool) {
	cmd, p, ok := menu.Match(line)
	if !ok && p.Command != "" {
		_ = s.term.WriteLine(s.r.Warn(fmt.Sprintf("Unknown command %q. Type help.", p.Command)))
	}
	return cmd, p, ok
}

func (s *session) train() {
	before := s.char.String()
	if err := s.char.Train(); err != nil {
		if errors.Is(err, character.ErrTooTired) {
			_ = s.term.WriteLine(s.r.Warn(fmt.Sprintf("You are too tired to train. Training costs %d stamina.", character.TrainCost)))
			return
		}
		_ = s.term.WriteLine(s.r.Error(err.Error()))
		return
	}
	_ = s.term.WriteLine(s.r.Good("You train hard."))
	_ = s.term.WriteLine("  before: " + before)
	_ = s.term.WriteLine("  after:  " + s.char.String())
}

// explore runs the selected dungeon and handles the aftermath.
func (s *session) explore(ctx context.Context, selection string) error {
	if !s.char.Alive() {
		_ = s.term.WriteLine(s.r.Warn("You are too wounded to explore. Rest first."))
		return nil
	}
	all := s.deps.Catalog.All()
	if selection == "" {
		_ = s.term.WriteLine(s.r.Dungeons(all))
		line, err := ask(ctx, s.term, s.r.Prompt(fmt.Sprintf("Choose a dungeon [1-%d, blank to cancel]: ", len(all))))
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		selection = line
	}
	d, ok := s.deps.Catalog.Lookup(selection)
	if !ok {
		_ = s.term.WriteLine(s.r.Warn(fmt.Sprintf("No dungeon matches %q.", selection)))
		return nil
	}

	if s.deps.Recovery != nil {
		s.deps.Recovery.Unregister(s.id)
	}
	s.moveTo(d.Name)
	res, err := s.explorer.Explore(ctx, s.char, d, s.prompter)
	s.moveTo(presence.Town)
	if s.deps.Recovery != nil && s.char != nil {
		s.deps.Recovery.Register(s.id, s.char)
	}
	if err != nil {
		s.log.Info("exploration interrupted", zap.String("run_id", res.RunID), zap.Error(err))
		return err
	}
	if res.Outcome == dungeon.OutcomeAborted {
		_ = s.term.WriteLine("You turn back from the entrance.")
		return nil
	}

	_ = s.term.WriteLine("\n" + s.r.Result(d, res))
	if text, err := s.deps.Narrator.Epilogue(ctx, s.char, d, res); err == nil && text != "" {
		_ = s.term.WriteLine("\n" + text)
	}
	if res.Outcome == dungeon.OutcomeFailed {
		s.respawn()
	}
	return nil
}

// attach makes c the current character. It reports false, leaving the
// session without a character, when another session already plays c.
func (s *session) attach(c *character.Character) bool {
	s.detach()
	if s.deps.Presence != nil {
		if err := s.deps.Presence.Join(s.id, c.Name(), c.Class().DisplayName(), c.Level()); err != nil {
			_ = s.term.WriteLine(s.r.Warn(fmt.Sprintf("%s is already adventuring in another session.", c.Name())))
			s.log.Info("character already in play", zap.String("character", c.Name()), zap.Error(err))
			return false
		}
	}
	s.char = c
	c.AddObserver(s.notifier)
	if s.deps.Recovery != nil {
		s.deps.Recovery.Register(s.id, c)
	}
	s.log.Info("character attached", zap.String("character", c.Name()), zap.Int64("character_id", c.ID()))
	return true
}

func (s *session) detach() {
	if s.char == nil {
		return
	}
	s.char.RemoveObserver(s.notifier)
	if s.deps.Recovery != nil {
		s.deps.Recovery.Unregister(s.id)
	}
	if s.deps.Presence != nil {
		s.deps.Presence.Leave(s.id)
	}
	s.char = nil
}

func (s *session) moveTo(location string) {
	if s.deps.Presence == nil || s.char == nil {
		return
	}
	if _, err := s.deps.Presence.Move(s.id, location, s.char.Level()); err != nil {
		s.log.Warn("updating presence", zap.Error(err))
	}
}

func (s *session) who() {
	if s.deps.Presence == nil {
		_ = s.term.WriteLine("You adventure alone.")
		return
	}
	_ = s.term.WriteLine(s.r.Who(s.deps.Presence.Players()))
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/storage"
)

// RandomNames are offered when the player asks for a random name.
var RandomNames = []string{
	"Aldric", "Brenna", "Corwin", "Darra", "Eldon",
	"Fiora", "Garrick", "Hilde", "Ivor", "Jessa",
	"Kellan", "Lyra", "Merrick", "Nessa", "Orin",
}

// ValidateName checks a character name: 2-32 characters after trimming and
// not a reserved menu word.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if n := len(name); n < 2 || n > 32 {
		return errors.New("name must be 2-32 characters")
	}
	switch strings.ToLower(name) {
	case "cancel", "random", "quit":
		return fmt.Errorf("%q is reserved", name)
	}
	return nil
}

// createCharacter asks for a name and a class. Typing cancel at either
// prompt returns to the menu.
func (s *session) createCharacter(ctx context.Context, name string) error {
	_ = s.term.WriteLine("\n" + s.r.Title("Character creation") + "\nType cancel at any prompt to go back.")
	for {
		if name == "" {
			line, err := ask(ctx, s.term, s.r.Prompt("Name (or random): "))
			if err != nil {
				return err
			}
			name = line
		}
		switch strings.ToLower(name) {
		case "cancel":
			return nil
		case "random":
			name = RandomNames[s.src.Intn(len(RandomNames))]
			_ = s.term.WriteLine(fmt.Sprintf("The fates name you %s.", name))
		}
		if err := ValidateName(name); err != nil {
			_ = s.term.WriteLine(s.r.Warn(err.Error()))
			name = ""
			continue
		}
		break
	}

	class, ok, err := s.chooseClass(ctx)
	if err != nil || !ok {
		return err
	}
	c, err := character.New(name, class)
	if err != nil {
		_ = s.term.WriteLine(s.r.Error(err.Error()))
		return nil
	}
	if s.attach(c) {
		_ = s.term.WriteLine(s.r.Good("Welcome, " + c.String()))
	}
	return nil
}

func (s *session) chooseClass(ctx context.Context) (character.Class, bool, error) {
	classes := []character.Class{character.ClassWarrior, character.ClassMage}
	_ = s.term.WriteLine("Choose your class:")
	for i, c := range classes {
		p, _ := character.ProfileFor(c)
		line := fmt.Sprintf("  %d. %s - %d HP, %d stamina, %d damage", i+1, c.DisplayName(), p.MaxHealth, p.MaxStamina, p.BaseDamage)
		if p.MaxMana > 0 {
			line += fmt.Sprintf(", %d mana", p.MaxMana)
		}
		_ = s.term.WriteLine(line)
	}
	for {
		line, err := ask(ctx, s.term, s.r.Prompt("Class [1-2]: "))
		if err != nil {
			return "", false, err
		}
		if strings.EqualFold(line, "cancel") {
			return "", false, nil
		}
		if n, err := strconv.Atoi(line); err == nil && n >= 1 && n <= len(classes) {
			return classes[n-1], true, nil
		}
		if c, err := character.ParseClass(line); err == nil {
			return c, true, nil
		}
		_ = s.term.WriteLine(s.r.Warn("Choose 1 (Warrior) or 2 (Mage)."))
	}
}

// loadCharacter loads by ID or name, listing the saved characters first
// when no selection was given.
func (s *session) loadCharacter(ctx context.Context, selection string) error {
	if selection == "" {
		if err := s.listCharacters(ctx); err != nil {
			return err
		}
		line, err := ask(ctx, s.term, s.r.Prompt("Load which character (id or name, blank to cancel)? "))
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		selection = line
	}
	snap, err := s.findSaved(ctx, selection)
	if err != nil {
		return s.storeError("loading", err)
	}
	c, err := character.Restore(snap)
	if err != nil {
		s.log.Error("restoring saved character", zap.Int64("character_id", snap.ID), zap.Error(err))
		_ = s.term.WriteLine(s.r.Error("That save is damaged and cannot be loaded."))
		return nil
	}
	if s.attach(c) {
		_ = s.term.WriteLine(s.r.Good("Loaded " + c.String()))
	}
	return nil
}

func (s *session) listCharacters(ctx context.Context) error {
	list, err := s.deps.Store.List(ctx)
	if err != nil {
		return s.storeError("listing", err)
	}
	_ = s.term.WriteLine(s.r.Summaries(list))
	return nil
}

func (s *session) deleteCharacter(ctx context.Context, selection string) error {
	if selection == "" {
		line, err := ask(ctx, s.term, s.r.Prompt("Delete which character (id or name)? "))
		if err != nil {
			return err
		}
		if line == "" {
			return nil
		}
		selection = line
	}
	snap, err := s.findSaved(ctx, selection)
	if err != nil {
		return s.storeError("deleting", err)
	}
	ok, err := confirm(ctx, s.term, s.r, fmt.Sprintf("Delete %s forever?", snap.Name))
	if err != nil || !ok {
		return err
	}
	if err := s.deps.Store.Delete(ctx, snap.ID); err != nil {
		return s.storeError("deleting", err)
	}
	s.log.Info("character deleted", zap.Int64("character_id", snap.ID))
	_ = s.term.WriteLine(fmt.Sprintf("%s is gone.", snap.Name))
	return nil
}

func (s *session) saveCharacter(ctx context.Context) error {
	saved, err := s.deps.Store.Save(ctx, s.char.Snapshot())
	if err != nil {
		return s.storeError("saving", err)
	}
	s.char.SetID(saved.ID)
	s.log.Info("character saved", zap.Int64("character_id", saved.ID))
	_ = s.term.WriteLine(s.r.Good(fmt.Sprintf("%s saved (#%d).", saved.Name, saved.ID)))
	return nil
}

// respawn replaces a defeated character with a fresh one of the same class
// and name. It keeps the persistence ID, so the next save overwrites the
// fallen hero.
func (s *session) respawn() {
	old := s.char
	fresh, err := character.New(old.Name(), old.Class())
	if err != nil {
		s.log.Error("respawning character", zap.Error(err))
		s.detach()
		return
	}
	fresh.SetID(old.ID())
	_ = s.term.WriteLine("\n" + s.r.Error("GAME OVER") + "\n" + fmt.Sprintf("%s has fallen. Your adventure ends here...", old.Name()))
	_ = s.term.WriteLine(fmt.Sprintf("A new %s named %s takes up the quest.", fresh.Class().DisplayName(), fresh.Name()))
	s.log.Info("character respawned", zap.String("character", fresh.Name()), zap.String("class", string(fresh.Class())))
	s.attach(fresh)
}

func (s *session) findSaved(ctx context.Context, selection string) (character.Snapshot, error) {
	if id, err := strconv.ParseInt(strings.TrimPrefix(selection, "#"), 10, 64); err == nil {
		return s.deps.Store.Load(ctx, id)
	}
	return s.deps.Store.LoadByName(ctx, selection)
}

// storeError reports expected store failures to the player and returns
// nil; anything else is logged and shown without ending the session.
func (s *session) storeError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrCharacterNotFound):
		_ = s.term.WriteLine(s.r.Warn("No such character."))
	case errors.Is(err, storage.ErrCharacterNameTaken):
		_ = s.term.WriteLine(s.r.Warn("Another saved character already has that name."))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return err
	default:
		s.log.Error("character store failure", zap.String("op", op), zap.Error(err))
		_ = s.term.WriteLine(s.r.Error(fmt.Sprintf("Something went wrong while %s. Try again later.", op)))
	}
	return nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/delve/internal/game/character"
	"github.com/cory-johannsen/delve/internal/game/inventory"
	"github.com/cory-johannsen/delve/internal/storage"
)

// CharacterRepository persists character snapshots in the characters table.
// The inventory is stored as a JSONB array of inventory entries.
type CharacterRepository struct {
	db *pgxpool.Pool
}

// NewCharacterRepository creates a CharacterRepository backed by the given pool.
//
// Precondition: db must be a valid, open connection pool.
func NewCharacterRepository(db *pgxpool.Pool) *CharacterRepository {
	return &CharacterRepository{db: db}
}

const selectColumns = `
	id, name, class, level, experience, health, max_health, stamina, max_stamina,
	mana, max_mana, base_damage, gold, inventory, created_at, updated_at`

// Save inserts s when s.ID is 0 and updates the existing row otherwise.
//
// Precondition: s must pass character.Snapshot.Validate.
// Postcondition: Returns the stored snapshot with ID and timestamps set,
// storage.ErrCharacterNameTaken on a duplicate name, or
// storage.ErrCharacterNotFound when no row has s.ID.
func (r *CharacterRepository) Save(ctx context.Context, s character.Snapshot) (character.Snapshot, error) {
	if err := s.Validate(); err != nil {
		return character.Snapshot{}, fmt.Errorf("saving character: %w", err)
	}
	inv := s.Inventory
	if inv == nil {
		inv = []inventory.Entry{}
	}

	var row pgx.Row
	if s.ID == 0 {
		row = r.db.QueryRow(ctx, `
			INSERT INTO characters
				(name, class, level, experience, health, max_health, stamina, max_stamina,
				 mana, max_mana, base_damage, gold, inventory)
			VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
			RETURNING`+selectColumns,
			s.Name, string(s.Class), s.Level, s.Experience, s.Health, s.MaxHealth,
			s.Stamina, s.MaxStamina, s.Mana, s.MaxMana, s.BaseDamage, s.Gold, inv,
		)
	} else {
		row = r.db.QueryRow(ctx, `
			UPDATE characters SET
				name = $2, class = $3, level = $4, experience = $5, health = $6,
				max_health = $7, stamina = $8, max_stamina = $9, mana = $10,
				max_mana = $11, base_damage = $12, gold = $13, inventory = $14,
				updated_at = NOW()
			WHERE id = $1
			RETURNING`+selectColumns,
			s.ID, s.Name, string(s.Class), s.Level, s.Experience, s.Health, s.MaxHealth,
			s.Stamina, s.MaxStamina, s.Mana, s.MaxMana, s.BaseDamage, s.Gold, inv,
		)
	}

	out, err := scanSnapshot(row)
	if err != nil {
		switch {
		case isDuplicateKeyError(err):
			return character.Snapshot{}, storage.ErrCharacterNameTaken
		case errors.Is(err, pgx.ErrNoRows):
			return character.Snapshot{}, storage.ErrCharacterNotFound
		}
		return character.Snapshot{}, fmt.Errorf("saving character %q: %w", s.Name, err)
	}
	return out, nil
}

// Load retrieves a character by its primary key.
//
// Postcondition: Returns the snapshot or storage.ErrCharacterNotFound.
func (r *CharacterRepository) Load(ctx context.Context, id int64) (character.Snapshot, error) {
	return r.loadOne(ctx, `SELECT`+selectColumns+` FROM characters WHERE id = $1`, id)
}

// LoadByName retrieves a character by name, ignoring case.
//
// Postcondition: Returns the snapshot or storage.ErrCharacterNotFound.
func (r *CharacterRepository) LoadByName(ctx context.Context, name string) (character.Snapshot, error) {
	return r.loadOne(ctx, `SELECT`+selectColumns+` FROM characters WHERE lower(name) = lower($1)`, name)
}

func (r *CharacterRepository) loadOne(ctx context.Context, query string, arg any) (character.Snapshot, error) {
	s, err := scanSnapshot(r.db.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return character.Snapshot{}, storage.ErrCharacterNotFound
		}
		return character.Snapshot{}, fmt.Errorf("querying character: %w", err)
	}
	return s, nil
}

// List returns every character ordered by ID.
//
// Postcondition: Returns a slice (may be empty) or a non-nil error.
func (r *CharacterRepository) List(ctx context.Context) ([]storage.Summary, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, class, level, gold, updated_at
		FROM characters ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("listing characters: %w", err)
	}
	defer rows.Close()

	out := make([]storage.Summary, 0)
	for rows.Next() {
		var (
			s     storage.Summary
			class string
		)
		if err := rows.Scan(&s.ID, &s.Name, &class, &s.Level, &s.Gold, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scanning character row: %w", err)
		}
		s.Class = character.Class(class)
		out = append(out, s)
	}
	return out, rows.Err()
}

// Delete removes a character.
//
// Postcondition: Returns nil on success, storage.ErrCharacterNotFound if no row matched.
func (r *CharacterRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM characters WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting character: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrCharacterNotFound
	}
	return nil
}

func scanSnapshot(row pgx.Row) (character.Snapshot, error) {
	var (
		s     character.Snapshot
		class string
	)
	err := row.Scan(
		&s.ID, &s.Name, &class, &s.Level, &s.Experience, &s.Health, &s.MaxHealth,
		&s.Stamina, &s.MaxStamina, &s.Mana, &s.MaxMana, &s.BaseDamage, &s.Gold,
		&s.Inventory, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return character.Snapshot{}, err
	}
	s.Class = character.Class(class)
	return s, nil
}

// isDuplicateKeyError checks if a pgx error is a unique constraint violation.
func isDuplicateKeyError(err error) bool {
	var pgErr interface{ SQLState() string }
	if errors.As(err, &pgErr) {
		return pgErr.SQLState() == "23505"
	}
	return false
}

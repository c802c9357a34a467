// Slot loading for Attach and Refresh.
package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/eliasbuenosdias/voice-changer/internal/slots"
	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

// execer is satisfied by *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...any) (sql.Result, error)
}

// loadAllSlots reads every slot of repo and inserts one row per index.
// Loading is transactional: all rows are inserted or none.
func loadAllSlots(db *sql.DB, repo *slots.Repository) error {
	all, err := repo.LoadAllSlots()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning load transaction: %w", err)
	}
	defer tx.Rollback()

	for i, slot := range all {
		if err := upsertSlot(tx, i, slot); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing load transaction: %w", err)
	}
	return nil
}

// upsertSlot replaces the row for index with slot.
func upsertSlot(db execer, index int, slot types.Slot) error {
	descriptor, err := slots.EncodeSlot(slot)
	if err != nil {
		return fmt.Errorf("encoding slot %d: %w", index, err)
	}
	_, err = db.Exec(
		"INSERT OR REPLACE INTO slots (slot_index, voice_changer_type, name, descriptor) VALUES (?, ?, ?, ?)",
		index, string(slot.Type()), slot.Base().Name, string(descriptor),
	)
	if err != nil {
		return fmt.Errorf("storing slot %d: %w", index, err)
	}
	return nil
}

// Package sqlite implements the slot catalog on an in-memory SQLite
// database. Descriptor files remain the source of truth: Attach loads every
// slot through the slot repository and Refresh re-reads one.
package sqlite

import (
	"database/sql"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/eliasbuenosdias/voice-changer/internal/slots"
	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

var _ types.Catalog = (*Catalog)(nil)

// Catalog implements types.Catalog.
type Catalog struct {
	mu       sync.RWMutex
	attached bool
	config   types.Config
	db       *sql.DB
	repo     *slots.Repository
	logger   *zap.Logger
}

// NewCatalog creates a detached catalog. A nil logger disables logging.
func NewCatalog(logger *zap.Logger) *Catalog {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Catalog{logger: logger}
}

// Attach validates config, creates the in-memory database and loads every
// slot of the model directory. Returns ErrAlreadyAttached if already attached.
func (c *Catalog) Attach(config types.Config) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.attached {
		return types.ErrAlreadyAttached
	}

	repo, err := slots.NewRepositoryFromConfig(config, c.logger)
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return fmt.Errorf("opening catalog database: %w", err)
	}
	// Each connection to :memory: is a separate database.
	db.SetMaxOpenConns(1)

	for _, stmt := range schemaDDL {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return fmt.Errorf("applying schema: %w", err)
		}
	}

	if err := loadAllSlots(db, repo); err != nil {
		db.Close()
		return fmt.Errorf("loading slots: %w", err)
	}

	c.db = db
	c.repo = repo
	c.config = config
	c.attached = true

	c.logger.Debug("catalog attached",
		zap.String("model_dir", config.ModelDir),
		zap.Int("max_slots", config.MaxSlots))
	return nil
}

// Detach closes the database. Idempotent.
func (c *Catalog) Detach() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return nil
	}
	if c.db != nil {
		if err := c.db.Close(); err != nil {
			return err
		}
		c.db = nil
	}
	c.repo = nil
	c.attached = false
	return nil
}

// Fetch returns the slots matching filter in ascending slot order. Each
// record's ID is its slot index.
func (c *Catalog) Fetch(filter types.Filter) ([]types.Slot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.attached {
		return nil, types.ErrCatalogDetached
	}

	query, args := buildFetchQuery(filter)
	rows, err := c.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	result := []types.Slot{}
	for rows.Next() {
		var (
			index      int
			descriptor string
		)
		if err := rows.Scan(&index, &descriptor); err != nil {
			return nil, fmt.Errorf("scanning slot row: %w", err)
		}
		slot, err := slots.DecodeSlot([]byte(descriptor))
		if err != nil {
			return nil, fmt.Errorf("decoding slot %d: %w", index, err)
		}
		slot.Base().ID = index
		result = append(result, slot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating slot rows: %w", err)
	}
	return result, nil
}

// Refresh re-reads slot index from disk into the catalog.
func (c *Catalog) Refresh(index int) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.attached {
		return types.ErrCatalogDetached
	}
	if index < 0 || index >= c.config.MaxSlots {
		return fmt.Errorf("refresh slot %d: %w", index, types.ErrInvalidSlotIndex)
	}

	slot, err := c.repo.LoadSlot(index)
	if err != nil {
		return err
	}
	slot.Base().ID = index
	return upsertSlot(c.db, index, slot)
}

// buildFetchQuery translates filter into a SELECT over the slots table.
func buildFetchQuery(filter types.Filter) (string, []any) {
	var (
		where []string
		args  []any
	)
	if filter.Type != "" {
		where = append(where, "voice_changer_type = ?")
		args = append(args, string(filter.Type))
	}
	if filter.NameContains != "" {
		where = append(where, "instr(lower(name), lower(?)) > 0")
		args = append(args, filter.NameContains)
	}
	if filter.OccupiedOnly {
		where = append(where, "voice_changer_type != ''")
	}

	query := "SELECT slot_index, descriptor FROM slots"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY slot_index"
	return query, args
}

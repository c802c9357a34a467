// Package slots persists model slot descriptors. Each slot lives in
// <modelDir>/<index>/params.json; loading resolves the voiceChangerType
// discriminator into one of the shapes in package types.
//
// Reads are tolerant: a missing descriptor, an unknown discriminator and
// unknown or ill-typed keys all degrade to defaults. Only a descriptor that
// is not a JSON object fails a load. Writes are strict.
//
// The repository keeps no state between calls. Concurrent load and save of
// the same index must be serialized by the caller.
package slots

import (
	"fmt"
	"path/filepath"
	"strconv"

	"go.uber.org/zap"

	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

// Repository reads and writes the slot descriptors of one model directory.
type Repository struct {
	modelDir string
	maxSlots int
	logger   *zap.Logger
}

// Option configures a Repository.
type Option func(*Repository)

// WithLogger sets the logger. A nil logger disables logging.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Repository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithMaxSlots sets the number of slots LoadAllSlots returns. Counts below
// one are ignored.
func WithMaxSlots(n int) Option {
	return func(r *Repository) {
		if n > 0 {
			r.maxSlots = n
		}
	}
}

// NewRepository returns a repository over modelDir holding
// types.DefaultMaxSlots slots unless configured otherwise.
func NewRepository(modelDir string, opts ...Option) *Repository {
	r := &Repository{
		modelDir: modelDir,
		maxSlots: types.DefaultMaxSlots,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// NewRepositoryFromConfig validates cfg and returns a repository for it.
func NewRepositoryFromConfig(cfg types.Config, logger *zap.Logger) (*Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return NewRepository(cfg.ModelDir, WithMaxSlots(cfg.MaxSlots), WithLogger(logger)), nil
}

// ModelDir returns the root directory of the slots.
func (r *Repository) ModelDir() string { return r.modelDir }

// MaxSlots returns the number of slots LoadAllSlots returns.
func (r *Repository) MaxSlots() int { return r.maxSlots }

// SlotDir returns <modelDir>/<index>.
func (r *Repository) SlotDir(index int) string {
	return filepath.Join(r.modelDir, strconv.Itoa(index))
}

// DescriptorPath returns <modelDir>/<index>/params.json.
func (r *Repository) DescriptorPath(index int) string {
	return filepath.Join(r.SlotDir(index), types.DescriptorFileName)
}

// LoadSlot reads the descriptor of slot index. A missing descriptor yields
// the empty slot. An unknown or missing discriminator yields the empty slot
// as well, discarding the other keys. The record's ID is whatever the
// descriptor held; LoadAllSlots overwrites it.
func (r *Repository) LoadSlot(index int) (types.Slot, error) {
	if index < 0 {
		return nil, fmt.Errorf("load slot %d: %w", index, types.ErrInvalidSlotIndex)
	}

	path := r.DescriptorPath(index)
	doc, found, err := readDescriptor(path)
	if err != nil {
		return nil, fmt.Errorf("load slot %d: %w", index, err)
	}
	if !found {
		r.logger.Debug("slot has no descriptor", zap.Int("slot", index))
		return types.NewModelSlot(), nil
	}

	slot, skipped := resolve(doc)
	if slot.Type() == "" {
		if raw, ok := doc["voiceChangerType"]; ok && raw != nil {
			r.logger.Warn("unrecognized slot discriminator, treating slot as empty",
				zap.Int("slot", index),
				zap.Any("voiceChangerType", raw))
		}
		return slot, nil
	}
	if len(skipped) > 0 {
		r.logger.Debug("ignored descriptor keys",
			zap.Int("slot", index),
			zap.String("type", string(slot.Type())),
			zap.Strings("keys", skipped))
	}
	return slot, nil
}

// LoadAllSlots loads slots 0 through MaxSlots-1 in order. Every record's ID
// is set to its index, and slots without a descriptor appear as empty slots,
// so the result always has MaxSlots entries.
func (r *Repository) LoadAllSlots() ([]types.Slot, error) {
	out := make([]types.Slot, 0, r.maxSlots)
	for i := 0; i < r.maxSlots; i++ {
		slot, err := r.LoadSlot(i)
		if err != nil {
			return nil, err
		}
		slot.Base().ID = i
		out = append(out, slot)
	}
	return out, nil
}

// SaveSlot overwrites the descriptor of slot index with every field of slot.
// The slot directory must already exist; write failures are returned with
// the underlying error wrapped.
func (r *Repository) SaveSlot(index int, slot types.Slot) error {
	if index < 0 {
		return fmt.Errorf("save slot %d: %w", index, types.ErrInvalidSlotIndex)
	}
	data, err := EncodeSlot(slot)
	if err != nil {
		return fmt.Errorf("save slot %d: %w", index, err)
	}
	if err := writeDescriptor(r.DescriptorPath(index), data); err != nil {
		return fmt.Errorf("save slot %d: %w", index, err)
	}
	r.logger.Debug("saved slot",
		zap.Int("slot", index),
		zap.String("type", string(slot.Type())))
	return nil
}

// LoadSlot loads one slot of modelDir.
func LoadSlot(modelDir string, index int) (types.Slot, error) {
	return NewRepository(modelDir).LoadSlot(index)
}

// LoadAllSlots loads types.DefaultMaxSlots slots of modelDir.
func LoadAllSlots(modelDir string) ([]types.Slot, error) {
	return NewRepository(modelDir).LoadAllSlots()
}

// SaveSlot writes one slot of modelDir.
func SaveSlot(modelDir string, index int, slot types.Slot) error {
	return NewRepository(modelDir).SaveSlot(index, slot)
}

package types

import "errors"

// DefaultMaxSlots is the number of slot directories a model directory holds
// when no other bound is configured.
const DefaultMaxSlots = 200

// DescriptorFileName is the name of the JSON descriptor inside a slot directory.
const DescriptorFileName = "params.json"

// Config locates a model directory and bounds its slot indices.
type Config struct {
	ModelDir string `json:"model_dir" yaml:"model_dir"`
	MaxSlots int    `json:"max_slots" yaml:"max_slots"`
}

// Config validation errors.
var (
	ErrModelDirEmpty   = errors.New("model directory must not be empty")
	ErrMaxSlotsInvalid = errors.New("max slots must be positive")
)

// Validate checks that the Config is well-formed. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.ModelDir == "" {
		return ErrModelDirEmpty
	}
	if c.MaxSlots <= 0 {
		return ErrMaxSlotsInvalid
	}
	return nil
}

// Slot store errors.
var (
	ErrInvalidSlotIndex = errors.New("invalid slot index")
	ErrNotObject        = errors.New("descriptor is not a JSON object")
	ErrNilSlot          = errors.New("slot record is nil")
)

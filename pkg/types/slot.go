package types

import "encoding/json"

// VoiceChangerType is the discriminator stored in a descriptor's
// voiceChangerType key. The empty value marks an empty or unrecognized slot.
type VoiceChangerType string

// Discriminator literals, one per variant shape.
const (
	TypeRVC          VoiceChangerType = "RVC"
	TypeMMVCv13      VoiceChangerType = "MMVCv13"
	TypeMMVCv15      VoiceChangerType = "MMVCv15"
	TypeSoVitsSvc40  VoiceChangerType = "so-vits-svc-40"
	TypeDDSPSVC      VoiceChangerType = "DDSP-SVC"
	TypeDiffusionSVC VoiceChangerType = "Diffusion-SVC"
)

// knownTypes lists the discriminators in declaration order.
var knownTypes = []VoiceChangerType{
	TypeRVC,
	TypeMMVCv13,
	TypeMMVCv15,
	TypeSoVitsSvc40,
	TypeDDSPSVC,
	TypeDiffusionSVC,
}

// KnownVoiceChangerTypes returns the discriminators of every variant shape.
func KnownVoiceChangerTypes() []VoiceChangerType {
	out := make([]VoiceChangerType, len(knownTypes))
	copy(out, knownTypes)
	return out
}

// IsKnown reports whether t names one of the variant shapes.
func (t VoiceChangerType) IsKnown() bool {
	for _, k := range knownTypes {
		if t == k {
			return true
		}
	}
	return false
}

// MarshalJSON writes the empty discriminator as null.
func (t VoiceChangerType) MarshalJSON() ([]byte, error) {
	if t == "" {
		return []byte("null"), nil
	}
	return json.Marshal(string(t))
}

// Slot is implemented by ModelSlot and the six variant shapes. The set is
// closed: the unexported method can only be promoted from ModelSlot.
type Slot interface {
	// Base returns the common fields. Mutations through the pointer are
	// visible on the record.
	Base() *ModelSlot

	// Type returns the discriminator of the concrete shape, or the empty
	// value for a bare ModelSlot.
	Type() VoiceChangerType

	sealed()
}

// Inference and embedder defaults used by the variant constructors.
const (
	ModelTypePyTorchRVC = "pyTorchRVC"
	ModelTypeCombo      = "combo"
	EmbedderHubertBase  = "hubert_base"
)

// ModelSlot holds the identity and display metadata shared by every shape.
// A ModelSlot on its own is the empty slot sentinel.
type ModelSlot struct {
	ID               int              `json:"id"`
	VoiceChangerType VoiceChangerType `json:"voiceChangerType"`
	Name             string           `json:"name"`
	Description      string           `json:"description"`
	Credit           string           `json:"credit"`
	TermsOfUseURL    string           `json:"termsOfUseUrl"`
	IconFile         string           `json:"iconFile"`
	Speakers         map[int]string   `json:"speakers"`
}

// NewModelSlot returns an empty slot with every default applied.
func NewModelSlot() *ModelSlot {
	return &ModelSlot{
		ID:       -1,
		Speakers: map[int]string{},
	}
}

// Base returns m.
func (m *ModelSlot) Base() *ModelSlot { return m }

// Type returns the stored discriminator.
func (m *ModelSlot) Type() VoiceChangerType { return m.VoiceChangerType }

func (m *ModelSlot) sealed() {}

// IsEmpty reports whether the slot carries no known discriminator.
func (m *ModelSlot) IsEmpty() bool { return !m.VoiceChangerType.IsKnown() }

// NewSlot returns a freshly defaulted record for the discriminator. Unknown
// and empty discriminators yield the empty slot.
func NewSlot(t VoiceChangerType) Slot {
	switch t {
	case TypeRVC:
		return NewRVCModelSlot()
	case TypeMMVCv13:
		return NewMMVCv13ModelSlot()
	case TypeMMVCv15:
		return NewMMVCv15ModelSlot()
	case TypeSoVitsSvc40:
		return NewSoVitsSvc40ModelSlot()
	case TypeDDSPSVC:
		return NewDDSPSVCModelSlot()
	case TypeDiffusionSVC:
		return NewDiffusionSVCModelSlot()
	default:
		return NewModelSlot()
	}
}

// newBase returns base fields for a variant with the given speaker table.
func newBase(t VoiceChangerType, speakers map[int]string) ModelSlot {
	return ModelSlot{
		ID:               -1,
		VoiceChangerType: t,
		Speakers:         speakers,
	}
}

// Package types defines the model slot record shapes, the Slot union they
// form, repository configuration, and the standard errors shared by the
// slot store.
//
// A slot is one of seven closed shapes: the bare ModelSlot (the empty slot)
// or one of six variants keyed by the voiceChangerType discriminator. The
// variants embed ModelSlot by value, so callers reach the common fields
// through Slot.Base and the variant fields through a type switch.
package types

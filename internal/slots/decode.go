// Discriminator resolution and tolerant field decoding.
package slots

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"

	"github.com/go-viper/mapstructure/v2"

	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

// DecodeSlot resolves a descriptor document into its slot shape. It fails
// only when data is not a JSON object.
func DecodeSlot(data []byte) (types.Slot, error) {
	doc, err := parseDocument(data)
	if err != nil {
		return nil, err
	}
	slot, _ := resolve(doc)
	return slot, nil
}

// EncodeSlot serializes every field of slot, base fields included. It first
// normalizes slot in place: the stored discriminator is set to slot.Type()
// and nil maps become empty, so that decoding the output yields slot again.
func EncodeSlot(slot types.Slot) ([]byte, error) {
	if slot == nil {
		return nil, types.ErrNilSlot
	}
	normalize(slot)
	return codec.MarshalIndent(slot, "", "  ")
}

// normalize makes the fields of slot agree with what a load would produce.
func normalize(slot types.Slot) {
	base := slot.Base()
	base.VoiceChangerType = slot.Type()
	if base.Speakers == nil {
		base.Speakers = map[int]string{}
	}
	if v, ok := slot.(*types.MMVCv15ModelSlot); ok && v.F0 == nil {
		v.F0 = map[int]float64{}
	}
}

// resolve reads the discriminator through the base shape, then decodes the
// whole document into the matching variant. Unknown discriminators yield a
// fresh empty slot. The returned keys were present in doc but not applied.
func resolve(doc map[string]any) (types.Slot, []string) {
	probe := types.NewModelSlot()
	decodeFields(doc, probe)

	if !probe.VoiceChangerType.IsKnown() {
		return types.NewModelSlot(), nil
	}

	slot := types.NewSlot(probe.VoiceChangerType)
	skipped := decodeFields(doc, slot)
	return slot, skipped
}

// decodeFields applies each key of doc to dst, a pointer to a slot struct,
// one key at a time. A key that names no field, holds null, or holds a value
// of an incompatible representation leaves dst untouched and is reported.
func decodeFields(doc map[string]any, dst any) []string {
	target := reflect.ValueOf(dst).Elem()

	keys := make([]string, 0, len(doc))
	for k := range doc {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var skipped []string
	for _, key := range keys {
		value := doc[key]
		if value == nil {
			skipped = append(skipped, key)
			continue
		}

		// Decode into a copy so a failed key cannot leave a half-written field.
		trial := reflect.New(target.Type())
		trial.Elem().Set(target)

		var md mapstructure.Metadata
		dec, err := mapstructure.NewDecoder(decoderConfig(trial.Interface(), &md))
		if err != nil {
			skipped = append(skipped, key)
			continue
		}
		if err := dec.Decode(map[string]any{key: value}); err != nil || len(md.Unused) > 0 {
			skipped = append(skipped, key)
			continue
		}
		target.Set(trial.Elem())
	}
	return skipped
}

// decoderConfig matches descriptor keys to json tag names exactly, flattens
// the embedded base shape, and replaces rather than merges map fields.
func decoderConfig(result any, md *mapstructure.Metadata) *mapstructure.DecoderConfig {
	return &mapstructure.DecoderConfig{
		DecodeHook:       mapstructure.DecodeHookFuncKind(strictScalars),
		WeaklyTypedInput: true,
		ZeroFields:       true,
		Squash:           true,
		TagName:          "json",
		MatchName:        func(mapKey, fieldName string) bool { return mapKey == fieldName },
		Metadata:         md,
		Result:           result,
	}
}

// strictScalars rejects the conversions weak typing would otherwise turn
// into silent wrong values: empty strings bound for numeric or bool fields,
// and fractional or out-of-range numbers bound for integer fields.
func strictScalars(from, to reflect.Kind, data any) (any, error) {
	switch from {
	case reflect.String:
		if isScalarKind(to) && reflect.ValueOf(data).String() == "" {
			return nil, fmt.Errorf("empty string for %s field", to)
		}
	case reflect.Float32, reflect.Float64:
		bits, signed, ok := intBits(to)
		if !ok {
			return data, nil
		}
		f := reflect.ValueOf(data).Float()
		if f != math.Trunc(f) {
			return nil, fmt.Errorf("%v is not an integer", f)
		}
		lo, hi := 0.0, math.Ldexp(1, bits)
		if signed {
			lo, hi = -math.Ldexp(1, bits-1), math.Ldexp(1, bits-1)
		}
		if f < lo || f >= hi {
			return nil, fmt.Errorf("%v overflows %s", f, to)
		}
	}
	return data, nil
}

// isScalarKind reports whether k is a bool or numeric kind.
func isScalarKind(k reflect.Kind) bool {
	if k == reflect.Bool || k == reflect.Float32 || k == reflect.Float64 {
		return true
	}
	_, _, ok := intBits(k)
	return ok
}

// intBits returns the width and signedness of an integer kind.
func intBits(k reflect.Kind) (bits int, signed, ok bool) {
	switch k {
	case reflect.Int:
		return strconv.IntSize, true, true
	case reflect.Int8:
		return 8, true, true
	case reflect.Int16:
		return 16, true, true
	case reflect.Int32:
		return 32, true, true
	case reflect.Int64:
		return 64, true, true
	case reflect.Uint, reflect.Uintptr:
		return strconv.IntSize, false, true
	case reflect.Uint8:
		return 8, false, true
	case reflect.Uint16:
		return 16, false, true
	case reflect.Uint32:
		return 32, false, true
	case reflect.Uint64:
		return 64, false, true
	}
	return 0, false, false
}

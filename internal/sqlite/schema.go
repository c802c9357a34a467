package sqlite

// Schema DDL for the slot catalog. Descriptors hold the full record; the
// other columns exist for filtering.
const (
	createSlots = `CREATE TABLE slots (
    slot_index INTEGER PRIMARY KEY,
    voice_changer_type TEXT NOT NULL,
    name TEXT NOT NULL,
    descriptor TEXT NOT NULL
);`

	idxSlotsType = `CREATE INDEX idx_slots_type ON slots(voice_changer_type);`
)

// schemaDDL lists all statements applied on Attach, in order.
var schemaDDL = []string{
	createSlots,
	idxSlotsType,
}

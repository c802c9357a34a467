// Tests for the SQLite slot catalog.
package sqlite

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/eliasbuenosdias/voice-changer/internal/slots"
	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

const testMaxSlots = 5

// seedModelDir creates slot directories and saves a few named slots:
// 0 RVC "Alto", 2 MMVCv15 "Bass", 3 RVC "alto sax".
func seedModelDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	for i := 0; i < testMaxSlots; i++ {
		if err := os.MkdirAll(filepath.Join(root, strconv.Itoa(i)), 0o755); err != nil {
			t.Fatalf("mkdir slot %d: %v", i, err)
		}
	}

	repo := slots.NewRepository(root, slots.WithMaxSlots(testMaxSlots))

	alto := types.NewRVCModelSlot()
	alto.Name = "Alto"
	bass := types.NewMMVCv15ModelSlot()
	bass.Name = "Bass"
	sax := types.NewRVCModelSlot()
	sax.Name = "alto sax"

	for index, slot := range map[int]types.Slot{0: alto, 2: bass, 3: sax} {
		if err := repo.SaveSlot(index, slot); err != nil {
			t.Fatalf("SaveSlot(%d) failed: %v", index, err)
		}
	}
	return root
}

func attachCatalog(t *testing.T, root string) *Catalog {
	t.Helper()
	c := NewCatalog(nil)
	if err := c.Attach(types.Config{ModelDir: root, MaxSlots: testMaxSlots}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}
	t.Cleanup(func() { c.Detach() })
	return c
}

func slotIDs(list []types.Slot) []int {
	ids := make([]int, len(list))
	for i, s := range list {
		ids[i] = s.Base().ID
	}
	return ids
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestCatalog_Attach(t *testing.T) {
	root := seedModelDir(t)
	c := attachCatalog(t, root)

	err := c.Attach(types.Config{ModelDir: root, MaxSlots: testMaxSlots})
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}
}

func TestCatalog_AttachInvalidConfig(t *testing.T) {
	c := NewCatalog(nil)
	if err := c.Attach(types.Config{MaxSlots: 3}); !errors.Is(err, types.ErrModelDirEmpty) {
		t.Errorf("expected ErrModelDirEmpty, got %v", err)
	}
	if err := c.Attach(types.Config{ModelDir: t.TempDir()}); !errors.Is(err, types.ErrMaxSlotsInvalid) {
		t.Errorf("expected ErrMaxSlotsInvalid, got %v", err)
	}
}

func TestCatalog_AttachCorruptDescriptor(t *testing.T) {
	root := seedModelDir(t)
	path := filepath.Join(root, "4", types.DescriptorFileName)
	if err := os.WriteFile(path, []byte("{broken"), 0o644); err != nil {
		t.Fatal(err)
	}

	c := NewCatalog(nil)
	if err := c.Attach(types.Config{ModelDir: root, MaxSlots: testMaxSlots}); err == nil {
		t.Fatal("expected Attach to fail on a corrupt descriptor")
	}
	if _, err := c.Fetch(types.Filter{}); err != types.ErrCatalogDetached {
		t.Errorf("failed Attach must leave the catalog detached, got %v", err)
	}
}

func TestCatalog_Detach(t *testing.T) {
	c := NewCatalog(nil)
	if err := c.Attach(types.Config{ModelDir: seedModelDir(t), MaxSlots: testMaxSlots}); err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	if err := c.Detach(); err != nil {
		t.Fatalf("Detach failed: %v", err)
	}
	if err := c.Detach(); err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}
	if _, err := c.Fetch(types.Filter{}); err != types.ErrCatalogDetached {
		t.Errorf("expected ErrCatalogDetached, got %v", err)
	}
	if err := c.Refresh(0); err != types.ErrCatalogDetached {
		t.Errorf("expected ErrCatalogDetached, got %v", err)
	}
}

func TestCatalog_Fetch(t *testing.T) {
	c := attachCatalog(t, seedModelDir(t))

	tests := []struct {
		name   string
		filter types.Filter
		want   []int
	}{
		{"zero filter returns every slot", types.Filter{}, []int{0, 1, 2, 3, 4}},
		{"occupied only", types.Filter{OccupiedOnly: true}, []int{0, 2, 3}},
		{"by type", types.Filter{Type: types.TypeRVC}, []int{0, 3}},
		{"by type with no matches", types.Filter{Type: types.TypeDDSPSVC}, []int{}},
		{"name is case-insensitive", types.Filter{NameContains: "ALTO"}, []int{0, 3}},
		{"name and type combined", types.Filter{NameContains: "sax", Type: types.TypeRVC}, []int{3}},
		{"name with LIKE wildcard is literal", types.Filter{NameContains: "%"}, []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := c.Fetch(tt.filter)
			if err != nil {
				t.Fatalf("Fetch failed: %v", err)
			}
			if ids := slotIDs(got); !equalInts(ids, tt.want) {
				t.Errorf("Fetch(%+v) = %v, want %v", tt.filter, ids, tt.want)
			}
		})
	}
}

func TestCatalog_FetchReturnsVariants(t *testing.T) {
	c := attachCatalog(t, seedModelDir(t))

	got, err := c.Fetch(types.Filter{})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if _, ok := got[2].(*types.MMVCv15ModelSlot); !ok {
		t.Errorf("slot 2 is %T, want *types.MMVCv15ModelSlot", got[2])
	}
	if _, ok := got[1].(*types.ModelSlot); !ok {
		t.Errorf("slot 1 is %T, want *types.ModelSlot", got[1])
	}
	if got[0].Base().Name != "Alto" {
		t.Errorf("slot 0 name = %q, want Alto", got[0].Base().Name)
	}
}

func TestCatalog_Refresh(t *testing.T) {
	root := seedModelDir(t)
	c := attachCatalog(t, root)

	ddsp := types.NewDDSPSVCModelSlot()
	ddsp.Name = "Choir"
	if err := slots.SaveSlot(root, 1, ddsp); err != nil {
		t.Fatalf("SaveSlot failed: %v", err)
	}

	before, _ := c.Fetch(types.Filter{Type: types.TypeDDSPSVC})
	if len(before) != 0 {
		t.Fatalf("catalog saw the write before Refresh: %v", slotIDs(before))
	}

	if err := c.Refresh(1); err != nil {
		t.Fatalf("Refresh failed: %v", err)
	}
	after, err := c.Fetch(types.Filter{Type: types.TypeDDSPSVC})
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if ids := slotIDs(after); !equalInts(ids, []int{1}) {
		t.Errorf("after Refresh got %v, want [1]", ids)
	}
}

func TestCatalog_RefreshOutOfRange(t *testing.T) {
	c := attachCatalog(t, seedModelDir(t))

	for _, index := range []int{-1, testMaxSlots} {
		if err := c.Refresh(index); !errors.Is(err, types.ErrInvalidSlotIndex) {
			t.Errorf("Refresh(%d): expected ErrInvalidSlotIndex, got %v", index, err)
		}
	}
}

func TestBuildFetchQuery(t *testing.T) {
	query, args := buildFetchQuery(types.Filter{})
	if query != "SELECT slot_index, descriptor FROM slots ORDER BY slot_index" {
		t.Errorf("unexpected query %q", query)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}

	_, args = buildFetchQuery(types.Filter{Type: types.TypeRVC, NameContains: "a", OccupiedOnly: true})
	if len(args) != 2 {
		t.Errorf("expected 2 args, got %v", args)
	}
}

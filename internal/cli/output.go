package cli

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"

	"github.com/bytedance/sonic"

	"github.com/eliasbuenosdias/voice-changer/pkg/types"
)

// writeJSON writes v as indented JSON followed by a newline.
func writeJSON(w io.Writer, v any) error {
	data, err := sonic.ConfigStd.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// typeLabel renders a slot's discriminator for human output.
func typeLabel(slot types.Slot) string {
	if slot.Base().IsEmpty() {
		return "-"
	}
	return string(slot.Type())
}

// writeSlotTable writes one row per slot.
func writeSlotTable(out io.Writer, list []types.Slot) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SLOT\tTYPE\tNAME\tSPEAKERS")
	for _, slot := range list {
		base := slot.Base()
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", base.ID, typeLabel(slot), base.Name, len(base.Speakers))
	}
	w.Flush()
	fmt.Fprintf(out, "Total: %d slot(s)\n", len(list))
}

// writeSlotDetail writes the shared fields of a slot in key: value form.
func writeSlotDetail(out io.Writer, slot types.Slot) {
	base := slot.Base()
	fmt.Fprintf(out, "Slot:        %d\n", base.ID)
	fmt.Fprintf(out, "Type:        %s\n", typeLabel(slot))
	fmt.Fprintf(out, "Name:        %s\n", base.Name)
	if base.Description != "" {
		fmt.Fprintf(out, "Description: %s\n", base.Description)
	}
	if base.Credit != "" {
		fmt.Fprintf(out, "Credit:      %s\n", base.Credit)
	}
	if base.TermsOfUseURL != "" {
		fmt.Fprintf(out, "Terms:       %s\n", base.TermsOfUseURL)
	}
	if base.IconFile != "" {
		fmt.Fprintf(out, "Icon:        %s\n", base.IconFile)
	}
	if len(base.Speakers) == 0 {
		return
	}
	ids := make([]int, 0, len(base.Speakers))
	for id := range base.Speakers {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	fmt.Fprintln(out, "Speakers:")
	for _, id := range ids {
		fmt.Fprintf(out, "  %d: %s\n", id, base.Speakers[id])
	}
}

package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/alexanderramin/degreeplan/internal/contract"
	"github.com/alexanderramin/degreeplan/internal/domain"
)

// termValue lets --semester take fall, spring, summer or 1..3.
type termValue struct{ term *domain.Term }

var _ pflag.Value = termValue{}

func (v termValue) String() string {
	if v.term == nil || !v.term.Valid() {
		return ""
	}
	return v.term.String()
}

func (v termValue) Set(s string) error {
	t, err := domain.ParseTerm(s)
	if err != nil {
		return err
	}
	*v.term = t
	return nil
}

func (v termValue) Type() string { return "term" }

// slotFlags is a --year/--semester pair, optionally prefixed.
type slotFlags struct {
	prefix string
	year   int
	term   domain.Term
}

func addSlotFlags(cmd *cobra.Command, prefix, usage string, required bool) *slotFlags {
	f := &slotFlags{prefix: prefix}
	cmd.Flags().IntVar(&f.year, prefix+"year", 0, "Program year (1-8) "+usage)
	cmd.Flags().Var(termValue{&f.term}, prefix+"semester", "Semester: fall, spring or summer "+usage)
	if required {
		_ = cmd.MarkFlagRequired(prefix + "year")
		_ = cmd.MarkFlagRequired(prefix + "semester")
	}
	return f
}

func (f *slotFlags) isSet() bool { return f.year != 0 || f.term != 0 }

// input defaults an omitted semester to fall.
func (f *slotFlags) input() contract.SlotInput {
	term := f.term
	if term == 0 {
		term = domain.TermFall
	}
	return contract.NewSlot(f.year, term)
}

func (f *slotFlags) ptr() *contract.SlotInput {
	if !f.isSet() {
		return nil
	}
	in := f.input()
	return &in
}

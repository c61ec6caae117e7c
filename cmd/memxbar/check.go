package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sarchlab/memxbar/config"
	"github.com/sarchlab/memxbar/mem/hierarchy"
	"github.com/sarchlab/memxbar/sim"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Assemble a hierarchy and print its structure.",
	Long: "`check --config f.env --top L2XBar` builds the hierarchy below " +
		"L2XBar, prints the banks of every crossbar and the structural " +
		"balance, and fails if the configuration is invalid.",
	Run: func(cmd *cobra.Command, _ []string) {
		h, conf := buildHierarchy(cmd, sim.NewSerialEngine())
		out := cmd.OutOrStdout()

		for _, x := range h.Crossbars() {
			fmt.Fprintf(out, "%s: %d banks, line size %d, interleave %d\n",
				x.Name(), x.NumBanks(), x.LineSize(), x.InterleaveFactor())

			for i := 0; i < x.NumBanks(); i++ {
				fmt.Fprintf(out, "  [%d] %s\n", i, x.Bank(i).Name())
			}
		}

		b := h.Balance()
		fmt.Fprintf(out, "balance: %d (%d crossbars, %d de-crossbars)\n",
			b.Count(), b.NumFanOuts(), b.NumFanIns())
		fmt.Fprintf(out, "objects: %v\n", h.Registry().Names())

		unused := unusedSections(h, conf)
		if len(unused) == 0 {
			fmt.Fprintln(out, "unused sections: none")
		} else {
			fmt.Fprintf(out, "unused sections: %v\n", unused)
		}
	},
}

// unusedSections lists the sections that no object of the hierarchy was
// built from.
func unusedSections(h *hierarchy.Hierarchy, conf *config.Conf) []string {
	used := make(map[string]bool)

	for _, obj := range h.Registry().Objects() {
		if s, ok := obj.(interface{ Section() string }); ok {
			used[s.Section()] = true
		}
	}

	unused := []string{}
	for _, s := range conf.Sections() {
		if !used[s] {
			unused = append(unused, s)
		}
	}

	return unused
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0x5844/motif/index"
)

func newBuildCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Index the corpus and report what was indexed",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			idx, src, err := a.openIndex()
			if err != nil {
				return err
			}
			defer src.Close()

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, d := range index.Domains() {
				fmt.Fprintf(w, "%s\t%d\n", d, idx.Size(d))
			}
			types := make([]string, len(idx.TrackedTypes()))
			for i, pt := range idx.TrackedTypes() {
				types[i] = pt.Name()
			}
			fmt.Fprintf(w, "tracked\t%s (%s)\n", strings.Join(types, ", "), idx.TrackedColors())

			fmt.Fprintln(w, "\nFEATURE\tDOMAIN\tCOUNT")
			for _, f := range idx.Registry().Features() {
				fmt.Fprintf(w, "%s\t%s\t%d\n", f.Name, f.Domain, idx.FeatureBits(f.ID).Count())
			}

			fmt.Fprintln(w, "\nRELATION\tEDGES")
			for _, info := range idx.Relations() {
				fmt.Fprintf(w, "%s\t%d\n", info.Name, idx.Relation(info.ID).Len())
			}
			return w.Flush()
		},
	}
}

package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0x5844/motif/index"
)

func newFeaturesCmd(*app) *cobra.Command {
	return &cobra.Command{
		Use:   "features",
		Short: "List the features and relations a query can use",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFEATURE\tDOMAIN\tPIECES")
			for _, f := range index.DefaultRegistry().Features() {
				pieces := "-"
				if f.Domain == index.DomainInstance {
					pieces = "any"
					if len(f.Types) > 0 {
						names := make([]string, len(f.Types))
						for i, pt := range f.Types {
							names[i] = pt.Name()
						}
						pieces = strings.Join(names, ", ")
					}
				}
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", f.ID, f.Name, f.Domain, pieces)
			}

			fmt.Fprintln(w, "\nID\tRELATION\tLEFT\tRIGHT")
			fmt.Fprintf(w, "%d\tinstance_in_position\t%s\t%s\n", index.InstanceInPosition, index.DomainInstance, index.DomainPosition)
			for _, def := range index.DefaultRelations() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", def.Info.ID, def.Info.Name, def.LeftType.Name(), def.RightType.Name())
			}
			return w.Flush()
		},
	}
}

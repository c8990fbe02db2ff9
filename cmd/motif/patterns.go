package main

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/0x5844/motif/pattern"
)

func newPatternsCmd(*app) *cobra.Command {
	var verbose bool
	cmd := &cobra.Command{
		Use:   "patterns [prefix]",
		Short: "List the built-in patterns, optionally under a path prefix",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book := pattern.NewBuiltinBook()
			var path []string
			if len(args) == 1 {
				path = pattern.Split(args[0])
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "CODE\tNAME\tTITLE")
			for _, p := range book.Possible(path) {
				if len(path) > 0 && !strings.HasPrefix(p.Name()+"/", strings.Join(path, "/")+"/") {
					continue
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", p.Code(), p.Name(), p.Title())
				if verbose {
					fmt.Fprintf(w, "\t\t%s\n", p.Expr())
				}
			}
			return w.Flush()
		},
	}
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "print the query of every pattern")
	return cmd
}

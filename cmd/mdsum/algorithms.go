package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/checksum"
	"github.com/distribution/mdhash/digest"
	"github.com/spf13/cobra"
)

func newAlgorithmsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "`algorithms` lists the supported digest algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tBLOCK SIZE\tTAG\tMULTICODEC")
			for _, alg := range mdhash.Algorithms() {
				codec := "-"
				if code, err := digest.Multicodec(alg); err == nil {
					codec = code.String()
				}
				fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%s\n", alg, alg.Size(), alg.BlockSize(), checksum.Tag(alg), codec)
			}
			return w.Flush()
		},
	}
}

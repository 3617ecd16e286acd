package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/distribution/mdhash/checksum"
	"github.com/spf13/cobra"
)

// runCheck verifies every checksum list named in args. The lists are read
// one after the other.
func runCheck(ctx context.Context, cmd *cobra.Command, opts *options, hasher *checksum.Hasher, args []string) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if opts.status {
		stdout = io.Discard
	}

	failed := false
	for _, name := range args {
		var r io.Reader
		if name == stdinName {
			r = cmd.InOrStdin()
		} else {
			f, err := os.Open(name)
			if err != nil {
				fmt.Fprintf(stderr, "mdsum: %v\n", err)
				failed = true
				continue
			}
			r = f
			defer f.Close()
		}

		results, summary, err := hasher.Check(ctx, r)
		if err != nil {
			fmt.Fprintf(stderr, "mdsum: %s: %v\n", name, err)
			failed = true
			continue
		}

		for _, res := range results {
			switch {
			case res.OK:
				if !opts.quiet {
					fmt.Fprintf(stdout, "%s: OK\n", res.Path)
				}
			case errors.Is(res.Err, checksum.ErrMalformedLine):
				if !opts.status {
					fmt.Fprintf(stderr, "mdsum: %s: %d: %v\n", name, res.Line, checksum.ErrMalformedLine)
				}
			case errors.Is(res.Err, checksum.ErrMismatch):
				fmt.Fprintf(stdout, "%s: FAILED\n", res.Path)
			default:
				if !opts.status {
					fmt.Fprintf(stderr, "mdsum: %v\n", res.Err)
				}
				fmt.Fprintf(stdout, "%s: FAILED open or read\n", res.Path)
			}
		}

		if !opts.status {
			reportSummary(stderr, name, summary)
		}
		if !summary.OK() {
			failed = true
		}
	}

	if failed {
		return errFailed
	}
	return nil
}

func reportSummary(w io.Writer, name string, summary checksum.CheckSummary) {
	if summary.Total == 0 {
		fmt.Fprintf(w, "mdsum: %s: no properly formatted checksum lines found\n", name)
		return
	}
	if summary.Malformed > 0 {
		fmt.Fprintf(w, "mdsum: WARNING: %s improperly formatted\n", plural(summary.Malformed, "line is", "lines are"))
	}
	if summary.Unreadable > 0 {
		fmt.Fprintf(w, "mdsum: WARNING: %s could not be read\n", plural(summary.Unreadable, "listed file", "listed files"))
	}
	if summary.Failed > 0 {
		fmt.Fprintf(w, "mdsum: WARNING: %s did NOT match\n", plural(summary.Failed, "computed checksum", "computed checksums"))
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

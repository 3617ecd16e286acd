package main

import (
	"context"
	"fmt"
	"io"

	"github.com/distribution/mdhash/checksum"
	"github.com/distribution/mdhash/configuration"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/spf13/cobra"
)

const stdinName = "-"

func newHasher(config *configuration.Configuration) *checksum.Hasher {
	return &checksum.Hasher{
		Algorithm:  config.Hash.Algorithm,
		BufferSize: config.Hash.BufferSize,
		Workers:    config.Hash.Workers,
		Force:      config.Hash.Force,
	}
}

// runSum prints a checksum line for every input, or verifies checksum
// lists when --check is given.
func runSum(cmd *cobra.Command, opts *options, args []string) error {
	if !opts.check {
		if opts.quiet {
			return usageErrorf("the --quiet option is meaningful only when verifying checksums")
		}
		if opts.status {
			return usageErrorf("the --status option is meaningful only when verifying checksums")
		}
	} else if opts.tag || opts.binary || cmd.Flags().Changed("format") {
		return usageErrorf("the --tag, --binary and --format options are meaningless when verifying checksums")
	}

	ctx, config, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	if len(args) == 0 {
		args = []string{stdinName}
	}

	hasher := newHasher(config)
	provider, closeCache, err := createCache(ctx, config)
	if err != nil {
		return err
	}
	defer closeCache()
	hasher.Cache = provider

	if opts.check {
		return runCheck(ctx, cmd, opts, hasher, args)
	}

	failed := false
	printResult := func(res checksum.Result) {
		if res.Err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "mdsum: %v\n", res.Err)
			return
		}
		line := checksum.Line{Digest: res.Digest, Path: res.Path, Binary: opts.binary}
		text, err := line.Format(config.Hash.Format)
		if err != nil {
			failed = true
			fmt.Fprintf(cmd.ErrOrStderr(), "mdsum: %s: %v\n", res.Path, err)
			return
		}
		fmt.Fprintln(cmd.OutOrStdout(), text)
	}

	var paths []string
	for _, arg := range args {
		if arg != stdinName {
			paths = append(paths, arg)
		}
	}

	// files are hashed concurrently while standard input is read in
	// place, keeping the output in argument order.
	results := hasher.SumFiles(ctx, paths)
	for _, arg := range args {
		if arg == stdinName {
			printResult(sumStdin(ctx, hasher, cmd.InOrStdin()))
			continue
		}
		printResult(<-results)
	}

	if failed {
		return errFailed
	}
	return nil
}

func sumStdin(ctx context.Context, hasher *checksum.Hasher, stdin io.Reader) checksum.Result {
	res := checksum.Result{Path: stdinName}
	dgst, n, err := hasher.SumReader(ctx, stdin)
	if err != nil {
		res.Err = fmt.Errorf("%s: %w", stdinName, err)
		return res
	}
	dcontext.GetLogger(ctx).Debugf("hashed %d bytes from standard input", n)
	res.Digest, res.Size = dgst, n
	return res
}

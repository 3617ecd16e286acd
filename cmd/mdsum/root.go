package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/distribution/mdhash"
	"github.com/distribution/mdhash/checksum"
	"github.com/distribution/mdhash/configuration"
	"github.com/distribution/mdhash/internal/dcontext"
	"github.com/distribution/mdhash/server"
	"github.com/distribution/mdhash/version"
	"github.com/spf13/cobra"
)

const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

// usageError marks errors caused by the command line rather than the
// inputs.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }
func (e usageError) Unwrap() error { return e.err }

func usageErrorf(format string, args ...interface{}) error {
	return usageError{fmt.Errorf(format, args...)}
}

// errFailed is returned after failures have already been reported.
var errFailed = errors.New("failed")

type options struct {
	algorithm   string
	check       bool
	format      string
	tag         bool
	binary      bool
	configPath  string
	quiet       bool
	status      bool
	force       bool
	showVersion bool
}

// run executes the command line and returns the process exit status.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, errFailed):
		return exitFailure
	}

	fmt.Fprintf(stderr, "mdsum: %v\n", err)
	var ue usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(stderr, "Try 'mdsum --help' for more information.")
		return exitUsage
	}
	return exitFailure
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "mdsum [flags] [FILE...]",
		Short: "`mdsum` prints or checks message digests",
		Long: "`mdsum` prints or checks MD4, MD5, RIPEMD-160, SHA-1 and SHA-2 digests.\n" +
			"With no FILE, or when FILE is -, standard input is read.",
		Args:          cobra.ArbitraryArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.showVersion {
				version.FprintVersion(cmd.OutOrStdout())
				return nil
			}
			return runSum(cmd, opts, args)
		},
	}
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.StringVarP(&opts.algorithm, "algorithm", "a", "", "digest algorithm (md4, md5, ripemd160, sha1, sha224, sha256, sha384, sha512)")
	flags.BoolVarP(&opts.check, "check", "c", false, "read checksums from the FILEs and check them")
	flags.StringVar(&opts.format, "format", "", "output format: gnu, bsd, digest or multihash")
	flags.BoolVar(&opts.tag, "tag", false, "create a BSD-style checksum")
	flags.BoolVarP(&opts.binary, "binary", "b", false, "read in binary mode")
	flags.BoolVar(&opts.quiet, "quiet", false, "don't print OK for each successfully verified file")
	flags.BoolVar(&opts.status, "status", false, "don't output anything, status code shows success")
	flags.BoolVarP(&opts.force, "force", "f", false, "hash devices and other files that are not regular")
	flags.BoolVarP(&opts.showVersion, "version", "v", false, "show the version and exit")
	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "configuration file")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newAlgorithmsCmd())

	return cmd
}

// setup resolves the configuration, applies the flags on top of it and
// prepares the logger.
func setup(cmd *cobra.Command, opts *options) (context.Context, *configuration.Configuration, error) {
	config, err := resolveConfiguration(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		alg, err := mdhash.ParseAlgorithm(opts.algorithm)
		if err != nil {
			return nil, nil, usageError{err}
		}
		config.Hash.Algorithm = alg
	}
	if flags.Changed("format") {
		format, err := checksum.ParseFormat(opts.format)
		if err != nil {
			return nil, nil, usageError{err}
		}
		config.Hash.Format = format
	}
	if opts.tag {
		if flags.Changed("format") && config.Hash.Format != checksum.BSD {
			return nil, nil, usageErrorf("--tag conflicts with --format %s", config.Hash.Format)
		}
		config.Hash.Format = checksum.BSD
	}
	if opts.force {
		config.Hash.Force = true
	}

	ctx := dcontext.WithVersion(dcontext.Background(), version.Version())
	ctx, err = server.ConfigureLogging(ctx, config)
	if err != nil {
		return nil, nil, fmt.Errorf("unable to configure logging with config: %w", err)
	}
	return ctx, config, nil
}

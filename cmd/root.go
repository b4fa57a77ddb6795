package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/xll-gen/text2h/internal/config"
	"github.com/xll-gen/text2h/internal/emitter"
	"github.com/xll-gen/text2h/internal/files"
	"github.com/xll-gen/text2h/pkg/log"
)

// version is overridden at build time with -ldflags "-X .../cmd.version=...".
var version = "dev"

// errUsage marks errors whose message and usage text were already printed.
var errUsage = errors.New("usage")

// options holds the flag values of one command instance.
type options struct {
	configPath string
	logLevel   string
	logFile    string
	strict     bool
}

// newRootCmd builds the text2h command.
func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "text2h <infile> <defname> [outfile]",
		Short: "Generate a C header defining a text file as a string macro",
		Long: `text2h reads a text file and writes a C/C++ header that defines <defname>
as a string literal holding the file content. The literal is escaped and split
over continuation lines so it can be compiled into a binary.

If [outfile] is omitted the header is written to standard output.
An <infile> of "-" reads standard input. Put "--" before file names that
start with a dash, e.g. text2h -- -notes.txt NOTES.`,
		Version:       version,
		Args:          validateArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args, opts)
		},
	}

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		printUsage(c, err.Error())
		return errUsage
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.configPath, "config", "", "Config file (default "+config.DefaultFile+" if present)")
	flags.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&opts.logFile, "log-file", "", "Append logs to this file instead of stderr")
	flags.BoolVar(&opts.strict, "strict", false, "Fail if the input cannot be read to the end")

	return cmd
}

// validateArgs requires <infile> and <defname>, with an optional [outfile].
func validateArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 || len(args) > 3 {
		printUsage(cmd, fmt.Sprintf("expected 2 or 3 arguments, got %d", len(args)))
		return errUsage
	}
	return nil
}

func printUsage(cmd *cobra.Command, msg string) {
	cmd.PrintErrln("Error: " + msg)
	cmd.PrintErrln()
	cmd.PrintErr(cmd.UsageString())
}

// Execute runs the command with the process arguments and exits with its status.
// This is called by main.main().
func Execute() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes text2h and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if args == nil {
		// cobra falls back to os.Args for a nil slice.
		args = []string{}
	}

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, errUsage) {
			fmt.Fprintf(stderr, "Error: %v\n", err)
		}
		return 1
	}
	return 0
}

// runConvert loads configuration, opens the streams and emits the header.
//
// The input is opened before the output so that a missing input never
// truncates an existing output file.
func runConvert(cmd *cobra.Command, args []string, opts *options) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}

	if err := log.Init(cfg.Logging.Path, cfg.Logging.Level, cmd.ErrOrStderr()); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer log.Close()

	inPath, name := args[0], args[1]
	outPath := ""
	if len(args) == 3 {
		outPath = args[2]
	}

	in, err := files.OpenInput(inPath, cmd.InOrStdin())
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := files.CreateOutput(outPath, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	policy := emitter.ReadErrorsIgnore
	if cfg.ReadErrors == config.ReadErrorsFail {
		policy = emitter.ReadErrorsFail
	}

	st, err := emitter.Emit(in, out, name, emitter.Options{
		ReadErrors: policy,
		Logger:     slog.Default().With("input", inPath),
	})
	closeErr := out.Close()
	if err != nil {
		return err
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close %s: %w", outPath, closeErr)
	}

	slog.Debug("header written",
		"name", name,
		"input", inPath,
		"output", outPath,
		"bytes", st.BytesRead,
		"lines", st.Lines,
		"segments", st.Segments,
		"nuls_dropped", st.NULsDropped,
	)
	return nil
}

// loadConfig reads the config file and applies flag overrides on top of it.
func loadConfig(cmd *cobra.Command, opts *options) (*config.Config, error) {
	path, required := opts.configPath, true
	if path == "" {
		path, required = config.DefaultFile, false
	}

	cfg, err := config.Load(path, required)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Logging.Level = opts.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Logging.Path = opts.logFile
	}
	if opts.strict {
		cfg.ReadErrors = config.ReadErrorsFail
	}

	config.ApplyDefaults(cfg)
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

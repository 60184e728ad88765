package main

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"gcodes/grammar"
	"gcodes/internal/errors"
	"gcodes/internal/lexer"
	"gcodes/repl"
)

// Build-time variables - can be set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
)

var errCheckFailed = stderrors.New("check failed")

var log = commonlog.GetLogger("gcodes.cli")

type cli struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	noColor      bool
	verbose      int
	withComments bool
}

func newRootCmd(stdin io.Reader, stdout, stderr io.Writer) *cobra.Command {
	c := &cli{stdin: stdin, stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   "gcodes",
		Short: "Tokenize and check G-code programs",
		Long: `gcodes runs the G-code lexer over numerical-control programs.
Use "-" as the file name to read from standard input.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if c.noColor {
				color.NoColor = true
			}
			commonlog.Configure(c.verbose, nil)
		},
	}

	root.PersistentFlags().BoolVar(&c.noColor, "no-color", false, "Disable colored output")
	root.PersistentFlags().CountVarP(&c.verbose, "verbose", "v", "Increase log verbosity")

	lexCmd := &cobra.Command{
		Use:   "lex <file>",
		Short: "Print the token stream of a program",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runLex,
	}
	lexCmd.Flags().BoolVar(&c.withComments, "comments", false, "Print comments between tokens")

	commentsCmd := &cobra.Command{
		Use:   "comments <file>",
		Short: "Print only the comments of a program",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runComments,
	}

	parseCmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Print the program as normalized words",
		Args:  cobra.ExactArgs(1),
		RunE:  c.runParse,
	}

	checkCmd := &cobra.Command{
		Use:   "check <file>...",
		Short: "Report lexical and word errors",
		Args:  cobra.MinimumNArgs(1),
		RunE:  c.runCheck,
	}

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(c.stdout, "gcodes %s\n", Version)
			fmt.Fprintf(c.stdout, "Commit: %s\n", GitCommit)
		},
	}

	replCmd := &cobra.Command{
		Use:   "repl",
		Short: "Tokenize lines typed interactively",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			repl.Start(c.stdin, c.stdout)
		},
	}

	root.AddCommand(lexCmd, commentsCmd, parseCmd, checkCmd, replCmd, versionCmd)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root
}

func (c *cli) readSource(path string) (string, error) {
	var (
		source []byte
		err    error
	)
	if path == "-" {
		source, err = io.ReadAll(c.stdin)
	} else {
		source, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	log.Debugf("read %d bytes from %s", len(source), path)
	return string(source), nil
}

func (c *cli) runLex(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := c.readSource(path)
	if err != nil {
		return c.fail(path, "", err)
	}

	lines := lexer.NewLineIndex(source)
	dim := color.New(color.Faint).SprintFunc()

	var opts []lexer.Option
	if c.withComments {
		opts = append(opts, lexer.WithCommentHandler(func(cm lexer.Comment) {
			fmt.Fprintf(c.stdout, "%s\t%s\n", lines.Position(cm.Span.Start), dim(fmt.Sprintf("Comment(%q) @ %s", cm.Text, cm.Span)))
		}))
	}

	for tok, err := range lexer.New(source, opts...).Tokenize() {
		if err != nil {
			return c.fail(path, source, err)
		}
		fmt.Fprintf(c.stdout, "%s\t%s\n", lines.Position(tok.Span.Start), tok)
	}
	return nil
}

func (c *cli) runComments(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := c.readSource(path)
	if err != nil {
		return c.fail(path, "", err)
	}

	_, comments, err := lexer.Lex(source)
	for _, cm := range comments {
		fmt.Fprintf(c.stdout, "%s\t%s\n", lexer.Resolve(source, cm.Span.Start), cm.Text)
	}
	if err != nil {
		return c.fail(path, source, err)
	}
	return nil
}

func (c *cli) runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := c.readSource(path)
	if err != nil {
		return c.fail(path, "", err)
	}

	program, err := grammar.ParseString(path, source)
	if err != nil {
		return c.fail(path, source, err)
	}
	fmt.Fprintln(c.stdout, program.String())
	return nil
}

func (c *cli) runCheck(cmd *cobra.Command, args []string) error {
	startTime := time.Now()
	failed := false

	for _, path := range args {
		source, err := c.readSource(path)
		if err == nil {
			_, err = grammar.ParseString(path, source)
		}
		if err != nil {
			c.report(path, source, err)
			failed = true
			continue
		}
		log.Infof("%s is clean", path)
	}

	duration := formatDuration(time.Since(startTime))
	if failed {
		color.New(color.FgRed).Fprintf(c.stderr, "Check failed after %s\n", duration)
		return errCheckFailed
	}
	color.New(color.FgGreen).Fprintf(c.stdout, "Successfully checked %d file(s) in %s\n", len(args), duration)
	return nil
}

// fail reports err and returns the sentinel that makes main exit non-zero.
func (c *cli) fail(path, source string, err error) error {
	c.report(path, source, err)
	return errCheckFailed
}

func (c *cli) report(path, source string, err error) {
	diag, ok := grammar.Diagnose(err)
	if !ok {
		diag = errors.CompilerError{
			Level:   errors.Error,
			Code:    errors.ErrorUnreadableSource,
			Message: err.Error(),
		}
		fmt.Fprintf(c.stderr, "%s[%s]: %s\n\n", color.New(color.FgRed, color.Bold).Sprint("error"), diag.Code, diag.Message)
		return
	}
	fmt.Fprint(c.stderr, errors.NewErrorReporter(path, source).FormatError(diag))
}

func formatDuration(d time.Duration) string {
	switch {
	case d >= time.Minute:
		return fmt.Sprintf("%.2fmin", d.Minutes())
	case d >= time.Second:
		return fmt.Sprintf("%.2fs", d.Seconds())
	case d >= time.Millisecond:
		return fmt.Sprintf("%.1fms", float64(d.Nanoseconds())/1000000.0)
	case d >= time.Microsecond:
		return fmt.Sprintf("%.1fμs", float64(d.Nanoseconds())/1000.0)
	default:
		return fmt.Sprintf("%dns", d.Nanoseconds())
	}
}

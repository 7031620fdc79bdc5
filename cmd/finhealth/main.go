package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/domain"
	"github.com/rgehrsitz/finhealth/internal/output"
	"github.com/rgehrsitz/finhealth/internal/rules"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// newLogger builds the logrus logger handed to the engine. *logrus.Logger already
// satisfies calculation.Logger.
func newLogger(cmd *cobra.Command) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	level, err := logrus.ParseLevel(os.Getenv("FINHEALTH_LOG_LEVEL"))
	if err != nil {
		level = logrus.WarnLevel
	}
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = logrus.DebugLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadBook reads the client book named by args, or the sample book when none is given.
// A strict load rejects books with invalid records.
func loadBook(cmd *cobra.Command, args []string, logger *logrus.Logger, strict bool) (*domain.ClientBook, string, error) {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}

	parser := config.NewInputParser()
	parser.Logger = logger
	parser.Strict = strict

	book, err := config.SourceFor(path, parser).Clients(cmd.Context())
	if err != nil {
		return nil, path, err
	}
	if path == "" {
		logger.Infof("no client book given, using the sample clients")
	}
	return book, path, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "finhealth %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func dashboardCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dashboard [client-book]",
		Short: "Show the financial health dashboard for every client",
		Long: `Compute metrics, scores and advisories for each client in the book and render them.

Without a client book the built-in sample clients are shown.

Examples:
  finhealth dashboard
  finhealth dashboard clients.yaml --client "John Doe"
  finhealth dashboard clients.yaml --format html --output-file`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			strict, _ := cmd.Flags().GetBool("strict")
			book, _, err := loadBook(cmd, args, logger, strict)
			if err != nil {
				return err
			}

			formatName, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(formatName)
			if f == nil {
				return fmt.Errorf("unknown output format %q (valid: %s)", formatName,
					strings.Join(output.AvailableFormatterNames(), ", "))
			}

			engine, err := config.NewEngine(book, logger)
			if err != nil {
				return err
			}
			engine.Debug, _ = cmd.Flags().GetBool("debug")
			reports, err := engine.EvaluateBook(cmd.Context(), book)
			if err != nil {
				return err
			}

			if clientName, _ := cmd.Flags().GetString("client"); clientName != "" {
				reports, err = selectReport(reports, clientName)
				if err != nil {
					return err
				}
			}

			if toFile, _ := cmd.Flags().GetBool("output-file"); toFile {
				filename, err := output.WriteFormatted(f, reports, output.ExtensionFor(formatName))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", filename)
				return nil
			}

			data, err := f.Format(reports)
			if err != nil {
				return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().String("client", "", "Only show this client")
	cmd.Flags().StringP("format", "f", "console",
		"Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().Bool("output-file", false, "Write the report to a timestamped file instead of stdout")
	cmd.Flags().Bool("strict", false, "Reject books whose portfolios are not part of their assets")
	return cmd
}

func selectReport(reports []domain.ClientReport, name string) ([]domain.ClientReport, error) {
	for _, r := range reports {
		if r.Client.Name == name {
			return []domain.ClientReport{r}, nil
		}
	}
	return nil, fmt.Errorf("client %s not found", name)
}

func clientsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "clients [client-book]",
		Short: "List the clients of a book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, _, err := loadBook(cmd, args, newLogger(cmd), false)
			if err != nil {
				return err
			}
			for _, name := range book.Names() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}

func validateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate [client-book]",
		Short: "Validate a client book",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := newLogger(cmd)
			// load leniently so record problems are reported once by ValidateBook
			book, path, err := loadBook(cmd, args, logger, false)
			if err != nil {
				return err
			}

			parser := config.NewInputParser()
			parser.Logger = logger
			parser.Strict, _ = cmd.Flags().GetBool("strict")
			if err := parser.ValidateBook(book); err != nil {
				return fmt.Errorf("client book validation failed: %w", err)
			}

			if path == "" {
				path = "sample book"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Client book %s is valid (%d clients)\n", path, len(book.Clients))
			return nil
		},
	}
	cmd.Flags().Bool("strict", false, "Also require every portfolio category to be an asset")
	return cmd
}

func rulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules [client-book]",
		Short: "List built-in and custom advisory rules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			book, _, err := loadBook(cmd, args, newLogger(cmd), false)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Built-in advisories:")
			writeRules(out, rules.BuiltinRules(book.EffectivePolicy()))

			fmt.Fprintln(out)
			if len(book.Rules) == 0 {
				fmt.Fprintln(out, "Custom rules: none")
				return nil
			}
			fmt.Fprintln(out, "Custom rules:")
			writeRules(out, book.Rules)
			return nil
		},
	}
}

func writeRules(w io.Writer, configs []domain.RuleConfig) {
	for _, r := range configs {
		severity := r.Severity
		if severity == "" {
			severity = domain.SeverityWarning
		}
		line := fmt.Sprintf("  %-30s %-8s %s", r.ID, severity, r.Expression)
		if r.Disabled {
			line += " (disabled)"
		}
		fmt.Fprintln(w, line)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "finhealth",
		Short: "Personal financial health dashboard",
		Long: `Scores the financial health of one or more clients from their income, expenses,
assets, liabilities, portfolio and emergency fund, and flags the areas that need attention.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().Bool("debug", false, "Enable debug logging")

	root.AddCommand(dashboardCmd())
	root.AddCommand(clientsCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(rulesCmd())
	root.AddCommand(versionCmd())
	return root
}

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

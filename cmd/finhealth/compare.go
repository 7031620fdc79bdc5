package main

import (
	"fmt"
	"strings"

	"github.com/rgehrsitz/finhealth/internal/compare"
	"github.com/rgehrsitz/finhealth/internal/config"
	"github.com/rgehrsitz/finhealth/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [client-book]",
		Short: "Compare a client against what-if templates or other clients",
		Long: `Compare a base client against what-if variants of itself or against other clients.

Examples:
  finhealth compare clients.yaml --base "John Doe" --with repay_smallest_loan,invest_cash
  finhealth compare clients.yaml --base "John Doe" --clients "Anita Sharma" --format csv
  finhealth compare --base "John Doe" --transform "scale_expenses:factor=0.9;emergency_fund_months:months=6"
  finhealth compare --list-templates  # Show all available templates
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			if listTemplates, _ := cmd.Flags().GetBool("list-templates"); listTemplates {
				fmt.Fprint(out, transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}

			baseName, _ := cmd.Flags().GetString("base")
			templatesStr, _ := cmd.Flags().GetString("with")
			clientsStr, _ := cmd.Flags().GetString("clients")
			transformSpecs, _ := cmd.Flags().GetStringArray("transform")
			outputFormat, _ := cmd.Flags().GetString("format")

			if baseName == "" {
				return fmt.Errorf("--base flag is required to specify the base client")
			}
			withClients := cmd.Flags().Changed("clients")
			whatIf := templatesStr != "" || len(transformSpecs) > 0
			if !whatIf && !withClients {
				return fmt.Errorf("--with or --clients is required (or use --transform, --list-templates)")
			}
			if whatIf && withClients {
				return fmt.Errorf("--with/--transform and --clients cannot be combined")
			}

			logger := newLogger(cmd)
			strict, _ := cmd.Flags().GetBool("strict")
			book, path, err := loadBook(cmd, args, logger, strict)
			if err != nil {
				return err
			}
			engine, err := config.NewEngine(book, logger)
			if err != nil {
				return err
			}
			engine.Debug, _ = cmd.Flags().GetBool("debug")
			compareEngine := compare.NewCompareEngine(engine)

			var compSet *compare.ComparisonSet
			if withClients {
				compSet, err = compareEngine.CompareClients(cmd.Context(), book, baseName, transform.ParseTemplateList(clientsStr))
			} else {
				templateNames := transform.ParseTemplateList(templatesStr)
				transforms := transform.NewTransformRegistry()
				for i, specs := range transformSpecs {
					tmpl, err := transforms.ParseCustomTemplate(fmt.Sprintf("custom_%d", i+1), specs)
					if err != nil {
						return err
					}
					compareEngine.TemplateRegistry.Register(tmpl)
					templateNames = append(templateNames, tmpl.Name)
				}
				if len(templateNames) == 0 {
					return fmt.Errorf("no valid templates specified in --with flag")
				}
				compSet, err = compareEngine.CompareWhatIf(cmd.Context(), book, baseName, templateNames)
			}
			if err != nil {
				return fmt.Errorf("comparison failed: %w", err)
			}
			compSet.Source = path

			switch strings.ToLower(outputFormat) {
			case "csv":
				formatter := &compare.CSVFormatter{}
				s, err := formatter.Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format CSV: %w", err)
				}
				fmt.Fprint(out, s)

			case "json":
				formatter := &compare.JSONFormatter{Pretty: true}
				s, err := formatter.Format(compSet)
				if err != nil {
					return fmt.Errorf("failed to format JSON: %w", err)
				}
				fmt.Fprint(out, s)

			case "compact":
				formatter := &compare.TableFormatter{}
				fmt.Fprintln(out, formatter.FormatCompact(compSet))

			case "table", "console", "":
				formatter := &compare.TableFormatter{}
				fmt.Fprint(out, formatter.Format(compSet))

			default:
				return fmt.Errorf("unknown output format: %s (valid: table, compact, csv, json)", outputFormat)
			}
			return nil
		},
	}
	cmd.Flags().String("base", "", "Base client to compare against (required)")
	cmd.Flags().String("with", "", "Comma-separated list of what-if templates")
	cmd.Flags().StringArray("transform", nil, "Ad-hoc what-if built from transform specs separated by ';' (repeatable)")
	cmd.Flags().String("clients", "", "Comma-separated list of clients to compare with (empty for all others)")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, compact, csv, json)")
	cmd.Flags().Bool("list-templates", false, "List all available what-if templates")
	cmd.Flags().Bool("strict", false, "Reject books whose portfolios are not part of their assets")
	return cmd
}

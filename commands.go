package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/heyandras/gridwatch/config"
	"github.com/heyandras/gridwatch/issue"
	"github.com/heyandras/gridwatch/store"
	"github.com/spf13/cobra"
)

func newSummaryCmd(opts *rootOptions) *cobra.Command {
	var criteria issue.Criteria

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the issue counters and the issues matching the filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateCriteria(criteria); err != nil {
				return err
			}

			a, err := opts.open()
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			writeSummary(cmd.OutOrStdout(), a.session, criteria)
			return nil
		},
	}

	cmd.Flags().StringVar(&criteria.Status, "status", issue.All, "filter by status (All, Open, In Progress, Resolved)")
	cmd.Flags().StringVar(&criteria.Severity, "severity", issue.All, "filter by severity (All, Critical, High, Medium, Low)")
	cmd.Flags().StringVar(&criteria.Type, "type", issue.All, "filter by issue type (All, High Consumption, Low Consumption, Intermittent)")

	return cmd
}

func validateCriteria(c issue.Criteria) error {
	checks := []struct {
		flag    string
		value   string
		options []string
	}{
		{"status", c.Status, issue.StatusOptions},
		{"severity", c.Severity, issue.SeverityOptions},
		{"type", c.Type, issue.TypeOptions},
	}
	for _, chk := range checks {
		if issue.Normalize(chk.options, chk.value) != chk.value {
			return fmt.Errorf("invalid --%s %q", chk.flag, chk.value)
		}
	}
	return nil
}

// writeSummary prints the counters over the whole collection followed by the
// issues matching c
func writeSummary(w io.Writer, s *store.Session, c issue.Criteria) {
	summary := s.Summary()
	bold := color.New(color.Bold)

	counters := []struct {
		label string
		value int
		color *color.Color
	}{
		{"Total Issues", summary.Total, color.New(color.FgWhite, color.Bold)},
		{"Critical Issues", summary.Critical, color.New(color.FgRed, color.Bold)},
		{"Open Issues", summary.Open, color.New(color.FgYellow, color.Bold)},
		{"High Consumption", summary.HighConsumption, color.New(color.FgCyan, color.Bold)},
		{"Resolved", summary.Resolved, color.New(color.FgGreen, color.Bold)},
	}
	for _, ctr := range counters {
		fmt.Fprintf(w, "%-18s %s\n", ctr.label, ctr.color.Sprint(strconv.Itoa(ctr.value)))
	}

	matches := s.Filter(c)
	fmt.Fprintln(w)
	bold.Fprintf(w, "Found %d issue(s)\n", len(matches))
	if len(matches) == 0 {
		fmt.Fprintln(w, color.YellowString("No issues match the selected filters."))
		return
	}

	for _, i := range matches {
		fmt.Fprintf(w, "#%-4d %s  %-12s %-20s %-18s %s\n",
			i.ID,
			issue.SeverityIcon(i.Severity),
			severityColor(i.Severity).Sprint(i.Severity),
			i.Location,
			i.Type,
			i.Status,
		)
	}
}

func severityColor(severity string) *color.Color {
	switch severity {
	case issue.SeverityCritical:
		return color.New(color.FgRed, color.Bold)
	case issue.SeverityHigh:
		return color.New(color.FgYellow, color.Bold)
	case issue.SeverityMedium:
		return color.New(color.FgCyan)
	case issue.SeverityLow:
		return color.New(color.FgGreen)
	default:
		return color.New(color.FgWhite)
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the issues to <name>_updated.json next to the document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := opts.open()
			if err != nil {
				return err
			}
			defer func() { _ = a.logger.Sync() }()

			path, err := a.session.Export()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Exported %d issue(s) to %s\n",
				color.GreenString("✓"), len(a.session.Issues()), path)
			return nil
		},
	}
}

func newConfigCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or change the gridwatch configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.configManager()
			if err != nil {
				return err
			}
			writeConfig(cmd.OutOrStdout(), cfg)
			return nil
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "edit",
			Short: "Open the config file in $EDITOR",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := opts.configManager()
				if err != nil {
					return err
				}
				editor := config.NewEditor(cfg)
				editor.Stdin = cmd.InOrStdin()
				if err := editor.Edit(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s Saved %s\n", color.GreenString("✓"), cfg.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "data-file PATH",
			Short: "Set the default issue document",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := opts.configManager()
				if err != nil {
					return err
				}
				if err := cfg.SetDataFile(args[0]); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "data_file set to %s\n", args[0])
				return nil
			},
		},
		&cobra.Command{
			Use:       "debug on|off",
			Short:     "Enable or disable debug logging",
			Args:      cobra.ExactArgs(1),
			ValidArgs: []string{"on", "off"},
			RunE: func(cmd *cobra.Command, args []string) error {
				var enabled bool
				switch args[0] {
				case "on":
					enabled = true
				case "off":
				default:
					return fmt.Errorf("expected on or off, got %q", args[0])
				}

				cfg, err := opts.configManager()
				if err != nil {
					return err
				}
				if err := cfg.SetDebugLoggingEnabled(enabled); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "debug logging %s\n", args[0])
				return nil
			},
		},
	)

	return cmd
}

func writeConfig(w io.Writer, cfg *config.Manager) {
	filters := cfg.GetFilters()
	fmt.Fprintf(w, "config file:   %s\n", cfg.Path())
	fmt.Fprintf(w, "data file:     %s\n", config.ResolveDataFile("", cfg))
	fmt.Fprintf(w, "debug logging: %t\n", cfg.GetDebugLoggingEnabled())
	fmt.Fprintf(w, "filters:       status=%s severity=%s type=%s\n",
		issue.OrNA(filters.Status), issue.OrNA(filters.Severity), issue.OrNA(filters.Type))
}

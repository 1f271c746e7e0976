package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"hotelcomp/internal/comparables"
	"hotelcomp/internal/config"
	"hotelcomp/internal/exporter"
	"hotelcomp/internal/infrastructure"
	"hotelcomp/internal/services"
	"hotelcomp/pkg/contracts"
	"hotelcomp/pkg/contracts/domain"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "comparator",
		Short:         "Hotel comparable matcher",
		Long:          `Selects comparable hotels for every subject in a property dataset and estimates overpaid property tax`,
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	rootCmd.AddCommand(createRunCmd())
	rootCmd.AddCommand(createRatesCmd())
	rootCmd.AddCommand(createClassesCmd())
	rootCmd.AddCommand(createVersionCmd())

	return rootCmd
}

type runFlags struct {
	input      string
	sheet      string
	tolerance  float64
	maxResults int
	addresses  []string
	workers    int
	out        string
	preview    string
	configFile string
}

// createRunCmd creates the run subcommand
func createRunCmd() *cobra.Command {
	var f runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a comparison over a workbook or CSV dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runComparison(cmd, f)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&f.input, "input", "i", "", "dataset file (.xlsx, .xlsm or .csv)")
	flags.StringVar(&f.sheet, "sheet", "", "worksheet name (defaults to the first sheet)")
	flags.Float64Var(&f.tolerance, "tolerance", comparables.DefaultTolerance, "market value tolerance as a fraction")
	flags.IntVar(&f.maxResults, "max-results", comparables.DefaultMaxResults, "comparables per subject (1-10, at most 5 selected)")
	flags.StringArrayVar(&f.addresses, "address", nil, "limit subjects to this property address (repeatable)")
	flags.IntVar(&f.workers, "workers", 0, "concurrent subjects (0 uses the configured default)")
	flags.StringVarP(&f.out, "out", "o", "", "results workbook path (defaults to the reports directory)")
	flags.StringVar(&f.preview, "preview", "", "also write the preview CSV to this path")
	flags.StringVar(&f.configFile, "config", "", "config file (defaults to config.yaml lookup)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runComparison(cmd *cobra.Command, f runFlags) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(f.configFile)
	if err != nil {
		return err
	}
	ctx = infrastructure.EnsureTraceID(ctx)
	logger := infrastructure.WithComponent(infrastructure.NewLogger(cfg.Logging, cmd.ErrOrStderr()), "comparator")

	defaults := cfg.Comparison
	if f.workers > 0 {
		defaults.Workers = f.workers
	}

	paths, err := config.GetPaths(cfg.Paths)
	if err != nil {
		return err
	}
	if f.out == "" {
		if err := paths.EnsureDirectories(); err != nil {
			return err
		}
	}

	svc := services.NewComparisonService(defaults, paths, nil, logger)

	input := resolveInput(paths, f.input)
	ds, err := svc.LoadDatasetFile(ctx, input, f.sheet)
	if err != nil {
		return fmt.Errorf("load %s: %w", input, err)
	}
	for _, reason := range ds.Report.SortedDropReasons() {
		logger.WarnContext(ctx, "rows dropped",
			slog.String("reason", string(reason)),
			slog.Int("count", ds.Report.Dropped[reason]))
	}

	req := services.RunRequest{Records: ds.Records, Addresses: f.addresses}
	if cmd.Flags().Changed("tolerance") {
		req.Tolerance = &f.tolerance
	}
	if cmd.Flags().Changed("max-results") {
		req.MaxResults = &f.maxResults
	}

	out, err := svc.Compare(ctx, req)
	if err != nil {
		return err
	}

	path, err := svc.SaveWorkbook(ctx, f.out, out.Run)
	if err != nil {
		return err
	}
	if f.preview != "" {
		if err := svc.SavePreview(ctx, f.preview, out.Run); err != nil {
			return err
		}
	}

	printRun(cmd.OutOrStdout(), out, ds.Report.Loaded, path)
	return nil
}

// resolveInput looks for a dataset that is not in the working directory
// under the configured data directory
func resolveInput(paths *config.Paths, input string) string {
	if config.FileExists(input) || filepath.IsAbs(input) {
		return input
	}
	if alt := paths.GetDataPath(input); config.FileExists(alt) {
		return alt
	}
	return input
}

func loadConfig(file string) (*config.Config, error) {
	if file != "" {
		return config.LoadFrom(file)
	}
	return config.Load()
}

func printRun(w io.Writer, out *services.RunOutcome, loaded int, path string) {
	s := out.Run.Summary
	fmt.Fprintf(w, "Run %s: %d rows loaded, %d subjects processed, %d matched, %d no match (%s)\n",
		s.RunID, loaded, s.TotalProcessed, s.MatchedCount, s.NoMatchCount, s.Duration.Round(time.Millisecond))
	if len(out.UnknownAddresses) > 0 {
		fmt.Fprintf(w, "Addresses not found: %s\n", strings.Join(out.UnknownAddresses, "; "))
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(exporter.PreviewHeaders, "\t"))
	for _, row := range exporter.BuildPreview(out.Run) {
		overpaid := ""
		if row.Overpaid != nil {
			overpaid = fmt.Sprintf("%.2f", *row.Overpaid)
		}
		fmt.Fprintf(tw, "%s\t%d\t%d\t%s\t%s\n", row.Address, row.MatchesFound, row.Selected, row.Status, overpaid)
	}
	tw.Flush()

	fmt.Fprintf(w, "Results written to %s\n", path)
}

// createRatesCmd prints the state tax rate table
func createRatesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rates",
		Short: "List the state tax rates",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "STATE\tRATE")
			for _, e := range comparables.StateTaxRates() {
				fmt.Fprintf(tw, "%s\t%.4f\n", e.State, e.Rate)
			}
			tw.Flush()
		},
	}
}

// createClassesCmd prints the hotel class vocabulary and adjacency
func createClassesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List hotel classes and the classes each one admits",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "RANK\tLABEL\tADMITS")
			for _, c := range domain.AllHotelClasses() {
				adjacent := make([]string, 0, 4)
				for _, a := range c.Adjacent() {
					adjacent = append(adjacent, fmt.Sprint(int(a)))
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", int(c), c.Label(), strings.Join(adjacent, ","))
			}
			tw.Flush()
		},
	}
}

func createVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), contracts.GetFullVersionString())
		},
	}
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"bootstrapstats/adapters/excel"
	"bootstrapstats/adapters/jsonsample"
	"bootstrapstats/app"
	"bootstrapstats/domain/bootstrap"
	"bootstrapstats/domain/catalog"
	"bootstrapstats/internal"
	"bootstrapstats/internal/config"
)

func main() {
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "bootstrap-cli",
		Short:         "Bootstrap confidence intervals from the command line",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		newListCmd(),
		newDescribeCmd(),
		newRunCmd(),
	)
	return rootCmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available exercises",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, ex := range catalog.All() {
				fmt.Fprintf(out, "%2d  %s %s\n", ex.ID, ex.Icon, ex.Name)
			}
			return nil
		},
	}
}

func newDescribeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "describe [id]",
		Short: "Show an exercise description and its inputs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := bootstrap.ParseAnalysisID(args[0])
			if err != nil {
				return err
			}
			ex, _ := catalog.Lookup(id)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s %s\n\n%s\n\n", ex.Icon, ex.Name, ex.Description)
			fmt.Fprintf(out, "--data1  %s\n", ex.Label1)
			if ex.HasSecondInput() {
				fmt.Fprintf(out, "--data2  %s\n", ex.Label2)
			}
			return nil
		},
	}
}

// runOptions collects the run command flags
type runOptions struct {
	data1, data2    string
	file            string
	column, column2 string
	jsonFile        string
	path, path2     string
	seed            int64
	blockSize       int
	format          string
}

func newRunCmd() *cobra.Command {
	var opts runOptions

	cmd := &cobra.Command{
		Use:   "run [id]",
		Short: "Run a bootstrap analysis",
		Long: `Run one exercise with 1000 bootstrap resamples.

Samples come from comma-separated flags, a spreadsheet column or a JSON path.

Example: bootstrap-cli run 2 --data1 "12,15,11" --data2 "9,10,8" --seed 12345
Example: bootstrap-cli run 4 --file prices.xlsx --column price --column2 volume`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := bootstrap.ParseAnalysisID(args[0])
			if err != nil {
				return err
			}
			var seed *int64
			if cmd.Flags().Changed("seed") {
				seed = &opts.seed
			}
			return runAnalysis(cmd.Context(), cmd.OutOrStdout(), id, opts, seed)
		},
	}

	cmd.Flags().StringVar(&opts.data1, "data1", "", "First sample, comma-separated")
	cmd.Flags().StringVar(&opts.data2, "data2", "", "Second sample, comma-separated")
	cmd.Flags().StringVar(&opts.file, "file", "", "Read samples from an .xlsx or .csv file")
	cmd.Flags().StringVar(&opts.column, "column", "", "Column holding the first sample")
	cmd.Flags().StringVar(&opts.column2, "column2", "", "Column holding the second sample")
	cmd.Flags().StringVar(&opts.jsonFile, "json", "", "Read samples from a JSON document")
	cmd.Flags().StringVar(&opts.path, "path", "", "gjson path of the first sample")
	cmd.Flags().StringVar(&opts.path2, "path2", "", "gjson path of the second sample")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "Random seed for a reproducible run; runs are only seeded when this flag is passed")
	cmd.Flags().IntVar(&opts.blockSize, "block-size", 0, "Block length for exercise 10")
	cmd.Flags().StringVar(&opts.format, "format", "text", "Output format: text or json")

	return cmd
}

func runAnalysis(ctx context.Context, out io.Writer, id bootstrap.AnalysisID, opts runOptions, seed *int64) error {
	if opts.format != "text" && opts.format != "json" {
		return fmt.Errorf("unknown format %q (use text or json)", opts.format)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := internal.NewLogger(internal.ParseLogLevel(cfg.LogLevel))
	service := app.NewAnalysisServiceFromConfig(cfg, logger)

	var res *bootstrap.AnalysisResult
	if opts.file == "" && opts.jsonFile == "" {
		res, err = service.RunText(ctx, app.TextRequest{
			Analysis:  id,
			Data1:     opts.data1,
			Data2:     opts.data2,
			Seed:      seed,
			BlockSize: opts.blockSize,
		})
	} else {
		res, err = runFromFile(ctx, service, id, opts, seed)
	}
	if err != nil {
		return err
	}

	if opts.format == "json" {
		return writeJSON(out, res)
	}
	writeText(out, res)
	return nil
}

func runFromFile(ctx context.Context, service *app.AnalysisService, id bootstrap.AnalysisID, opts runOptions, seed *int64) (*bootstrap.AnalysisResult, error) {
	spec, err := service.Spec(id)
	if err != nil {
		return nil, err
	}
	primary, secondary, err := loadSamples(opts, spec.RequiresEqualLength)
	if err != nil {
		return nil, err
	}
	return service.Run(ctx, app.AnalysisRequest{
		Analysis:  id,
		Primary:   primary,
		Secondary: secondary,
		Seed:      seed,
		BlockSize: opts.blockSize,
	})
}

// loadSamples picks the file sample source from the flags. Paired analyses read
// both columns together so rows stay aligned.
func loadSamples(opts runOptions, paired bool) ([]float64, []float64, error) {
	switch {
	case opts.file != "":
		if opts.column == "" {
			return nil, nil, fmt.Errorf("--column is required with --file")
		}
		reader := excel.NewDataReader(opts.file)
		if opts.column2 == "" {
			xs, err := reader.NumericColumn(opts.column)
			return xs, nil, err
		}
		if paired {
			return reader.PairedColumns(opts.column, opts.column2)
		}
		xs, err := reader.NumericColumn(opts.column)
		if err != nil {
			return nil, nil, err
		}
		ys, err := reader.NumericColumn(opts.column2)
		return xs, ys, err

	case opts.jsonFile != "":
		if opts.path == "" {
			return nil, nil, fmt.Errorf("--path is required with --json")
		}
		doc, err := jsonsample.ReadFile(opts.jsonFile)
		if err != nil {
			return nil, nil, err
		}
		if opts.path2 == "" {
			xs, err := doc.Sample(opts.path)
			return xs, nil, err
		}
		if paired {
			return doc.Paired(opts.path, opts.path2)
		}
		xs, err := doc.Sample(opts.path)
		if err != nil {
			return nil, nil, err
		}
		ys, err := doc.Sample(opts.path2)
		return xs, ys, err

	default:
		return nil, nil, fmt.Errorf("--file or --json is required")
	}
}

func writeText(out io.Writer, res *bootstrap.AnalysisResult) {
	if ex, ok := catalog.Lookup(res.Analysis); ok {
		fmt.Fprintf(out, "%s %s\n", ex.Icon, ex.Name)
	}
	for _, f := range res.Fields() {
		fmt.Fprintf(out, "  %-16s %s\n", f.Name, formatValue(f.Value))
	}
	fmt.Fprintf(out, "  %-16s %s\n", "preview", formatValue(res.Preview))
	fmt.Fprintf(out, "  %-16s %s\n", "run_id", res.RunID)
}

func writeJSON(out io.Writer, res *bootstrap.AnalysisResult) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		*bootstrap.AnalysisResult
		Fields []bootstrap.Field `json:"fields"`
	}{res, res.Fields()})
}

func formatValue(v interface{}) string {
	switch t := v.(type) {
	case []float64:
		parts := make([]string, len(t))
		for i, x := range t {
			parts[i] = fmt.Sprint(x)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	default:
		return fmt.Sprint(v)
	}
}

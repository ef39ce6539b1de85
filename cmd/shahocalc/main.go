package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/shahocalc/premium-calculator/internal/calculation"
	"github.com/shahocalc/premium-calculator/internal/config"
	"github.com/shahocalc/premium-calculator/internal/output"
	"github.com/shahocalc/premium-calculator/internal/repository"
)

var (
	inputFile    string
	outputFormat string
	saveToFile   bool
	verbose      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shahocalc",
		Short: "Social insurance premium calculator",
		Long: `shahocalc computes health, long-term-care and pension premiums for a
company year: grade determinations at hire, the periodic April-June
determination, ad-hoc revisions, bonus premiums, company totals and
filing obligations.`,
	}

	calculateCmd := &cobra.Command{
		Use:   "calculate",
		Short: "Run the yearly calculation from an input file",
		RunE:  runCalculate,
	}
	calculateCmd.Flags().StringVarP(&inputFile, "input", "i", "", "input YAML file (required)")
	calculateCmd.Flags().StringVarP(&outputFormat, "format", "f", "console", "output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	calculateCmd.Flags().BoolVar(&saveToFile, "save", false, "write output to a timestamped file instead of stdout")
	calculateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log calculation progress")
	if err := calculateCmd.MarkFlagRequired("input"); err != nil {
		log.Fatal(err)
	}

	exampleCmd := &cobra.Command{
		Use:   "example",
		Short: "Print an example input file",
		RunE:  runExample,
	}

	rootCmd.AddCommand(calculateCmd, exampleCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCalculate(cmd *cobra.Command, _ []string) error {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile(inputFile)
	if err != nil {
		return err
	}

	repo := repository.NewMemoryFromInput(input)
	engine := calculation.NewEngine(repo)
	if verbose {
		engine.SetLogger(stderrLogger{})
	}

	report, err := engine.CalculateMonthlyTotals(context.Background(), input.CompanyName, input.Year)
	if err != nil {
		return err
	}

	formatter := output.GetFormatterByName(outputFormat)
	if formatter == nil {
		return fmt.Errorf("unknown format %q (available: %s)",
			outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
	}
	if saveToFile {
		name, err := output.WriteFormatted(formatter, report, output.NormalizeFormatName(outputFormat))
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "wrote", name)
		return nil
	}
	data, err := formatter.Format(report)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runExample(cmd *cobra.Command, _ []string) error {
	parser := config.NewInputParser()
	data, err := yaml.Marshal(parser.CreateExampleInput())
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

// stderrLogger routes engine logging to standard error for --verbose runs.
type stderrLogger struct{}

func (stderrLogger) Debugf(format string, args ...any) { log.Printf("DEBUG "+format, args...) }
func (stderrLogger) Infof(format string, args ...any)  { log.Printf("INFO "+format, args...) }
func (stderrLogger) Warnf(format string, args ...any)  { log.Printf("WARN "+format, args...) }
func (stderrLogger) Errorf(format string, args ...any) { log.Printf("ERROR "+format, args...) }

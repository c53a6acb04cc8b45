package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/joho/godotenv"

	"github.com/vishal-24-1/demodashboard/internal/analytics"
	"github.com/vishal-24-1/demodashboard/internal/sales"
	"github.com/vishal-24-1/demodashboard/internal/sales/loader"
	"github.com/vishal-24-1/demodashboard/pkg/config"
	"github.com/vishal-24-1/demodashboard/pkg/logger"
)

func main() {
	from := flag.String("from", "", "range start, YYYY-MM-DD (empty for unbounded)")
	to := flag.String("to", "", "range end, YYYY-MM-DD (empty for today)")
	format := flag.String("format", "console", "output format: console or json")
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "report", Output: os.Stderr})

	if err := godotenv.Load(); err != nil {
		logg.Debug(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "report",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})

	if err := run(context.Background(), cfg, logg, *from, *to, *format, os.Stdout); err != nil {
		logg.Error(context.Background(), "report failed", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logg *logger.Logger, from, to, format string, out io.Writer) error {
	if format != "console" && format != "json" {
		return fmt.Errorf("unknown format %q", format)
	}

	source, closer, err := loader.FromConfig(ctx, cfg, logg)
	if err != nil {
		return err
	}
	defer closer.Close()

	records, report, err := loader.New(sales.NewDecoder(cfg.Dataset.StrictDates), nil, logg).Load(ctx, source)
	if err != nil {
		return err
	}

	session := analytics.NewSession(records, analytics.Options{Currency: cfg.Dashboard.CurrencySymbol})
	if err := session.SetRange(from, to); err != nil {
		return err
	}
	snap := session.Snapshot()

	if format == "json" {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(snap)
	}
	return printConsole(out, snap, report)
}

func printConsole(out io.Writer, snap analytics.Snapshot, report loader.LoadReport) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	fmt.Fprintf(w, "Source\t%s (%d loaded, %d rejected)\n", report.Source, report.Accepted, report.Rejected)
	fmt.Fprintf(w, "Range\t%s .. %s\n", orOpen(snap.From), orToday(snap.To))
	fmt.Fprintf(w, "Records\t%d\n\n", snap.FilteredRecords)

	for _, card := range snap.Cards {
		fmt.Fprintf(w, "%s\t%s\n", card.Title, card.Value)
	}

	fmt.Fprintln(w, "\nSales-through rate\t")
	for _, row := range snap.SalesThroughRate {
		fmt.Fprintf(w, "  %s\t%s\n", row.ProductID, row.Percent())
	}

	fmt.Fprintln(w, "\nUnits sold\t")
	for _, row := range snap.SalesCount {
		fmt.Fprintf(w, "  %s\t%d\n", row.ProductID, row.QuantitySold)
	}

	fmt.Fprintln(w, "\nProfit by style\t")
	for _, row := range snap.ProfitByStyleSize {
		fmt.Fprintf(w, "  %s\t%.2f\n", row.StyleID, row.Total)
	}

	fmt.Fprintln(w, "\nInsights\t")
	for _, text := range snap.Insights {
		fmt.Fprintf(w, "  - %s\t\n", text)
	}
	return w.Flush()
}

func orOpen(v string) string {
	if v == "" {
		return "(start)"
	}
	return v
}

func orToday(v string) string {
	if v == "" {
		return "(today)"
	}
	return v
}

// Report CLI: loads the transactions CSV from a file or URL and emits
// the dashboard views offline — summary tables on stdout, a CSV export
// of the location groupings, and the fraud-by-location chart as a PNG.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"

	"frauddash/internal/domain"
	"frauddash/internal/handler"
	"frauddash/internal/ingest"
	"frauddash/internal/report"
	"frauddash/internal/source"
	"frauddash/pkg/money"
)

var (
	inputPath  = flag.String("input", "transactions.csv", "Path or URL of the transactions CSV")
	outputPath = flag.String("output", "reports", "Directory for chart and CSV outputs")
	format     = flag.String("format", "all", "Output format: text, csv, chart, all")
	pageNum    = flag.Int("page", 1, "Transaction table page to print (100 rows per page)")
	locale     = flag.String("locale", "en-US", "Locale for currency grouping")
)

func main() {
	flag.Parse()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	text, err := source.ForLocation(*inputPath, nil).Fetch(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load CSV: %v\n", err)
		os.Exit(1)
	}

	dataset, err := ingest.ParseTransactions(text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse CSV: %v\n", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(*outputPath, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create output directory: %v\n", err)
		os.Exit(1)
	}

	summary := report.Summarize(dataset)
	sorted := report.SortDataset(dataset)
	page := report.Project(sorted, *pageNum)

	fmt.Printf("Loaded %d transactions from %s.\n", summary.TotalCount, *inputPath)

	if *format == "text" || *format == "all" {
		printSummary(summary)
		printPage(page)
	}

	if *format == "csv" || *format == "all" {
		outputFile := filepath.Join(*outputPath, "locations.csv")
		if err := writeLocationCSV(summary, outputFile); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to write location CSV: %v\n", err)
		} else {
			fmt.Printf("Location CSV saved to: %s\n", outputFile)
		}
	}

	if *format == "chart" || *format == "all" {
		if len(summary.FraudCountsByLocation) == 0 {
			fmt.Println("No fraud data; skipping chart.")
		} else {
			outputFile := filepath.Join(*outputPath, "fraud_by_location.png")
			if err := writeFraudChart(summary, outputFile); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to render chart: %v\n", err)
			} else {
				fmt.Printf("Chart saved to: %s\n", outputFile)
			}
		}
	}
}

// printSummary renders the metric cards and location groupings as
// terminal tables.
func printSummary(summary domain.Summary) {
	formatter := money.NewFormatter(*locale, "$")

	fmt.Println("\n=== Summary ===")
	metrics := tablewriter.NewWriter(os.Stdout)
	metrics.SetHeader([]string{"Metric", "Value"})
	metrics.Append([]string{"Total Transactions", fmt.Sprintf("%d", summary.TotalCount)})
	metrics.Append([]string{"Fraud Count", fmt.Sprintf("%d", summary.FraudCount)})
	metrics.Append([]string{"Fraud Rate", fmt.Sprintf("%.2f%%", summary.FraudRatePercent)})
	metrics.Append([]string{"Total Amount", formatter.Format(summary.TotalAmount)})
	metrics.Render()

	fmt.Println("\n=== Transactions by Location ===")
	locations := tablewriter.NewWriter(os.Stdout)
	locations.SetHeader([]string{"Location", "Transactions", "Fraud"})
	fraud := make(map[string]int, len(summary.FraudCountsByLocation))
	for _, c := range summary.FraudCountsByLocation {
		fraud[c.Location] = c.Count
	}
	for _, c := range summary.CountsByLocation {
		locations.Append([]string{c.Location, fmt.Sprintf("%d", c.Count), fmt.Sprintf("%d", fraud[c.Location])})
	}
	locations.Render()
}

// printPage renders one page of the time-sorted transaction table.
func printPage(page domain.Page) {
	fmt.Printf("\n=== Transactions (page %d of %d) ===\n", page.Number, page.TotalPages)

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"ID", "Merchant", "Location", "Amount", "Date", "Time", "Fraud"})
	for _, tx := range page.Transactions {
		row := handler.NewTableRow(tx)
		fraudLabel := "NO"
		if row.Fraud {
			fraudLabel = "YES"
		}
		table.Append([]string{row.ID, row.Merchant, row.Location, row.Amount, row.Date, row.Time, fraudLabel})
	}
	table.Render()
}

// writeLocationCSV exports the location groupings. Success is only
// reported once every byte is flushed and the file is closed.
func writeLocationCSV(summary domain.Summary, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	fraud := make(map[string]int, len(summary.FraudCountsByLocation))
	for _, c := range summary.FraudCountsByLocation {
		fraud[c.Location] = c.Count
	}

	w := bufio.NewWriter(file)
	fmt.Fprintf(w, "location,transactions,fraud\n")
	for _, c := range summary.CountsByLocation {
		fmt.Fprintf(w, "%s,%d,%d\n", c.Location, c.Count, fraud[c.Location])
	}

	if err := w.Flush(); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// writeFraudChart renders the fraud-by-location bar chart PNG.
func writeFraudChart(summary domain.Summary, outputFile string) error {
	file, err := os.Create(outputFile)
	if err != nil {
		return err
	}

	if err := report.RenderFraudChart(file, summary.FraudCountsByLocation); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

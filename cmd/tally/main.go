package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"tally/internal/cli"
	"tally/internal/config"
	"tally/internal/core"
	"tally/internal/export"
	"tally/internal/ledger"
)

const usage = `Usage: tally <command> [flags]

Commands:
  add         record an income or expense entry
  delete      remove an entry by id
  list        print entries, optionally filtered
  balance     print income minus expense for the filtered entries
  summary     print per-month income/expense/net totals
  categories  print the categories in use
  export      write the filtered entries to a CSV or XLSX file

Filter flags (list, balance, summary, export):
  -from YYYY-MM-DD   inclusive start date
  -to YYYY-MM-DD     inclusive end date
  -category NAME     exact category match ("all" for every category)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cli.LoadEnvFile()

	cfg := config.Load()
	level, _ := config.ParseLevel(cfg.LogLevel)
	logger := cli.SetupLogger(level)
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	result := cli.InitBackend(ctx, logger, cfg)
	if result.Cleanup != nil {
		defer func() {
			if err := result.Cleanup(); err != nil {
				logger.Warn("Backend cleanup failed", "error", err)
			}
		}()
	}

	store := ledger.NewStore(result.Snapshots)
	if err := store.Load(ctx); err != nil {
		logger.Error("Failed to load ledger", "error", err)
		os.Exit(1)
	}

	var err error
	switch os.Args[1] {
	case "add":
		err = runAdd(ctx, store, os.Args[2:])
	case "delete":
		err = runDelete(ctx, store, os.Args[2:])
	case "list":
		err = runList(store, os.Args[2:])
	case "balance":
		err = runBalance(store, os.Args[2:])
	case "summary":
		err = runSummary(store, os.Args[2:])
	case "categories":
		err = runCategories(store, os.Args[2:])
	case "export":
		err = runExport(store, os.Args[2:])
	case "help", "-h", "--help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func runAdd(ctx context.Context, store *ledger.Store, args []string) error {
	fs := flag.NewFlagSet("add", flag.ExitOnError)
	name := fs.String("name", "", "entry label")
	amount := fs.String("amount", "", "positive decimal amount")
	typ := fs.String("type", "expense", "income or expense")
	date := fs.String("date", core.Today(), "entry date (YYYY-MM-DD)")
	category := fs.String("category", "", "category label")
	fs.Parse(args)

	// Caller-side validation: each failing field gets its own message
	// before the core is ever called.
	var problems []string
	if strings.TrimSpace(*name) == "" {
		problems = append(problems, "name: must not be empty")
	}
	parsed, amountErr := core.ParseAmount(*amount)
	if amountErr != nil {
		problems = append(problems, "amount: must be a positive decimal number")
	}
	if *typ != string(core.Income) && *typ != string(core.Expense) {
		problems = append(problems, "type: must be income or expense")
	}
	if _, err := core.ParseDay(*date); err != nil {
		problems = append(problems, "date: must be YYYY-MM-DD")
	}
	if strings.TrimSpace(*category) == "" {
		problems = append(problems, "category: must not be empty")
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid input:\n  %s", strings.Join(problems, "\n  "))
	}

	e, err := store.Add(ctx, *name, parsed, core.ParseType(*typ), *date, *category)
	if err != nil {
		return err
	}
	fmt.Printf("added %d: %s %s %s (%s, %s)\n", e.ID, e.Name, e.Amount, e.Type, e.Date, e.Category)
	return nil
}

func runDelete(ctx context.Context, store *ledger.Store, args []string) error {
	fs := flag.NewFlagSet("delete", flag.ExitOnError)
	id := fs.Int64("id", 0, "entry id")
	yes := fs.Bool("y", false, "skip the confirmation prompt")
	fs.Parse(args)

	if *id == 0 {
		return fmt.Errorf("delete: -id is required")
	}
	if !*yes && !confirm(fmt.Sprintf("delete entry %d?", *id)) {
		fmt.Println("aborted")
		return nil
	}
	if err := store.Delete(ctx, *id); err != nil {
		return err
	}
	fmt.Printf("deleted %d\n", *id)
	return nil
}

func runList(store *ledger.Store, args []string) error {
	entries, err := filtered(store, "list", args)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDATE\tTYPE\tAMOUNT\tCATEGORY\tNAME")
	for _, e := range entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Date, e.Type, e.Amount, e.Category, e.Name)
	}
	return w.Flush()
}

func runBalance(store *ledger.Store, args []string) error {
	entries, err := filtered(store, "balance", args)
	if err != nil {
		return err
	}
	fmt.Println(core.Balance(entries))
	return nil
}

func runSummary(store *ledger.Store, args []string) error {
	entries, err := filtered(store, "summary", args)
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "MONTH\tINCOME\tEXPENSE\tNET")
	for _, m := range core.MonthlySummary(entries) {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", m.Month, m.Income, m.Expense, m.Net)
	}
	return w.Flush()
}

func runCategories(store *ledger.Store, args []string) error {
	fs := flag.NewFlagSet("categories", flag.ExitOnError)
	fs.Parse(args)
	for _, c := range core.Categories(store.Entries()) {
		fmt.Println(c)
	}
	return nil
}

func runExport(store *ledger.Store, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	from := fs.String("from", "", "inclusive start date (YYYY-MM-DD)")
	to := fs.String("to", "", "inclusive end date (YYYY-MM-DD)")
	category := fs.String("category", core.CategoryAll, "category filter")
	format := fs.String("format", "csv", "csv or xlsx")
	out := fs.String("out", "", "output path (default transactions_<today>.<format>)")
	fs.Parse(args)

	entries := core.Select(store.Entries(), core.Criteria{
		Start:    *from,
		End:      *to,
		Category: *category,
	})

	path := *out
	if path == "" {
		path = export.Filename(core.Today(), *format)
	}

	switch *format {
	case "csv":
		if err := os.WriteFile(path, []byte(export.CSV(entries)), 0644); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
	case "xlsx":
		f, err := export.Workbook(entries)
		if err != nil {
			return fmt.Errorf("build workbook: %w", err)
		}
		defer f.Close()
		if err := f.SaveAs(path); err != nil {
			return fmt.Errorf("write export: %w", err)
		}
	default:
		return fmt.Errorf("unknown export format: %s", *format)
	}
	fmt.Printf("wrote %d entries to %s\n", len(entries), path)
	return nil
}

func filtered(store *ledger.Store, name string, args []string) ([]core.Entry, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	from := fs.String("from", "", "inclusive start date (YYYY-MM-DD)")
	to := fs.String("to", "", "inclusive end date (YYYY-MM-DD)")
	category := fs.String("category", core.CategoryAll, "category filter")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return core.Select(store.Entries(), core.Criteria{
		Start:    *from,
		End:      *to,
		Category: *category,
	}), nil
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)
	sc := bufio.NewScanner(os.Stdin)
	if !sc.Scan() {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(sc.Text()))
	return answer == "y" || answer == "yes"
}

// ABOUTME: Import CLI commands for CSV contacts and YAML scripts
// ABOUTME: CSV import previews by default and only writes with --yes
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/harperreed/outreach/importer"
	"github.com/harperreed/outreach/store"
)

// ImportCSVCommand previews a CSV import and commits it with --yes.
func ImportCSVCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("import-csv", flag.ExitOnError)
	yes := fs.Bool("yes", false, "Import without stopping at the preview")
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("CSV file path required")
	}
	path := fs.Arg(0)

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	preview, err := importer.New().Preview(string(data), s.Contacts())
	if errors.Is(err, importer.ErrTooFewLines) {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}

	printPreview(preview)
	if preview.Empty() {
		fmt.Fprintln(stdout, "\nNothing to import")
		return nil
	}
	if !*yes {
		fmt.Fprintln(stdout, "\nPreview only. Re-run with --yes to import these contacts.")
		return nil
	}

	added, err := s.CommitImport(ctx, preview.Candidates)
	if err != nil {
		return fmt.Errorf("failed to import contacts: %w", err)
	}
	fmt.Fprintf(stdout, "\n✓ Imported %d contact(s)\n", added)
	return nil
}

func printPreview(preview *importer.Preview) {
	fmt.Fprintln(stdout, "Columns:")
	for _, col := range preview.Columns {
		fmt.Fprintf(stdout, "  %-24s → %s\n", col.Header, col.Role)
	}
	fmt.Fprintf(stdout, "\n%d row(s): %d new, %d duplicate(s), %d skipped\n",
		preview.Rows, len(preview.Candidates), preview.Duplicates, preview.Skipped)

	if preview.Empty() {
		return
	}
	fmt.Fprintln(stdout)
	w := newTable()
	_, _ = fmt.Fprintln(w, "VENDOR\tCONTACT\tEMAIL\tPHONE\tSTATUS")
	for _, c := range preview.Candidates {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			truncate(c.VendorName, 30), orDash(c.ContactName), orDash(c.Email), orDash(c.Phone), c.Status)
	}
	_ = w.Flush()
}

// ImportScriptsCommand loads outreach script templates from a YAML file.
func ImportScriptsCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("import-scripts", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("YAML file path required")
	}
	path := fs.Arg(0)

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	added, err := s.ImportScripts(ctx, f)
	if err != nil {
		return fmt.Errorf("failed to import scripts: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Imported %d script(s)\n", added)
	return nil
}

// ListScriptsCommand prints the stored script templates.
func ListScriptsCommand(s *store.Store, args []string) error {
	fs := flag.NewFlagSet("list-scripts", flag.ExitOnError)
	_ = fs.Parse(args)

	scripts := s.Scripts()
	if len(scripts) == 0 {
		fmt.Fprintln(stdout, "No scripts found")
		return nil
	}

	w := newTable()
	_, _ = fmt.Fprintln(w, "NAME\tCATEGORY\tCONTENT\tID")
	_, _ = fmt.Fprintln(w, "----\t--------\t-------\t--")
	for _, sc := range scripts {
		_, _ = fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			sc.Name, orDash(sc.Category), truncate(sc.Content, 40), sc.ID)
	}
	_ = w.Flush()
	return nil
}

// DeleteScriptCommand removes a script template.
func DeleteScriptCommand(ctx context.Context, s *store.Store, args []string) error {
	fs := flag.NewFlagSet("delete-script", flag.ExitOnError)
	_ = fs.Parse(args)

	if fs.NArg() < 1 {
		return fmt.Errorf("script ID required")
	}
	if err := s.DeleteScript(ctx, fs.Arg(0)); err != nil {
		return fmt.Errorf("failed to delete script: %w", err)
	}
	fmt.Fprintf(stdout, "✓ Deleted script %s\n", fs.Arg(0))
	return nil
}

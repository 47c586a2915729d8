// ABOUTME: Entry point for the outreach CLI, MCP server and sync server
// ABOUTME: Routes to subcommands after loading config and the record store
package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/harperreed/outreach/charm"
	"github.com/harperreed/outreach/cli"
	"github.com/harperreed/outreach/config"
	"github.com/harperreed/outreach/db"
	"github.com/harperreed/outreach/store"
	"github.com/harperreed/outreach/web"
	"github.com/rs/zerolog"
)

const version = "0.1.0"

func main() {
	showVersion := flag.Bool("version", false, "Show version and exit")
	dbPath := flag.String("db-path", "", "Database path (default: ~/.local/share/outreach/outreach.db)")
	remote := flag.String("remote", "", "Remote copy: none, charm or http (overrides config)")

	// Parse global flags but don't fail on unknown (for subcommands)
	_ = flag.CommandLine.Parse(os.Args[1:])

	if *showVersion {
		fmt.Printf("outreach version %s\n", version)
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *remote != "" {
		cfg.Remote = *remote
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	}
	log := cfg.NewLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log, args[0], args[1:]); err != nil {
		stop()
		log.Error().Err(err).Str("command", args[0]).Msg("command failed")
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger, command string, args []string) error {
	switch command {
	case "sync":
		return runSync(ctx, cfg, log, args)
	case "crm", "mcp", "tui", "viz", "serve":
	default:
		printUsage()
		return fmt.Errorf("unknown command: %s", command)
	}

	database, err := db.OpenDatabase(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() { _ = database.Close() }()

	// serve holds other sessions' state; it never loads a store of its own.
	if command == "serve" {
		return cli.ServeCommand(ctx, cfg, database, log, args)
	}

	s, closeStore, err := openStore(ctx, cfg, database, log)
	if err != nil {
		return err
	}
	defer closeStore()

	switch command {
	case "crm":
		return runCRM(ctx, s, args)
	case "mcp":
		return cli.MCPCommand(ctx, s, log, version)
	case "tui":
		return cli.TUICommand(s)
	case "viz":
		return runViz(ctx, s, args)
	}
	return nil
}

// openStore wires the SQLite cache and the configured remote into a loaded
// store. The returned func waits for pending remote saves.
func openStore(ctx context.Context, cfg *config.Config, database *sql.DB, log zerolog.Logger) (*store.Store, func(), error) {
	var remote store.Backend
	switch cfg.Remote {
	case config.RemoteCharm:
		charmCfg, err := charm.LoadConfig()
		if err != nil {
			return nil, nil, fmt.Errorf("failed to load charm config: %w", err)
		}
		client, err := charm.Open(charmCfg)
		if err != nil {
			// Local-only until the device is linked.
			log.Warn().Err(err).Msg("charm unavailable, using local cache only")
		} else {
			remote = charm.NewRemote(client)
		}
	case config.RemoteHTTP:
		remote = web.NewClient(cfg.RemoteURL, cfg.RemoteToken, cfg.RemoteTimeout)
	}

	s := store.New(db.NewCache(database), remote,
		store.WithLogger(log),
		store.WithRemoteTimeout(cfg.RemoteTimeout),
	)
	source := s.Load(ctx)
	log.Debug().Str("source", source).Str("db", cfg.DBPath).Msg("state loaded")

	return s, s.Wait, nil
}

func runCRM(ctx context.Context, s *store.Store, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("crm requires a subcommand")
	}

	crmArgs := args[1:]
	switch args[0] {
	// Contact commands
	case "add-contact":
		return cli.AddContactCommand(ctx, s, crmArgs)
	case "list-contacts":
		return cli.ListContactsCommand(s, crmArgs)
	case "update-contact":
		return cli.UpdateContactCommand(ctx, s, crmArgs)
	case "delete-contact":
		return cli.DeleteContactCommand(ctx, s, crmArgs)
	case "bulk-status":
		return cli.BulkStatusCommand(ctx, s, crmArgs)
	case "tag":
		return cli.TagCommand(ctx, s, crmArgs)
	case "log-activity":
		return cli.LogActivityCommand(ctx, s, crmArgs)
	case "delete-activity":
		return cli.DeleteActivityCommand(ctx, s, crmArgs)

	// Import commands
	case "import-csv":
		return cli.ImportCSVCommand(ctx, s, crmArgs)
	case "import-scripts":
		return cli.ImportScriptsCommand(ctx, s, crmArgs)
	case "list-scripts":
		return cli.ListScriptsCommand(s, crmArgs)
	case "delete-script":
		return cli.DeleteScriptCommand(ctx, s, crmArgs)

	// Task commands
	case "add-task":
		return cli.AddTaskCommand(ctx, s, crmArgs)
	case "complete-task":
		return cli.CompleteTaskCommand(ctx, s, crmArgs)
	case "reopen-task":
		return cli.ReopenTaskCommand(ctx, s, crmArgs)
	case "delete-task":
		return cli.DeleteTaskCommand(ctx, s, crmArgs)
	case "list-tasks":
		return cli.ListTasksCommand(s, crmArgs)

	// Project commands
	case "add-project":
		return cli.AddProjectCommand(ctx, s, crmArgs)
	case "list-projects":
		return cli.ListProjectsCommand(s, crmArgs)
	}

	printUsage()
	return fmt.Errorf("unknown crm command: %s", args[0])
}

func runViz(ctx context.Context, s *store.Store, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("viz requires a subcommand")
	}

	switch args[0] {
	case "pipeline":
		return cli.VizPipelineCommand(ctx, s, args[1:])
	case "dashboard":
		return cli.VizDashboardCommand(s, args[1:])
	}

	printUsage()
	return fmt.Errorf("unknown viz command: %s", args[0])
}

func runSync(ctx context.Context, cfg *config.Config, log zerolog.Logger, args []string) error {
	if len(args) == 0 {
		printUsage()
		return fmt.Errorf("sync requires a subcommand")
	}

	switch args[0] {
	case "link":
		return charm.SyncLinkCommand(args[1:])
	case "status":
		return charm.SyncStatusCommand(args[1:])
	case "auto":
		return charm.SetAutoSyncCommand(args[1:])
	case "google":
		database, err := db.OpenDatabase(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer func() { _ = database.Close() }()

		s, closeStore, err := openStore(ctx, cfg, database, log)
		if err != nil {
			return err
		}
		defer closeStore()
		return cli.SyncGoogleCommand(ctx, s, log, args[1:])
	}

	printUsage()
	return fmt.Errorf("unknown sync command: %s", args[0])
}

func printUsage() {
	fmt.Printf(`outreach v%s - prospect outreach tracker

USAGE:
  outreach [global flags] <command> [subcommand] [flags]

GLOBAL FLAGS:
  --version              Show version and exit
  --db-path <path>       Database path (default: ~/.local/share/outreach/outreach.db)
  --remote <kind>        Remote copy: none, charm or http (default from config)

COMMANDS:
  crm                    Contact, task and project commands
  mcp                    Start MCP server for Claude Desktop
  tui                    Interactive contact list
  serve                  Run the shared sync server
  sync                   Charm sync and Google Contacts import
  viz                    Pipeline graph and dashboard

CRM COMMANDS:
  outreach crm add-contact      Add a contact
    --vendor, --company, --name, --title, --email, --phone, --website,
    --category, --segment, --status, --project, --notes
    At least one of vendor, company, name, email or phone is required

  outreach crm list-contacts    List contacts
    --query <text>              Search names, email and phone
    --status, --category, --segment, --project, --tag
    --sort <column> [--desc]    e.g. vendorName, status, lastContact
    --limit <n>                 Max results (default: 50)

  outreach crm update-contact [flags] <id>   Edit a contact; --vendor, --name, --email,
                                             --phone, --website, --status, --project, --notes
  outreach crm delete-contact <id>           Delete a contact and its activity
  outreach crm bulk-status --status <s> <id>...
  outreach crm tag --tag <name> [--color c] <id>...
  outreach crm log-activity --contact <id> [--type t] [--notes n] [--follow-up YYYY-MM-DD]
  outreach crm delete-activity <id>

  outreach crm import-csv [--yes] <file.csv> Preview a CSV import; --yes saves it
  outreach crm import-scripts <file.yaml>    Load outreach script templates
  outreach crm list-scripts
  outreach crm delete-script <id>

  outreach crm add-task --title <t> [--contact id] [--priority p] [--due date] [--project p]
  outreach crm complete-task <id>
  outreach crm reopen-task <id>
  outreach crm delete-task <id>
  outreach crm list-tasks [--all] [--project p]

  outreach crm add-project --name <n> [--id id] [--status s] [--owner o] [--description d]
  outreach crm list-projects

SYNC COMMANDS:
  outreach sync link             Link this device to Charm
  outreach sync status           Show Charm sync status
  outreach sync auto --enable|--disable
  outreach sync google [--dry-run] [--reauth]
                                 Import Google Contacts (needs GOOGLE_CLIENT_ID/SECRET)

SERVER:
  outreach serve [--addr :8787] [--redis redis://host:6379/0]

VIZ COMMANDS:
  outreach viz pipeline [--format dot|svg|png] [--output file]
  outreach viz dashboard

CONFIG:
  ~/.config/outreach/config.json, .env, and OUTREACH_* environment variables

EXAMPLES:
  # Preview then import a vendor list
  outreach crm import-csv vendors.csv
  outreach crm import-csv --yes vendors.csv

  # Everyone who responded, most recently contacted first
  outreach crm list-contacts --status Responded --sort lastContact --desc

`, version)
}

package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/benyamin-persia/dice-automation-apply/browser"
	"github.com/benyamin-persia/dice-automation-apply/config"
	"github.com/benyamin-persia/dice-automation-apply/creds"
	"github.com/benyamin-persia/dice-automation-apply/ledger"
	"github.com/benyamin-persia/dice-automation-apply/models"
	"github.com/benyamin-persia/dice-automation-apply/prompt"
	"github.com/benyamin-persia/dice-automation-apply/report"
	"github.com/benyamin-persia/dice-automation-apply/services"
	"github.com/benyamin-persia/dice-automation-apply/storage"
)

func main() {
	cfgPath := flag.String("config", "config.yml",
		"Optional YAML config file (missing file = defaults)")
	flag.Parse()

	cfg := config.Default()
	if err := cfg.ApplyFile(*cfgPath); err != nil {
		log.Fatalf("✗ %v", err)
	}

	p := prompt.New(os.Stdin, os.Stdout)

	credentials, err := creds.Resolve(p)
	if err != nil {
		log.Fatalf("✗ %v", err)
	}

	resolveFilters(&cfg, p)
	mode := resolveMode(cfg, p)

	log.Printf("╔═══════════════════════════════════════════════════╗")
	log.Printf("║           Dice Auto-Apply Automation              ║")
	log.Printf("╚═══════════════════════════════════════════════════╝")
	log.Printf("Title    : %s", cfg.JobTitle)
	log.Printf("Posted   : %s", cfg.PostedDate)
	log.Printf("Types    : %s", strings.Join(cfg.EmploymentTypes, ", "))
	if len(cfg.WorkSettings) > 0 {
		log.Printf("Settings : %s", strings.Join(cfg.WorkSettings, ", "))
	}
	log.Printf("Mode     : %s", mode)
	log.Printf("Ledger   : %s", cfg.LedgerFile)
	log.Printf("Output   : %s, %s", cfg.CSVFile, cfg.JSONFile)
	log.Printf("Search   : %s", cfg.SearchURL())

	led, err := ledger.Open(cfg.LedgerFile)
	if err != nil {
		log.Fatalf("✗ %v", err)
	}
	defer led.Close()
	log.Printf("Applied  : %d job(s) on record", led.Len())

	rootCtx, cancelRoot := context.WithTimeout(context.Background(), cfg.GlobalTimeout)
	defer cancelRoot()

	session, shutdown := browser.New(rootCtx, cfg)
	defer shutdown()

	result := services.Run(session, cfg, credentials, mode, confirmer{p}, led)

	// Flush whatever accumulated, even after a mid-run failure.
	flushOutputs(cfg, result)

	summary := report.BuildSummary(result)
	log.Printf("═══════════════════════════════════════════════════")
	log.Printf("  DONE")
	log.Printf("  STATS")
	log.Printf("    Candidates Discovered : %d", summary.Discovered)
	log.Printf("    Processed This Run    : %d", summary.Processed)
	log.Printf("    Applications Sent     : %d", summary.Applied)
	log.Printf("    Declined / Failed     : %d", summary.NotApplied)
	log.Printf("    Skipped (on record)   : %d", summary.Skipped)
	if len(summary.TopSkills) > 0 {
		log.Printf("    Top Requested Skills")
		for i, sc := range summary.TopSkills {
			log.Printf("      %d) %-30s ×%d", i+1, sc.Skill, sc.Count)
		}
	}
	if result.Err != nil {
		log.Printf("  ⚠ run ended early: %v", result.Err)
	}
	log.Printf("═══════════════════════════════════════════════════")

	p.Line("Press Enter to exit and close the browser...")
}

// confirmer adapts the interactive prompter to the workflow's Confirmer.
type confirmer struct {
	p *prompt.Prompter
}

func (c confirmer) Confirm(title string) bool {
	return c.p.YesNo(fmt.Sprintf("Do you want to apply for '%s'?", title), true)
}

// resolveFilters fills in any filter not already set by config file or env,
// interactively unless the run is non-interactive.
func resolveFilters(cfg *config.Config, p *prompt.Prompter) {
	if cfg.JobTitle == "" {
		if !cfg.NonInteractive {
			cfg.JobTitle = p.Line("Enter the job title, if left blank, default to QA tester: ")
		}
		if cfg.JobTitle == "" {
			cfg.JobTitle = "QA tester"
		}
	}

	if cfg.PostedDate == "" {
		choice := ""
		if !cfg.NonInteractive {
			fmt.Println("Select posted date filter:")
			fmt.Println(" 0. Any date")
			fmt.Println(" 1. Today")
			fmt.Println(" 3. Last 3 days")
			fmt.Println(" 7. Last 7 days")
			choice = p.Line("Enter choice number (0, 1, 3 or 7): ")
		}
		cfg.PostedDate = config.ResolvePostedDate(choice)
	}

	if len(cfg.EmploymentTypes) == 0 {
		input := ""
		if !cfg.NonInteractive {
			fmt.Println("\nSelect employment type(s) (comma-separated numbers, blank = all):")
			fmt.Println(" 1. FULLTIME")
			fmt.Println(" 2. PARTTIME")
			fmt.Println(" 3. CONTRACTS")
			fmt.Println(" 4. THIRD_PARTY")
			input = p.Line("Your choice: ")
		}
		cfg.EmploymentTypes = config.ResolveEmploymentTypes(input)
	}

	if len(cfg.WorkSettings) == 0 && !cfg.NonInteractive {
		fmt.Println("\nSelect work setting(s) (comma-separated numbers, blank = none):")
		fmt.Println(" 1. On-Site")
		fmt.Println(" 2. Hybrid")
		fmt.Println(" 3. Remote")
		cfg.WorkSettings = config.ResolveWorkSettings(p.Line("Your choice: "))
	}
}

// resolveMode picks the run-wide application mode: DICE_MODE, else a
// prompt. A non-interactive run without a mode applies to nothing — the
// workflow treats the unknown mode as "never apply".
func resolveMode(cfg config.Config, p *prompt.Prompter) models.Mode {
	if v := strings.TrimSpace(os.Getenv("DICE_MODE")); v != "" {
		return models.ParseMode(v)
	}
	if cfg.NonInteractive {
		return models.Mode("")
	}
	fmt.Println("\nSelect application mode:")
	fmt.Println(" 1. Auto Apply")
	fmt.Println(" 2. Supervised")
	return models.ParseMode(p.Line("Enter 1 for Auto Apply or 2 for Supervised: "))
}

// flushOutputs writes the CSV and JSON exports and, when enabled, mirrors
// the records into Postgres. Failures are reported per sink so one broken
// sink never loses the others.
func flushOutputs(cfg config.Config, result models.RunResult) {
	if n, err := report.WriteCSV(cfg.CSVFile, result.Records); err != nil {
		log.Printf("✗ failed to write CSV: %v", err)
	} else {
		log.Printf("✓ %d row(s) → %s", n, cfg.CSVFile)
	}

	if n, err := report.WriteJSON(cfg.JSONFile, result.Records); err != nil {
		log.Printf("✗ failed to write JSON: %v", err)
	} else {
		log.Printf("✓ %d record(s) → %s", n, cfg.JSONFile)
	}

	if !cfg.DBEnable {
		return
	}
	store, err := storage.NewPostgresStore(cfg)
	if err != nil {
		log.Printf("⚠ postgres unavailable, skipping DB mirror: %v", err)
		return
	}
	defer store.Close()

	dbCtx, cancelDB := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelDB()
	if n, err := store.SaveRecords(dbCtx, result.Records); err != nil {
		log.Printf("⚠ failed to store records in PostgreSQL: %v", err)
	} else {
		log.Printf("✓ %d record(s) upserted → job_applications table", n)
	}
}

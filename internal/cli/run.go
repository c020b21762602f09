package cli

import (
	"fmt"
	"os"

	"ledgerfix/internal/logger"
	"ledgerfix/internal/service"
	"ledgerfix/pkg/report"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full purge → correct → regenerate pipeline",
	Long: `Run executes the reconciliation pipeline end to end:

  1. Purge all previously generated automatic billing entries by provenance.
  2. Correct every issued document's VES totals from the historical rate
     recovered from its linked order.
  3. Regenerate one balanced journal entry per corrected document.

Each stage is idempotent; re-running over unchanged data reproduces the same
ledger. Per-document problems are counted and reported, never fatal.`,
	Example: `  # Report what would change, mutate nothing
  reconciler run --dry-run

  # Repair a single tenant
  reconciler run --tenant 7b0c6f2a-9d1e-4f3b-8a57-2f90d1c44b11`,
	RunE: runPipeline,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().Bool("dry-run", false, "Report only, mutate nothing")
	runCmd.Flags().String("tenant", "", "Restrict every stage to one tenant id")
	runCmd.Flags().Bool("json", false, "Print the summary as JSON")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("run")

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	asJSON, _ := cmd.Flags().GetBool("json")
	tenantID, err := tenantFlag(cmd)
	if err != nil {
		return err
	}

	st, err := openStores()
	if err != nil {
		return err
	}

	log.Info().
		Bool("dry_run", dryRun).
		Msg("starting reconciliation run")

	reconciler := service.NewReconciler(st.docs, st.orders, st.entries, st.accounts, log)
	summary, err := reconciler.Run(cmd.Context(), service.RunOptions{
		DryRun:   dryRun,
		TenantID: tenantID,
	})
	if err != nil {
		return err
	}

	if asJSON {
		return report.JSON(os.Stdout, summary)
	}
	printSummary(summary)
	return nil
}

func printSummary(summary *service.Summary) {
	w := os.Stdout

	title := "Reconciliation summary"
	if summary.DryRun {
		title += " (dry run, nothing mutated)"
	}
	report.Section(w, title)
	if summary.TenantID != nil {
		report.KV(w, "tenant", *summary.TenantID)
	}
	report.KV(w, "entries purged", fmt.Sprintf("%d matched, %d deleted", summary.PurgedMatched, summary.PurgedDeleted))
	report.KV(w, "documents fixed", summary.Fixed)
	report.KV(w, "entries regenerated", summary.Regenerated)
	printCounter(w, "skipped: no order", summary.SkippedNoOrder)
	printCounter(w, "skipped: no rate", summary.SkippedNoRate)
	printCounter(w, "skipped: not applicable", summary.SkippedNotApplicable)
	printCounter(w, "skipped: zero VES total", summary.SkippedZeroTotal)
	printCounter(w, "skipped: missing accounts", summary.SkippedMissingAccounts)
	printCounter(w, "rejected: unbalanced", summary.RejectedUnbalanced)
}

func printCounter(w *os.File, label string, c service.Counter) {
	value := fmt.Sprintf("%d", c.Count)
	if len(c.Samples) > 0 {
		value += fmt.Sprintf("  (e.g. %v)", c.Samples)
	}
	report.KV(w, label, value)
}

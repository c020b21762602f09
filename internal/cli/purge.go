package cli

import (
	"os"

	"ledgerfix/internal/logger"
	"ledgerfix/internal/service"
	"ledgerfix/pkg/report"

	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge",
	Short: "Purge automatic billing entries without regenerating",
	Long: `Purge deletes every journal entry created by an automatic billing
generator, matched by structured provenance tag or by the legacy free-text
descriptions of pre-tag entries. It is the first pipeline stage, exposed
standalone because each stage is independently retryable.

Always inspect a --dry-run first: it reports the exact count and a
representative sample with zero mutation.`,
	RunE: runPurge,
}

func init() {
	rootCmd.AddCommand(purgeCmd)

	purgeCmd.Flags().Bool("dry-run", false, "Report only, mutate nothing")
	purgeCmd.Flags().String("tenant", "", "Restrict the purge to one tenant id")
}

func runPurge(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("purge")

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	tenantID, err := tenantFlag(cmd)
	if err != nil {
		return err
	}

	st, err := openStores()
	if err != nil {
		return err
	}

	purger := service.NewLedgerPurger(st.entries, log)
	result, err := purger.Purge(cmd.Context(), tenantID, dryRun)
	if err != nil {
		return err
	}

	w := os.Stdout
	title := "Purge summary"
	if result.DryRun {
		title += " (dry run, nothing mutated)"
	}
	report.Section(w, title)
	report.KV(w, "entries matched", result.Matched)
	report.KV(w, "entries deleted", result.Deleted)
	for _, entry := range result.Sample {
		report.KV(w, "sample", entry.Description)
	}
	return nil
}

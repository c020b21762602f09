package cli

import (
	"fmt"
	"os"

	"ledgerfix/internal/service"
	"ledgerfix/pkg/report"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Print a tenant's trial balance",
	Long: `Verify aggregates every journal entry line of one tenant into a trial
balance and checks that total debits equal total credits. Run it after a
reconciliation to confirm the ledger is healthy.`,
	RunE: runVerify,
}

func init() {
	rootCmd.AddCommand(verifyCmd)

	verifyCmd.Flags().String("tenant", "", "Tenant id to verify (required)")
	verifyCmd.Flags().Bool("json", false, "Print the report as JSON")
	_ = verifyCmd.MarkFlagRequired("tenant")
}

func runVerify(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	tenantID, err := tenantFlag(cmd)
	if err != nil {
		return err
	}
	if tenantID == nil {
		return fmt.Errorf("--tenant is required")
	}

	st, err := openStores()
	if err != nil {
		return err
	}

	trialBalance := service.NewTrialBalanceService(st.entries)
	result, err := trialBalance.Report(cmd.Context(), *tenantID)
	if err != nil {
		return err
	}

	if asJSON {
		return report.JSON(os.Stdout, result)
	}

	w := os.Stdout
	report.Section(w, fmt.Sprintf("Trial balance for tenant %s", tenantID))
	for _, row := range result.Rows {
		report.KV(w, fmt.Sprintf("%s %s", row.Code, row.Name),
			fmt.Sprintf("debit %s / credit %s", row.TotalDebit.StringFixed(2), row.TotalCredit.StringFixed(2)))
	}
	report.KV(w, "total debit", result.TotalDebit.StringFixed(2))
	report.KV(w, "total credit", result.TotalCredit.StringFixed(2))
	report.KV(w, "balanced", result.Balanced)
	return nil
}

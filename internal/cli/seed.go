package cli

import (
	"fmt"

	"ledgerfix/internal/logger"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed a tenant's default chart of accounts",
	Long: `Seed creates the default ledger accounts (receivable, revenue, VAT)
for a tenant, skipping codes that already exist. The regeneration stage never
fabricates accounts itself; run seed first for tenants flagged with missing
accounts.`,
	RunE: runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().String("tenant", "", "Tenant id to seed (required)")
	_ = seedCmd.MarkFlagRequired("tenant")
}

func runSeed(cmd *cobra.Command, args []string) error {
	log := logger.WithComponent("seed")

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

	if err := st.accounts.Seed(cmd.Context(), *tenantID); err != nil {
		return fmt.Errorf("failed to seed chart of accounts: %w", err)
	}

	log.Info().Stringer("tenant", *tenantID).Msg("default chart of accounts seeded")
	return nil
}

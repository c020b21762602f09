package cli

import (
	"fmt"
	"os"

	"ledgerfix/internal/database"
	"ledgerfix/internal/logger"
	"ledgerfix/internal/repository"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var version = "2.0.0"

var rootCmd = &cobra.Command{
	Use:   "reconciler",
	Short: "Dual-currency ledger reconciliation for billing documents",
	Long: `reconciler repairs historical billing records whose captured exchange
rate was wrong, missing or defaulted to 1:1, then regenerates the automatic
journal entries with the rate truly in effect at sale time.

It is an offline maintenance tool: run it as an exclusive batch job, never
inline with live transactions. Concurrent runs against the same tenant must
be prevented by the caller.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level, _ := cmd.Flags().GetString("log-level")
		format, _ := cmd.Flags().GetString("log-format")
		return logger.Setup(logger.Config{Level: level, Format: format})
	},
}

// Execute runs the CLI. Exit code is non-zero only on unrecoverable
// connectivity or setup failure; runs that merely skipped documents exit 0.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cli")
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	defaults := logger.DefaultConfig()
	rootCmd.PersistentFlags().String("log-level", defaults.Level, "Log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", defaults.Format, "Log format (console, json)")
}

// stores bundles the wired repositories for one command invocation.
type stores struct {
	db       *gorm.DB
	docs     repository.BillingDocumentRepository
	orders   repository.OrderRepository
	entries  repository.JournalEntryRepository
	accounts repository.ChartOfAccountRepository
}

// openStores connects to the database and wires the repositories.
func openStores() (*stores, error) {
	cfg := database.ConfigFromEnv()
	db, err := database.NewConnection(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	txManager := repository.NewTransactionManager(db)
	return &stores{
		db:       db,
		docs:     repository.NewBillingDocumentRepository(db),
		orders:   repository.NewOrderRepository(db),
		entries:  repository.NewJournalEntryRepository(db),
		accounts: repository.NewChartOfAccountRepository(db, txManager),
	}, nil
}

// tenantFlag parses the optional --tenant flag into a scoping id.
func tenantFlag(cmd *cobra.Command) (*uuid.UUID, error) {
	raw, _ := cmd.Flags().GetString("tenant")
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid tenant id %q: %w", raw, err)
	}
	return &id, nil
}

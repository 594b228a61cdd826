package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"tamweel-backend/internal/adapter/events"
	"tamweel-backend/internal/adapter/repository/mysql"
	"tamweel-backend/internal/config"
	"tamweel-backend/internal/infrastructure/cache"
	"tamweel-backend/internal/infrastructure/db"
	ucPortfolio "tamweel-backend/internal/usecase/portfolio"
	ucSettlement "tamweel-backend/internal/usecase/settlement"
	"tamweel-backend/pkg/id"
)

var rootCmd = &cobra.Command{
	Use:   "portfolioctl",
	Short: "Operations console for the credit portfolio service",
	Long: `portfolioctl runs portfolio reads and snapshot jobs against the same
database the API serves, without going through HTTP.

Examples:
  portfolioctl --user <hex-id> summary
  portfolioctl --user <hex-id> snapshot take
  portfolioctl --user <hex-id> snapshot list --limit 10
  portfolioctl --user <hex-id> settlement <loan-id>

Connection settings come from the environment (or a .env file), the same
variables the API reads: MYSQL_HOST, MYSQL_PORT, MYSQL_DB, MYSQL_USER,
MYSQL_PASS, REDIS_ADDR.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

var userID string

func init() {
	rootCmd.PersistentFlags().StringVarP(&userID, "user", "u", "", "tenant user id (32-char lowercase hex)")
}

// services is the API's dependency graph minus the HTTP layer.
type services struct {
	portfolio  *ucPortfolio.Usecase
	settlement *ucSettlement.Usecase
}

func openServices() (*services, error) {
	if !id.Valid(userID) {
		return nil, fmt.Errorf("--user must be a 32-char lowercase hex id")
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		return nil, fmt.Errorf("mysql: %w", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("redis: %w", err)
	}

	banks := mysql.NewBankRepository(gdb)
	facs := mysql.NewFacilityRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	txns := mysql.NewTransactionRepository(gdb)
	colls := mysql.NewCollateralRepository(gdb)
	snaps := mysql.NewSnapshotRepository(gdb)

	views := cache.NewViewCache[ucPortfolio.SummaryDTO](rdb, time.Duration(cfg.SummaryCacheTTLSecs)*time.Second)
	pub := events.NewPublisher(rdb)

	return &services{
		portfolio:  ucPortfolio.NewUsecase(banks, facs, loans, txns, colls, snaps, mysql.NewGormUoW(gdb), views, pub),
		settlement: ucSettlement.NewUsecase(loans, txns),
	}, nil
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"tamweel-backend/internal/adapter/events"
	httpadp "tamweel-backend/internal/adapter/http"
	appmw "tamweel-backend/internal/adapter/middleware"
	"tamweel-backend/internal/adapter/repository/mysql"
	"tamweel-backend/internal/config"
	"tamweel-backend/internal/infrastructure/cache"
	"tamweel-backend/internal/infrastructure/db"
	ucBank "tamweel-backend/internal/usecase/bank"
	ucCollateral "tamweel-backend/internal/usecase/collateral"
	ucFacility "tamweel-backend/internal/usecase/facility"
	ucLoan "tamweel-backend/internal/usecase/loan"
	ucMatcher "tamweel-backend/internal/usecase/matcher"
	ucPortfolio "tamweel-backend/internal/usecase/portfolio"
	ucRepayment "tamweel-backend/internal/usecase/repayment"
	ucScenario "tamweel-backend/internal/usecase/scenario"
	ucSettlement "tamweel-backend/internal/usecase/settlement"
)

func main() {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("config: %v", err)
	}

	gdb, err := db.OpenGorm(cfg.MySQLDSN())
	if err != nil {
		log.Fatalf("mysql: %v", err)
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB)
	if err != nil {
		log.Fatalf("redis: %v", err)
	}

	banks := mysql.NewBankRepository(gdb)
	facs := mysql.NewFacilityRepository(gdb)
	loans := mysql.NewLoanRepository(gdb)
	txns := mysql.NewTransactionRepository(gdb)
	colls := mysql.NewCollateralRepository(gdb)
	snaps := mysql.NewSnapshotRepository(gdb)
	tx := mysql.NewGormUoW(gdb)

	pub := events.NewPublisher(rdb)
	views := cache.NewViewCache[ucPortfolio.SummaryDTO](rdb, time.Duration(cfg.SummaryCacheTTLSecs)*time.Second)

	h := httpadp.Handlers{
		Health: httpadp.NewHandler(),
		Banks:  httpadp.NewBankHandler(ucBank.NewUsecase(banks)),
		Facilities: httpadp.NewFacilityHandler(
			ucFacility.NewUsecase(facs, banks, loans, txns, tx, pub),
			ucMatcher.NewUsecase(facs, loans, txns),
		),
		Loans:      httpadp.NewLoanHandler(ucLoan.NewUsecase(loans, facs, txns, tx, pub)),
		Repayments: httpadp.NewRepaymentHandler(ucRepayment.NewUsecase(tx, pub)),
		Settlement: httpadp.NewSettlementHandler(ucSettlement.NewUsecase(loans, txns)),
		Portfolio:  httpadp.NewPortfolioHandler(ucPortfolio.NewUsecase(banks, facs, loans, txns, colls, snaps, tx, views, pub)),
		Scenarios:  httpadp.NewScenarioHandler(ucScenario.NewUsecase(loans, txns)),
		Collateral: httpadp.NewCollateralHandler(ucCollateral.NewUsecase(colls, facs, loans)),
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Logger(), echomw.Recover())
	e.Validator = httpadp.NewValidator()

	httpadp.RegisterRoutes(e, h,
		appmw.TenantMiddleware(),
		appmw.IdempotencyMiddleware(rdb, time.Duration(cfg.IdempTTLSecs)*time.Second),
	)

	addr := ":" + cfg.AppPort
	log.Printf("listening on %s", addr)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}

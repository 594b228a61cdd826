package http

import "github.com/labstack/echo/v4"

// Handlers bundles one handler per feature for route registration.
type Handlers struct {
	Health     *Handler
	Banks      *BankHandler
	Facilities *FacilityHandler
	Loans      *LoanHandler
	Repayments *RepaymentHandler
	Settlement *SettlementHandler
	Portfolio  *PortfolioHandler
	Scenarios  *ScenarioHandler
	Collateral *CollateralHandler
}

// RegisterRoutes wires the API surface. Everything except /health sits
// behind the tenant middleware; routes that append ledger rows also pass
// the idempotency middleware.
func RegisterRoutes(e *echo.Echo, h Handlers, tenant, idem echo.MiddlewareFunc) {
	e.GET("/health", h.Health.Health)

	g := e.Group("", tenant)

	g.POST("/banks", h.Banks.Create)
	g.GET("/banks", h.Banks.List)
	g.POST("/banks/:bank_id/deactivate", h.Banks.Deactivate)

	g.POST("/facilities", h.Facilities.Create)
	g.GET("/facilities", h.Facilities.List)
	g.GET("/facilities/:facility_id", h.Facilities.Get)
	g.POST("/facilities/:facility_id/deactivate", h.Facilities.Deactivate)
	g.POST("/facilities/:facility_id/limit", h.Facilities.ChangeLimit, idem)
	g.POST("/facilities/match", h.Facilities.Match)

	g.POST("/loans", h.Loans.Drawdown, idem)
	g.GET("/loans", h.Loans.List)
	g.GET("/loans/:loan_id", h.Loans.Get)
	g.GET("/loans/:loan_id/transactions", h.Loans.ListTransactions)
	g.POST("/loans/:loan_id/restructure", h.Loans.Restructure, idem)
	g.POST("/loans/:loan_id/repayments", h.Repayments.Record, idem)
	g.POST("/loans/:loan_id/fees", h.Repayments.PostFee, idem)
	g.GET("/loans/:loan_id/settlement", h.Settlement.Statement)
	g.POST("/loans/:loan_id/scenarios", h.Scenarios.Simulate)

	g.GET("/portfolio/summary", h.Portfolio.Summary)
	g.POST("/portfolio/snapshots", h.Portfolio.TakeSnapshot, idem)
	g.GET("/portfolio/snapshots", h.Portfolio.ListSnapshots)

	g.POST("/collateral", h.Collateral.Create)
	g.GET("/collateral", h.Collateral.List)
	g.POST("/collateral/:collateral_id/value", h.Collateral.Revalue)
}

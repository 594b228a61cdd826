package engine

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tamweel-backend/internal/domain/facility"

	"tamweel-backend/pkg/money"
)

// Scoring weights. The five components sum to at most 100.
var (
	weightHeadroom    = decimal.NewFromInt(40)
	weightUtilization = decimal.NewFromInt(20)
	weightRate        = decimal.NewFromInt(20)
	weightType        = decimal.NewFromInt(10)
	weightRevolving   = decimal.NewFromInt(10)

	// Half the type weight is granted when the request names no type.
	typeUnspecifiedCredit = decimal.NewFromInt(5)

	highUtilizationPct = decimal.NewFromInt(80)
	one                = decimal.NewFromInt(1)
)

// Facilities expiring within this many days of the match get a warning.
const expirySoonDays = 30

// MatchRequest asks which facility should fund a draw. Type narrows the pool
// when set; DurationDays of zero means the borrower has no fixed horizon.
type MatchRequest struct {
	Amount       decimal.Decimal
	Type         facility.Type
	DurationDays int
}

// FacilityStanding pairs a facility with the replayed outstanding principal
// of its open loans.
type FacilityStanding struct {
	Facility    facility.Facility
	Outstanding decimal.Decimal
}

// Candidate is an eligible facility with its score and the reasons behind it.
type Candidate struct {
	Facility        facility.Facility
	AvailableCredit decimal.Decimal
	UtilizationPct  decimal.Decimal
	AllInRatePct    decimal.Decimal
	Score           decimal.Decimal
	Reasons         []string
	Warnings        []string
}

// Excluded is a facility that cannot fund the request and why.
type Excluded struct {
	Facility        facility.Facility
	AvailableCredit decimal.Decimal
	Reasons         []string
}

// MatchResult ranks every facility for a request. Recommendation is nil when
// nothing is eligible; Excluded then explains each facility's rejection.
type MatchResult struct {
	Recommendation *Candidate
	Alternatives   []Candidate
	Candidates     []Candidate
	Excluded       []Excluded
}

// Match scores the borrower's facilities for a draw request. Eligibility
// requires an active, unexpired facility of the requested type with enough
// available credit; scoring then weighs headroom, utilization, rate, type fit
// and revolving flexibility.
func Match(req MatchRequest, standings []FacilityStanding, now time.Time) (*MatchResult, error) {
	if !req.Amount.IsPositive() {
		return nil, validationf("requested amount %s must be positive", req.Amount)
	}
	if req.Type != "" && !facility.ValidType(req.Type) {
		return nil, validationf("unknown facility type %q", req.Type)
	}
	if req.DurationDays < 0 {
		return nil, validationf("requested duration %d days is negative", req.DurationDays)
	}

	res := &MatchResult{}
	var eligible []Candidate
	for _, s := range standings {
		f := s.Facility
		avail := f.CreditLimit.Sub(s.Outstanding)

		var reasons []string
		if !f.Active {
			reasons = append(reasons, "facility is inactive")
		}
		if f.ExpiredAt(now) {
			reasons = append(reasons, fmt.Sprintf("facility expired on %s", f.ExpiryDate.Format("2006-01-02")))
		}
		if req.Type != "" && f.Type != req.Type {
			reasons = append(reasons, fmt.Sprintf("facility type %s does not match requested %s", f.Type, req.Type))
		}
		if avail.LessThan(req.Amount) {
			reasons = append(reasons, fmt.Sprintf("available credit %s is below the requested %s", avail, req.Amount))
		}
		if len(reasons) > 0 {
			res.Excluded = append(res.Excluded, Excluded{Facility: f, AvailableCredit: avail, Reasons: reasons})
			continue
		}

		c := Candidate{
			Facility:        f,
			AvailableCredit: avail,
			UtilizationPct:  money.Percent(s.Outstanding, f.CreditLimit),
			AllInRatePct:    f.AllInRate(),
		}
		c.Warnings = candidateWarnings(req, f, s.Outstanding, now)
		eligible = append(eligible, c)
	}

	if len(eligible) == 0 {
		return res, nil
	}

	lo, hi := eligible[0].AllInRatePct, eligible[0].AllInRatePct
	for _, c := range eligible[1:] {
		if c.AllInRatePct.LessThan(lo) {
			lo = c.AllInRatePct
		}
		if c.AllInRatePct.GreaterThan(hi) {
			hi = c.AllInRatePct
		}
	}

	for i := range eligible {
		scoreCandidate(&eligible[i], req, lo, hi, now)
	}
	sort.SliceStable(eligible, func(i, j int) bool {
		if !eligible[i].Score.Equal(eligible[j].Score) {
			return eligible[i].Score.GreaterThan(eligible[j].Score)
		}
		if !eligible[i].AllInRatePct.Equal(eligible[j].AllInRatePct) {
			return eligible[i].AllInRatePct.LessThan(eligible[j].AllInRatePct)
		}
		return eligible[i].Facility.FacilityID < eligible[j].Facility.FacilityID
	})

	res.Candidates = eligible
	res.Recommendation = &eligible[0]
	if len(eligible) > 1 {
		end := len(eligible)
		if end > 3 {
			end = 3
		}
		res.Alternatives = eligible[1:end]
	}
	return res, nil
}

func scoreCandidate(c *Candidate, req MatchRequest, loRate, hiRate decimal.Decimal, now time.Time) {
	f := c.Facility

	coverage := c.AvailableCredit.Div(req.Amount)
	if coverage.GreaterThan(one) {
		coverage = one
	}
	headroom := weightHeadroom.Mul(coverage).Mul(c.AvailableCredit.Div(f.CreditLimit))
	c.Reasons = append(c.Reasons, fmt.Sprintf("available credit %s covers the requested %s", c.AvailableCredit, req.Amount))

	utilization := weightUtilization.Mul(one.Sub(c.UtilizationPct.Div(hundred)))
	c.Reasons = append(c.Reasons, fmt.Sprintf("utilization %s%% before the draw", c.UtilizationPct.Round(2)))

	rateScore := weightRate
	if !hiRate.Equal(loRate) {
		rateScore = weightRate.Mul(hiRate.Sub(c.AllInRatePct)).Div(hiRate.Sub(loRate))
	}
	c.Reasons = append(c.Reasons, fmt.Sprintf("all-in rate %s%%", c.AllInRatePct))

	typeScore := typeUnspecifiedCredit
	if req.Type != "" {
		typeScore = weightType
		c.Reasons = append(c.Reasons, fmt.Sprintf("type %s matches the request", f.Type))
	}

	revolving := decimal.Zero
	if f.Type == facility.TypeRevolving && f.WithinPeriod(now) && coversDuration(f, req.DurationDays, now) {
		revolving = weightRevolving
		c.Reasons = append(c.Reasons, "revolving facility allows redraw within its period")
	}

	c.Score = money.ClampPercent(headroom.Add(utilization).Add(rateScore).Add(typeScore).Add(revolving))
}

func candidateWarnings(req MatchRequest, f facility.Facility, outstanding decimal.Decimal, now time.Time) []string {
	var warnings []string

	if f.CreditLimit.IsPositive() {
		after := money.Percent(outstanding.Add(req.Amount), f.CreditLimit)
		if after.GreaterThanOrEqual(highUtilizationPct) {
			warnings = append(warnings, fmt.Sprintf("utilization would reach %s%% after this draw", after.Round(2)))
		}
	}
	if !f.ExpiryDate.IsZero() {
		if !f.ExpiryDate.After(now.AddDate(0, 0, expirySoonDays)) {
			warnings = append(warnings, fmt.Sprintf("facility expires on %s", f.ExpiryDate.Format("2006-01-02")))
		}
		if req.DurationDays > 0 && !coversDuration(f, req.DurationDays, now) {
			warnings = append(warnings, fmt.Sprintf("facility expires before the requested %d-day term", req.DurationDays))
		}
	}
	return warnings
}

func coversDuration(f facility.Facility, durationDays int, now time.Time) bool {
	if durationDays == 0 {
		return true
	}
	if f.ExpiryDate.IsZero() {
		return true
	}
	return !now.AddDate(0, 0, durationDays).After(f.ExpiryDate)
}

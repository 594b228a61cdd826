package matcher

import (
	"github.com/shopspring/decimal"

	domainFacility "tamweel-backend/internal/domain/facility"
)

// MatchInput asks which facility should fund a draw. Type and DurationDays
// are optional filters.
type MatchInput struct {
	Amount       decimal.Decimal
	Type         domainFacility.Type
	DurationDays int
}

// ResultDTO is never empty: either a recommendation with its ranking, or a
// message with every facility and its disqualifying warnings.
type ResultDTO struct {
	Recommendation *CandidateDTO  `json:"recommendation,omitempty"`
	Alternatives   []CandidateDTO `json:"alternatives,omitempty"`
	Excluded       []ExcludedDTO  `json:"excluded,omitempty"`
	Message        string         `json:"message,omitempty"`
	AllFacilities  []ExcludedDTO  `json:"all_facilities,omitempty"`
}

type CandidateDTO struct {
	FacilityID      string   `json:"facility_id"`
	FacilityName    string   `json:"facility_name"`
	BankID          string   `json:"bank_id"`
	Type            string   `json:"type"`
	AvailableCredit float64  `json:"available_credit"`
	UtilizationPct  float64  `json:"utilization_percent"`
	InterestRate    float64  `json:"interest_rate"`
	Score           float64  `json:"score"`
	Reasons         []string `json:"reasons"`
	Warnings        []string `json:"warnings,omitempty"`
}

type ExcludedDTO struct {
	FacilityID      string   `json:"facility_id"`
	FacilityName    string   `json:"facility_name"`
	AvailableCredit float64  `json:"available_credit"`
	Warnings        []string `json:"warnings"`
}

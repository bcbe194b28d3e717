package domain

import (
	"strings"
	"time"
)

// ApplicationStatus tracks a loan application through review. The backend
// owns the lifecycle; the portal only displays and filters on it.
type ApplicationStatus string

const (
	StatusDraft       ApplicationStatus = "draft"
	StatusSubmitted   ApplicationStatus = "submitted"
	StatusUnderReview ApplicationStatus = "under_review"
	StatusNeedsInfo   ApplicationStatus = "needs_info"
	StatusApproved    ApplicationStatus = "approved"
	StatusRejected    ApplicationStatus = "rejected"
)

// Label renders a status for humans: "under_review" → "Under Review".
func (s ApplicationStatus) Label() string {
	words := strings.Split(string(s), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// VerificationResult is the outcome a lender records against an application.
type VerificationResult string

const (
	VerificationPass    VerificationResult = "pass"
	VerificationFail    VerificationResult = "fail"
	VerificationUnclear VerificationResult = "unclear"
	VerificationPending VerificationResult = "pending"
)

// GLPSectors lists the eligible green project categories offered in the
// application form, per the LMA Green Loan Principles.
var GLPSectors = []string{
	"Renewable Energy",
	"Energy Efficiency",
	"Pollution Prevention and Control",
	"Environmentally Sustainable Management of Living Natural Resources and Land Use",
	"Terrestrial and Aquatic Biodiversity Conservation",
	"Clean Transportation",
	"Sustainable Water and Wastewater Management",
	"Climate Change Adaptation",
	"Eco-efficient and/or Circular Economy Adapted Products",
	"Green Buildings",
}

// ApplicationForm is the borrower's input for a new loan application.
// Emissions scopes and baseline year are optional; pointers distinguish
// "not provided" from zero.
type ApplicationForm struct {
	OrgName         string   `json:"org_name"`
	ProjectName     string   `json:"project_name"`
	Sector          string   `json:"sector"`
	Location        string   `json:"location"`
	ProjectType     string   `json:"project_type"`
	AmountRequested float64  `json:"amount_requested"`
	Currency        string   `json:"currency"`
	UseOfProceeds   string   `json:"use_of_proceeds"`
	Scope1TCO2      *float64 `json:"scope1_tco2,omitempty"`
	Scope2TCO2      *float64 `json:"scope2_tco2,omitempty"`
	Scope3TCO2      *float64 `json:"scope3_tco2,omitempty"`
	BaselineYear    *int     `json:"baseline_year,omitempty"`
	AdditionalInfo  string   `json:"additional_info,omitempty"`
}

// LoanApplication mirrors the backend's full application payload. Scoring
// fields stay nil until the analysis pipeline has run.
type LoanApplication struct {
	ID               int               `json:"id"`
	BorrowerID       int               `json:"borrower_id"`
	ProjectName      string            `json:"project_name"`
	Sector           string            `json:"sector"`
	Location         string            `json:"location"`
	ProjectType      string            `json:"project_type"`
	AmountRequested  float64           `json:"amount_requested"`
	Currency         string            `json:"currency"`
	UseOfProceeds    string            `json:"use_of_proceeds"`
	Scope1TCO2       *float64          `json:"scope1_tco2"`
	Scope2TCO2       *float64          `json:"scope2_tco2"`
	Scope3TCO2       *float64          `json:"scope3_tco2"`
	TotalTCO2        *float64          `json:"total_tco2"`
	BaselineYear     *int              `json:"baseline_year"`
	ESGScore         *float64          `json:"esg_score"`
	GLPEligibility   *bool             `json:"glp_eligibility"`
	GLPCategory      string            `json:"glp_category"`
	CarbonLockinRisk string            `json:"carbon_lockin_risk"`
	Status           ApplicationStatus `json:"status"`
	CreatedAt        time.Time         `json:"created_at"`
	UpdatedAt        time.Time         `json:"updated_at"`
}

// ApplicationListItem is the summary row lenders see in list views.
type ApplicationListItem struct {
	ID              int               `json:"id"`
	ProjectName     string            `json:"project_name"`
	BorrowerName    string            `json:"borrower_name"`
	OrgName         string            `json:"org_name"`
	Sector          string            `json:"sector"`
	AmountRequested float64           `json:"amount_requested"`
	Currency        string            `json:"currency"`
	Status          ApplicationStatus `json:"status"`
	ESGScore        *float64          `json:"esg_score"`
	GLPEligibility  *bool             `json:"glp_eligibility"`
	CreatedAt       time.Time         `json:"created_at"`
}

// ApplicationFilter narrows the lender list view. Empty fields mean no
// filtering on that dimension.
type ApplicationFilter struct {
	Status string
	Sector string
}

// ApplicationReceipt acknowledges a newly created application.
type ApplicationReceipt struct {
	ID      int    `json:"id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Borrower is the organisation profile behind an application.
type Borrower struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	OrgName   string    `json:"org_name"`
	Industry  string    `json:"industry"`
	Country   string    `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

// KPI is a sustainability performance indicator attached to an application.
type KPI struct {
	ID            int      `json:"id"`
	LoanAppID     int      `json:"loan_app_id"`
	Name          string   `json:"kpi_name"`
	Unit          string   `json:"unit"`
	BaselineValue *float64 `json:"baseline_value"`
	CurrentValue  *float64 `json:"current_value"`
	SPTTarget     *float64 `json:"spt_target"`
	TargetYear    *int     `json:"target_year"`
	Methodology   string   `json:"methodology"`
	AmbitionScore *float64 `json:"ambition_score"`
	IsAmbitious   *bool    `json:"is_ambitious"`
}

// DNSHCheck is one "Do No Significant Harm" criterion assessment.
type DNSHCheck struct {
	Criterion string `json:"criterion"`
	Status    string `json:"status"`
	Evidence  string `json:"evidence"`
	Notes     string `json:"notes"`
}

// ParsedFields holds values the document pipeline extracted for review.
type ParsedFields struct {
	UseOfProceeds        string            `json:"use_of_proceeds"`
	KPIs                 []map[string]any  `json:"kpis"`
	GLPCategoryGuess     string            `json:"glp_category_guess"`
	DNSH                 map[string]string `json:"dnsh"`
	ManagementOfProceeds string            `json:"management_of_proceeds"`
	ExternalReview       string            `json:"external_review"`
}

// VerificationSummary condenses the automated verification analysis.
type VerificationSummary struct {
	Conclusion string           `json:"conclusion"`
	Confidence float64          `json:"confidence"`
	Evidence   []map[string]any `json:"evidence"`
}

// Verification is a recorded manual review outcome.
type Verification struct {
	ID           int                `json:"id"`
	LoanAppID    int                `json:"loan_app_id"`
	VerifierRole string             `json:"verifier_role"`
	Type         string             `json:"verification_type"`
	Claim        string             `json:"claim"`
	Result       VerificationResult `json:"result"`
	Confidence   *float64           `json:"confidence"`
	Notes        string             `json:"notes"`
	Score        *float64           `json:"score"`
	CreatedAt    time.Time          `json:"created_at"`
}

// VerificationInput is what a lender submits when recording a review.
type VerificationInput struct {
	VerifierRole string             `json:"verifier_role"`
	Result       VerificationResult `json:"result"`
	Notes        string             `json:"notes,omitempty"`
}

// ApplicationDetail is the full lender-side bundle for one application.
type ApplicationDetail struct {
	LoanApp          LoanApplication     `json:"loan_app"`
	Borrower         Borrower            `json:"borrower"`
	Documents        []Document          `json:"documents"`
	KPIs             []KPI               `json:"kpis"`
	ParsedFields     ParsedFields        `json:"parsed_fields"`
	Verification     VerificationSummary `json:"verification"`
	ESGScore         float64             `json:"esg_score"`
	DNSHChecks       []DNSHCheck         `json:"dnsh_checks"`
	CarbonLockinRisk string              `json:"carbon_lockin_risk"`
}

// PortfolioSummary aggregates the lender's book.
type PortfolioSummary struct {
	TotalApplications    int            `json:"total_applications"`
	TotalFinancedAmount  float64        `json:"total_financed_amount"`
	TotalFinancedCO2     float64        `json:"total_financed_co2"`
	NumGreenProjects     int            `json:"num_green_projects"`
	NumPending           int            `json:"num_pending"`
	NumApproved          int            `json:"num_approved"`
	NumRejected          int            `json:"num_rejected"`
	PercentEligibleGreen float64        `json:"percent_eligible_green"`
	AvgESGScore          float64        `json:"avg_esg_score"`
	FlaggedCount         int            `json:"flagged_count"`
	SectorBreakdown      map[string]int `json:"sector_breakdown"`
	StatusBreakdown      map[string]int `json:"status_breakdown"`
}

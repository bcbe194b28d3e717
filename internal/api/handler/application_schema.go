package handler

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/glcplatform/portal/internal/core/domain"
)

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// --- Request types ---

// applicationRequest is the apply form as the browser posts it. Numeric
// fields arrive as strings because optional inputs submit empty values;
// toForm converts and validates them.
type applicationRequest struct {
	OrgName         string `form:"org_name"          validate:"required"`
	ProjectName     string `form:"project_name"      validate:"required"`
	Sector          string `form:"sector"            validate:"required"`
	Location        string `form:"location"`
	ProjectType     string `form:"project_type"      validate:"omitempty,oneof=New Existing"`
	AmountRequested string `form:"amount_requested"  validate:"required"`
	Currency        string `form:"currency"          validate:"required"`
	UseOfProceeds   string `form:"use_of_proceeds"   validate:"required"`
	Scope1TCO2      string `form:"scope1_tco2"`
	Scope2TCO2      string `form:"scope2_tco2"`
	Scope3TCO2      string `form:"scope3_tco2"`
	BaselineYear    string `form:"baseline_year"`
	AdditionalInfo  string `form:"additional_info"`
	Category        string `form:"category"`
	ExternalReview  string `form:"has_external_review"`
	ConfirmAccuracy string `form:"confirm_accuracy"  validate:"required"`
}

type verifyRequest struct {
	Result string `form:"result" validate:"required,oneof=pass fail unclear"`
	Notes  string `form:"notes"`
}

// toForm converts the posted strings into the typed application form.
func (r applicationRequest) toForm() (domain.ApplicationForm, error) {
	form := domain.ApplicationForm{
		OrgName:        strings.TrimSpace(r.OrgName),
		ProjectName:    strings.TrimSpace(r.ProjectName),
		Sector:         r.Sector,
		Location:       strings.TrimSpace(r.Location),
		ProjectType:    r.ProjectType,
		Currency:       r.Currency,
		UseOfProceeds:  strings.TrimSpace(r.UseOfProceeds),
		AdditionalInfo: strings.TrimSpace(r.AdditionalInfo),
	}

	amount, err := parseAmount(r.AmountRequested)
	if err != nil {
		return domain.ApplicationForm{}, err
	}
	form.AmountRequested = amount

	for _, f := range []struct {
		name  string
		raw   string
		field **float64
	}{
		{"scope1_tco2", r.Scope1TCO2, &form.Scope1TCO2},
		{"scope2_tco2", r.Scope2TCO2, &form.Scope2TCO2},
		{"scope3_tco2", r.Scope3TCO2, &form.Scope3TCO2},
	} {
		v, err := parseOptionalFloat(f.name, f.raw)
		if err != nil {
			return domain.ApplicationForm{}, err
		}
		*f.field = v
	}

	year, err := parseOptionalYear(r.BaselineYear)
	if err != nil {
		return domain.ApplicationForm{}, err
	}
	form.BaselineYear = year

	// the analysis pipeline picks external-review mentions out of free text
	if r.ExternalReview != "" {
		note := "An external review of the project has been obtained."
		if form.AdditionalInfo != "" {
			form.AdditionalInfo += "\n" + note
		} else {
			form.AdditionalInfo = note
		}
	}

	return form, nil
}

func parseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("amount_requested must be a number")
	}
	if v <= 0 {
		return 0, fmt.Errorf("amount_requested must be greater than 0")
	}
	return v, nil
}

func parseOptionalFloat(name, raw string) (*float64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, fmt.Errorf("%s must be a number", name)
	}
	if v < 0 {
		return nil, fmt.Errorf("%s must not be negative", name)
	}
	return &v, nil
}

func parseOptionalYear(raw string) (*int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 1900 || v > 2100 {
		return nil, fmt.Errorf("baseline_year must be a four-digit year")
	}
	return &v, nil
}

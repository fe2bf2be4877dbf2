package domain

import "fmt"

// Plan enumerates subscription tiers.
type Plan string

const (
	PlanFree       Plan = "free"
	PlanPro        Plan = "pro"
	PlanEnterprise Plan = "enterprise"
)

// planLimits is the static per-plan entitlement table. Every Plan value has
// an entry; ParsePlan guarantees no other value reaches a lookup.
type planLimits struct {
	maxFileBytes   int64
	monthlyCredits int
}

var limitsByPlan = map[Plan]planLimits{
	PlanFree:       {maxFileBytes: 50 << 20, monthlyCredits: 25},
	PlanPro:        {maxFileBytes: 200 << 20, monthlyCredits: 500},
	PlanEnterprise: {maxFileBytes: 1 << 30, monthlyCredits: 0},
}

// ParsePlan maps a stored plan string onto the enum. Unknown values fall
// back to the free tier so a bad row can only under-entitle, never over.
func ParsePlan(s string) Plan {
	switch Plan(s) {
	case PlanFree, PlanPro, PlanEnterprise:
		return Plan(s)
	default:
		return PlanFree
	}
}

// LookupPlan maps a plan string onto the enum without the free fallback,
// for callers that must reject unknown input (the userplan CLI).
func LookupPlan(s string) (Plan, bool) {
	switch Plan(s) {
	case PlanFree, PlanPro, PlanEnterprise:
		return Plan(s), true
	default:
		return "", false
	}
}

// Billable reports whether tool invocations consume credits on this plan.
// Enterprise is the only unmetered tier.
func (p Plan) Billable() bool {
	return p != PlanEnterprise
}

// MaxFileBytes returns the per-file (and per-batch) upload ceiling.
func (p Plan) MaxFileBytes() int64 {
	return limitsByPlan[ParsePlan(string(p))].maxFileBytes
}

// MonthlyCredits returns the credit allotment granted at signup and on each
// monthly refill. Zero for enterprise, which never consumes credits.
func (p Plan) MonthlyCredits() int {
	return limitsByPlan[ParsePlan(string(p))].monthlyCredits
}

// MaxFileLabel renders the ceiling as a whole-MB figure for user-facing
// validation messages.
func (p Plan) MaxFileLabel() string {
	return fmt.Sprintf("%dMB", p.MaxFileBytes()>>20)
}

func (p Plan) String() string {
	return string(ParsePlan(string(p)))
}

package domain

import "testing"

func TestParsePlan_UnknownFallsBackToFree(t *testing.T) {
	cases := map[string]Plan{
		"free":       PlanFree,
		"pro":        PlanPro,
		"enterprise": PlanEnterprise,
		"":           PlanFree,
		"trial":      PlanFree,
		"FREE":       PlanFree,
	}
	for input, want := range cases {
		if got := ParsePlan(input); got != want {
			t.Errorf("ParsePlan(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestLookupPlan_RejectsUnknown(t *testing.T) {
	if _, ok := LookupPlan("supporter"); ok {
		t.Fatal("expected unknown plan to be rejected")
	}
	plan, ok := LookupPlan("enterprise")
	if !ok || plan != PlanEnterprise {
		t.Fatalf("LookupPlan(enterprise) = %q, %v", plan, ok)
	}
}

func TestPlanBillable(t *testing.T) {
	if !PlanFree.Billable() || !PlanPro.Billable() {
		t.Fatal("free and pro must be metered")
	}
	if PlanEnterprise.Billable() {
		t.Fatal("enterprise must be unmetered")
	}
}

func TestPlanLimits(t *testing.T) {
	if got := PlanFree.MaxFileBytes(); got != 50<<20 {
		t.Fatalf("free ceiling = %d", got)
	}
	if got := PlanPro.MaxFileBytes(); got != 200<<20 {
		t.Fatalf("pro ceiling = %d", got)
	}
	if got := PlanEnterprise.MaxFileBytes(); got != 1<<30 {
		t.Fatalf("enterprise ceiling = %d", got)
	}
	if got := PlanFree.MonthlyCredits(); got != 25 {
		t.Fatalf("free credits = %d", got)
	}
	if got := PlanPro.MonthlyCredits(); got != 500 {
		t.Fatalf("pro credits = %d", got)
	}
}

func TestProfileHasCredits(t *testing.T) {
	if (Profile{Plan: PlanFree, CreditsRemaining: 0}).HasCredits() {
		t.Fatal("exhausted free profile must report no credits")
	}
	if !(Profile{Plan: PlanFree, CreditsRemaining: 1}).HasCredits() {
		t.Fatal("free profile with balance must report credits")
	}
	if !(Profile{Plan: PlanEnterprise, CreditsRemaining: 0}).HasCredits() {
		t.Fatal("enterprise must always report credits")
	}
}

func TestPlanMaxFileLabel(t *testing.T) {
	if got := PlanFree.MaxFileLabel(); got != "50MB" {
		t.Fatalf("free label = %q", got)
	}
	if got := PlanPro.MaxFileLabel(); got != "200MB" {
		t.Fatalf("pro label = %q", got)
	}
	// A corrupt stored value labels like the free tier it falls back to.
	if got := Plan("corrupt").MaxFileLabel(); got != "50MB" {
		t.Fatalf("fallback label = %q", got)
	}
}

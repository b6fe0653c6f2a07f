package prompt

import (
	"strings"
	"testing"

	"legal-docgen/internal/registry"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	got, err := formatDate("2024-03-01")
	if err != nil {
		t.Fatalf("formatDate: %v", err)
	}
	if got != "01.03.2024" {
		t.Fatalf("expected 01.03.2024, got %s", got)
	}

	if _, err := formatDate("03/01/2024"); err == nil {
		t.Fatalf("expected error for non-ISO date")
	}
}

func TestMonthlyFromAnnual_Rounds(t *testing.T) {
	t.Parallel()

	if got := monthlyFromAnnual(120000); got != 10000 {
		t.Fatalf("120000/12: expected 10000, got %d", got)
	}
	// 100000/12 = 8333.33.. -> rounded, not truncated
	if got := monthlyFromAnnual(100000); got != 8333 {
		t.Fatalf("100000/12: expected 8333, got %d", got)
	}
	// 110000/12 = 9166.67 -> rounds up
	if got := monthlyFromAnnual(110000); got != 9167 {
		t.Fatalf("110000/12: expected 9167, got %d", got)
	}
}

func TestCompose_EmploymentDerivedFields(t *testing.T) {
	t.Parallel()

	def, err := registry.New().ResolveType("employment")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	p, err := NewComposer().Compose(def, map[string]any{
		"employerName":    "Acme AG",
		"employerAddress": "Industriestrasse 1, Zurich",
		"employeeName":    "Dana Keller",
		"position":        "Engineer",
		"startDate":       "2024-03-01",
		"annualSalary":    100000,
	})
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if !strings.Contains(p.UserInstructions, "Start date: 01.03.2024") {
		t.Fatalf("date not reformatted to written form:\n%s", p.UserInstructions)
	}
	if !strings.Contains(p.UserInstructions, "Monthly gross salary: 8333") {
		t.Fatalf("monthly amount not derived:\n%s", p.UserInstructions)
	}
	// Missing optional numerics fall back to documented defaults, never blank.
	if !strings.Contains(p.UserInstructions, "Paid vacation days per year: 25") {
		t.Fatalf("vacation default missing:\n%s", p.UserInstructions)
	}
	if !strings.Contains(p.UserInstructions, "Probation period: 6 months") {
		t.Fatalf("probation default missing:\n%s", p.UserInstructions)
	}
}

func TestCompose_GroundingStores(t *testing.T) {
	t.Parallel()

	r := registry.New()
	c := NewComposer()
	seen := map[string]bool{}
	for _, def := range r.ListTypes() {
		def := def
		p, err := c.Compose(&def, validParams(def.ID))
		if err != nil {
			t.Fatalf("%s: compose: %v", def.ID, err)
		}
		if len(p.GroundingStoreIDs) != 2 {
			t.Fatalf("%s: expected template store + statute store, got %v", def.ID, p.GroundingStoreIDs)
		}
		if p.GroundingStoreIDs[1] != statuteStore {
			t.Fatalf("%s: shared statute store missing: %v", def.ID, p.GroundingStoreIDs)
		}
		if seen[p.GroundingStoreIDs[0]] {
			t.Fatalf("%s: template store %q reused across types", def.ID, p.GroundingStoreIDs[0])
		}
		seen[p.GroundingStoreIDs[0]] = true
	}
}

func TestCompose_PerTypeSystemInstructions(t *testing.T) {
	t.Parallel()

	r := registry.New()
	c := NewComposer()
	sys := map[string]string{}
	for _, def := range r.ListTypes() {
		def := def
		p, err := c.Compose(&def, validParams(def.ID))
		if err != nil {
			t.Fatalf("%s: compose: %v", def.ID, err)
		}
		sys[def.ID] = p.SystemInstructions
	}
	if sys["nda"] == sys["employment"] || sys["employment"] == sys["tos"] {
		t.Fatalf("system instructions must differ per type")
	}
	if !strings.Contains(sys["employment"], "statutory") {
		t.Fatalf("employment persona must carry the statutory-compliance checklist")
	}
}

func TestCompose_FormattingContractAlwaysPresent(t *testing.T) {
	t.Parallel()

	r := registry.New()
	c := NewComposer()
	for _, def := range r.ListTypes() {
		def := def
		p, err := c.Compose(&def, validParams(def.ID))
		if err != nil {
			t.Fatalf("%s: compose: %v", def.ID, err)
		}
		if !strings.Contains(p.UserInstructions, "Do not invent sections") {
			t.Fatalf("%s: formatting contract missing", def.ID)
		}
		if !strings.Contains(p.UserInstructions, "Output the document text only") {
			t.Fatalf("%s: commentary prohibition missing", def.ID)
		}
	}
}

func TestFooterFields(t *testing.T) {
	t.Parallel()

	f := NewComposer().FooterFields("employment", map[string]any{
		"employerName":    "Acme AG",
		"employerAddress": "Industriestrasse 1, Zurich",
	})
	if f.SignerName != "Acme AG" || f.SignerAddress != "Industriestrasse 1, Zurich" {
		t.Fatalf("unexpected footer fields: %+v", f)
	}

	if f := NewComposer().FooterFields("unknown", nil); f.SignerName != "" {
		t.Fatalf("unknown type must yield empty footer")
	}
}

func validParams(typeID string) map[string]any {
	switch typeID {
	case "nda":
		return map[string]any{
			"disclosingParty": "Acme AG",
			"receivingParty":  "Beta GmbH",
			"purpose":         "evaluation",
			"duration":        5,
			"mutualNDA":       false,
		}
	case "employment":
		return map[string]any{
			"employerName":    "Acme AG",
			"employerAddress": "Industriestrasse 1, Zurich",
			"employeeName":    "Dana Keller",
			"position":        "Engineer",
			"startDate":       "2024-03-01",
			"annualSalary":    120000,
		}
	default:
		return map[string]any{
			"companyName":        "Acme AG",
			"companyAddress":     "Industriestrasse 1, Zurich",
			"serviceName":        "AcmeCloud",
			"serviceDescription": "hosted build service",
		}
	}
}

package plans

type PlanType string

const (
	PlanSolo PlanType = "solo"
	PlanPro  PlanType = "pro"
)

// Plan is a fixed offering. Plans are not persisted; pricing is compiled in.
type Plan struct {
	Type        PlanType `json:"plan_type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	AmountCents int64    `json:"amount_cents"`
}

var Catalog = map[PlanType]Plan{
	PlanSolo: {
		Type:        PlanSolo,
		Name:        "Hiring Kit Solo",
		Description: "One hiring kit: job description, interview guide and scorecard for a single role.",
		AmountCents: 4900,
	},
	PlanPro: {
		Type:        PlanPro,
		Name:        "Hiring Kit Pro",
		Description: "Everything in Solo plus outreach templates, onboarding plan and unlimited revisions.",
		AmountCents: 12900,
	},
}

// Lookup resolves a raw plan identifier against the catalog.
func Lookup(planType string) (Plan, bool) {
	p, ok := Catalog[PlanType(planType)]
	return p, ok
}

// Orders store the charged amount, not the plan. Amounts at or above this
// threshold are labeled pro.
const proAmountCents = 10000

func TierForAmount(cents int64) PlanType {
	if cents >= proAmountCents {
		return PlanPro
	}
	return PlanSolo
}

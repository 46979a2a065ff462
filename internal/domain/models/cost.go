package models

// CostBreakdown is the five-category money vector used at every level of the
// cost hierarchy. Values are immutable; every operation returns a new one.
type CostBreakdown struct {
	Accommodation float64 `json:"accommodation"`
	Transport     float64 `json:"transport"`
	Food          float64 `json:"food"`
	Activities    float64 `json:"activities"`
	Miscellaneous float64 `json:"miscellaneous"`
}

func (c CostBreakdown) Add(other CostBreakdown) CostBreakdown {
	return CostBreakdown{
		Accommodation: c.Accommodation + other.Accommodation,
		Transport:     c.Transport + other.Transport,
		Food:          c.Food + other.Food,
		Activities:    c.Activities + other.Activities,
		Miscellaneous: c.Miscellaneous + other.Miscellaneous,
	}
}

// Scale multiplies every category by f. A breakdown of fractions scaled by
// an amount distributes that amount across categories.
func (c CostBreakdown) Scale(f float64) CostBreakdown {
	return CostBreakdown{
		Accommodation: c.Accommodation * f,
		Transport:     c.Transport * f,
		Food:          c.Food * f,
		Activities:    c.Activities * f,
		Miscellaneous: c.Miscellaneous * f,
	}
}

func (c CostBreakdown) Total() float64 {
	return c.Accommodation + c.Transport + c.Food + c.Activities + c.Miscellaneous
}

// CostComparison pairs the estimated and actual side of a cost.
type CostComparison struct {
	Estimated CostBreakdown `json:"estimated"`
	Actual    CostBreakdown `json:"actual"`
}

func EmptyComparison() CostComparison {
	return CostComparison{}
}

func (c CostComparison) Add(other CostComparison) CostComparison {
	return CostComparison{
		Estimated: c.Estimated.Add(other.Estimated),
		Actual:    c.Actual.Add(other.Actual),
	}
}

// IsZero reports whether both sides are empty.
func (c CostComparison) IsZero() bool {
	return c == CostComparison{}
}

package impact

// Tier is the coarse grade derived from an impact score.
type Tier int

const (
	Low Tier = iota
	Medium
	High
)

// Tier thresholds. Comparisons are strict, so 70 is Medium and 40 is Low.
const (
	HighThreshold   = 70.0
	MediumThreshold = 40.0
)

// Classify maps a score to its tier.
func Classify(score float64) Tier {
	switch {
	case score > HighThreshold:
		return High
	case score > MediumThreshold:
		return Medium
	default:
		return Low
	}
}

func (t Tier) String() string {
	switch t {
	case High:
		return "High"
	case Medium:
		return "Medium"
	default:
		return "Low"
	}
}

// Pros returns the fixed advantages text for the tier.
func (t Tier) Pros() string {
	switch t {
	case High:
		return "✔ High sustainability, good public acceptance, strong economic benefits."
	case Medium:
		return "✔ Balanced benefits, moderate success expected."
	default:
		return "✔ Cost-effective in short term."
	}
}

// Cons returns the fixed drawbacks text for the tier.
func (t Tier) Cons() string {
	switch t {
	case High:
		return "⚠ High initial investment may be needed."
	case Medium:
		return "⚠ Some sustainability concerns or policy hurdles."
	default:
		return "⚠ Low impact, sustainability and public interest issues."
	}
}

package matcher

// Config holds matcher configuration.
//
// Score weights are deliberately not configurable; only the hard-filter
// tolerances and the company identity are.
type Config struct {
	AmountTolerance float64 // max absolute-amount difference (default: 0.01)
	DateCutoffDays  int     // reject pairs further apart than this (default: 30)

	// CompanyName is the company's own canonical name. Attachment
	// counterparty fields equal to it are ignored so the company is never
	// matched against itself.
	CompanyName string
}

// DefaultConfig returns sensible defaults. CompanyName is intentionally
// empty; callers supply their own identity.
func DefaultConfig() Config {
	return Config{
		AmountTolerance: 0.01,
		DateCutoffDays:  30,
	}
}

package domain

// QuoteReport bundles everything the downstream formatting and sharing
// collaborators need for one vehicle: the program quoted and the finance
// and/or lease results. Either result may be nil when that side of the
// quote was not requested or could not be computed.
type QuoteReport struct {
	Program *Program       `json:"program,omitempty"`
	Finance *FinanceResult `json:"finance,omitempty"`
	Lease   *LeaseResult   `json:"lease,omitempty"`
}

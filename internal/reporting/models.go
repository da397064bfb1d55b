package reporting

import id "medledger/pkg/domain"

// Report is a point-in-time snapshot for one provider: its own metadata and
// counters, platform-wide totals, and the requested analysis window.
type Report struct {
	ProviderID        id.Principal
	Organization      string
	Specialization    string
	Verified          bool
	TotalDataRequests uint64

	TotalPatients        uint64
	TotalProviders       uint64
	TotalConsentsCreated uint64 // next consent id minus one

	AnalysisStart uint64
	AnalysisEnd   uint64
	GeneratedAt   uint64

	// IncludeExpired is echoed from the request. It does not change which
	// grants feed the aggregates; the flag is reserved surface.
	IncludeExpired bool
}

package audit

// Access type tags recorded in audit entries. These classify what kind of
// access the entry witnesses; entries are append-only so the tag set only
// ever grows.
const (
	AccessTypeConsentGranted  = "consent_granted"
	AccessTypeConsentRevoked  = "consent_revoked"
	AccessTypeAnalyticsReport = "analytics_report"
)

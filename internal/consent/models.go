package consent

// maxTextLen bounds the data-category and purpose descriptions.
const maxTextLen = 512

// GrantRequest carries the caller-supplied fields of a new consent grant. The
// grantor is the authenticated caller, never part of the request body.
type GrantRequest struct {
	ProviderID      string
	DataCategories  string
	Purpose         string
	DurationTicks   uint64
	CanShareFurther bool
}

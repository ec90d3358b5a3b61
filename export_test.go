package endpoints

// Test-only exports for internal functions.
var (
	ResetAnnouncements = resetAnnouncements
	Announced          = announced

	HasParamTags = hasParamTags
	HasBodyField = hasBodyField
)

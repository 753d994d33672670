package storage

// Logical storage keys. The Store adds the configured namespace prefix
// before they reach Redis.
const (
	KeyOnboardingData = "onboarding_data"      // whole-form draft
	KeyMainForm       = "onboarding_form"      // flat mirror of all section fields
	KeyInviteCode     = "invite_code"          // validated invite code
	KeyUserData       = "user_data"            // user profile record
	KeyDashboard      = "onboarding_dashboard" // cached dashboard summary
)

const sectionKeyPrefix = "section_"

// SectionKey returns the per-section draft key.
func SectionKey(sectionID string) string {
	return sectionKeyPrefix + sectionID
}

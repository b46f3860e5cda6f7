package scraper

// Selectors used across the scraper.
// Centralising them makes future updates trivial.
const (
	// Login page
	EmailInputSelector    = `input[name="email"]`
	PasswordInputSelector = `input[name="password"]`
	DashboardSelector     = `#dashboard-container`

	// Search results page
	CardSelector = `a[data-cy="card-title-link"]`
	CardIDAttr   = "id"

	// Detail page
	JobTitleSelector = `h1[data-cy="jobTitle"]`
	SkillsSelector   = `div[data-cy="skillsList"]`

	// Application flow (XPath — the buttons carry no stable attributes)
	ApplyButtonXPath  = `//button[contains(text(),'Apply now')]`
	SubmitButtonXPath = `//button[contains(text(),'Submit')]`
)

package config

import (
	"fmt"
	"strings"
)

// Filter values as Dice's search URL expects them.
var (
	PostedDateChoices = map[string]string{
		"0": "zero",
		"1": "ONE",
		"3": "THREE",
		"7": "SEVEN",
	}
	EmploymentChoices = map[string]string{
		"1": "FULLTIME",
		"2": "PARTTIME",
		"3": "CONTRACTS",
		"4": "THIRD_PARTY",
	}
	WorkSettingChoices = map[string]string{
		"1": "On-Site",
		"2": "Hybrid",
		"3": "Remote",
	}
)

// pipe is the URL-encoded vertical bar Dice uses to join multi-value filters.
const pipe = "%7C"

// ResolvePostedDate maps a menu choice to a posted-date filter value.
// Anything unrecognized falls back to one day.
func ResolvePostedDate(choice string) string {
	if v, ok := PostedDateChoices[strings.TrimSpace(choice)]; ok {
		return v
	}
	return "ONE"
}

// ResolveEmploymentTypes maps a comma-separated list of menu choices to
// employment-type filter values. Blank input, or input with no valid
// choice, selects all types.
func ResolveEmploymentTypes(input string) []string {
	all := []string{"FULLTIME", "PARTTIME", "CONTRACTS", "THIRD_PARTY"}
	input = strings.TrimSpace(input)
	if input == "" {
		return all
	}
	var selected []string
	for _, k := range strings.Split(input, ",") {
		if v, ok := EmploymentChoices[strings.TrimSpace(k)]; ok {
			selected = append(selected, v)
		}
	}
	if len(selected) == 0 {
		return all
	}
	return selected
}

// ResolveWorkSettings maps a comma-separated list of menu choices to
// work-setting filter values. Blank input selects none (no filter applied).
func ResolveWorkSettings(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	var selected []string
	for _, k := range strings.Split(input, ",") {
		if v, ok := WorkSettingChoices[strings.TrimSpace(k)]; ok {
			selected = append(selected, v)
		}
	}
	return selected
}

// SearchURL builds the filtered jobs URL without a page number.
func (c Config) SearchURL() string {
	q := strings.ReplaceAll(strings.TrimSpace(c.JobTitle), " ", "%20")
	url := fmt.Sprintf(
		"%s/jobs?q=%s"+
			"&countryCode=US"+
			"&radius=30"+
			"&radiusUnit=mi"+
			"&pageSize=1000"+
			"&filters.postedDate=%s"+
			"&filters.employmentType=%s"+
			"&filters.easyApply=true"+
			"&language=en",
		c.BaseURL, q, c.PostedDate, strings.Join(c.EmploymentTypes, pipe),
	)
	if len(c.WorkSettings) > 0 {
		url += "&filters.workplaceTypes=" + strings.Join(c.WorkSettings, pipe)
	}
	return url
}

// PageURL appends the page number to a search URL.
func PageURL(searchURL string, page int) string {
	return fmt.Sprintf("%s&page=%d", searchURL, page)
}

// DetailURL derives a posting's detail-page URL from its card id.
func (c Config) DetailURL(id string) string {
	return c.BaseURL + "/job-detail/" + id
}

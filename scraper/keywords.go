package scraper

import "strings"

// relevanceKeywords gate which listing cards become candidates. A card is
// relevant when its display text contains any of these, case-insensitively.
var relevanceKeywords = []string{
	"quality assurance",
	"software testing",
	"test automation",
	"manual testing",
	"agile methodologies",
	"scrum",
	"regression testing",
	"functional testing",
	"performance testing",
	"user acceptance testing",
	"test cases",
	"defect tracking",
	"bug reporting",
	"selenium",
	"continuous integration",
	"exploratory testing",
	"test documentation",
	"test strategy",
	"web automation",
}

// MatchesKeywords reports whether text mentions any relevance keyword.
func MatchesKeywords(text string) bool {
	folded := strings.ToLower(text)
	for _, kw := range relevanceKeywords {
		if strings.Contains(folded, kw) {
			return true
		}
	}
	return false
}

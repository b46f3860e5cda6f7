package report

import (
	"sort"
	"strings"

	"github.com/benyamin-persia/dice-automation-apply/models"
)

type SkillCount struct {
	Skill string
	Count int
}

type Summary struct {
	Discovered int
	Processed  int
	Applied    int
	NotApplied int
	Skipped    int
	TopSkills  []SkillCount
}

// BuildSummary aggregates a run's outcome for the end-of-run log block.
func BuildSummary(result models.RunResult) Summary {
	summary := Summary{
		Discovered: result.Discovered,
		Processed:  len(result.Records),
		Skipped:    result.Skipped,
	}

	skillCounts := make(map[string]int)
	for _, record := range result.Records {
		if record.Applied {
			summary.Applied++
		} else {
			summary.NotApplied++
		}
		for _, skill := range strings.Split(record.Skills, ",") {
			skill = strings.TrimSpace(skill)
			if skill == "" {
				continue
			}
			skillCounts[skill]++
		}
	}

	topSkills := make([]SkillCount, 0, len(skillCounts))
	for skill, count := range skillCounts {
		topSkills = append(topSkills, SkillCount{Skill: skill, Count: count})
	}
	sort.Slice(topSkills, func(i, j int) bool {
		if topSkills[i].Count == topSkills[j].Count {
			return topSkills[i].Skill < topSkills[j].Skill
		}
		return topSkills[i].Count > topSkills[j].Count
	})
	if len(topSkills) > 5 {
		topSkills = topSkills[:5]
	}
	summary.TopSkills = topSkills

	return summary
}

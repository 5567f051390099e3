package domain

import "time"

// ScheduledCampaign is a frozen snapshot of a campaign saved for later
// publishing: the input that produced it, its generated drafts, and a
// creation timestamp (unix milliseconds).
type ScheduledCampaign struct {
	ID               string           `json:"id"`
	BrandInfo        BrandInfo        `json:"brandInfo"`
	GeneratedContent GeneratedContent `json:"generatedContent"`
	CreatedAt        int64            `json:"createdAt"`
}

// Clone returns an independent deep copy of the campaign
func (c ScheduledCampaign) Clone() ScheduledCampaign {
	return ScheduledCampaign{
		ID:               c.ID,
		BrandInfo:        c.BrandInfo.Clone(),
		GeneratedContent: c.GeneratedContent.Clone(),
		CreatedAt:        c.CreatedAt,
	}
}

// scheduleDateLayouts are accepted formats for BrandInfo.ScheduleDate.
// The browser's datetime-local input produces the first form.
var scheduleDateLayouts = []string{
	"2006-01-02T15:04",
	"2006-01-02T15:04:05",
	time.RFC3339,
}

// ScheduleTime parses the campaign's schedule date. The zero time is
// returned for an empty or unparseable value, which sorts such campaigns
// first in the schedule view.
func (c ScheduledCampaign) ScheduleTime() time.Time {
	raw := c.BrandInfo.ScheduleDate
	if raw == "" {
		return time.Time{}
	}
	for _, layout := range scheduleDateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t
		}
	}
	return time.Time{}
}

package models

// NewTestCampaignWire returns a schema-conformant campaign wire map as the
// remote service would return it.
func NewTestCampaignWire() map[string]any {
	return map[string]any{
		"campaignId":   501,
		"advertiserId": 12,
		"campaignName": "Spring Sale",
		"startDate":    NewDate(2024, 3, 1),
		"endDate":      NewDate(2024, 3, 31),
		"impressions":  -1,
		"clicks":       -1,
		"priority":     0,
		"weight":       1,
		"revenue":      1.55,
		"revenueType":  RevenueCPM,
		"comments":     "",
	}
}

// NewTestZoneWire returns a zone wire map that leaves websiteId out.
func NewTestZoneWire() map[string]any {
	return map[string]any{
		"zoneId":   7,
		"agencyId": 2,
		"zoneName": "Sidebar",
	}
}

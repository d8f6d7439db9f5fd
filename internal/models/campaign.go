package models

// Revenue types understood by the remote service for a campaign's revenueType.
const (
	RevenueCPM = 1
	RevenueCPC = 2
	RevenueCPA = 3
	RevenueMT  = 4 // monthly tenancy
)

// CampaignSchema lists the fields of a campaign. Booked impressions and clicks
// use -1 for "unlimited"; the frequency-capping trio (capping, sessionCapping,
// block) is only sent when the caller sets it.
var CampaignSchema = NewSchema("campaign", "campaignId",
	Field{"campaignId", TypeInteger},
	Field{"advertiserId", TypeInteger},
	Field{"campaignName", TypeString},
	Field{"startDate", TypeDate},
	Field{"endDate", TypeDate},
	Field{"impressions", TypeInteger},
	Field{"clicks", TypeInteger},
	Field{"priority", TypeInteger},
	Field{"weight", TypeInteger},
	Field{"targetImpressions", TypeInteger},
	Field{"targetClicks", TypeInteger},
	Field{"targetConversions", TypeInteger},
	Field{"revenue", TypeDouble},
	Field{"revenueType", TypeInteger},
	Field{"capping", TypeInteger},
	Field{"sessionCapping", TypeInteger},
	Field{"block", TypeInteger},
	Field{"comments", TypeString},
)

// Campaign groups the banners an advertiser books under shared dates, goals
// and delivery weight.
type Campaign struct {
	Record
}

// NewCampaign returns an empty campaign.
func NewCampaign() *Campaign {
	return &Campaign{Record: newRecord(CampaignSchema)}
}

// SetDefaultForAdd fills the booking defaults the remote service expects on
// creation. Revenue and frequency-capping fields stay unset: the service reads
// an unset cap as "no cap", which differs from a cap of 0.
func (c *Campaign) SetDefaultForAdd() {
	c.setDefault("impressions", -1)
	c.setDefault("clicks", -1)
	c.setDefault("priority", 0)
	c.setDefault("weight", 1)
	c.setDefault("targetImpressions", 0)
	c.setDefault("targetClicks", 0)
	c.setDefault("targetConversions", 0)
}

// Clone returns an independent copy of c.
func (c *Campaign) Clone() *Campaign {
	return &Campaign{Record: *c.Record.Clone()}
}

package models

var AdvertiserSchema = NewSchema("advertiser", "advertiserId",
	Field{"advertiserId", TypeInteger},
	Field{"accountId", TypeInteger},
	Field{"agencyId", TypeInteger},
	Field{"advertiserName", TypeString},
	Field{"contactName", TypeString},
	Field{"emailAddress", TypeString},
	Field{"comments", TypeString},
)

type Advertiser struct {
	Record
}

func NewAdvertiser() *Advertiser {
	return &Advertiser{Record: newRecord(AdvertiserSchema)}
}

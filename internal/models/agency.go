package models

var AgencySchema = NewSchema("agency", "agencyId",
	Field{"agencyId", TypeInteger},
	Field{"accountId", TypeInteger},
	Field{"agencyName", TypeString},
	Field{"contactName", TypeString},
	Field{"password", TypeString},
	Field{"emailAddress", TypeString},
)

// Agency is the top-level account owning advertisers and publishers.
type Agency struct {
	Record
}

func NewAgency() *Agency {
	return &Agency{Record: newRecord(AgencySchema)}
}

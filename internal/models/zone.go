package models

// Zone delivery types.
const (
	ZoneBanner       = 0
	ZoneInterstitial = 1
	ZonePopup        = 2
	ZoneText         = 3
	ZoneEmail        = 4
)

// ZoneSchema lists the fields of a zone, the slot on a publisher's site that
// banners and campaigns are linked to.
var ZoneSchema = NewSchema("zone", "zoneId",
	Field{"zoneId", TypeInteger},
	Field{"publisherId", TypeInteger},
	Field{"agencyId", TypeInteger},
	Field{"websiteId", TypeInteger},
	Field{"zoneName", TypeString},
	Field{"type", TypeInteger},
	Field{"width", TypeInteger},
	Field{"height", TypeInteger},
	Field{"capping", TypeInteger},
	Field{"sessionCapping", TypeInteger},
	Field{"block", TypeInteger},
	Field{"comments", TypeString},
	Field{"append", TypeString},
	Field{"prepend", TypeString},
	Field{"chainedZoneId", TypeInteger},
)

type Zone struct {
	Record
}

func NewZone() *Zone {
	return &Zone{Record: newRecord(ZoneSchema)}
}

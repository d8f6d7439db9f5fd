package models

// ChannelSchema lists the fields of a targeting channel, a reusable set of
// rules owned by an agency or a single website.
var ChannelSchema = NewSchema("channel", "channelId",
	Field{"channelId", TypeInteger},
	Field{"agencyId", TypeInteger},
	Field{"websiteId", TypeInteger},
	Field{"channelName", TypeString},
	Field{"description", TypeString},
	Field{"comments", TypeString},
)

type Channel struct {
	Record
}

func NewChannel() *Channel {
	return &Channel{Record: newRecord(ChannelSchema)}
}

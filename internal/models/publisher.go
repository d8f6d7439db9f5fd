package models

// PublisherSchema lists the fields of a publisher (a website in the remote UI).
var PublisherSchema = NewSchema("publisher", "publisherId",
	Field{"publisherId", TypeInteger},
	Field{"accountId", TypeInteger},
	Field{"agencyId", TypeInteger},
	Field{"publisherName", TypeString},
	Field{"contactName", TypeString},
	Field{"emailAddress", TypeString},
	Field{"website", TypeString},
	Field{"comments", TypeString},
)

// Publisher owns the zones ads are delivered into.
type Publisher struct {
	Record
}

// NewPublisher returns an empty publisher.
func NewPublisher() *Publisher {
	return &Publisher{Record: newRecord(PublisherSchema)}
}

package models

// Banner storage types.
const (
	StorageSQL  = "sql"  // image stored in the database
	StorageWeb  = "web"  // image stored on the web server
	StorageURL  = "url"  // external image
	StorageHTML = "html" // HTML snippet
	StorageText = "txt"  // text ad
)

// BannerSchema lists the fields of a banner. aImage and aBackupImage are
// custom fields carrying an Image; transparent is sent as 0/1.
var BannerSchema = NewSchema("banner", "bannerId",
	Field{"bannerId", TypeInteger},
	Field{"campaignId", TypeInteger},
	Field{"bannerName", TypeString},
	Field{"storageType", TypeString},
	Field{"imageURL", TypeString},
	Field{"htmlTemplate", TypeString},
	Field{"width", TypeInteger},
	Field{"height", TypeInteger},
	Field{"weight", TypeInteger},
	Field{"target", TypeString},
	Field{"url", TypeString},
	Field{"bannerText", TypeString},
	Field{"status", TypeInteger},
	Field{"adserver", TypeString},
	Field{"transparent", TypeInteger},
	Field{"capping", TypeInteger},
	Field{"sessionCapping", TypeInteger},
	Field{"block", TypeInteger},
	Field{"aImage", TypeCustom},
	Field{"aBackupImage", TypeCustom},
	Field{"comments", TypeString},
	Field{"alt", TypeString},
	Field{"filename", TypeString},
	Field{"append", TypeString},
	Field{"prepend", TypeString},
)

// Banner is a single creative inside a campaign.
type Banner struct {
	Record
}

// NewBanner returns an empty banner.
func NewBanner() *Banner {
	return &Banner{Record: newRecord(BannerSchema)}
}

// SetDefaultForAdd fills the creation defaults: an SQL-stored, active,
// non-transparent banner of weight 1 and unknown size. Frequency capping
// stays unset.
func (b *Banner) SetDefaultForAdd() {
	b.setDefault("storageType", StorageSQL)
	b.setDefault("width", 0)
	b.setDefault("height", 0)
	b.setDefault("weight", 1)
	b.setDefault("status", 0)
	b.setDefault("transparent", 0)
}

// SetImage attaches the primary image payload.
func (b *Banner) SetImage(img Image) error {
	return b.Set("aImage", img)
}

// SetBackupImage attaches the fallback image shown when the primary is a SWF.
func (b *Banner) SetBackupImage(img Image) error {
	return b.Set("aBackupImage", img)
}

// Clone returns an independent copy of b.
func (b *Banner) Clone() *Banner {
	return &Banner{Record: *b.Record.Clone()}
}

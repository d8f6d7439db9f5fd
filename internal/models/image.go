package models

// Image is the binary payload uploaded with SQL- and web-stored banners.
type Image struct {
	Filename string
	Content  []byte
	// EditSWF asks the service to scan SWF content for hard-coded click URLs.
	EditSWF bool
}

// Wire returns the inline struct sent under aImage or aBackupImage.
func (i Image) Wire() map[string]any {
	return map[string]any{
		"filename": i.Filename,
		"content":  i.Content,
		"editswf":  i.EditSWF,
	}
}

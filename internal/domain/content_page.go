package domain

import "time"

// PageType tags a content page; it decides which booklet section it lands in.
type PageType string

const (
	PageTypeMessage PageType = "message"
	PageTypeSpeech  PageType = "speech"
	PageTypePoem    PageType = "poem"
	PageTypeOther   PageType = "other"
)

func (t PageType) String() string { return string(t) }

func (t PageType) IsValid() bool {
	switch t {
	case PageTypeMessage, PageTypeSpeech, PageTypePoem, PageTypeOther:
		return true
	}
	return false
}

// Section returns the booklet section a page of this type belongs to.
// Types without a section are never rendered into the booklet.
func (t PageType) Section() (Section, bool) {
	switch t {
	case PageTypeMessage:
		return SectionMessages, true
	case PageTypeSpeech:
		return SectionSpeeches, true
	}
	return "", false
}

// PageSize is a layout hint for the public site.
type PageSize string

const (
	PageSizeSmall  PageSize = "small"
	PageSizeMedium PageSize = "medium"
	PageSizeLarge  PageSize = "large"
)

func (s PageSize) IsValid() bool {
	switch s {
	case PageSizeSmall, PageSizeMedium, PageSizeLarge:
		return true
	}
	return false
}

// ContentPage belongs to exactly one graduation.
type ContentPage struct {
	ID             string
	GraduationID   string
	Title          string
	Author         *string
	AuthorPhotoURL *string
	Type           PageType
	Body           string
	Images         []string
	VideoURL       *string
	Size           PageSize
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AssetURLs lists every uploaded asset the page references.
func (p *ContentPage) AssetURLs() []string {
	urls := make([]string, 0, len(p.Images)+2)
	for _, u := range p.Images {
		if u != "" {
			urls = append(urls, u)
		}
	}
	if p.AuthorPhotoURL != nil && *p.AuthorPhotoURL != "" {
		urls = append(urls, *p.AuthorPhotoURL)
	}
	if p.VideoURL != nil && *p.VideoURL != "" {
		urls = append(urls, *p.VideoURL)
	}
	return urls
}

// ContentPageUpdateParams holds optional fields for a content page update.
type ContentPageUpdateParams struct {
	Title          *string
	Author         *string
	AuthorPhotoURL *string
	Type           *PageType
	Body           *string
	Images         *[]string
	VideoURL       *string
	Size           *PageSize
}

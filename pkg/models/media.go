package models

// MediaType classifies a file by its extension
type MediaType string

const (
	// MediaPhoto is a still image
	MediaPhoto MediaType = "photo"
	// MediaVideo is a video clip
	MediaVideo MediaType = "video"
	// MediaPDF is a PDF document
	MediaPDF MediaType = "pdf"
	// MediaNone is anything else
	MediaNone MediaType = "none"
)

// TypeFilter selects which media types a scan keeps
type TypeFilter struct {
	Photos bool `yaml:"photos" json:"photos"`
	Videos bool `yaml:"videos" json:"videos"`
	PDFs   bool `yaml:"pdfs" json:"pdfs"`
}

// AllTypes returns a filter that keeps every media type
func AllTypes() TypeFilter {
	return TypeFilter{Photos: true, Videos: true, PDFs: true}
}

// Empty reports whether no media type is selected
func (f TypeFilter) Empty() bool {
	return !f.Photos && !f.Videos && !f.PDFs
}

// Allows reports whether files of type t pass the filter
func (f TypeFilter) Allows(t MediaType) bool {
	switch t {
	case MediaPhoto:
		return f.Photos
	case MediaVideo:
		return f.Videos
	case MediaPDF:
		return f.PDFs
	default:
		return false
	}
}

// Names lists the selected types for display
func (f TypeFilter) Names() []string {
	var names []string
	if f.Photos {
		names = append(names, "Photos")
	}
	if f.Videos {
		names = append(names, "Videos")
	}
	if f.PDFs {
		names = append(names, "PDFs")
	}
	return names
}

// OrganizeMode defines the destination folder layout
type OrganizeMode string

const (
	// OrganizeByDate lays files out as <Type>/<Year>/<Month>
	OrganizeByDate OrganizeMode = "date"
	// OrganizeBySource lays files out as <Type>/<Source>
	OrganizeBySource OrganizeMode = "source"
)

// ParseOrganizeMode validates a mode name
func ParseOrganizeMode(s string) (OrganizeMode, error) {
	switch OrganizeMode(s) {
	case OrganizeByDate, OrganizeBySource:
		return OrganizeMode(s), nil
	default:
		return "", &ValidationError{Field: "organize", Message: "must be 'date' or 'source', got '" + s + "'"}
	}
}

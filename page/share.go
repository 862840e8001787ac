package page

// ShareVersion is written into every ShareableData envelope.
const ShareVersion = "1.0.0"

// ShareableData is a self-contained snapshot of a session. It holds no
// reference to the session it was taken from.
type ShareableData struct {
	Sections  []Section    `json:"sections"`
	Theme     ThemeConfig  `json:"theme"`
	FormData  UserFormData `json:"formData"`
	Timestamp int64        `json:"timestamp"`
	Version   string       `json:"version"`
}

// NewShareableData copies sections, theme and form data into a fresh
// envelope stamped with timestamp (epoch milliseconds).
func NewShareableData(sections []Section, theme ThemeConfig, form UserFormData, timestamp int64) ShareableData {
	sections = CloneSections(sections)
	if sections == nil {
		sections = []Section{}
	}
	return ShareableData{
		Sections:  sections,
		Theme:     theme,
		FormData:  form.Clone(),
		Timestamp: timestamp,
		Version:   ShareVersion,
	}
}

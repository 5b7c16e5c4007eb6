package menu

// Kind is the closed set of activations the application reacts to.
type Kind int

const (
	// KindOther is any activation without application behavior.
	KindOther Kind = iota

	// KindAboutRequested is produced by the About entry.
	KindAboutRequested

	// KindOpenFileRequested is produced by the Open File entry.
	KindOpenFileRequested
)

// String returns the metric/log label for the kind.
func (k Kind) String() string {
	switch k {
	case KindAboutRequested:
		return "about"
	case KindOpenFileRequested:
		return "open_file"
	default:
		return "other"
	}
}

// Activation is produced when the user selects a menu entry.
// It is consumed once by the router and not retained.
type Activation struct {
	// ID of the selected item.
	ID string

	// Kind classifies ID.
	Kind Kind
}

// Classify converts a raw item identifier into an Activation.
func Classify(id string) Activation {
	a := Activation{ID: id, Kind: KindOther}

	switch id {
	case IDAbout:
		a.Kind = KindAboutRequested
	case IDOpenFile:
		a.Kind = KindOpenFileRequested
	}

	return a
}

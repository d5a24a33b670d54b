package model

// Page is a complete standalone screen occupying everything above the footer.
type Page int

const (
	PageMain Page = iota
	PageHelp
)

// ViewState tracks the common ui states that are shared between many models.
type ViewState struct {
	// Page is the active highest level page model.
	Page Page

	// --------- h
	// |Content| e
	// |       | i
	// |-------- g
	// |Footer | h
	// --------- t
	// W i d t h
	Content int
	Height  int
	Width   int
}

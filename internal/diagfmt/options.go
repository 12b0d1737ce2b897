package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows the path as stored in the FileSet.
	PathModeAuto PathMode = iota
	// PathModeBasename strips the directory.
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color       bool
	PathMode    PathMode
	Width       uint16 // maximum rendered line width, 0 means unlimited
	ShowNotes   bool
	ShowPreview bool // source line plus caret underline
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // add line/col to every location
	PathMode         PathMode
	Max              int // output truncation; the Bag itself is untouched
	IncludeNotes     bool
}

package expression

// Style selects the overall output mode for formatting Values and CSS.
type Style int

const (
	// Expanded is two-space-indented, newline-separated output with a
	// trailing ';' before '}'.
	Expanded Style = iota
	// Compressed omits all non-semantic whitespace and prefers the
	// shortest equivalent color/number representation.
	Compressed
)

// Format parameterizes how Values (and the output buffer) render.
// Precision controls decimal rounding at emit time only; intermediate
// arithmetic in Number is always exact.
type Format struct {
	Style     Style
	Precision int
}

// DefaultFormat is Expanded with 10 digits of decimal precision, matching
// the precision budget most CSS preprocessors converge on.
func DefaultFormat() Format {
	return Format{Style: Expanded, Precision: 10}
}

// Compressed returns f with Style switched to Compressed.
func (f Format) Compressed() Format {
	f.Style = Compressed
	return f
}

func (f Format) isCompressed() bool { return f.Style == Compressed }

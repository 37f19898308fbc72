package smoke

import (
	"fmt"
	"io"
	"strings"
)

const defaultPreviewLen = 100

// Style controls how a /tts outcome is laid out. Full prints the whole text
// instead of a preview.
type Style struct {
	Indent   string
	Pass     string
	Fail     string
	Full     bool
	PassNote string
}

// DefaultStyle is the indented layout used by the topic cases.
var DefaultStyle = Style{
	Indent:   "   ",
	Pass:     "✅",
	Fail:     "❌",
	PassNote: "Response received",
}

// Reporter writes human-oriented results. It is not safe for concurrent use; the
// runner only ever writes from one goroutine.
type Reporter struct {
	w          io.Writer
	previewLen int
}

// NewReporter returns a reporter truncating message text to previewLen runes.
func NewReporter(w io.Writer, previewLen int) *Reporter {
	if previewLen <= 0 {
		previewLen = defaultPreviewLen
	}
	return &Reporter{w: w, previewLen: previewLen}
}

// Printf writes formatted text as-is.
func (r *Reporter) Printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

// Println writes one line.
func (r *Reporter) Println(args ...any) {
	fmt.Fprintln(r.w, args...)
}

// Header prints a title underlined with width '=' characters.
func (r *Reporter) Header(title string, width int) {
	r.Println(title)
	r.Println(strings.Repeat("=", width))
}

// Case prints the first message fields or the failure reason.
func (r *Reporter) Case(o Outcome, style Style) {
	in := style.Indent
	switch o.Kind {
	case KindSuccess:
		text := o.Fields.Text
		if !style.Full {
			text = Preview(text, r.previewLen) + "..."
		}
		r.Printf("%sText: %s\n", in, text)
		r.Printf("%sExpression: %s\n", in, o.Fields.FacialExpression)
		r.Printf("%sAnimation: %s\n", in, o.Fields.Animation)
		r.Printf("%s%s %s\n", in, style.Pass, style.PassNote)
	case KindEmptyMessages:
		r.Printf("%s%s No messages in response\n", in, style.Fail)
	case KindHTTPError:
		r.Printf("%s%s HTTP %d: %s\n", in, style.Fail, o.Status, o.Body)
	default:
		r.Printf("%s%s Error: %v\n", in, style.Fail, o.Err)
	}
}

// Voices prints the /voices check result.
func (r *Reporter) Voices(o Outcome) {
	switch o.Kind {
	case KindSuccess:
		r.Println("  ✓ Voices endpoint working")
	case KindHTTPError:
		r.Printf("  ✗ Voices endpoint failed: %d\n", o.Status)
	default:
		r.Printf("  ✗ Error testing voices endpoint: %v\n", o.Err)
	}
}

// Preview returns at most n runes of text.
func Preview(text string, n int) string {
	runes := []rune(text)
	if n <= 0 || len(runes) <= n {
		return text
	}
	return string(runes[:n])
}

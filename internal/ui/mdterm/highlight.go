package mdterm

import (
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

// highlightCode colors lines of code in lang. The result always has the
// same lines and, once stripped of escape sequences, the same text as the
// input; anything else falls back to the plain lines.
func (r *Renderer) highlightCode(lines []string, lang string) []string {
	if !r.highlight || r.profile == termenv.Ascii || lang == "" || len(lines) == 0 {
		return lines
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return lines
	}
	lexer = chroma.Coalesce(lexer)

	code := strings.Join(lines, "\n")
	iterator, err := lexer.Tokenise(nil, code+"\n")
	if err != nil {
		return lines
	}

	var buf strings.Builder
	f := &profileFormatter{style: r.chromaStyle, profile: r.profile}
	if err := f.Format(&buf, iterator); err != nil {
		return lines
	}

	out := strings.TrimSuffix(buf.String(), "\n")
	if ansi.Strip(out) != code {
		return lines
	}
	highlighted := strings.Split(out, "\n")
	if len(highlighted) != len(lines) {
		return lines
	}
	return highlighted
}

// profileFormatter is a chroma formatter that applies foreground colors
// degraded to a termenv profile. Styling never spans a newline.
type profileFormatter struct {
	style   *chroma.Style
	profile termenv.Profile
}

func (f *profileFormatter) Format(w io.Writer, iterator chroma.Iterator) error {
	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := f.style.Get(token.Type)
		for i, piece := range strings.Split(token.Value, "\n") {
			if i > 0 {
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
			}
			if piece == "" {
				continue
			}
			if _, err := io.WriteString(w, f.styled(piece, entry)); err != nil {
				return err
			}
		}
	}
	return nil
}

func (f *profileFormatter) styled(s string, entry chroma.StyleEntry) string {
	st := f.profile.String(s)
	if entry.Colour.IsSet() {
		st = st.Foreground(f.profile.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		st = st.Bold()
	}
	if entry.Italic == chroma.Yes {
		st = st.Italic()
	}
	if entry.Underline == chroma.Yes {
		st = st.Underline()
	}
	return st.String()
}

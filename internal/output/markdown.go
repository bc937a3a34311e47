package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/glamour"

	"github.com/twiced-technology-gmbh/weekplan/internal/planning"
)

// WeekMarkdown renders a week view as a markdown document.
func WeekMarkdown(v planning.View) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", v.Title)
	if v.Empty {
		fmt.Fprintf(&b, "%s\n", v.Description)
		return b.String()
	}
	for _, f := range v.Fields {
		box := "[ ]"
		if f.Done {
			box = "[x]"
		}
		fmt.Fprintf(&b, "- %s **%s**  \n  %s\n", box, escape(f.Name), f.Value)
	}
	return b.String()
}

// RenderMarkdown writes md to w through glamour. Without colour the plain
// "notty" style is used.
func RenderMarkdown(w io.Writer, md string, width int, color bool) error {
	if width <= 0 {
		width = 80
	}
	style := "dark"
	if !color {
		style = "notty"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithWordWrap(width),
		glamour.WithStandardStyle(style),
	)
	if err != nil {
		return fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return fmt.Errorf("rendering markdown: %w", err)
	}
	_, err = io.WriteString(w, out)
	return err
}

var mdEscaper = strings.NewReplacer("*", `\*`, "_", `\_`, "`", "\\`")

func escape(s string) string {
	return mdEscaper.Replace(s)
}

package podcast

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/smallnest/podcastgraph/llms"
)

const (
	maxDisplayedSupports = 5
	maxSnippetRunes      = 100
)

// Display prints model output and its citations to a console. It only
// renders; nothing it prints flows back into pipeline state. A nil *Display
// prints nothing.
type Display struct {
	w       io.Writer
	banner  lipgloss.Style
	heading lipgloss.Style
	dim     lipgloss.Style
}

// NewDisplay creates a Display writing to w. Styling follows w's color
// profile, so plain buffers and pipes receive unstyled text.
func NewDisplay(w io.Writer) *Display {
	r := lipgloss.NewRenderer(w)
	return &Display{
		w:       w,
		banner:  r.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		heading: r.NewStyle().Bold(true),
		dim:     r.NewStyle().Faint(true),
	}
}

// Response prints generated text followed by its sources and the first few
// text segments backed by them.
func (d *Display) Response(text string, gm *llms.GroundingMetadata) {
	if d == nil {
		return
	}
	fmt.Fprintln(d.w, text)
	if gm == nil {
		return
	}

	rule := strings.Repeat("=", 50)
	fmt.Fprintln(d.w, "\n"+rule)
	fmt.Fprintln(d.w, d.banner.Render("References & Sources"))
	fmt.Fprintln(d.w, rule)

	if len(gm.Chunks) > 0 {
		fmt.Fprintln(d.w, "\n"+d.heading.Render(fmt.Sprintf("Sources (%d):", len(gm.Chunks))))
		for i, chunk := range gm.Chunks {
			if chunk.Web == nil {
				continue
			}
			title, uri := webSourceLabels(chunk.Web)
			fmt.Fprintf(d.w, "%d. %s\n", i+1, title)
			fmt.Fprintf(d.w, "   %s\n", d.dim.Render(uri))
		}
	}

	if len(gm.Supports) > 0 {
		fmt.Fprintln(d.w, "\n"+d.heading.Render("Text segments with source backing:"))
		supports := gm.Supports
		if len(supports) > maxDisplayedSupports {
			supports = supports[:maxDisplayedSupports]
		}
		for _, s := range supports {
			if s.SegmentText == "" {
				continue
			}
			nums := make([]string, len(s.ChunkIndices))
			for i, idx := range s.ChunkIndices {
				nums[i] = strconv.Itoa(idx + 1)
			}
			fmt.Fprintf(d.w, "• \"%s\" %s\n", snippet(s.SegmentText),
				d.dim.Render("(sources: "+strings.Join(nums, ", ")+")"))
		}
	}
}

// AudioSaved reports where the episode audio was written.
func (d *Display) AudioSaved(path string) {
	if d == nil {
		return
	}
	fmt.Fprintf(d.w, "Professional podcast saved as: %s\n", path)
}

func snippet(text string) string {
	r := []rune(text)
	if len(r) > maxSnippetRunes {
		return string(r[:maxSnippetRunes]) + "..."
	}
	return text
}

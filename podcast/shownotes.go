package podcast

import (
	"fmt"
	"os"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// ShowNotes renders a markdown document describing a finished episode.
// Sections with no content are left out.
func ShowNotes(s State) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", orDefault(s.PodcastTitle, defaultTitle))
	if s.PodcastDescription != "" {
		fmt.Fprintf(&b, "%s\n\n", s.PodcastDescription)
	}
	if s.DurationEstimate != "" {
		fmt.Fprintf(&b, "*Estimated duration: %s*\n\n", s.DurationEstimate)
	}

	writeList(&b, "Topics Covered", s.TopicsCovered)
	writeList(&b, "Key Insights", s.KeyInsights)

	if s.ContentSummary != "" {
		fmt.Fprintf(&b, "## Summary\n\n%s\n\n", s.ContentSummary)
	}
	if s.VideoURL != "" {
		fmt.Fprintf(&b, "## Video Source\n\n- **URL**: %s\n\n", s.VideoURL)
	}
	if s.SearchSourcesText != "" {
		fmt.Fprintf(&b, "## Sources\n\n%s\n\n", s.SearchSourcesText)
	}
	if s.PodcastScript != "" {
		b.WriteString("## Script\n\n")
		for _, line := range strings.Split(s.PodcastScript, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				fmt.Fprintf(&b, "%s\n\n", line)
			}
		}
	}

	b.WriteString("---\n*Generated from web research and video analysis*\n")
	return b.String()
}

func writeList(b *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, item := range items {
		fmt.Fprintf(b, "- %s\n", item)
	}
	b.WriteString("\n")
}

// ShowNotesHTML converts the show notes to sanitized HTML.
func ShowNotesHTML(s State) []byte {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(ShowNotes(s)))

	htmlFlags := html.CommonFlags | html.HrefTargetBlank
	renderer := html.NewRenderer(html.RendererOptions{Flags: htmlFlags})

	return bluemonday.UGCPolicy().SanitizeBytes(markdown.Render(doc, renderer))
}

// WriteShowNotes writes the markdown and HTML show notes next to the
// episode audio and returns both paths.
func WriteShowNotes(s State) (mdPath, htmlPath string, err error) {
	if s.PodcastAudioFilename == "" {
		return "", "", fmt.Errorf("no audio file to attach show notes to")
	}
	base := strings.TrimSuffix(s.PodcastAudioFilename, ".wav")
	mdPath, htmlPath = base+".md", base+".html"

	if err := os.WriteFile(mdPath, []byte(ShowNotes(s)), 0o644); err != nil {
		return "", "", fmt.Errorf("write show notes: %w", err)
	}
	if err := os.WriteFile(htmlPath, ShowNotesHTML(s), 0o644); err != nil {
		return "", "", fmt.Errorf("write show notes: %w", err)
	}
	return mdPath, htmlPath, nil
}

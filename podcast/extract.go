package podcast

import (
	"fmt"
	"strings"

	"github.com/smallnest/podcastgraph/llms"
)

// ExtractContent returns the text of the first candidate's first part and a
// numbered listing of its web sources. The listing numbers sources by their
// 1-based position among all grounding chunks, so non-web chunks leave gaps.
// It is empty when the candidate carries no grounding metadata.
func ExtractContent(resp *llms.Response) (text, sourcesText string, err error) {
	part, err := resp.FirstPart()
	if err != nil {
		return "", "", err
	}
	return part.Text, formatSources(resp.Candidates[0].GroundingMetadata), nil
}

func formatSources(gm *llms.GroundingMetadata) string {
	if gm == nil {
		return ""
	}
	var entries []string
	for i, chunk := range gm.Chunks {
		if chunk.Web == nil {
			continue
		}
		title, uri := webSourceLabels(chunk.Web)
		entries = append(entries, fmt.Sprintf("%d. %s\n   %s", i+1, title, uri))
	}
	return strings.Join(entries, "\n")
}

func webSourceLabels(w *llms.WebSource) (title, uri string) {
	title, uri = w.Title, w.URI
	if title == "" {
		title = "No title"
	}
	if uri == "" {
		uri = "No URI"
	}
	return title, uri
}

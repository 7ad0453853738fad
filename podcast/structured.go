package podcast

import (
	"encoding/json"
	"strings"
)

// Synthesis is the structured reply of the content synthesis stage.
type Synthesis struct {
	ContentSummary string   `json:"content_summary"`
	KeyInsights    []string `json:"key_insights"`
}

// Metadata is the structured reply of the metadata stage.
type Metadata struct {
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	TopicsCovered []string `json:"topics_covered"`
}

// ParseSynthesis decodes a synthesis reply. It reports false when the reply
// is not a JSON object carrying both keys; callers then use the raw text.
func ParseSynthesis(text string) (Synthesis, bool) {
	var raw struct {
		ContentSummary *string   `json:"content_summary"`
		KeyInsights    *[]string `json:"key_insights"`
	}
	if !decodeReply(text, &raw) || raw.ContentSummary == nil || raw.KeyInsights == nil {
		return Synthesis{}, false
	}
	return Synthesis{ContentSummary: *raw.ContentSummary, KeyInsights: *raw.KeyInsights}, true
}

// ParseMetadata decodes a metadata reply. It reports false when any of the
// three keys is missing or the reply is not JSON.
func ParseMetadata(text string) (Metadata, bool) {
	var raw struct {
		Title         *string   `json:"title"`
		Description   *string   `json:"description"`
		TopicsCovered *[]string `json:"topics_covered"`
	}
	if !decodeReply(text, &raw) || raw.Title == nil || raw.Description == nil || raw.TopicsCovered == nil {
		return Metadata{}, false
	}
	return Metadata{Title: *raw.Title, Description: *raw.Description, TopicsCovered: *raw.TopicsCovered}, true
}

// decodeReply unmarshals a model reply, unwrapping a markdown code fence if
// the model added one.
func decodeReply(text string, out any) bool {
	return json.Unmarshal([]byte(stripCodeFence(text)), out) == nil
}

func stripCodeFence(text string) string {
	s := strings.TrimSpace(text)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

package podcast

// State is the record threaded through the pipeline. Each stage reads the
// fields written before it and returns a State holding only its own output;
// the graph merges that delta with MergeState.
type State struct {
	Topic           string `json:"topic,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`

	SearchText        string `json:"search_text,omitempty"`
	SearchSourcesText string `json:"search_sources_text,omitempty"`

	VideoText string `json:"video_text,omitempty"`

	ContentSummary string   `json:"content_summary,omitempty"`
	KeyInsights    []string `json:"key_insights,omitempty"`

	PodcastTitle       string   `json:"podcast_title,omitempty"`
	PodcastDescription string   `json:"podcast_description,omitempty"`
	TopicsCovered      []string `json:"topics_covered,omitempty"`

	PodcastScript        string `json:"podcast_script,omitempty"`
	PodcastAudioFilename string `json:"podcast_audio_filename,omitempty"`
	DurationEstimate     string `json:"duration_estimate,omitempty"`
}

// Input is what a caller supplies. At least one of Topic and VideoURL must be set.
type Input struct {
	Topic           string `json:"topic,omitempty"`
	VideoURL        string `json:"video_url,omitempty"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
}

// State returns the initial pipeline state for the input.
func (in Input) State() State {
	return State{Topic: in.Topic, VideoURL: in.VideoURL, DurationMinutes: in.DurationMinutes}
}

// Output is the externally visible result of a run.
type Output struct {
	PodcastTitle         string   `json:"podcast_title"`
	PodcastDescription   string   `json:"podcast_description"`
	PodcastScript        string   `json:"podcast_script"`
	PodcastAudioFilename string   `json:"podcast_audio_filename"`
	DurationEstimate     string   `json:"duration_estimate"`
	TopicsCovered        []string `json:"topics_covered"`
}

// Output projects the public result fields out of the state.
func (s State) Output() Output {
	return Output{
		PodcastTitle:         s.PodcastTitle,
		PodcastDescription:   s.PodcastDescription,
		PodcastScript:        s.PodcastScript,
		PodcastAudioFilename: s.PodcastAudioFilename,
		DurationEstimate:     s.DurationEstimate,
		TopicsCovered:        s.TopicsCovered,
	}
}

// MergeState overwrites every field of current that update sets.
// Zero-valued fields in update leave current untouched.
func MergeState(current, update State) State {
	setString(&current.Topic, update.Topic)
	setString(&current.VideoURL, update.VideoURL)
	if update.DurationMinutes != 0 {
		current.DurationMinutes = update.DurationMinutes
	}
	setString(&current.SearchText, update.SearchText)
	setString(&current.SearchSourcesText, update.SearchSourcesText)
	setString(&current.VideoText, update.VideoText)
	setString(&current.ContentSummary, update.ContentSummary)
	setStrings(&current.KeyInsights, update.KeyInsights)
	setString(&current.PodcastTitle, update.PodcastTitle)
	setString(&current.PodcastDescription, update.PodcastDescription)
	setStrings(&current.TopicsCovered, update.TopicsCovered)
	setString(&current.PodcastScript, update.PodcastScript)
	setString(&current.PodcastAudioFilename, update.PodcastAudioFilename)
	setString(&current.DurationEstimate, update.DurationEstimate)
	return current
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}

func setStrings(dst *[]string, v []string) {
	if v != nil {
		*dst = append([]string(nil), v...)
	}
}

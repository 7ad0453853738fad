// podcastgraph - Generating Two-Voice Podcast Episodes in Go
//
// podcastgraph turns a topic, a video URL, or both into a scripted
// conversation between a host and an expert, synthesized to speech and saved
// as a WAV file. The work runs as a five-stage state graph: research with
// search grounding, video analysis, content synthesis, metadata generation,
// and script writing with multi-speaker text-to-speech.
//
// # Quick Start
//
// Install the command:
//
//	go install github.com/smallnest/podcastgraph/cmd/podcaster@latest
//
// Create an episode:
//
//	export GEMINI_API_KEY=...
//	podcaster create --topic "the history of the transistor" --notes
//	podcaster create --video https://www.youtube.com/watch?v=abc --duration 3
//
// Inspect the pipeline and its settings:
//
//	podcaster graph --format mermaid
//	podcaster config show
//
// # Package Structure
//
// graph
//
// Typed state graph with conditional routing, reducers, listeners and
// Mermaid/DOT export.
//
// podcast
//
// Configuration, pipeline state, the five stages, WAV output and show notes.
//
// llms
//
// Contract between the stages and a generative service, with adapters for
// the Gemini API (llms/gemini) and langchaingo models (llms/langchain).
//
// store
//
// Checkpoint persistence after every stage: memory, SQLite, PostgreSQL and
// Redis backends.
//
// log
//
// Leveled logging over the standard library or kataras/golog.
//
// # Configuration
//
// Every setting resolves from an environment variable named after its
// upper-cased key, then an override (a TOML file passed with --config, or
// command flags), then a built-in default:
//
//	SEARCH_MODEL=gemini-2.5-flash
//	TTS_MODEL=gemini-2.5-flash-preview-tts
//	HOST_NAME=Alex  HOST_VOICE=Kore
//	EXPERT_NAME=Sam EXPERT_VOICE=Puck
//	TARGET_DURATION_MINUTES=5
//
// Run "podcaster config keys" for the full list.
package podcastgraph // import "github.com/smallnest/podcastgraph"

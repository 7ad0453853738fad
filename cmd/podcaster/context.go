package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/smallnest/podcastgraph/llms"
	"github.com/smallnest/podcastgraph/llms/gemini"
	"github.com/smallnest/podcastgraph/llms/langchain"
	"github.com/smallnest/podcastgraph/log"
	"github.com/smallnest/podcastgraph/podcast"
	"github.com/smallnest/podcastgraph/store"
	"github.com/smallnest/podcastgraph/store/memory"
	"github.com/smallnest/podcastgraph/store/postgres"
	"github.com/smallnest/podcastgraph/store/redis"
	"github.com/smallnest/podcastgraph/store/sqlite"
	"github.com/tmc/langchaingo/llms/openai"
)

const defaultSqlitePath = "podcast_checkpoints.db"

// commandContext carries persistent flag values and the factories commands use.
type commandContext struct {
	configPath string
	logLevel   string
	storeKind  string
	storeDSN   string

	// newGenerator builds the generative client; tests replace it.
	newGenerator func(ctx context.Context, cfg podcast.Configuration, synthesisProvider string, logger log.Logger) (llms.Generator, error)
}

func newCommandContext() *commandContext {
	return &commandContext{newGenerator: defaultGenerator}
}

// configuration resolves the configuration from the environment, the
// --config file and flag overrides, in that order of precedence.
func (c *commandContext) configuration(flagOverrides map[string]any) (podcast.Configuration, error) {
	overrides := map[string]any{}
	if path := strings.TrimSpace(c.configPath); path != "" {
		fileOverrides, err := podcast.LoadOverrides(path)
		if err != nil {
			return podcast.Configuration{}, err
		}
		overrides = fileOverrides
	}
	for k, v := range flagOverrides {
		overrides[k] = v
	}
	return podcast.ResolveConfiguration(overrides), nil
}

func (c *commandContext) logger(w io.Writer) (log.Logger, error) {
	level, err := log.ParseLevel(c.logLevel)
	if err != nil {
		return nil, err
	}
	return log.NewPipelineLogger(w, level), nil
}

// openStore opens the checkpoint store selected by --store. It returns a nil
// store when checkpoints are disabled.
func (c *commandContext) openStore(ctx context.Context) (store.CheckpointStore, func(), error) {
	noop := func() {}
	switch strings.ToLower(strings.TrimSpace(c.storeKind)) {
	case "":
		return nil, noop, nil
	case "memory":
		return memory.NewMemoryCheckpointStore(), noop, nil
	case "sqlite":
		path := c.storeDSN
		if path == "" {
			path = defaultSqlitePath
		}
		s, err := sqlite.NewSqliteCheckpointStore(sqlite.SqliteOptions{Path: path})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil
	case "postgres":
		if c.storeDSN == "" {
			return nil, nil, fmt.Errorf("--store-dsn is required for postgres")
		}
		s, err := postgres.NewPostgresCheckpointStore(ctx, postgres.PostgresOptions{ConnString: c.storeDSN})
		if err != nil {
			return nil, nil, err
		}
		return s, s.Close, nil
	case "redis":
		addr := c.storeDSN
		if addr == "" {
			addr = "localhost:6379"
		}
		s := redis.NewRedisCheckpointStore(redis.RedisOptions{Addr: addr})
		return s, func() { s.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown checkpoint store %q", c.storeKind)
	}
}

// defaultGenerator connects to Gemini with GEMINI_API_KEY. With the openai
// synthesis provider, calls for the synthesis model go through langchaingo's
// OpenAI client instead (OPENAI_API_KEY); search, video and speech stay on Gemini.
func defaultGenerator(ctx context.Context, cfg podcast.Configuration, synthesisProvider string, logger log.Logger) (llms.Generator, error) {
	gen, err := gemini.New(ctx, gemini.WithAPIKey(os.Getenv("GEMINI_API_KEY")))
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}

	switch synthesisProvider {
	case "", "gemini":
		return gen, nil
	case "openai":
		if cfg.SynthesisModel == cfg.SearchModel || cfg.SynthesisModel == cfg.VideoModel {
			return nil, fmt.Errorf("synthesis model %q must differ from the search and video models when using openai", cfg.SynthesisModel)
		}
		model, err := openai.New(openai.WithModel(cfg.SynthesisModel))
		if err != nil {
			return nil, fmt.Errorf("openai client: %w", err)
		}
		return &llms.Router{
			Default: gen,
			Models:  map[string]llms.Generator{cfg.SynthesisModel: langchain.New(model, logger)},
		}, nil
	default:
		return nil, fmt.Errorf("unknown synthesis provider %q", synthesisProvider)
	}
}

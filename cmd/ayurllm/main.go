// Copyright 2025 Ayur LLM Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	ayurllm "github.com/sahilrangra/ayur-llm"
	"github.com/sahilrangra/ayur-llm/ai"
	"github.com/sahilrangra/ayur-llm/ai/openai"
	"github.com/sahilrangra/ayur-llm/index"
	"github.com/sahilrangra/ayur-llm/ingest"
	"github.com/sahilrangra/ayur-llm/rag"
	"github.com/sahilrangra/ayur-llm/server"
	"github.com/sahilrangra/ayur-llm/storage/badger"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "ayurllm",
		Usage: "Retrieval-augmented question answering over ayurvedic source documents",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
			&cli.StringFlag{
				Name:    "data",
				Aliases: []string{"d"},
				Usage:   "Path to the data directory (corpus store and vector index)",
				Value:   "data",
				EnvVars: []string{"AYURLLM_DATA_DIR"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "ingest",
				Usage:  "Parse PDFs into the chunked corpus store",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "pdfs",
						Usage:    "Directory containing the source PDFs",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "export",
						Usage: "Also export the corpus as JSONL under this directory",
					},
					&cli.IntFlag{
						Name:  "pool-size",
						Usage: "Number of PDFs parsed concurrently (0 = NumCPU/2)",
					},
					&cli.IntFlag{
						Name:  "target-chars",
						Usage: "Approximate passage size in characters",
						Value: 2200,
					},
					&cli.IntFlag{
						Name:  "overlap-chars",
						Usage: "Overlap carried between passages",
						Value: 250,
					},
				},
			},
			{
				Name:   "index",
				Usage:  "Embed the corpus and build the vector index",
				Action: indexCommand,
				Flags: append(aiFlags(),
					&cli.BoolFlag{
						Name:  "rebuild",
						Usage: "Drop the collection and reindex from scratch",
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks embedded per request",
						Value: 96,
					},
				),
			},
			{
				Name:   "serve",
				Usage:  "Serve the question-answering HTTP API",
				Action: serveCommand,
				Flags:  aiFlags(),
			},
			{
				Name:   "query",
				Usage:  "Ask a single question from the command line",
				Action: queryCommand,
				Flags: append(aiFlags(),
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of chunks to retrieve",
						Value: 8,
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Restrict retrieval to one source (WHO, CLASSICAL, AYUSH/GOV, CCRAS)",
					},
					&cli.BoolFlag{
						Name:  "strict",
						Usage: "Refuse to answer beyond the retrieved sources",
						Value: true,
					},
				),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func aiFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "openai-api-key",
			Usage:   "OpenAI API key",
			EnvVars: []string{"OPENAI_API_KEY"},
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Override the OpenAI-compatible API base URL",
			EnvVars: []string{"OPENAI_BASE_URL"},
		},
		&cli.StringFlag{
			Name:    "embedding-model",
			Usage:   "Embedding model name",
			Value:   "text-embedding-3-small",
			EnvVars: []string{"EMBEDDINGS_MODEL_NAME"},
		},
		&cli.StringFlag{
			Name:    "chat-model",
			Usage:   "Chat model name",
			Value:   "gpt-4.1-mini",
			EnvVars: []string{"OPENAI_MODEL"},
		},
	}
}

func aiConfigFromFlags(c *cli.Context) *ai.Config {
	return ai.NewConfig(
		ai.WithAPIKey(c.String("openai-api-key")),
		ai.WithBaseURL(c.String("base-url")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
	)
}

func ingestCommand(c *cli.Context) error {
	ctx := context.Background()
	dataDir := c.String("data")

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "corpus"), false)
	if err != nil {
		return fmt.Errorf("failed to open corpus store: %w", err)
	}
	defer backend.Close()

	docRepo, err := badger.NewDocumentRepository(backend)
	if err != nil {
		return err
	}
	defer docRepo.Close()

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return err
	}
	defer chunkRepo.Close()

	opts := []ingest.Option{
		ingest.WithConfig(ingest.NewConfig(
			ingest.WithTargetChars(c.Int("target-chars")),
			ingest.WithOverlapChars(c.Int("overlap-chars")),
		)),
	}
	if size := c.Int("pool-size"); size > 0 {
		opts = append(opts, ingest.WithPoolSize(size))
	}

	pipeline, err := ingest.NewPipeline(docRepo, chunkRepo, opts...)
	if err != nil {
		return err
	}
	defer pipeline.Release()

	manifest, err := pipeline.IngestDir(ctx, c.String("pdfs"))
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	failed := 0
	for _, doc := range manifest.Docs {
		if doc.Err != "" {
			failed++
			fmt.Fprintf(os.Stderr, "FAILED %s: %s\n", doc.FileName, doc.Err)
			continue
		}
		fmt.Fprintf(os.Stderr, "%s: %d chunks from %d/%d pages (%s)\n",
			doc.FileName, doc.ChunkCount, doc.KeptPages, doc.PageCount, doc.Source)
	}
	fmt.Fprintf(os.Stderr, "Ingested %d/%d documents\n", manifest.DocCount-failed, manifest.DocCount)

	if exportDir := c.String("export"); exportDir != "" {
		if err := ingest.ExportJSONL(ctx, docRepo, chunkRepo, exportDir); err != nil {
			return fmt.Errorf("export failed: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Corpus exported to %s\n", exportDir)
	}
	return nil
}

func indexCommand(c *cli.Context) error {
	ctx := context.Background()
	dataDir := c.String("data")

	backend, err := badger.OpenBackend(filepath.Join(dataDir, "corpus"), false)
	if err != nil {
		return fmt.Errorf("failed to open corpus store: %w", err)
	}
	defer backend.Close()

	chunkRepo, err := badger.NewChunkRepository(backend)
	if err != nil {
		return err
	}
	defer chunkRepo.Close()

	store, err := index.Open(filepath.Join(dataDir, "vectors"))
	if err != nil {
		return err
	}

	aiConfig := aiConfigFromFlags(c)
	if err := aiConfig.Validate(); err != nil {
		return fmt.Errorf("invalid AI configuration: %w", err)
	}
	embedder, err := openai.NewEmbedder(aiConfig)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	buildCfg := index.DefaultBuildConfig()
	buildCfg.BatchSize = c.Int("batch-size")

	builder, err := index.NewBuilder(chunkRepo, embedder, store, index.WithBuildConfig(buildCfg))
	if err != nil {
		return err
	}

	report, err := builder.Build(ctx, c.Bool("rebuild"))
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	fmt.Fprintf(os.Stderr, "Indexed %d/%d chunks in %d batches (%s)\n",
		report.IndexedChunks, report.TotalChunks, report.Batches, report.Elapsed)
	return nil
}

func serveCommand(c *cli.Context) error {
	svc, err := ayurllm.NewService(c.String("data"), ayurllm.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	answerer, err := svc.NewAnswerer()
	if err != nil {
		return err
	}

	cfg, err := server.ConfigFromEnv()
	if err != nil {
		return err
	}

	srv, err := server.New(cfg, server.Deps{
		Answerer:   answerer,
		Embedder:   svc.Provider().Embedder(),
		Documents:  svc.DocumentRepository(),
		Chunks:     svc.ChunkRepository(),
		Index:      svc.IndexStore(),
		EmbedModel: svc.AIConfig().EmbeddingModel,
		ChatModel:  svc.AIConfig().ChatModel,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return srv.Run(ctx)
}

func queryCommand(c *cli.Context) error {
	question := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if question == "" {
		return fmt.Errorf("usage: ayurllm query <question>")
	}

	svc, err := ayurllm.NewService(c.String("data"), ayurllm.WithAIConfig(aiConfigFromFlags(c)))
	if err != nil {
		return fmt.Errorf("failed to open service: %w", err)
	}
	defer svc.Close()

	answerer, err := svc.NewAnswerer()
	if err != nil {
		return err
	}

	resp, err := answerer.Ask(context.Background(), rag.Request{
		Question:     question,
		TopK:         c.Int("top-k"),
		SourceFilter: c.String("source"),
		Strict:       c.Bool("strict"),
	})
	if err != nil {
		return err
	}

	fmt.Println(resp.Answer)
	if len(resp.Citations) > 0 {
		fmt.Println()
		for i, cit := range resp.Citations {
			fmt.Printf("[SOURCE %d] %s | %s | pages %d-%d | %s\n",
				i+1, cit.Source, cit.FileName, cit.PageStart, cit.PageEnd, cit.Section)
		}
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	var level slog.Level
	switch levelStr {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q: must be one of debug, info, warn, error", levelStr)
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

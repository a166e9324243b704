// Copyright 2025 Poiesic Systems
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
	"strings"
	"time"

	"github.com/poiesic/chunkit/ai"
	"github.com/poiesic/chunkit/ai/openai"
	"github.com/poiesic/chunkit/aggregate"
	"github.com/poiesic/chunkit/core"
	"github.com/poiesic/chunkit/ingest"
	"github.com/poiesic/chunkit/ledger"
	ledgerbadger "github.com/poiesic/chunkit/ledger/badger"
	"github.com/poiesic/chunkit/search"
	"github.com/poiesic/chunkit/store"
	"github.com/poiesic/chunkit/store/milvus"
	"github.com/poiesic/chunkit/transcript"
	"github.com/urfave/cli/v2"
)

func main() {
	milvusFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "milvus",
			Usage: "Milvus server address",
			Value: "localhost:19530",
		},
		&cli.StringFlag{
			Name:  "collection",
			Usage: "Milvus collection name",
			Value: milvus.DefaultCollection,
		},
		&cli.IntFlag{
			Name:  "dimension",
			Usage: "Embedding vector dimensionality",
			Value: 1536,
		},
	}

	embeddingFlags := []cli.Flag{
		&cli.StringFlag{
			Name:  "embedding-host",
			Usage: "Embedding service host URL",
			Value: "https://api.openai.com/v1",
		},
		&cli.StringFlag{
			Name:  "embedding-model",
			Usage: "Embedding model name",
			Value: "text-embedding-3-small",
		},
		&cli.StringFlag{
			Name:    "api-key",
			Usage:   "Embedding service API key",
			EnvVars: []string{"OPENAI_API_KEY"},
			Value:   "none",
		},
	}

	app := &cli.App{
		Name:  "chunkit",
		Usage: "Windowed transcript ingestion into a Milvus vector store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "info",
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:      "load",
				Usage:     "Aggregate transcript files and ingest them into Milvus",
				ArgsUsage: "FILE [FILE...]",
				Action:    loadCommand,
				Flags: append(append([]cli.Flag{
					&cli.IntFlag{
						Name:  "window",
						Usage: "Number of segments merged per chunk",
						Value: aggregate.DefaultWindow,
					},
					&cli.IntFlag{
						Name:  "stride",
						Usage: "Step between window start positions",
						Value: aggregate.DefaultStride,
					},
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of chunks embedded and inserted per round trip",
						Value: 64,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Fixed wait before re-attempting a failed embedding call",
						Value: 3 * time.Second,
					},
					&cli.StringFlag{
						Name:  "ledger",
						Usage: "Path to the ingest ledger directory (omit to disable resume)",
					},
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Number of files ingested concurrently",
						Value: 1,
					},
				}, milvusFlags...), embeddingFlags...),
			},
			{
				Name:   "index",
				Usage:  "Build the vector index and load the collection",
				Action: indexCommand,
				Flags:  milvusFlags,
			},
			{
				Name:      "search",
				Usage:     "Run a semantic query against the collection",
				ArgsUsage: "QUERY",
				Action:    searchCommand,
				Flags: append(append([]cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Maximum number of hits",
						Value: 5,
					},
				}, milvusFlags...), embeddingFlags...),
			},
			{
				Name:   "drop",
				Usage:  "Drop the collection and all stored entities",
				Action: dropCommand,
				Flags: append([]cli.Flag{
					&cli.BoolFlag{
						Name:  "yes",
						Usage: "Confirm the drop",
					},
				}, milvusFlags...),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openStore(c *cli.Context) (store.VectorStore, error) {
	return milvus.NewStore(c.Context, milvus.Config{
		Address:    c.String("milvus"),
		Collection: c.String("collection"),
		Dimension:  c.Int("dimension"),
	})
}

func newEmbedder(c *cli.Context) (ai.Embedder, error) {
	cfg := ai.NewConfig(
		ai.WithHost(c.String("embedding-host")),
		ai.WithModel(c.String("embedding-model")),
		ai.WithAPIKey(c.String("api-key")),
		ai.WithDimension(c.Int("dimension")),
	)
	return openai.NewEmbedder(cfg)
}

func loadCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("at least one transcript file is required")
	}

	agg, err := aggregate.New(c.Int("window"), c.Int("stride"))
	if err != nil {
		return err
	}

	embedder, err := newEmbedder(c)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	vstore, err := openStore(c)
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer vstore.Close()

	opts := []ingest.Option{}
	var ldg ledger.Ledger
	if path := c.String("ledger"); path != "" {
		ldg, err = ledgerbadger.NewLedger(path)
		if err != nil {
			return fmt.Errorf("failed to open ledger: %w", err)
		}
		defer ldg.Close()
		opts = append(opts, ingest.WithLedger(ldg))
	}

	pipeline, err := ingest.NewPipeline(embedder, vstore, &ingest.Config{
		BatchSize:  c.Int("batch-size"),
		Dimension:  c.Int("dimension"),
		RetryDelay: c.Duration("retry-delay"),
	}, opts...)
	if err != nil {
		return err
	}

	files := c.Args().Slice()
	runID := ledger.NewRunID()

	sets := make([][]*core.Chunk, 0, len(files))
	for _, file := range files {
		chunks, err := readChunks(file, agg)
		if err != nil {
			return err
		}
		sets = append(sets, chunks)
	}

	runner, err := ingest.NewRunner(pipeline, ingest.WithPoolSize(c.Int("workers")))
	if err != nil {
		return err
	}
	defer runner.Release()

	started := time.Now()
	total, err := runner.Run(c.Context, sets...)

	for i, file := range files {
		saveCheckpoint(c.Context, ldg, file, runID, len(sets[i]))
	}

	if err != nil {
		return fmt.Errorf("ingestion failed after %d entities: %w", total, err)
	}

	fmt.Fprintf(os.Stderr, "Ingested %d entities from %d files in %v\n",
		total, len(files), time.Since(started).Round(time.Second))
	return nil
}

// readChunks reads a transcript file and aggregates it into chunks.
func readChunks(path string, agg *aggregate.Aggregator) ([]*core.Chunk, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	segments, err := transcript.ReadSegments(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return agg.Collect(segments), nil
}

func saveCheckpoint(ctx context.Context, ldg ledger.Ledger, source, runID string, chunks int) {
	if ldg == nil {
		return
	}
	err := ldg.SaveCheckpoint(ctx, &ledger.Checkpoint{
		Source:   source,
		RunID:    runID,
		Ingested: chunks,
	})
	if err != nil {
		slog.Error("error saving checkpoint", "source", source, "err", err)
	}
}

func indexCommand(c *cli.Context) error {
	vstore, err := openStore(c)
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer vstore.Close()

	if err := vstore.CreateIndex(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Index created; collection is ready for search")
	return nil
}

func searchCommand(c *cli.Context) error {
	query := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if query == "" {
		return fmt.Errorf("a query is required")
	}

	embedder, err := newEmbedder(c)
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}

	vstore, err := openStore(c)
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer vstore.Close()

	searcher, err := search.NewSearcher(embedder, vstore)
	if err != nil {
		return err
	}

	hits, err := searcher.Find(c.Context, query, c.Int("limit"))
	if err != nil {
		return err
	}

	for rank, hit := range hits {
		fmt.Printf("%2d. [%.4f] %s\n    %s\n", rank+1, hit.Score, hit.Id, hit.Text)
	}
	if len(hits) == 0 {
		fmt.Println("No results")
	}
	return nil
}

func dropCommand(c *cli.Context) error {
	if !c.Bool("yes") {
		return fmt.Errorf("refusing to drop collection %q without --yes", c.String("collection"))
	}

	vstore, err := openStore(c)
	if err != nil {
		return fmt.Errorf("failed to open vector store: %w", err)
	}
	defer vstore.Close()

	if err := vstore.Drop(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(os.Stderr, "Collection dropped")
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

// Copyright 2025 Pico Labs
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
	"bufio"
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"

	"github.com/picolabs/pico"
	"github.com/picolabs/pico/ai"
	"github.com/picolabs/pico/conversation"
	"github.com/picolabs/pico/reindex"
)

func main() {
	// A .env file is optional; flags and real env vars win.
	_ = godotenv.Load()

	app := &cli.App{
		Name:  "pico",
		Usage: "Conversational AI companion backed by a local evidence store",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   "Set logging level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"PICO_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "db",
				Aliases: []string{"d"},
				Usage:   "Path to BadgerDB database directory",
				Value:   "./pico_db",
				EnvVars: []string{"PICO_DB"},
			},
			&cli.StringFlag{
				Name:    "host",
				Usage:   "OpenAI-compatible service host URL",
				Value:   "http://localhost:11434/v1",
				EnvVars: []string{"PICO_HOST"},
			},
			&cli.StringFlag{
				Name:    "embedding-model",
				Usage:   "Embedding model name",
				Value:   "embeddinggemma",
				EnvVars: []string{"PICO_EMBEDDING_MODEL"},
			},
			&cli.StringFlag{
				Name:    "chat-model",
				Usage:   "Chat model name",
				Value:   "phi3:medium",
				EnvVars: []string{"PICO_CHAT_MODEL"},
			},
			&cli.StringFlag{
				Name:    "scorer-model",
				Usage:   "Relevance scoring model name (empty disables reranking)",
				EnvVars: []string{"PICO_SCORER_MODEL"},
			},
			&cli.StringFlag{
				Name:    "persona",
				Usage:   "Path to persona YAML file",
				EnvVars: []string{"PICO_PERSONA"},
			},
		},
		Before: setupLogger,
		Commands: []*cli.Command{
			{
				Name:   "chat",
				Usage:  "Start an interactive conversation",
				Action: chatCommand,
			},
			{
				Name:   "ingest",
				Usage:  "Bulk-load JSON evidence files into the store",
				Action: ingestCommand,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "dir",
						Usage:    "Directory of *.json files, each an array of {id, text} objects",
						Required: true,
					},
				},
			},
			{
				Name:      "search",
				Usage:     "Query the local evidence store",
				ArgsUsage: "<query>",
				Action:    searchCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "top-k",
						Usage: "Number of results to return",
						Value: 5,
					},
				},
			},
			{
				Name:   "reindex",
				Usage:  "Re-embed all stored documents with the configured embedding model",
				Action: reindexCommand,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "batch-size",
						Usage: "Number of documents to process in each batch",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "report-interval",
						Usage: "Report progress every N documents",
						Value: 100,
					},
					&cli.IntFlag{
						Name:  "max-retries",
						Usage: "Maximum retry attempts for failed operations",
						Value: 3,
					},
					&cli.DurationFlag{
						Name:  "retry-delay",
						Usage: "Base delay for exponential backoff",
						Value: 1 * time.Second,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openEngine(c *cli.Context) (*pico.Engine, error) {
	persona := conversation.DefaultPersona()
	if path := c.String("persona"); path != "" {
		loaded, err := conversation.LoadPersona(path)
		if err != nil {
			return nil, err
		}
		persona = loaded
	}

	config := ai.NewConfig(
		ai.WithHost(c.String("host")),
		ai.WithEmbeddingModel(c.String("embedding-model")),
		ai.WithChatModel(c.String("chat-model")),
		ai.WithScorerModel(c.String("scorer-model")),
	)
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid AI configuration: %w", err)
	}

	return pico.Open(c.String("db"),
		pico.WithAIConfig(config),
		pico.WithEnginePersona(persona),
	)
}

func chatCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	session, err := engine.NewSession(
		conversation.WithChunkObserver(func(chunk string) {
			fmt.Print(chunk)
		}),
	)
	if err != nil {
		return err
	}

	fmt.Printf("%s is listening. Type /quit to exit.\n", session.Persona().Name)

	ctx := context.Background()
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if input == "/quit" || input == "/exit" {
			break
		}

		reply, err := session.Turn(ctx, input)
		if err != nil {
			// The degraded or fallback reply was not streamed.
			fmt.Println(reply)
			slog.Error("turn failed", "err", err)
			continue
		}
		fmt.Println()
	}
	return scanner.Err()
}

func ingestCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	loader, err := engine.NewLoader()
	if err != nil {
		return err
	}
	defer loader.Release()

	report, err := loader.LoadDirectory(context.Background(), c.String("dir"))
	if err != nil {
		return err
	}

	for _, fr := range report.Files {
		if fr.Err != nil {
			fmt.Printf("error loading %s: %v\n", fr.File, fr.Err)
			continue
		}
		fmt.Printf("loaded %d documents from %s\n", fr.Loaded, fr.File)
	}
	fmt.Printf("Total documents: %d\n", report.Total)
	return nil
}

func searchCommand(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("query is required")
	}

	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	query := strings.Join(c.Args().Slice(), " ")
	results, err := engine.Store().Query(context.Background(), query, c.Int("top-k"))
	if err != nil {
		return err
	}

	fmt.Printf("Found %d hits\n", len(results))
	for i, hit := range results {
		fmt.Printf("%d: '%s' (%s)[%0.3f]\n", i, hit.Document.Text, hit.Document.Id, hit.Score)
	}
	return nil
}

func reindexCommand(c *cli.Context) error {
	engine, err := openEngine(c)
	if err != nil {
		return err
	}
	defer engine.Close()

	config := &reindex.Config{
		BatchSize:      c.Int("batch-size"),
		ReportInterval: c.Int("report-interval"),
		MaxRetries:     c.Int("max-retries"),
		RetryDelay:     c.Duration("retry-delay"),
	}
	if config.BatchSize <= 0 {
		return fmt.Errorf("batch-size must be greater than 0")
	}
	if config.ReportInterval <= 0 {
		return fmt.Errorf("report-interval must be greater than 0")
	}
	if config.MaxRetries <= 0 {
		return fmt.Errorf("max-retries must be greater than 0")
	}

	if err := engine.NewReindexer(config, os.Stderr).Run(context.Background()); err != nil {
		return fmt.Errorf("reindex failed: %w", err)
	}
	return nil
}

func setupLogger(c *cli.Context) error {
	// Get log level from flag and normalize to lowercase
	levelStr := strings.ToLower(c.String("log-level"))

	// Map string to slog.Level
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

	// Configure slog with the specified level
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	return nil
}

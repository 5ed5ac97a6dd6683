package main

import (
	"bufio"
	"context"
	"flag"
	"iter"
	"log/slog"
	"os"

	"github.com/picolabs/pico"
	"github.com/picolabs/pico/core"
	"github.com/picolabs/pico/evidence"
)

var facts = []string{
	"The capital of France is Paris.",
	"The capital of Japan is Tokyo.",
	"The capital of Italy is Rome.",
	"The capital of Germany is Berlin.",
	"The capital of Spain is Madrid.",
	"The capital of Canada is Ottawa.",
	"The capital of Australia is Canberra.",
	"The capital of Brazil is Brasilia.",
	"The capital of Egypt is Cairo.",
	"The capital of India is New Delhi.",
	"Water boils at 100 degrees Celsius at sea level.",
	"Water freezes at 0 degrees Celsius.",
	"Light travels at about 299,792 kilometers per second.",
	"The Earth orbits the Sun once every 365.25 days.",
	"The Moon orbits the Earth once every 27.3 days.",
	"The human body has 206 bones.",
	"The heart of an adult beats about 60 to 100 times per minute.",
	"Photosynthesis converts sunlight, water, and carbon dioxide into glucose and oxygen.",
	"DNA stands for deoxyribonucleic acid.",
	"The mitochondria is the powerhouse of the cell.",
	"Mount Everest is the tallest mountain above sea level.",
	"The Pacific Ocean is the largest ocean on Earth.",
	"The Nile is generally regarded as the longest river in the world.",
	"The Sahara is the largest hot desert in the world.",
	"Antarctica is the coldest continent on Earth.",
	"The Great Barrier Reef is the largest coral reef system in the world.",
	"The blue whale is the largest animal known to have ever existed.",
	"Honey never spoils when stored properly.",
	"Octopuses have three hearts and blue blood.",
	"A group of lions is called a pride.",
	"The speed of sound in air is about 343 meters per second.",
	"The chemical symbol for gold is Au.",
	"The chemical symbol for oxygen is O.",
	"There are eight planets in the Solar System.",
	"Jupiter is the largest planet in the Solar System.",
	"Mercury is the closest planet to the Sun.",
	"A year on Mercury lasts 88 Earth days.",
	"The Great Wall of China is over 21,000 kilometers long including all branches.",
	"The Eiffel Tower is located in Paris, France.",
	"The Statue of Liberty was a gift from France to the United States.",
}

var seedFileName = flag.String("file", "", "Optional file of facts, one per line")
var dbPath = flag.String("db", "./pico_db", "Path to BadgerDB database directory")

func init() {
	handler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// linesFromFile yields the non-empty lines of a file.
func linesFromFile(name string) (iter.Seq[string], error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}

	return func(yield func(string) bool) {
		defer f.Close()
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if core.Normalize(line) == "" {
				continue
			}
			if !yield(line) {
				return
			}
		}
	}, nil
}

func linesFromSlice(lines []string) iter.Seq[string] {
	return func(yield func(string) bool) {
		for _, line := range lines {
			if !yield(line) {
				return
			}
		}
	}
}

// seedBatched upserts facts in small batches so one slow embedding call
// doesn't hold up the whole run.
func seedBatched(ctx context.Context, store *evidence.Store, source iter.Seq[string], batchSize int) (int, error) {
	total := 0
	batch := make([]string, 0, batchSize)

	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		written, err := store.Upsert(ctx, batch, core.SourceManual)
		if err != nil {
			return err
		}
		total += written
		batch = batch[:0]
		return nil
	}

	for line := range source {
		batch = append(batch, line)
		if len(batch) >= batchSize {
			if err := flush(); err != nil {
				return total, err
			}
		}
	}
	if err := flush(); err != nil {
		return total, err
	}
	return total, nil
}

func main() {
	flag.Parse()

	engine, err := pico.Open(*dbPath)
	if err != nil {
		panic(err)
	}
	defer engine.Close()

	ctx := context.Background()

	// Determine source of seed data
	var source iter.Seq[string]
	if seedFileName != nil && *seedFileName != "" {
		source, err = linesFromFile(*seedFileName)
		if err != nil {
			panic(err)
		}
	} else {
		source = linesFromSlice(facts)
	}

	total, err := seedBatched(ctx, engine.Store(), source, 8)
	if err != nil {
		panic(err)
	}
	slog.Info("seeding complete", "documents", total)
}

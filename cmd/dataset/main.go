// Reads a list of SFEN positions, parses each one, and exports the parsed
// positions as a snappy-compressed parquet dataset.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/timezombi/shogiops/pkg/dataset"
	"github.com/timezombi/shogiops/pkg/shogi"
)

type Config struct {
	Input   string `json:"input"`
	Output  string `json:"output"`
	Workers int    `json:"workers"`
}

func main() {
	configPath := flag.String("config", "", "optional path to a JSON config")
	inputPath := flag.String("input", "positions.txt", "input file with one SFEN per line")
	outputPath := flag.String("output", "positions.parquet", "output parquet file")
	workers := flag.Int("workers", 1, "number of parallel workers")
	flag.Parse()

	cfg := Config{Input: *inputPath, Output: *outputPath, Workers: *workers}
	if *configPath != "" {
		loaded, err := loadConfig(*configPath)
		if err != nil {
			fatal(err)
		}
		cfg = mergeConfig(cfg, loaded)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	lines, err := dataset.ReadNotationLines(cfg.Input)
	if err != nil {
		fatal(err)
	}
	if len(lines) == 0 {
		fatal(fmt.Errorf("no positions found in %s", cfg.Input))
	}
	if cfg.Workers > len(lines) {
		cfg.Workers = len(lines)
	}
	if dir := filepath.Dir(cfg.Output); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatal(err)
		}
	}

	jobs := make(chan string)
	results := make(chan dataset.PositionRecord, cfg.Workers)
	writeErr := make(chan error, 1)
	var writeWg sync.WaitGroup
	writeWg.Add(1)
	go func() {
		defer writeWg.Done()
		writeErr <- dataset.WritePositions(cfg.Output, results, int64(cfg.Workers))
	}()

	var wg sync.WaitGroup
	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for line := range jobs {
				pos, err := shogi.ParseSfen(line)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping %q: %v\n", line, err)
					continue
				}
				record, err := dataset.RecordFromPosition(pos)
				if err != nil {
					fmt.Fprintf(os.Stderr, "skipping %q: %v\n", line, err)
					continue
				}
				results <- record
			}
		}()
	}

	for _, line := range lines {
		jobs <- line
	}
	close(jobs)
	wg.Wait()
	close(results)
	writeWg.Wait()
	if err := <-writeErr; err != nil {
		fatal(err)
	}
}

func loadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeConfig(base, loaded Config) Config {
	if loaded.Input != "" {
		base.Input = loaded.Input
	}
	if loaded.Output != "" {
		base.Output = loaded.Output
	}
	if loaded.Workers != 0 {
		base.Workers = loaded.Workers
	}
	return base
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

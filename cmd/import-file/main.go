package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"playdamnit/internal/backend"
	"playdamnit/internal/cache"
	"playdamnit/internal/importer"
	"playdamnit/pkg/utils"
)

type sessionData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func main() {
	var (
		file      = flag.String("file", "", "path to a .json or .csv library file")
		overwrite = flag.Bool("overwrite", false, "overwrite entries that already exist")
		api       = flag.String("api", "http://localhost:8080/api", "gateway API base URL")
	)
	flag.Parse()

	if *file == "" {
		log.Fatal("file is required")
	}

	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := utils.NewLogger(cfg.LogLevel)

	sess, err := readSession(cfg.TokenFile)
	if err != nil {
		log.Fatalf("session not found, sign in with the cli first: %v", err)
	}

	f, err := os.Open(*file)
	if err != nil {
		log.Fatalf("open %s: %v", *file, err)
	}
	defer f.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	client := backend.NewClient(*api, logger)
	runner := importer.NewRunner(client, cache.NewHub(cache.NewStore()), logger)

	outcome, err := runner.Run(ctx, sess.Token, sess.Username, filepath.Base(*file), f, *overwrite)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}

	log.Printf("imported %d, skipped %d, errors %d (%.0f%% success)",
		outcome.Imported, outcome.Skipped, outcome.Errors, outcome.SuccessPercent())
	for _, e := range outcome.ErrorGames {
		log.Printf("  game %d: %s", e.GameID, e.Error)
	}
	if outcome.Errors > 0 {
		os.Exit(1)
	}
}

func readSession(path string) (sessionData, error) {
	var sess sessionData
	data, err := os.ReadFile(path)
	if err != nil {
		return sess, err
	}
	if err := json.Unmarshal(data, &sess); err != nil {
		return sess, err
	}
	sess.Token = strings.TrimSpace(sess.Token)
	return sess, nil
}

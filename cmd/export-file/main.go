package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strings"
	"time"

	"playdamnit/internal/backend"
	"playdamnit/internal/exporter"
	"playdamnit/pkg/utils"
)

type sessionData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

func main() {
	var (
		format = flag.String("format", "json", "json or csv")
		outDir = flag.String("out", ".", "output directory")
		api    = flag.String("api", "http://localhost:8080/api", "gateway API base URL")
	)
	flag.Parse()

	cfg, err := utils.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger := utils.NewLogger(cfg.LogLevel)

	sess, err := readSession(cfg.TokenFile)
	if err != nil {
		log.Fatalf("session not found, sign in with the cli first: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	client := backend.NewClient(*api, logger)
	exp := exporter.New(client, logger)

	path, err := exp.Export(ctx, sess.Token, sess.Username, *format, *outDir)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	log.Printf("exported to %s", path)
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

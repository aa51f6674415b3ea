package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gorilla/websocket"

	"playdamnit/internal/library"
	"playdamnit/pkg/database"
	"playdamnit/pkg/models"
)

const defaultBaseURL = "http://localhost:8080"

type sessionData struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

type signInResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

type libraryResponse struct {
	Total  int                 `json:"total"`
	Tab    string              `json:"tab"`
	Groups []library.YearGroup `json:"groups"`
}

func main() {
	global := flag.NewFlagSet("playdamnit", flag.ExitOnError)
	baseURL := global.String("api", defaultBaseURL, "gateway base URL")
	tokenPath := global.String("token", defaultTokenPath(), "session file path")
	if err := global.Parse(os.Args[1:]); err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	args := global.Args()
	if len(args) == 0 {
		printUsage()
		os.Exit(1)
	}

	ctx := context.Background()
	cmd := args[0]
	sub := ""
	if len(args) > 1 {
		sub = args[1]
	}

	client := &http.Client{Timeout: 30 * time.Second}

	switch cmd {
	case "auth":
		handleAuth(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "profile":
		handleProfile(ctx, client, *baseURL, *tokenPath, args[1:])
	case "search":
		handleSearch(ctx, client, *baseURL, args[1:])
	case "library":
		handleLibrary(ctx, client, *baseURL, *tokenPath, sub, args[2:])
	case "import":
		handleImport(ctx, client, *baseURL, *tokenPath, args[1:])
	case "export":
		handleExport(ctx, client, *baseURL, *tokenPath, args[1:])
	case "chat":
		handleChat(*baseURL, *tokenPath)
	case "watch":
		handleWatch(ctx, *baseURL, *tokenPath, args[1:])
	default:
		printUsage()
		os.Exit(1)
	}
}

func handleAuth(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	switch sub {
	case "login":
		fs := flag.NewFlagSet("auth login", flag.ExitOnError)
		identifier := fs.String("user", "", "username or email")
		password := fs.String("password", "", "password")
		_ = fs.Parse(args)

		if *identifier == "" || *password == "" {
			log.Fatal("user and password are required")
		}

		payload := map[string]string{"identifier": *identifier, "password": *password}
		var resp signInResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/sign-in", "", payload, &resp); err != nil {
			log.Fatalf("login failed: %v", err)
		}
		if err := saveSession(tokenPath, resp.Token, resp.User.Username); err != nil {
			log.Fatalf("save session: %v", err)
		}
		fmt.Printf("signed in as %s\n", resp.User.Username)
	case "register":
		fs := flag.NewFlagSet("auth register", flag.ExitOnError)
		username := fs.String("username", "", "username")
		email := fs.String("email", "", "email address")
		password := fs.String("password", "", "password")
		name := fs.String("name", "", "display name")
		_ = fs.Parse(args)

		if *username == "" || *email == "" || *password == "" {
			log.Fatal("username, email, and password are required")
		}

		payload := map[string]string{
			"username": *username,
			"email":    *email,
			"password": *password,
			"name":     *name,
		}
		var resp signInResponse
		if err := doJSON(ctx, client, http.MethodPost, baseURL+"/auth/sign-up", "", payload, &resp); err != nil {
			log.Fatalf("register failed: %v", err)
		}
		if err := saveSession(tokenPath, resp.Token, resp.User.Username); err != nil {
			log.Fatalf("save session: %v", err)
		}
		fmt.Printf("registered and signed in as %s\n", resp.User.Username)
	case "logout":
		sess, err := readSession(tokenPath)
		if err == nil && sess.Token != "" {
			_ = doJSON(ctx, client, http.MethodPost, baseURL+"/auth/sign-out", sess.Token, nil, nil)
		}
		if err := clearSession(tokenPath); err != nil {
			log.Fatalf("logout failed: %v", err)
		}
		fmt.Println("signed out")
	default:
		log.Fatal("usage: playdamnit auth <login|register|logout>")
	}
}

// handleProfile renders the grouped library view. Fresh snapshots go
// into the local sqlite cache; --offline renders from it without
// touching the network.
func handleProfile(ctx context.Context, client *http.Client, baseURL, tokenPath string, args []string) {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	user := fs.String("user", "", "profile username (defaults to the signed-in user)")
	tab := fs.String("tab", "All", "tab: All|Finished|Playing|Dropped|Want")
	term := fs.String("q", "", "search term")
	offline := fs.Bool("offline", false, "render from the local cache only")
	_ = fs.Parse(args)

	username := *user
	token := ""
	if sess, err := readSession(tokenPath); err == nil {
		token = sess.Token
		if username == "" {
			username = sess.Username
		}
	}
	if username == "" {
		log.Fatal("no user given and not signed in")
	}

	parsedTab, ok := library.ParseTab(*tab)
	if !ok {
		log.Fatalf("unknown tab %q", *tab)
	}

	entries, stale, err := loadEntries(ctx, client, baseURL, token, username, *offline)
	if err != nil {
		log.Fatalf("profile failed: %v", err)
	}
	if stale {
		fmt.Println("(cached data, may be out of date)")
	}

	filtered := library.Filter(entries, parsedTab, *term)
	groups := library.GroupByYear(filtered)

	fmt.Printf("%s: %d game(s) on %s\n", username, len(filtered), parsedTab)
	for _, g := range groups {
		fmt.Printf("\n%s\n", g.Year)
		for _, e := range g.Entries {
			line := fmt.Sprintf("  %-40s %s", e.Name, e.PrimaryPlatform())
			if e.UserGameData != nil {
				if e.UserGameData.Status != "" {
					line += "  " + e.UserGameData.Status
				}
				if e.UserGameData.Rating > 0 {
					line += fmt.Sprintf("  %.1f/10", e.UserGameData.Rating)
				}
			}
			fmt.Println(line)
		}
	}
}

// loadEntries resolves the library from the network or the sqlite
// cache. Online fetches refresh the cache; fetch failures fall back to
// whatever is cached.
func loadEntries(ctx context.Context, client *http.Client, baseURL, token, username string, offline bool) ([]models.LibraryEntry, bool, error) {
	db, err := database.Open(database.DefaultConfig())
	if err != nil {
		return nil, false, fmt.Errorf("open cache: %w", err)
	}
	defer db.Close()
	store := database.NewSnapshotStore(db)

	if offline {
		entries, _, stale, ok, err := store.Load(ctx, username)
		if err != nil {
			return nil, false, err
		}
		if !ok {
			return nil, false, errors.New("nothing cached for this user, run once without --offline")
		}
		return entries, stale, nil
	}

	entries, err := fetchLibrary(ctx, client, baseURL, token, username)
	if err != nil {
		cached, _, _, ok, cacheErr := store.Load(ctx, username)
		if cacheErr == nil && ok {
			log.Printf("fetch failed (%v), using cached snapshot", err)
			return cached, true, nil
		}
		return nil, false, err
	}

	if err := store.Save(ctx, username, entries); err != nil {
		log.Printf("cache save failed: %v", err)
	}
	return entries, false, nil
}

func fetchLibrary(ctx context.Context, client *http.Client, baseURL, token, username string) ([]models.LibraryEntry, error) {
	var resp libraryResponse
	endpoint := baseURL + "/api/user/" + url.PathEscape(username) + "/games"
	if err := doJSON(ctx, client, http.MethodGet, endpoint, token, nil, &resp); err != nil {
		return nil, err
	}
	var entries []models.LibraryEntry
	for _, g := range resp.Groups {
		entries = append(entries, g.Entries...)
	}
	return entries, nil
}

func handleSearch(ctx context.Context, client *http.Client, baseURL string, args []string) {
	fs := flag.NewFlagSet("search", flag.ExitOnError)
	query := fs.String("q", "", "search query")
	limit := fs.Int("limit", 10, "max results")
	_ = fs.Parse(args)
	if *query == "" {
		log.Fatal("q is required")
	}

	u, err := url.Parse(baseURL + "/api/games/search")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	qv.Set("q", *query)
	qv.Set("limit", fmt.Sprintf("%d", *limit))
	u.RawQuery = qv.Encode()

	var resp models.SearchResponse
	if err := doJSON(ctx, client, http.MethodGet, u.String(), "", nil, &resp); err != nil {
		log.Fatalf("search failed: %v", err)
	}
	for _, r := range resp.Results {
		year := "----"
		if r.FirstReleaseDate > 0 {
			year = time.Unix(r.FirstReleaseDate, 0).UTC().Format("2006")
		}
		fmt.Printf("%6d  %s (%s)\n", r.ID, r.Name, year)
	}
}

func handleLibrary(ctx context.Context, client *http.Client, baseURL, tokenPath, sub string, args []string) {
	sess := mustSession(tokenPath)
	prefix := baseURL + "/api/user/" + url.PathEscape(sess.Username) + "/games"

	switch sub {
	case "add":
		fs := flag.NewFlagSet("library add", flag.ExitOnError)
		gameID := fs.Int("game-id", 0, "catalog game id")
		status := fs.String("status", "playing", "finished|playing|dropped|want_to_play")
		rating := fs.Float64("rating", 0, "rating 0-10, 0 = unrated")
		review := fs.String("review", "", "review text")
		platformID := fs.Int("platform-id", 0, "platform id")
		_ = fs.Parse(args)
		if *gameID == 0 {
			log.Fatal("game-id is required")
		}

		payload := models.AddGameRequest{
			GameID:     *gameID,
			Status:     *status,
			Rating:     *rating,
			Review:     *review,
			PlatformID: *platformID,
		}
		var resp models.LibraryEntry
		if err := doJSON(ctx, client, http.MethodPost, prefix, sess.Token, payload, &resp); err != nil {
			log.Fatalf("add failed: %v", err)
		}
		markCacheStale(ctx, sess.Username)
		fmt.Printf("added %s\n", resp.Name)
	case "update":
		fs := flag.NewFlagSet("library update", flag.ExitOnError)
		gameID := fs.Int("game-id", 0, "catalog game id")
		status := fs.String("status", "", "new status")
		rating := fs.Float64("rating", -1, "new rating 0-10")
		review := fs.String("review", "", "new review")
		_ = fs.Parse(args)
		if *gameID == 0 {
			log.Fatal("game-id is required")
		}

		payload := models.UpdateGameRequest{}
		if *status != "" {
			payload.Status = status
		}
		if *rating >= 0 {
			payload.Rating = rating
		}
		if *review != "" {
			payload.Review = review
		}

		var resp models.LibraryEntry
		if err := doJSON(ctx, client, http.MethodPatch, fmt.Sprintf("%s/%d", prefix, *gameID), sess.Token, payload, &resp); err != nil {
			log.Fatalf("update failed: %v", err)
		}
		markCacheStale(ctx, sess.Username)
		fmt.Printf("updated %s\n", resp.Name)
	case "remove":
		fs := flag.NewFlagSet("library remove", flag.ExitOnError)
		gameID := fs.Int("game-id", 0, "catalog game id")
		_ = fs.Parse(args)
		if *gameID == 0 {
			log.Fatal("game-id is required")
		}

		if err := doJSON(ctx, client, http.MethodDelete, fmt.Sprintf("%s/%d", prefix, *gameID), sess.Token, nil, nil); err != nil {
			log.Fatalf("remove failed: %v", err)
		}
		markCacheStale(ctx, sess.Username)
		fmt.Println("removed")
	default:
		log.Fatal("usage: playdamnit library <add|update|remove>")
	}
}

func handleImport(ctx context.Context, client *http.Client, baseURL, tokenPath string, args []string) {
	fs := flag.NewFlagSet("import", flag.ExitOnError)
	file := fs.String("file", "", "path to a .json or .csv library file")
	overwrite := fs.Bool("overwrite", false, "overwrite entries that already exist")
	_ = fs.Parse(args)
	if *file == "" {
		log.Fatal("file is required")
	}

	sess := mustSession(tokenPath)

	outcome, err := uploadImport(ctx, client, baseURL, sess, *file, *overwrite)
	if err != nil {
		log.Fatalf("import failed: %v", err)
	}
	markCacheStale(ctx, sess.Username)

	fmt.Printf("imported %d, skipped %d, errors %d (%.0f%% success)\n",
		outcome.Imported, outcome.Skipped, outcome.Errors, outcome.SuccessPercent())
	for _, e := range outcome.ErrorGames {
		fmt.Printf("  game %d: %s\n", e.GameID, e.Error)
	}
}

func uploadImport(ctx context.Context, client *http.Client, baseURL string, sess sessionData, path string, overwrite bool) (*models.ImportOutcome, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var buf strings.Builder
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, err
	}
	if err := mw.WriteField("overwriteExisting", fmt.Sprintf("%t", overwrite)); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	endpoint := baseURL + "/api/user/" + url.PathEscape(sess.Username) + "/games/import"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(buf.String()))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode == http.StatusConflict {
		return nil, errors.New("an import is already running, try again shortly")
	}
	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("import failed: %s", strings.TrimSpace(string(data)))
	}

	var outcome models.ImportOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, err
	}
	return &outcome, nil
}

func handleExport(ctx context.Context, client *http.Client, baseURL, tokenPath string, args []string) {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	format := fs.String("format", "json", "json or csv")
	dir := fs.String("out", ".", "output directory")
	_ = fs.Parse(args)

	sess := mustSession(tokenPath)

	u, err := url.Parse(baseURL + "/api/user/" + url.PathEscape(sess.Username) + "/games/export")
	if err != nil {
		log.Fatalf("invalid base url: %v", err)
	}
	qv := u.Query()
	qv.Set("format", *format)
	u.RawQuery = qv.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+sess.Token)

	resp, err := client.Do(req)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Fatalf("export failed: %v", err)
	}
	if resp.StatusCode >= 300 {
		log.Fatalf("export failed: %s", strings.TrimSpace(string(data)))
	}

	name := fmt.Sprintf("games-export-%s-%s.%s", sess.Username, time.Now().UTC().Format("2006-01-02"), *format)
	path, err := writeAtomic(*dir, name, data)
	if err != nil {
		log.Fatalf("write export: %v", err)
	}
	fmt.Printf("exported to %s\n", path)
}

// writeAtomic lands the file through a temp name so an interrupted
// download never leaves a partial export behind.
func writeAtomic(dir, name string, data []byte) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	tmp, err := os.CreateTemp(dir, ".games-export-*")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), path); err != nil {
		_ = os.Remove(tmp.Name())
		return "", err
	}
	return path, nil
}

// handleChat runs the interactive assistant loop over the gateway
// websocket. Plain lines are chat; /search, /select, /submit and
// /cancel drive the add-a-game flow.
func handleChat(baseURL, tokenPath string) {
	sess := mustSession(tokenPath)

	endpoint, err := websocketURL(baseURL, "/api/assistant/ws")
	if err != nil {
		log.Fatalf("ws url: %v", err)
	}

	header := http.Header{}
	header.Set("Authorization", "Bearer "+sess.Token)
	conn, _, err := websocket.DefaultDialer.Dial(endpoint, header)
	if err != nil {
		log.Fatalf("connect failed: %v", err)
	}
	defer conn.Close()

	go func() {
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				log.Printf("connection closed: %v", err)
				os.Exit(0)
			}
			printAssistantEvent(msg)
		}
	}()

	fmt.Println("chat with the assistant; /search <q>, /select <id>, /submit <status> [rating], /cancel, /quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "/quit" {
			return
		}

		cmd, err := parseChatLine(line)
		if err != nil {
			fmt.Println(err)
			continue
		}
		if err := conn.WriteJSON(cmd); err != nil {
			log.Fatalf("send failed: %v", err)
		}
	}
}

func parseChatLine(line string) (map[string]any, error) {
	if !strings.HasPrefix(line, "/") {
		return map[string]any{"type": "message", "text": line}, nil
	}

	fields := strings.Fields(line)
	switch fields[0] {
	case "/search":
		if len(fields) < 2 {
			return nil, errors.New("usage: /search <query>")
		}
		return map[string]any{"type": "search", "query": strings.Join(fields[1:], " ")}, nil
	case "/select":
		if len(fields) != 2 {
			return nil, errors.New("usage: /select <game-id>")
		}
		var id int
		if _, err := fmt.Sscanf(fields[1], "%d", &id); err != nil {
			return nil, errors.New("game id must be a number")
		}
		return map[string]any{"type": "select", "gameId": id}, nil
	case "/submit":
		if len(fields) < 2 {
			return nil, errors.New("usage: /submit <status> [rating]")
		}
		cmd := map[string]any{"type": "submit", "status": fields[1]}
		if len(fields) > 2 {
			var rating float64
			if _, err := fmt.Sscanf(fields[2], "%f", &rating); err != nil {
				return nil, errors.New("rating must be a number")
			}
			cmd["rating"] = rating
		}
		return cmd, nil
	case "/cancel":
		return map[string]any{"type": "cancel"}, nil
	default:
		return nil, fmt.Errorf("unknown command %s", fields[0])
	}
}

func printAssistantEvent(raw []byte) {
	var ev struct {
		Type    string `json:"type"`
		State   string `json:"state"`
		Error   string `json:"error"`
		Message *struct {
			Content  string                `json:"content"`
			GameHits []models.SearchResult `json:"gameHits"`
		} `json:"message"`
		Entry *models.LibraryEntry `json:"entry"`
	}
	if err := json.Unmarshal(raw, &ev); err != nil {
		fmt.Println(string(raw))
		return
	}

	switch {
	case ev.Error != "":
		fmt.Printf("! %s\n", ev.Error)
	case ev.Type == "added" && ev.Entry != nil:
		fmt.Printf("added %s to your library\n", ev.Entry.Name)
	case ev.Message != nil:
		fmt.Printf("assistant: %s\n", ev.Message.Content)
		for _, hit := range ev.Message.GameHits {
			fmt.Printf("  [%d] %s\n", hit.ID, hit.Name)
		}
	}
}

// handleWatch follows library invalidation events and marks the local
// cache stale so the next profile render refetches.
func handleWatch(ctx context.Context, baseURL, tokenPath string, args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	wsFlag := fs.String("ws", "", "WebSocket URL (defaults to /ws on the gateway)")
	_ = fs.Parse(args)

	endpoint := *wsFlag
	if endpoint == "" {
		var err error
		endpoint, err = websocketURL(baseURL, "/ws")
		if err != nil {
			log.Fatalf("ws url: %v", err)
		}
	}

	conn, _, err := websocket.DefaultDialer.Dial(endpoint, nil)
	if err != nil {
		log.Fatalf("connect failed: %v", err)
	}
	defer conn.Close()
	log.Printf("watching %s", endpoint)

	for {
		_, msg, err := conn.ReadMessage()
		if err != nil {
			log.Fatalf("connection closed: %v", err)
		}
		fmt.Println(strings.TrimSpace(string(msg)))

		var ev struct {
			Type     string `json:"type"`
			Username string `json:"username"`
		}
		if json.Unmarshal(msg, &ev) == nil && ev.Username != "" {
			markCacheStale(ctx, ev.Username)
		}
	}
}

func markCacheStale(ctx context.Context, username string) {
	db, err := database.Open(database.DefaultConfig())
	if err != nil {
		return
	}
	defer db.Close()
	_ = database.NewSnapshotStore(db).MarkStale(ctx, username)
}

func doJSON(ctx context.Context, client *http.Client, method, endpoint, token string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = strings.NewReader(string(b))
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 300 {
		return fmt.Errorf("%s %s failed: %s", method, endpoint, strings.TrimSpace(string(data)))
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(data, out)
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./.playdamnit-session.json"
	}
	return filepath.Join(home, ".playdamnit", "session.json")
}

func saveSession(path, token, username string) error {
	if token == "" {
		return errors.New("empty token")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(sessionData{Token: token, Username: username}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o600)
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

func mustSession(path string) sessionData {
	sess, err := readSession(path)
	if err != nil {
		log.Fatalf("session not found, please login: %v", err)
	}
	if sess.Token == "" || sess.Username == "" {
		log.Fatal("session incomplete, please login")
	}
	return sess
}

func clearSession(path string) error {
	if err := os.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return nil
}

func websocketURL(baseURL, path string) (string, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", err
	}
	scheme := "ws"
	if u.Scheme == "https" {
		scheme = "wss"
	}
	return (&url.URL{
		Scheme: scheme,
		Host:   u.Host,
		Path:   path,
	}).String(), nil
}

func printUsage() {
	fmt.Println("playdamnit <command> [subcommand] [flags]")
	fmt.Println("commands:")
	fmt.Println("  auth login|register|logout")
	fmt.Println("  profile [--user --tab --q --offline]")
	fmt.Println("  search --q")
	fmt.Println("  library add|update|remove")
	fmt.Println("  import --file [--overwrite]")
	fmt.Println("  export [--format --out]")
	fmt.Println("  chat")
	fmt.Println("  watch")
}

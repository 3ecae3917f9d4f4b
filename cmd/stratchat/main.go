package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/assistant"
	"github.com/fwojciec/stratchat/gemini"
	"github.com/fwojciec/stratchat/glamour"
	"github.com/fwojciec/stratchat/knowledge"
	chatprom "github.com/fwojciec/stratchat/prometheus"
	chatslog "github.com/fwojciec/stratchat/slog"
	"github.com/fwojciec/stratchat/sqlite"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/genai"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Optional .env file loaded before flags are parsed. Variables already
	// set in the environment win.
	EnvFile string

	// Stdin feeds the chat command.
	Stdin io.Reader

	// SQLite database, opened only by commands that read or write exports.
	DB *sqlite.DB

	// Generator overrides the Gemini backend for end-to-end testing.
	Generator stratchat.Generator
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		EnvFile: ".env",
		Stdin:   os.Stdin,
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	if m.EnvFile != "" {
		if _, err := os.Stat(m.EnvFile); err == nil {
			if err := godotenv.Load(m.EnvFile); err != nil {
				return fmt.Errorf("failed to load %s: %w", m.EnvFile, err)
			}
		}
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdin:  m.Stdin,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("stratchat"),
		kong.Description("Answer questions about the digital transformation strategy"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Vars{"model": gemini.DefaultModel},
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'stratchat --help' to see available commands")
	}
	if args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}
	cmd, _, _ := strings.Cut(kongCtx.Command(), " ")

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	deps.Logger = logger

	// Load knowledge. Answering commands keep running on an empty snapshot
	// so the user still gets general replies.
	store := knowledge.NewStore(cli.Knowledge, logger)
	if err := store.Load(); err != nil {
		fmt.Fprintf(stderr, "%s\n", stratchat.ErrorMessage(err))
		switch cmd {
		case "match", "export":
			return err
		case "entries":
			if cli.Entries.DB == "" {
				return err
			}
		}
	}
	deps.Knowledge = store
	deps.Reloader = store
	deps.KnowledgePath = store.Path()

	// Exported snapshots.
	dbPath := ""
	switch cmd {
	case "export":
		dbPath = cli.Export.Path
	case "entries":
		dbPath = cli.Entries.DB
	}
	if dbPath != "" {
		m.DB = sqlite.NewDB(dbPath)
		if err := m.DB.Open(); err != nil {
			return fmt.Errorf("failed to open database at %q: %w", dbPath, err)
		}
		defer m.Close()
		entries := sqlite.NewEntryService(m.DB)
		deps.Entries = entries
		deps.Exporter = chatslog.NewLoggingKnowledgeExporter(entries, logger)
	}

	if cmd == "entries" && cli.Entries.Tokens {
		tokens, err := gemini.NewTokenCounter(cli.Model)
		if err != nil {
			return fmt.Errorf("failed to create token counter: %w", err)
		}
		deps.Tokens = tokens
	}

	if cmd == "ask" && cli.Ask.Render {
		renderer, err := glamour.NewRenderer(cli.Ask.Style, cli.Ask.Width)
		if err != nil {
			return err
		}
		deps.Renderer = renderer
	}

	if cmd == "ask" || cmd == "chat" || cmd == "serve" {
		gen := m.Generator
		if gen == nil {
			gen, err = newGenerator(ctx, cli.Model)
			switch {
			case err == nil:
			case cmd == "serve" && stratchat.ErrorCode(err) == stratchat.ECONFIG:
				// The server still starts; generation endpoints report
				// the missing key.
				logger.Warn("generation disabled", "err", err)
			default:
				fmt.Fprintln(stderr, "Hint: Set GEMINI_API_KEY. Get an API key at https://aistudio.google.com/apikey")
				return err
			}
		}

		if gen != nil {
			gen = chatslog.NewLoggingGenerator(gen, logger)
			deps.Generator = gen

			a := assistant.New(gen, store)
			a.NoSearch = cli.NoSearch
			var responder stratchat.Responder = chatslog.NewLoggingResponder(a, logger)

			if cmd == "serve" {
				reg := prometheus.NewRegistry()
				reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
				if responder, err = chatprom.NewResponder(responder, reg); err != nil {
					return err
				}
				if err := chatprom.RegisterKnowledge(reg, store); err != nil {
					return err
				}
				deps.Metrics = promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
			}
			deps.Responder = responder
		}
	}

	return kongCtx.Run(deps)
}

// newGenerator connects to the Gemini API. A missing key is an ECONFIG
// error.
func newGenerator(ctx context.Context, model string) (stratchat.Generator, error) {
	apiKey := apiKey()
	if apiKey == "" {
		return nil, stratchat.Errorf(stratchat.ECONFIG, "GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Gemini API: %w", err)
	}
	return gemini.NewGenerator(client, model), nil
}

func apiKey() string {
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		return key
	}
	return os.Getenv("API_KEY")
}

package main

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/fwojciec/stratchat"
	"github.com/fwojciec/stratchat/fsnotify"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Knowledge     stratchat.KnowledgeSource
	KnowledgePath string
	Reloader      fsnotify.Reloader

	// Generator and Responder are nil when no API key is configured.
	Generator stratchat.Generator
	Responder stratchat.Responder

	Renderer stratchat.Renderer
	Entries  stratchat.EntryService
	Exporter stratchat.KnowledgeExporter
	Tokens   stratchat.TokenCounter
	Metrics  http.Handler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Knowledge string `short:"k" env:"STRATCHAT_KNOWLEDGE" default:"data_dt_v03.json" help:"Strategy JSON document"`
	Model     string `short:"m" env:"GEMINI_MODEL" default:"${model}" help:"Gemini model"`
	NoSearch  bool   `env:"STRATCHAT_NO_SEARCH" help:"Answer every question locally without web search"`
	Verbose   bool   `short:"v" help:"Enable debug logging"`

	Ask     AskCmd     `cmd:"" help:"Ask a single question"`
	Chat    ChatCmd    `cmd:"" help:"Start an interactive conversation"`
	Serve   ServeCmd   `cmd:"" help:"Serve the chat API over HTTP"`
	Match   MatchCmd   `cmd:"" help:"Show knowledge entries matching a query"`
	Entries EntriesCmd `cmd:"" help:"List knowledge entries"`
	Export  ExportCmd  `cmd:"" help:"Export the knowledge snapshot to SQLite"`
}

// AskCmd is the "ask" subcommand.
type AskCmd struct {
	Question string `arg:"" help:"Question to ask"`
	Render   bool   `short:"r" help:"Render the answer as Markdown when complete"`
	Style    string `help:"Glamour style (auto when empty)"`
	Width    int    `default:"80" help:"Word wrap column for rendering"`
}

// ChatCmd is the "chat" subcommand.
type ChatCmd struct{}

// ServeCmd is the "serve" subcommand.
type ServeCmd struct {
	Addr  string `short:"a" env:"STRATCHAT_ADDR" default:":8080" help:"Listen address"`
	Watch bool   `short:"w" help:"Reload knowledge when the document changes"`
}

// MatchCmd is the "match" subcommand.
type MatchCmd struct {
	Query string `arg:"" help:"Query text"`
	Limit int    `short:"n" default:"5" help:"Candidates to show"`
}

// EntriesCmd is the "entries" subcommand.
type EntriesCmd struct {
	Prefix string `short:"p" help:"Keep entries whose source path starts with the prefix"`
	Prompt string `help:"Keep entries whose prompt contains the text"`
	DB     string `help:"Read entries from an exported SQLite snapshot"`
	Tokens bool   `short:"t" help:"Show completion token counts"`
	Limit  int    `short:"n" help:"Maximum entries to list"`
}

// ExportCmd is the "export" subcommand.
type ExportCmd struct {
	Path string `arg:"" help:"SQLite database path"`
}

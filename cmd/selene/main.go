// Package main is the Selene CLI entry point.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"go.uber.org/zap"

	"selene/internal/analysis"
	"selene/internal/cache"
	"selene/internal/config"
	"selene/internal/datasheet"
	"selene/internal/imaging"
	"selene/internal/models"
	"selene/internal/ollama"
	"selene/internal/server"
	"selene/pkg/utils"
)

var version = "dev"

const defaultConfigPath = "/usr/local/etc/selene/config.yaml"

// loadConfig loads config from path. When path is the default, it first looks
// for config.yaml in the current directory (for development); if that exists
// it is used. When neither exists, built-in defaults apply.
func loadConfig(path string) (*config.Config, string, error) {
	if path == defaultConfigPath {
		if cwd, cwdErr := os.Getwd(); cwdErr == nil {
			fallback := filepath.Join(cwd, "config.yaml")
			if _, statErr := os.Stat(fallback); statErr == nil {
				cfg, loadErr := config.Load(fallback)
				if loadErr != nil {
					return nil, "", loadErr
				}
				return cfg, fallback, nil
			}
		}
		if _, statErr := os.Stat(path); statErr != nil {
			return config.Default(), "", nil
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, "", err
	}
	return cfg, path, nil
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}
	command := os.Args[1]
	switch command {
	case "server":
		runServer()
	case "analyze":
		runAnalyze()
	case "datasheet":
		runDatasheet()
	case "check":
		runCheck()
	case "categories":
		runCategories()
	case "version", "--version", "-v":
		fmt.Printf("selene version %s\n", version)
	case "help", "--help", "-h":
		printUsage()
	default:
		fmt.Printf("Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

// Components holds initialized services.
type Components struct {
	Gateway *ollama.Client
	Engine  *analysis.Engine
	Parser  *datasheet.Parser
	Results *cache.ResultCache
}

func initializeComponents(cfg *config.Config, logger *zap.Logger) *Components {
	gateway := ollama.NewClient(&cfg.Ollama, logger)
	builder := analysis.NewContextBuilder(&cfg.Analysis, logger)
	loader := imaging.NewLoader(&cfg.Files, logger)

	var results *cache.ResultCache
	if cfg.Cache.EnabledOrDefault() {
		results = cache.NewResultCache(cfg.Cache.Capacity)
	}

	engine := analysis.NewEngine(gateway, builder, loader, results, &cfg.Analysis, logger)
	return &Components{
		Gateway: gateway,
		Engine:  engine,
		Parser:  datasheet.NewParser(logger),
		Results: results,
	}
}

func runServer() {
	fs := flag.NewFlagSet("server", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	debug := fs.Bool("debug", false, "enable debug logging")
	_ = fs.Parse(os.Args[2:])

	cfg, resolvedConfigPath, err := loadConfig(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}
	debugMode := cfg.Debug || *debug
	logger, err := utils.NewLogger(debugMode)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("config loaded",
		zap.String("config_path", resolvedConfigPath),
		zap.Bool("debug", debugMode),
	)

	components := initializeComponents(cfg, logger)
	srv := server.NewServer(
		components.Engine,
		components.Gateway,
		components.Parser,
		components.Results,
		cfg,
		logger,
	)
	go func() {
		if err := srv.Start(); err != nil {
			logger.Fatal("Server failed", zap.Error(err))
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Stop(ctx)
}

func runAnalyze() {
	fs := flag.NewFlagSet("analyze", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	analysisType := fs.String("type", models.ComponentVerification, "analysis category")
	customQuery := fs.String("query", "", "custom question (with --type \"Custom Query\")")
	datasheetPath := fs.String("datasheet", "", "datasheet file (.pdf, .txt, .md)")
	outputFormat := fs.String("output", "text", "output format: text or json")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: selene analyze [flags] <schematic-image>")
		os.Exit(1)
	}
	schematicPath := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	components := initializeComponents(cfg, logger)

	var record *models.DatasheetRecord
	if *datasheetPath != "" {
		text, err := datasheet.ExtractText(*datasheetPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Datasheet extraction failed: %v\n", err)
			os.Exit(1)
		}
		record = components.Parser.Parse(text)
	}

	result := components.Engine.Analyze(context.Background(), &models.AnalysisRequest{
		SchematicPath: schematicPath,
		AnalysisType:  *analysisType,
		CustomQuery:   *customQuery,
		DatasheetPath: *datasheetPath,
		Datasheet:     record,
	})

	switch *outputFormat {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(result); err != nil {
			fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
			os.Exit(1)
		}
	case "text":
		fmt.Println(analysis.Report(result))
	default:
		fmt.Fprintf(os.Stderr, "Unknown output format %q; use text or json\n", *outputFormat)
		os.Exit(1)
	}
	if result.Metadata.Error {
		os.Exit(1)
	}
}

func runDatasheet() {
	fs := flag.NewFlagSet("datasheet", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	if fs.NArg() < 1 {
		fmt.Println("Usage: selene datasheet [flags] <file>")
		os.Exit(1)
	}
	path := fs.Arg(0)

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	text, err := datasheet.ExtractText(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Extraction failed: %v\n", err)
		os.Exit(1)
	}
	record := datasheet.NewParser(logger).Parse(text)
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		fmt.Fprintf(os.Stderr, "Output failed: %v\n", err)
		os.Exit(1)
	}
}

func runCheck() {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	configPath := fs.String("config", defaultConfigPath, "config file path")
	_ = fs.Parse(os.Args[2:])

	cfg, _, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	logger, err := utils.NewLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	client := ollama.NewClient(&cfg.Ollama, logger)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if client.CheckConnection(ctx) {
		fmt.Printf("Model %q is available at %s\n", client.Model(), cfg.Ollama.BaseURL)
		return
	}
	fmt.Fprintf(os.Stderr, "Model %q is not available at %s\n", client.Model(), cfg.Ollama.BaseURL)
	os.Exit(1)
}

func runCategories() {
	for _, c := range models.Categories() {
		fmt.Println(c)
	}
}

func printUsage() {
	fmt.Println(`selene - Schematic review with a local vision model

Usage:
  selene server [flags]               Start the HTTP server
  selene analyze [flags] <image>      Analyze a schematic image
  selene datasheet [flags] <file>     Parse a datasheet into structured form
  selene check [flags]                Check model availability
  selene categories                   List analysis categories
  selene version                      Show version
  selene help                         Show this help

Server Flags:
  --config string    Config file path (default: /usr/local/etc/selene/config.yaml)
  --debug            Enable debug logging

Analyze Flags:
  --config string     Config file path
  --type string       Analysis category (default: "Component Verification")
  --query string      Custom question, used with --type "Custom Query"
  --datasheet string  Datasheet file to ground the analysis (.pdf, .txt, .md)
  --output string     Output format: text or json (default: text)

Examples:
  selene server
  selene analyze board.png
  selene analyze --type "Power Supply Analysis" board.png
  selene analyze --type "Custom Query" --query "Is the reset pin wired correctly?" board.png
  selene analyze --datasheet lm358.pdf board.png
  selene datasheet lm358.pdf
  selene check`)
}

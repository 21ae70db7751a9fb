package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/mverhey/confidant/internal/api"
	"github.com/mverhey/confidant/internal/config"
	"github.com/mverhey/confidant/internal/export"
	"github.com/mverhey/confidant/internal/repository/file"
	"github.com/mverhey/confidant/internal/service"
)

// Terminal REPL driving the conversation engine directly, without the
// HTTP surface.
func main() {
	sessionName := flag.String("session", "", "existing session to resume")
	flag.Parse()

	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if err := godotenv.Load(p); err == nil {
			break
		}
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Keep the transcript readable; only warn and above reach the terminal.
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel)

	sessions, err := file.NewSessionStore(cfg.Storage.MemoryDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open session storage: %v\n", err)
		os.Exit(1)
	}
	profiles, err := file.NewProfileStore(cfg.Storage.ConfigDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open profile storage: %v\n", err)
		os.Exit(1)
	}
	exporter, err := export.NewHTMLExporter(cfg.Storage.ExportDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open export directory: %v\n", err)
		os.Exit(1)
	}

	llmRouter := api.NewLLMRouter(cfg.LLM)
	assembler := service.NewContextAssembler(sessions, cfg.Context.CrossSessionWindow)
	personality := service.NewPersonalityManager(profiles, sessions, llmRouter, cfg.Context.PersonalityWindow)
	identity := service.NewSessionIdentity(sessions, llmRouter)
	summarizer := service.NewSummarizer(llmRouter)

	engine := service.NewConversationEngine(sessions, assembler, personality, identity, summarizer, exporter, llmRouter, *sessionName)

	fmt.Printf("\nSession: %s\n", engine.SessionName())
	fmt.Println("Type 'exit' to quit.")
	fmt.Println()

	scanner := bufio.NewScanner(os.Stdin)
	ctx := context.Background()

	for {
		fmt.Print("You: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if strings.EqualFold(input, "exit") {
			break
		}

		reply := engine.Send(ctx, input)
		fmt.Printf("AI: %s\n\n", reply)
	}
}

// Command a2a-chat is a streaming A2A client for a locally running agent
// server. It resolves the agent card, opens a conversation, prints the
// response stream and answers tool-call confirmation requests.
//
// Usage:
//
//	a2a-chat chat --url http://localhost:40095
//	a2a-chat card --url http://localhost:40095
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime/debug"
	"strings"
	"syscall"
	"time"

	"github.com/alecthomas/kong"
	"github.com/joho/godotenv"

	"github.com/shawl336/gemini-cli/pkg/chat"
)

// CLI defines the command-line interface.
type CLI struct {
	Chat    ChatCmd    `cmd:"" default:"1" help:"Start a streaming conversation with the agent."`
	Card    CardCmd    `cmd:"" help:"Resolve and print the agent card."`
	Version VersionCmd `cmd:"" help:"Show version information."`

	LogLevel  string `help:"Log level (debug, info, warn, error)." default:"info"`
	LogFile   string `help:"Log file path (empty = stderr)."`
	LogFormat string `help:"Log format (simple or verbose)." default:"simple"`
}

// ChatCmd runs the conversation driver.
type ChatCmd struct {
	URL     string        `help:"Base URL of the agent server." default:"http://localhost:40095"`
	Message string        `help:"Initial message text." default:"make a foo dir under cwd."`
	Timeout time.Duration `help:"Timeout for resolving the agent card." default:"300s"`
}

func (c *ChatCmd) Run(cli *CLI) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	fmt.Println("Gemini CLI A2A Client Demo")
	fmt.Println(strings.Repeat("=", 40))

	card, err := chat.ResolveCard(ctx, c.URL, c.Timeout)
	if err != nil {
		return err
	}

	client, err := chat.NewNativeClient(ctx, card)
	if err != nil {
		return err
	}
	defer func() { _ = client.Close() }()
	fmt.Printf("Resolved Agent: %s\n", client.Card().Name)

	driver, err := chat.NewDriver(chat.Config{
		Client:    client,
		Confirmer: chat.NewStdinConfirmer(os.Stdin, os.Stdout),
		Output:    os.Stdout,
	})
	if err != nil {
		return err
	}

	if err := driver.Run(ctx, chat.NewUserMessage(c.Message)); err != nil {
		return err
	}

	fmt.Println("\n" + strings.Repeat("=", 40))
	fmt.Println("Demo completed!")
	return nil
}

// CardCmd resolves and prints the agent card.
type CardCmd struct {
	URL     string        `help:"Base URL of the agent server." default:"http://localhost:40095"`
	Timeout time.Duration `help:"Timeout for resolving the agent card." default:"300s"`
}

func (c *CardCmd) Run(cli *CLI) error {
	ctx := context.Background()

	card, err := chat.ResolveCard(ctx, c.URL, c.Timeout)
	if err != nil {
		return err
	}

	fmt.Printf("\nAgent: %s\n", card.Name)
	fmt.Println(strings.Repeat("=", 40))
	if card.Description != "" {
		fmt.Printf("Description: %s\n", card.Description)
	}
	fmt.Printf("Version:     %s\n", card.Version)
	fmt.Printf("Streaming:   %t\n", card.Capabilities.Streaming)
	for _, skill := range card.Skills {
		desc := skill.Description
		if desc == "" {
			desc = "(no description)"
		}
		fmt.Printf("  - %s: %s\n", skill.Name, desc)
	}
	return nil
}

// VersionCmd shows version information.
type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	version := "dev"
	if info, ok := debug.ReadBuildInfo(); ok {
		if info.Main.Version != "(devel)" && info.Main.Version != "" {
			version = info.Main.Version
		}
	}
	fmt.Printf("a2a-chat version %s\n", version)
	return nil
}

func main() {
	_ = godotenv.Load()

	cli := CLI{}
	ctx := kong.Parse(&cli,
		kong.Name("a2a-chat"),
		kong.Description("Streaming A2A client for a local agent server"),
		kong.UsageOnError(),
	)

	cleanup, err := initLoggerFromCLI(cli.LogLevel, cli.LogFile, cli.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}

	err = ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}

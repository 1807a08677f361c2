package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mediekroken/digisvar/internal/assistant"
	"github.com/mediekroken/digisvar/internal/knowledge"
	"github.com/mediekroken/digisvar/pkg/digisvar"
)

var (
	askServer string
	askTopic  string
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Ask the assistant a question",
	Long: `Ask answers a question against the local knowledge base, or against a
running API when --server is set.`,
	Args: cobra.ExactArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().StringVar(&askServer, "server", "", "API base URL (answers locally when empty)")
	askCmd.Flags().StringVar(&askTopic, "topic", "", "topic hint (video, smalfilm, foto)")
}

func runAsk(cmd *cobra.Command, args []string) error {
	question := args[0]

	// A one-turn history carries the topic hint through the normal
	// inference path instead of a side channel.
	var history []assistant.ConversationTurn
	if askTopic != "" {
		history = append(history, assistant.ConversationTurn{
			Role: "assistant",
			Meta: map[string]any{"topic": askTopic},
		})
	}

	if askServer != "" {
		return askRemote(cmd.Context(), question, history)
	}
	return askLocal(cmd.Context(), question, history)
}

func askLocal(ctx context.Context, question string, history []assistant.ConversationTurn) error {
	kb, err := knowledge.Load(cfg.Knowledge.Path)
	if err != nil {
		return fmt.Errorf("load knowledge base: %w", err)
	}

	a, err := assistant.New(kb, assistant.Config{
		DebugLogging:    verbose,
		FallbackMessage: cfg.Assistant.FallbackMessage,
	}, logger)
	if err != nil {
		return fmt.Errorf("create assistant: %w", err)
	}

	resp := a.Handle(ctx, assistant.Input{Text: question, History: history})
	printResponse(resp.Text, resp.Meta)
	return nil
}

func askRemote(ctx context.Context, question string, history []assistant.ConversationTurn) error {
	client := digisvar.NewClient(digisvar.ClientConfig{
		BaseURL: askServer,
		APIKey:  cfg.Auth.APIKey,
	})

	var turns []digisvar.Turn
	for _, t := range history {
		turns = append(turns, digisvar.Turn{Role: t.Role, Text: t.Text, Topic: t.Topic, Meta: t.Meta})
	}

	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Suffix = " Spør assistenten..."
	s.Start()

	resp, err := client.Chat(ctx, digisvar.ChatRequest{Text: question, History: turns})
	s.Stop()
	if err != nil {
		return fmt.Errorf("ask %s: %w", askServer, err)
	}

	printResponse(resp.Text, resp.Meta)
	return nil
}

func printResponse(text string, meta map[string]any) {
	if outputJSON {
		json.NewEncoder(os.Stdout).Encode(map[string]any{"text": text, "meta": meta})
		return
	}

	route, _ := meta["route"].(string)
	tag := color.New(color.FgCyan, color.Bold)
	switch route {
	case assistant.RouteFAQ:
		tag = color.New(color.FgGreen, color.Bold)
	case assistant.RouteFallback:
		tag = color.New(color.FgYellow, color.Bold)
	}

	tag.Printf("[%s] ", route)
	fmt.Println(text)
}

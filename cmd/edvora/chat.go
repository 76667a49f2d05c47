package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/Tanya2303/Edvora/pkg/chat"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Talk to the study companion",
	Long: `Start an interactive session with the study companion. It knows your
reminders and answers questions about deadlines, progress and study habits.

Commands: /help, /clear, /quit`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		inst, err := openInstance("chat")
		if err != nil {
			return fmt.Errorf("failed to open store: %w", err)
		}
		defer inst.Close()

		// Reminders edited from another terminal show up in the next reply.
		if err := inst.Bridge.Start(ctx); err != nil {
			return err
		}

		lo, hi := cfg.Chat.DelayRange()
		companion := chat.NewCompanion(inst.Store,
			chat.WithUserName(cfg.User.Name),
			chat.WithDelay(lo, hi),
			chat.WithMaxHistory(cfg.Chat.MaxHistory),
			chat.WithCompanionLogger(slog.Default()),
		)

		rl, err := setupReadline()
		if err != nil {
			return fmt.Errorf("failed to setup readline: %w", err)
		}
		defer rl.Close()

		return runChat(ctx, rl, companion)
	},
}

func runChat(ctx context.Context, rl *readline.Instance, companion *chat.Companion) error {
	for _, m := range companion.Start() {
		fmt.Println(out.FormatMessage(m))
	}
	fmt.Println()

	for {
		line, err := rl.Readline()
		if err != nil {
			if isEOF(err) {
				fmt.Println("\nGoodbye!")
				return nil
			}
			return fmt.Errorf("failed to read input: %w", err)
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if strings.HasPrefix(input, "/") {
			switch strings.ToLower(strings.Fields(input)[0]) {
			case "/quit", "/exit":
				return nil
			case "/clear":
				companion.Clear()
				fmt.Println(out.FormatInfo("Chat cleared."))
				for _, m := range companion.Start() {
					fmt.Println(out.FormatMessage(m))
				}
			case "/help":
				fmt.Println(out.FormatInfo("Try asking:"))
				for _, p := range chat.SuggestedPrompts {
					fmt.Println("  • " + p)
				}
			default:
				fmt.Println(out.FormatError(fmt.Errorf("unknown command %s (try /help)", input)))
			}
			fmt.Println()
			continue
		}

		fmt.Println(out.FormatInfo("Edvora is typing…"))
		reply, err := companion.Ask(ctx, input)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		if err != nil {
			return err
		}
		fmt.Println(out.FormatMessage(reply))
		fmt.Println()
	}
}

func setupReadline() (*readline.Instance, error) {
	return readline.NewEx(&readline.Config{
		Prompt:              "You: ",
		HistoryFile:         "",
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
}

func filterInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func isEOF(err error) bool {
	return err == io.EOF || err == readline.ErrInterrupt
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

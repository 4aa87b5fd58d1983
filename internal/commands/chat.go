package commands

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/finwire/newsdesk/internal/modules/chat"
	"github.com/finwire/newsdesk/internal/modules/dashboard"
	"github.com/finwire/newsdesk/internal/modules/session"
	"github.com/finwire/newsdesk/internal/pkg/termrender"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat with the financial assistant",
	Long: `Start an interactive chat with the financial assistant.

The conversation keeps its history for the whole session.
Type 'exit' or 'quit', or press Ctrl+D, to end the session.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := newTerminalEnv(cmd.OutOrStdout())
		if err != nil {
			return err
		}
		defer env.logger.Sync()
		return chatLoop(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), env.services.Dashboard, env.session, env.md)
	},
}

type chatter interface {
	Transcript(ctx context.Context, sess *session.Session) ([]dashboard.TurnView, error)
	Chat(ctx context.Context, sess *session.Session, message string) (dashboard.ChatResult, error)
}

func chatLoop(ctx context.Context, in io.Reader, out io.Writer, c chatter, sess *session.Session, md *termrender.Renderer) error {
	turns, err := c.Transcript(ctx, sess)
	if err != nil {
		return err
	}
	for _, t := range turns {
		printTurn(out, t, md)
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, termrender.You("You: "))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch strings.ToLower(line) {
		case "":
			continue
		case "exit", "quit":
			return nil
		}

		res, err := c.Chat(ctx, sess, line)
		if err != nil {
			if errors.Is(err, context.Canceled) {
				return err
			}
			fmt.Fprintln(out, termrender.Warning("The assistant could not answer: "+err.Error()))
			continue
		}
		printTurn(out, dashboard.TurnView{Role: string(chat.RoleAssistant), Text: res.Reply}, md)
	}
}

func printTurn(out io.Writer, t dashboard.TurnView, md *termrender.Renderer) {
	if t.Role == string(chat.RoleHuman) {
		fmt.Fprintf(out, "%s%s\n", termrender.You("You: "), t.Text)
		return
	}
	fmt.Fprintln(out, termrender.Speaker("Assistant:"))
	fmt.Fprintln(out, md.Markdown(t.Text))
}

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Pranav-Anand04/TerpFit/internal/chat"
	"github.com/Pranav-Anand04/TerpFit/internal/tui"
)

var plainChat bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant and log workouts from the terminal",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		app, err := newApplication(ctx, cfg, logger)
		if err != nil {
			return err
		}
		defer app.Close()

		session := chat.NewSession("terminal")
		if plainChat {
			return runPlainChat(ctx, app.controller, session, cmd.InOrStdin(), cmd.OutOrStdout())
		}
		return tui.Run(ctx, app.controller, session)
	},
}

func init() {
	chatCmd.Flags().BoolVar(&plainChat, "plain", false, "Line-based chat without the full-screen interface")
}

// runPlainChat reads one message per line until EOF or "quit".
func runPlainChat(ctx context.Context, ctl *chat.Controller, s *chat.Session, in io.Reader, out io.Writer) error {
	fmt.Fprintln(out, "TerpFit:", chat.Welcome)
	sc := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		text := strings.TrimSpace(sc.Text())
		if text == "quit" || text == "exit" {
			return nil
		}
		reply := ctl.HandleMessage(ctx, s, text)
		if reply.Text != "" {
			fmt.Fprintln(out, "TerpFit:", reply.Text)
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive conversation",
	Long: `Chat reads one message per line from stdin and answers each with the
same routing as ask. Type exit or quit, or send EOF, to leave.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, mem, err := newAssistant()
		if err != nil {
			return err
		}
		defer mem.Close()

		fmt.Println(a.Greeting(cmd.Context()))

		in := bufio.NewScanner(os.Stdin)
		for {
			fmt.Print("> ")
			if !in.Scan() {
				fmt.Println()
				return in.Err()
			}
			line := strings.TrimSpace(in.Text())
			switch strings.ToLower(line) {
			case "":
				continue
			case "exit", "quit", "bye":
				fmt.Println("Goodbye!")
				return nil
			}

			reply, err := a.Handle(cmd.Context(), line)
			fmt.Println(reply.Text)
			if err != nil {
				logger.Warn("exchange not recorded", zap.Error(err))
			}
			if cmd.Context().Err() != nil {
				return cmd.Context().Err()
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

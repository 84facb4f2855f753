package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var askCmd = &cobra.Command{
	Use:   "ask <message>",
	Short: "Run one assistant turn and remember it",
	Long: `Ask routes the message to a skill (search, news, time, music, code) or to
chat with the language model, prints the reply and records the exchange in
conversation memory.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, mem, err := newAssistant()
		if err != nil {
			return err
		}
		defer mem.Close()

		reply, err := a.Handle(cmd.Context(), strings.Join(args, " "))
		fmt.Println(reply.Text)
		if err != nil {
			return err
		}

		if show, _ := cmd.Flags().GetBool("suggestions"); show {
			fmt.Fprintln(os.Stdout)
			for _, s := range reply.Suggestions {
				fmt.Printf("  - %s\n", s)
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().Bool("suggestions", false, "print follow-up suggestions")

	rootCmd.AddCommand(askCmd)
}

// Command koru is the interactive agent shell.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0"

func main() {
	root := &cobra.Command{
		Use:   "koru",
		Short: "An agent kernel with tool dispatch, retrieval memory and scheduling",
	}
	root.PersistentFlags().StringP("config", "c", "", "path to config file (yaml)")

	root.AddCommand(newChatCmd())
	root.AddCommand(newEventsCmd())
	root.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println(version)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

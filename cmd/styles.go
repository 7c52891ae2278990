package cmd

import (
	"fmt"

	"github.com/pltanton/dadjoke-mcp/internal/jokes"
	"github.com/spf13/cobra"
)

var stylesCmd = &cobra.Command{
	Use:   "styles",
	Short: "List available joke styles",
	Run:   runStyles,
}

func init() {
	rootCmd.AddCommand(stylesCmd)
}

func runStyles(cmd *cobra.Command, args []string) {
	catalog := jokes.NewCatalog()
	for _, id := range catalog.Styles() {
		template, _ := catalog.Lookup(id)
		marker := " "
		if id == jokes.DefaultStyle {
			marker = "*"
		}
		fmt.Printf("%s %-16s %s\n", marker, id, preview(template, 64))
	}
	fmt.Println()
	fmt.Println("* default style")
}

func preview(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}

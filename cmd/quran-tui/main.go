package main

import (
	"fmt"
	"log"
	"os"

	"quran-tui/internal/api"
	"quran-tui/internal/settings"
	"quran-tui/internal/ui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const version = "dev"

var rootCmd = &cobra.Command{
	Use:   "quran-tui",
	Short: "Terminal Quran reader with tajwid highlighting and recitation audio",
	Long:  "Terminal Quran reader: navigate by chapter, page, or juz, search the corpus, and play per-verse recitation audio",
	RunE:  runReader,
}

var versionCmd = &cobra.Command{
	Use: "version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("version: ", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

func runReader(cmd *cobra.Command, args []string) error {
	// Optional .env with QURAN_API_URL / QURAN_USER_ID; absence is fine.
	_ = godotenv.Load()

	st, err := settings.Load()
	if err != nil {
		st = settings.Default()
	}

	client := api.NewClient(os.Getenv("QURAN_API_URL"))
	userID := os.Getenv("QURAN_USER_ID")
	if userID == "" {
		userID = "local"
	}

	p := tea.NewProgram(
		ui.NewModel(client, userID, st),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run reader: %w", err)
	}
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error executing command: %v", err)
	}
}

package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"MoodFM/config"
	"MoodFM/core/deezer"
	"MoodFM/core/recommend"
	"MoodFM/logger"

	"github.com/spf13/cobra"
)

var (
	searchKind  string
	searchCount int
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Run a one-shot recommendation search from the terminal",
	Long: `Search Deezer for tracks and print the rendered recommendation table.
The --kind flag picks the search strategy: artist, genre, mood or track.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg := config.Load()
		logger.InitLogger(logger.Config{Level: logger.LogLevel(cfg.LogLevel)})

		client := deezer.NewClient(cfg)
		recommender := recommend.New(client, cfg)

		ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
		defer cancel()

		opts := recommend.SearchOptions{Count: searchCount}
		query := args[0]

		var result recommend.Result
		switch searchKind {
		case "artist":
			result = recommender.SearchByArtist(ctx, query, opts)
		case "genre":
			result = recommender.SearchByGenre(ctx, query, opts)
		case "mood":
			result = recommender.SearchByMoodWithGenreFallback(ctx, query, opts)
		case "track":
			result = recommender.SearchByTrack(ctx, query, opts)
		default:
			log.Fatalf("Unknown search kind %q (want artist, genre, mood or track)", searchKind)
		}

		if !result.OK() {
			fmt.Println(result.Message)
			return
		}

		fmt.Println(result.ResponseText)
	},
}

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", "artist", "search strategy: artist, genre, mood or track")
	searchCmd.Flags().IntVarP(&searchCount, "count", "n", 0, "number of tracks to return (0 uses the configured default)")
	rootCmd.AddCommand(searchCmd)
}

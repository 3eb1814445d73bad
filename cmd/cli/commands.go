package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	matchWinner   string
	matchLoser    string
	matchDate     string
	matchDuration string

	playerName  string
	playerDate  string
	playerPhoto string

	dryRun bool
)

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(matchesCmd)
	rootCmd.AddCommand(playersCmd)
	rootCmd.AddCommand(standingsCmd)
	rootCmd.AddCommand(metricsCmd)
	rootCmd.AddCommand(recordMatchCmd)
	rootCmd.AddCommand(registerPlayerCmd)
	rootCmd.AddCommand(postStandingsCmd)

	recordMatchCmd.Flags().StringVar(&matchWinner, "winner", "", "Name of the winner")
	recordMatchCmd.Flags().StringVar(&matchLoser, "loser", "", "Name of the loser")
	recordMatchCmd.Flags().StringVar(&matchDate, "date", "", "Date the match was played")
	recordMatchCmd.Flags().StringVar(&matchDuration, "duration", "", "Match duration")
	recordMatchCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Skip notifications and events")
	postStandingsCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Log the message instead of posting it")
	for _, f := range []string{"winner", "loser", "date", "duration"} {
		_ = recordMatchCmd.MarkFlagRequired(f)
	}

	registerPlayerCmd.Flags().StringVar(&playerName, "name", "", "Player name")
	registerPlayerCmd.Flags().StringVar(&playerDate, "date", "", "Registration date")
	registerPlayerCmd.Flags().StringVar(&playerPhoto, "photo", "", "Path to the player's photo")
	for _, f := range []string{"name", "date", "photo"} {
		_ = registerPlayerCmd.MarkFlagRequired(f)
	}
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the health of the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/health")
	},
}

var matchesCmd = &cobra.Command{
	Use:   "matches",
	Short: "List recorded matches",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/matches")
	},
}

var playersCmd = &cobra.Command{
	Use:   "players",
	Short: "List registered players",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/players")
	},
}

var standingsCmd = &cobra.Command{
	Use:   "standings",
	Short: "Show the standings",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/api/standings")
	},
}

var postStandingsCmd = &cobra.Command{
	Use:   "post-standings",
	Short: "Post the current standings to Slack",
	RunE: func(cmd *cobra.Command, args []string) error {
		endpoint := "/api/standings/notify"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPost, endpoint, "", nil)
	},
}

var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Get application metrics",
	RunE: func(cmd *cobra.Command, args []string) error {
		return performGetRequest("/metrics")
	},
}

var recordMatchCmd = &cobra.Command{
	Use:   "record-match",
	Short: "Record a match result",
	RunE: func(cmd *cobra.Command, args []string) error {
		body, err := json.Marshal(map[string]string{
			"winner":   matchWinner,
			"loser":    matchLoser,
			"date":     matchDate,
			"duration": matchDuration,
		})
		if err != nil {
			return fmt.Errorf("failed to encode match: %w", err)
		}
		endpoint := "/api/matches"
		if dryRun {
			endpoint += "?dry_run=true"
		}
		return performRequest(http.MethodPost, endpoint, "application/json", bytes.NewReader(body))
	},
}

var registerPlayerCmd = &cobra.Command{
	Use:   "register-player",
	Short: "Register a player with a photo",
	RunE: func(cmd *cobra.Command, args []string) error {
		photo, err := os.Open(playerPhoto)
		if err != nil {
			return fmt.Errorf("failed to open photo: %w", err)
		}
		defer photo.Close()

		var body bytes.Buffer
		mw := multipart.NewWriter(&body)
		if err := mw.WriteField("name", playerName); err != nil {
			return err
		}
		if err := mw.WriteField("date", playerDate); err != nil {
			return err
		}
		fw, err := mw.CreateFormFile("photo", filepath.Base(playerPhoto))
		if err != nil {
			return err
		}
		if _, err := io.Copy(fw, photo); err != nil {
			return fmt.Errorf("failed to read photo: %w", err)
		}
		if err := mw.Close(); err != nil {
			return err
		}
		return performRequest(http.MethodPost, "/api/players", mw.FormDataContentType(), &body)
	},
}

func performGetRequest(endpoint string) error {
	return performRequest(http.MethodGet, endpoint, "", nil)
}

func performRequest(method, endpoint, contentType string, payload io.Reader) error {
	url := host + endpoint
	fmt.Printf("Making %s request to %s\n", method, url)

	req, err := http.NewRequest(method, url, payload)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	fmt.Printf("Status Code: %d\n", resp.StatusCode)
	fmt.Println("Response Body:")
	fmt.Println(string(body))

	return nil
}

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

// Simplified config loading for the script
func loadConfig() map[string]string {
	err := godotenv.Load()
	if err != nil {
		log.Warn("No .env file found, reading from environment variables")
	}

	config := map[string]string{
		"SEED_HOST":    "http://localhost:5000",
		"SEED_PLAYERS": "6",
		"SEED_MATCHES": "50",
	}
	for key := range config {
		if value, ok := os.LookupEnv(key); ok {
			config[key] = value
		}
	}
	return config
}

func mustInt(cfg map[string]string, key string) int {
	n, err := strconv.Atoi(cfg[key])
	if err != nil || n <= 0 {
		log.Fatalf("Error: %s must be a positive integer, got %q", key, cfg[key])
	}
	return n
}

func main() {
	log.Info("Starting seeder...")
	cfg := loadConfig()
	host := cfg["SEED_HOST"]
	numPlayers := mustInt(cfg, "SEED_PLAYERS")
	numMatches := mustInt(cfg, "SEED_MATCHES")
	client := &http.Client{Timeout: 10 * time.Second}

	// Random suffixes keep repeated runs apart.
	names := make([]string, 0, numPlayers)
	for i := 0; i < numPlayers; i++ {
		name := fmt.Sprintf("Seeder Player %c-%s", 'A'+rune(i%26), uuid.NewString()[:8])
		photo := []byte{0xFF, 0xD8, 0xFF, byte(i)}
		if err := registerPlayer(client, host, name, time.Now().Format("2006-01-02"), photo); err != nil {
			log.Fatalf("Failed to register player %s: %s", name, err)
		}
		names = append(names, name)
	}
	log.Info("Registered players", "count", len(names))

	if len(names) < 2 {
		log.Warn("Need at least two players to seed matches")
		return
	}

	startTime := time.Now()
	for i := 0; i < numMatches; i++ {
		winner := rand.Intn(len(names))
		loser := (winner + 1 + rand.Intn(len(names)-1)) % len(names)
		date := time.Now().Add(-time.Duration(rand.Intn(365*24)) * time.Hour).Format("2006-01-02")
		duration := strconv.Itoa(10 + rand.Intn(50))
		if err := recordMatch(client, host, names[winner], names[loser], date, duration); err != nil {
			log.Fatalf("Failed to record match: %s", err)
		}
		if (i+1)%10 == 0 {
			log.Info("Recorded matches", "completed", i+1, "total", numMatches)
		}
	}

	log.Info("Successfully seeded matches.", "count", numMatches, "duration", time.Since(startTime))
}

func registerPlayer(client *http.Client, host, name, date string, photo []byte) error {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("name", name); err != nil {
		return err
	}
	if err := mw.WriteField("date", date); err != nil {
		return err
	}
	fw, err := mw.CreateFormFile("photo", "seed.jpg")
	if err != nil {
		return err
	}
	if _, err := fw.Write(photo); err != nil {
		return err
	}
	if err := mw.Close(); err != nil {
		return err
	}
	return post(client, host+"/api/players", mw.FormDataContentType(), &body)
}

func recordMatch(client *http.Client, host, winner, loser, date, duration string) error {
	payload, err := json.Marshal(map[string]string{
		"winner":   winner,
		"loser":    loser,
		"date":     date,
		"duration": duration,
	})
	if err != nil {
		return err
	}
	// Seed data should not spam Slack or the event bus.
	return post(client, host+"/api/matches?dry_run=true", "application/json", bytes.NewReader(payload))
}

func post(client *http.Client, url, contentType string, body io.Reader) error {
	resp, err := client.Post(url, contentType, body)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		msg, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("unexpected status %d: %s", resp.StatusCode, msg)
	}
	return nil
}

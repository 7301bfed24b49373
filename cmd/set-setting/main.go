package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/jxdata/portal/internal/config"
	"github.com/jxdata/portal/internal/content"
	"github.com/jxdata/portal/internal/database"
	"github.com/jxdata/portal/internal/logger"
	"github.com/jxdata/portal/internal/repository"
)

func main() {
	var key, value string
	flag.StringVar(&key, "key", "", "Setting key, e.g. stats.registered_users")
	flag.StringVar(&value, "value", "", "Setting value")
	flag.Parse()

	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	catalog, err := content.Load(cfg.ContentPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load content catalog")
	}

	// ─── CLI Input ─────────────────────────────────────────────────────
	reader := bufio.NewReader(os.Stdin)

	if key == "" {
		fmt.Println("=== Update Site Setting ===")
		for _, s := range catalog.Stats {
			fmt.Printf("  %-26s %s (default %d)\n", s.Key, s.Label, s.Value)
		}
		fmt.Print("Enter Key: ")
		key, _ = reader.ReadString('\n')
		key = strings.TrimSpace(key)
	}

	if !knownStat(catalog, key) {
		fmt.Printf("Error: unknown setting key %q\n", key)
		os.Exit(1)
	}

	if value == "" {
		fmt.Print("Enter Value: ")
		value, _ = reader.ReadString('\n')
		value = strings.TrimSpace(value)
	}

	if n, err := strconv.ParseInt(value, 10, 64); err != nil || n < 0 {
		fmt.Println("Error: value must be a non-negative integer")
		os.Exit(1)
	}

	// ─── Logic ─────────────────────────────────────────────────────────
	ctx := context.Background()

	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	settingRepo := repository.NewSettingRepository(pool)
	if err := settingRepo.Upsert(ctx, key, value); err != nil {
		log.Fatal().Err(err).Str("key", key).Msg("Failed to update setting")
	}

	fmt.Printf("\nSuccess! %s = %s\n", key, value)
}

func knownStat(catalog *content.Catalog, key string) bool {
	for _, s := range catalog.Stats {
		if s.Key == key {
			return true
		}
	}
	return false
}

package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"github.com/KirkDiggler/rpg-codex/internal/clients/catalog"
	"github.com/KirkDiggler/rpg-codex/internal/clients/uploads"
	"github.com/KirkDiggler/rpg-codex/internal/clients/webhook"
	orchestrator "github.com/KirkDiggler/rpg-codex/internal/orchestrators/codex"
	diceorch "github.com/KirkDiggler/rpg-codex/internal/orchestrators/dice"
	"github.com/KirkDiggler/rpg-codex/internal/pkg/idgen"
	"github.com/KirkDiggler/rpg-codex/internal/redis"
	backgroundrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/backgrounds"
	campaignrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/campaigns"
	classrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/classes"
	featrepo "github.com/KirkDiggler/rpg-codex/internal/repositories/feats"
	racerepo "github.com/KirkDiggler/rpg-codex/internal/repositories/races"
	codexsvc "github.com/KirkDiggler/rpg-codex/internal/services/codex"
)

var redisAddress string

// loadEnv pulls local overrides from .env when present. Missing files are
// fine; the defaults work for local development.
func loadEnv() {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded environment from .env")
	}
}

func resolveRedisAddress() string {
	if redisAddress != "" {
		return redisAddress
	}
	if addr := os.Getenv("REDIS_ADDRESS"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// newService wires the full authoring stack: redis repositories, the SRD
// catalog client, and the webhook client.
func newService() (codexsvc.Service, error) {
	loadEnv()

	client, err := redis.NewClient(resolveRedisAddress(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis client: %w", err)
	}

	classes, err := classrepo.NewRedis(&classrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	races, err := racerepo.NewRedis(&racerepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	backgrounds, err := backgroundrepo.NewRedis(&backgroundrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	feats, err := featrepo.NewRedis(&featrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}
	campaigns, err := campaignrepo.NewRedis(&campaignrepo.RedisConfig{Client: client})
	if err != nil {
		return nil, err
	}

	catalogClient, err := catalog.New(&catalog.Config{
		BaseURL: os.Getenv("DND5E_API_URL"),
	})
	if err != nil {
		return nil, err
	}

	webhookClient, err := webhook.New(&webhook.Config{})
	if err != nil {
		return nil, err
	}

	return orchestrator.New(&orchestrator.Config{
		ClassRepo:      classes,
		RaceRepo:       races,
		BackgroundRepo: backgrounds,
		FeatRepo:       feats,
		CampaignRepo:   campaigns,
		Catalog:        catalogClient,
		Webhook:        webhookClient,
		IDGenerator:    idgen.NewUUID(""),
	})
}

func newDiceService() (diceorch.Service, error) {
	return diceorch.NewOrchestrator(&diceorch.Config{
		IDGenerator: idgen.NewUUID("roll"),
	})
}

func newCatalogClient() (catalog.Client, error) {
	loadEnv()
	return catalog.New(&catalog.Config{
		BaseURL: os.Getenv("DND5E_API_URL"),
	})
}

func newUploadsClient() (uploads.Client, error) {
	loadEnv()
	return uploads.New(&uploads.Config{
		BaseURL:   os.Getenv("ASSET_UPLOAD_URL"),
		AuthToken: os.Getenv("ASSET_UPLOAD_TOKEN"),
	})
}

// printJSON writes v to stdout as indented JSON
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// readJSONFile decodes a JSON document from path into v, rejecting unknown
// shapes early so authors get decode errors instead of silent zero values
func readJSONFile(path string, v any) error {
	data, err := os.ReadFile(path) // #nosec G304 -- author-supplied path
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

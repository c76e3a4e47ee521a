package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ethanbaker/textcraft/internal/api"
	"github.com/ethanbaker/textcraft/internal/bot"
	"github.com/ethanbaker/textcraft/pkg/editor"
	"github.com/ethanbaker/textcraft/pkg/llm"
	"github.com/ethanbaker/textcraft/pkg/session"
	"github.com/ethanbaker/textcraft/pkg/utils"
)

func main() {
	// Find env file
	envFile := ".env"
	if os.Getenv("ENV_FILE") != "" {
		envFile = os.Getenv("ENV_FILE")
	}

	// Load global config
	cfg := utils.NewConfigFromEnv(envFile)

	// Both secrets are required; refusing to start beats failing on the first request
	if cfg.Get("TELEGRAM_BOT_TOKEN") == "" || cfg.Get("MISTRAL_API_KEY") == "" {
		log.Fatalf("[MAIN]: TELEGRAM_BOT_TOKEN and MISTRAL_API_KEY must be set (check your .env file)")
	}

	// Prompt catalog with optional overrides
	catalog := editor.NewCatalog()
	if dir := cfg.Get("PROMPTS_DIR"); dir != "" {
		catalog.LoadOverridesDir(dir)
	}
	if file := cfg.Get("PROMPTS_FILE"); file != "" {
		if err := catalog.LoadOverridesFile(file); err != nil {
			log.Fatalf("[MAIN]: failed to load prompt overrides: %v", err)
		}
	}

	// Session store and the transformation pipeline
	store := session.NewStore()

	// An explicit LLM_TEMPERATURE=0 must not read as "unset"
	temperature := cfg.GetFloatWithDefault("LLM_TEMPERATURE", llm.DefaultTemperature)
	if temperature == 0 {
		temperature = llm.NoTemperature
	}

	completer := llm.NewMistralClient(llm.Config{
		APIKey:      cfg.Get("MISTRAL_API_KEY"),
		BaseURL:     cfg.Get("MISTRAL_BASE_URL"),
		Model:       cfg.Get("MISTRAL_MODEL"),
		MaxTokens:   int64(cfg.GetInt("LLM_MAX_TOKENS")),
		Temperature: temperature,
	})

	timeout := time.Duration(cfg.GetIntWithDefault("LLM_TIMEOUT_SECONDS", 60)) * time.Second
	dispatcher := editor.NewDispatcher(store, catalog, completer, timeout)

	// Evict idle sessions on a schedule
	ttl := time.Duration(cfg.GetIntWithDefault("SESSION_TTL_MINUTES", 120)) * time.Minute
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@every 10m", func() {
		if n := store.EvictIdle(ttl); n > 0 {
			log.Printf("[MAIN]: evicted %d idle session(s)", n)
		}
	}); err != nil {
		log.Fatalf("[MAIN]: failed to schedule session eviction: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Liveness/status endpoint for the hosting platform
	go api.Start(cfg, store)

	// Wait for interrupt signal to gracefully shut down the bot
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log.Println("[MAIN]: Starting bot...")

	b, err := bot.NewBot(cfg, store, dispatcher)
	if err != nil {
		log.Fatalf("[MAIN]: failed to create bot: %v", err)
	}

	go func() {
		<-ctx.Done()
		b.Stop()
	}()

	if err := b.Start(ctx); err != nil {
		log.Fatalf("[MAIN]: failed to run bot: %v", err)
	}

	log.Println("[MAIN]: Bot stopped gracefully")
}

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"croupier/database"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken     string
	GuildID          string // Primary Discord guild ID
	StaffChannelID   string // Channel where escrow requests are posted for review
	LotteryChannelID string // Channel where draw results are announced

	// Database configuration
	DatabaseURL  string
	DatabaseName string

	// Casino configuration
	StartingBalance int64
	MaxBet          int64
	TermsURL        string // Linked from the registration prompt

	// Lottery configuration
	LotteryTicketPrice    int64
	LotteryPayoutFraction float64
	LotteryDrawWeekday    int // 0 = Sunday
	LotteryDrawHour       int // Hour in UTC (0-23)
	LotteryDrawMinute     int

	// Escrow configuration
	StaffDiscordIDs []int64 // Discord IDs that can decide escrow requests

	// Audit configuration
	AuditLogPath string // CSV audit trail destination, empty disables it

	// NATS configuration
	NATSServers string // NATS server addresses (comma-separated), empty disables publishing

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			// In test environment, use a default test config instead of panicking
			if os.Getenv("GO_TEST") == "1" || os.Getenv("ENVIRONMENT") == "test" {
				instance = NewTestConfig()
				instance.DiscordToken = "test-token"
			} else {
				panic(fmt.Sprintf("failed to load config: %v", err))
			}
		}
	})
	return instance
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		// Discord
		DiscordToken:     os.Getenv("DISCORD_TOKEN"),
		GuildID:          os.Getenv("GUILD_ID"),
		StaffChannelID:   os.Getenv("STAFF_CHANNEL_ID"),
		LotteryChannelID: os.Getenv("LOTTERY_CHANNEL_ID"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Casino settings with defaults
		StartingBalance: 0,
		MaxBet:          10000,
		TermsURL:        os.Getenv("TERMS_URL"),

		// Lottery defaults: Sunday 00:00 UTC, 100 per ticket, 90% paid out
		LotteryTicketPrice:    100,
		LotteryPayoutFraction: 0.9,
		LotteryDrawWeekday:    0,
		LotteryDrawHour:       0,
		LotteryDrawMinute:     0,

		// Audit
		AuditLogPath: os.Getenv("AUDIT_LOG_PATH"),

		// NATS
		NATSServers: os.Getenv("NATS_SERVERS"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if balance := os.Getenv("STARTING_BALANCE"); balance != "" {
		if parsedBalance, err := strconv.ParseInt(balance, 10, 64); err == nil {
			config.StartingBalance = parsedBalance
		}
	}
	if maxBet := os.Getenv("MAX_BET"); maxBet != "" {
		if parsedMaxBet, err := strconv.ParseInt(maxBet, 10, 64); err == nil && parsedMaxBet > 0 {
			config.MaxBet = parsedMaxBet
		}
	}
	if price := os.Getenv("LOTTERY_TICKET_PRICE"); price != "" {
		if parsedPrice, err := strconv.ParseInt(price, 10, 64); err == nil && parsedPrice > 0 {
			config.LotteryTicketPrice = parsedPrice
		}
	}
	if fraction := os.Getenv("LOTTERY_PAYOUT_FRACTION"); fraction != "" {
		if parsedFraction, err := strconv.ParseFloat(fraction, 64); err == nil && parsedFraction > 0 && parsedFraction <= 1 {
			config.LotteryPayoutFraction = parsedFraction
		}
	}
	if weekday := os.Getenv("LOTTERY_DRAW_WEEKDAY"); weekday != "" {
		if parsedWeekday, err := strconv.Atoi(weekday); err == nil && parsedWeekday >= 0 && parsedWeekday <= 6 {
			config.LotteryDrawWeekday = parsedWeekday
		}
	}
	if hour := os.Getenv("LOTTERY_DRAW_HOUR"); hour != "" {
		if parsedHour, err := strconv.Atoi(hour); err == nil && parsedHour >= 0 && parsedHour <= 23 {
			config.LotteryDrawHour = parsedHour
		}
	}
	if minute := os.Getenv("LOTTERY_DRAW_MINUTE"); minute != "" {
		if parsedMinute, err := strconv.Atoi(minute); err == nil && parsedMinute >= 0 && parsedMinute <= 59 {
			config.LotteryDrawMinute = parsedMinute
		}
	}

	// Parse staff Discord IDs
	if staffIDs := os.Getenv("STAFF_DISCORD_IDS"); staffIDs != "" {
		idStrings := strings.Split(staffIDs, ",")
		for _, idStr := range idStrings {
			idStr = strings.TrimSpace(idStr)
			if idStr != "" {
				if id, err := strconv.ParseInt(idStr, 10, 64); err == nil {
					config.StaffDiscordIDs = append(config.StaffDiscordIDs, id)
				}
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
		// If DatabaseName is provided, ensure it's not empty
		if config.DatabaseName != "" && strings.TrimSpace(config.DatabaseName) == "" {
			return nil, fmt.Errorf("DATABASE_NAME cannot be empty when provided")
		}
	}

	return config, nil
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
// This should only be called from test files
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
// This should only be called from test files
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:           "test",
		StartingBalance:       0,
		MaxBet:                10000,
		LotteryTicketPrice:    100,
		LotteryPayoutFraction: 0.9,
		StaffDiscordIDs:       []int64{999999, 999991, 999998},
	}
}

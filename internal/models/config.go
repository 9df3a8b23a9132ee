package models

import (
	"fmt"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

// MenuTypeRule maps menu-name keywords to an auto-selection policy.
// Slice order is match priority: the config owner lists the most
// specific keywords first.
type MenuTypeRule struct {
	Key           string   `mapstructure:"key"`
	Keywords      []string `mapstructure:"keywords"`
	AutoDays      int      `mapstructure:"auto_days"`
	SelectionType string   `mapstructure:"selection_type"`
}

// MealKeywords drives single-meal classification by name.
type MealKeywords struct {
	Breakfast []string `mapstructure:"breakfast"`
	Lunch     []string `mapstructure:"lunch"`
	Dinner    []string `mapstructure:"dinner"`
}

type CloudStorage struct {
	Provider   string `mapstructure:"provider"`
	Region     string `mapstructure:"region"`
	BucketName string `mapstructure:"bucket_name"`
}

type Config struct {
	Seed             int       `mapstructure:"seed"`
	StartDate        time.Time `mapstructure:"start_date"`
	InitialCustomers int       `mapstructure:"initial_customers"`
	InitialMenus     int       `mapstructure:"initial_menus"`
	SessionCount     int       `mapstructure:"session_count"`

	DatabaseURL  string `mapstructure:"database_url"`
	SeedDatabase bool   `mapstructure:"seed_database"`

	KafkaEnabled    bool   `mapstructure:"kafka_enabled"`
	KafkaBrokerList string `mapstructure:"kafka_broker_list"`

	OutputPath        string       `mapstructure:"output_path"`
	OutputFolder      string       `mapstructure:"output_folder"`
	OutputFormat      string       `mapstructure:"output_format"`
	OutputDestination string       `mapstructure:"output_destination"`
	CloudStorage      CloudStorage `mapstructure:"cloud_storage"`

	// Order configuration engine settings.
	MenuTypes        []MenuTypeRule `mapstructure:"menu_types"`
	MealKeywords     MealKeywords   `mapstructure:"meal_keywords"`
	WeekdayKeywords  []string       `mapstructure:"weekday_keywords"`
	FullWeekKeywords []string       `mapstructure:"full_week_keywords"`
	LowStockLevel    int            `mapstructure:"low_stock_level"`
}

// DefaultMenuTypeRules is the fallback keyword table used when the
// configured table is missing or fails to load.
func DefaultMenuTypeRules() []MenuTypeRule {
	return []MenuTypeRule{
		{Key: "weekday", Keywords: []string{"week-day", "week day", "weekday"}, AutoDays: 5, SelectionType: SelectionTypeWeekdaysOnly},
		{Key: "monthly", Keywords: []string{"monthly", "month"}, AutoDays: 30, SelectionType: SelectionTypeConsecutive},
		{Key: "weekly", Keywords: []string{"weekly", "week"}, AutoDays: 7, SelectionType: SelectionTypeConsecutive},
	}
}

func DefaultMealKeywords() MealKeywords {
	return MealKeywords{
		Breakfast: []string{"breakfast"},
		Lunch:     []string{"lunch"},
		Dinner:    []string{"dinner"},
	}
}

func DefaultWeekdayKeywords() []string {
	return []string{"week-day", "week day", "weekday"}
}

func DefaultFullWeekKeywords() []string {
	return []string{"full week", "full-week", "fullweek"}
}

// MenuTypeRulesOrDefault returns the configured keyword table, or the
// hardcoded defaults when the config carries none.
func (cfg *Config) MenuTypeRulesOrDefault() []MenuTypeRule {
	if len(cfg.MenuTypes) > 0 {
		return cfg.MenuTypes
	}
	return DefaultMenuTypeRules()
}

func (cfg *Config) MealKeywordsOrDefault() MealKeywords {
	kw := cfg.MealKeywords
	if len(kw.Breakfast) == 0 && len(kw.Lunch) == 0 && len(kw.Dinner) == 0 {
		return DefaultMealKeywords()
	}
	return kw
}

func (cfg *Config) WeekdayKeywordsOrDefault() []string {
	if len(cfg.WeekdayKeywords) > 0 {
		return cfg.WeekdayKeywords
	}
	return DefaultWeekdayKeywords()
}

func (cfg *Config) FullWeekKeywordsOrDefault() []string {
	if len(cfg.FullWeekKeywords) > 0 {
		return cfg.FullWeekKeywords
	}
	return DefaultFullWeekKeywords()
}

func (cfg *Config) LowStockLevelOrDefault() int {
	if cfg.LowStockLevel > 0 {
		return cfg.LowStockLevel
	}
	return 5
}

// LoadConfig initializes and reads the configuration using Viper
func LoadConfig(cfgFile string) (*Config, error) {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		// Default config location
		viper.AddConfigPath("examples")
		viper.SetConfigName("config")
		viper.SetConfigType("json")
	}

	viper.AutomaticEnv() // Read in environment variables that match

	viper.SetDefault("start_date", time.Now().Format(time.RFC3339))
	viper.SetDefault("session_count", 100)
	viper.SetDefault("initial_customers", 50)
	viper.SetDefault("initial_menus", 40)

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var config Config
	decoderConfigOption := viper.DecoderConfigOption(func(config *mapstructure.DecoderConfig) {
		config.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			config.DecodeHook,
			mapstructure.StringToTimeHookFunc(time.RFC3339),
		)
	})
	if err := viper.Unmarshal(&config, decoderConfigOption); err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %w", err)
	}

	return &config, nil
}

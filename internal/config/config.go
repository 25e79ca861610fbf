package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/wekeepgrowing/semo-paybot/internal/domain/entity"
	"github.com/wekeepgrowing/semo-paybot/pkg/logger"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath = "./configs/paybot.yaml"

	// Telegram rejects inline buttons whose callback data is longer than this
	maxCallbackDataBytes = 64
)

type Config struct {
	Service  ServiceConfig   `yaml:"service"`
	Server   ServerConfig    `yaml:"server"`
	Telegram TelegramConfig  `yaml:"telegram"`
	Log      logger.Config   `yaml:"log"`
	Products []ProductConfig `yaml:"products" validate:"min=1,unique=Name,unique=PriceID,dive"`
}

// LoadConfig reads .env, the YAML file at CONFIG_PATH and the process
// environment, in that order of increasing precedence, then validates.
func LoadConfig() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	cfg := Default()

	configPath := os.Getenv("CONFIG_PATH")
	explicit := configPath != ""
	if !explicit {
		configPath = defaultConfigPath
	}
	if err := cfg.readFile(configPath); err != nil {
		// A missing default file is fine for env-only deployments
		if explicit || !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the built-in settings used before any file or env is read.
func Default() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:            "paybot",
			Environment:     "dev",
			PaymentProvider: "stripe",
		},
		Server: ServerConfig{
			HTTP: HTTPConfig{Host: "0.0.0.0", Port: 4242},
		},
		Telegram: TelegramConfig{PollTimeout: 60},
		Log: logger.Config{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

func (c *Config) readFile(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	data, err := os.ReadFile(absPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return nil
}

func (c *Config) normalize() {
	c.Service.ServerURL = strings.TrimRight(strings.TrimSpace(c.Service.ServerURL), "/")
	for i := range c.Products {
		c.Products[i].Name = strings.TrimSpace(c.Products[i].Name)
		c.Products[i].PriceID = strings.TrimSpace(c.Products[i].PriceID)
	}
}

// Validate checks required secrets, addresses and the product table.
func (c *Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, fmt.Sprintf("%s failed on '%s'", fe.Namespace(), fe.Tag()))
			}
			return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid config: %w", err)
	}

	for _, p := range c.Products {
		if len(p.Name) > maxCallbackDataBytes {
			return fmt.Errorf("invalid config: product name %q exceeds %d bytes", p.Name, maxCallbackDataBytes)
		}
	}
	return nil
}

// Catalog builds the immutable product table in configuration order.
func (c *Config) Catalog() (*entity.Catalog, error) {
	products := make([]entity.Product, 0, len(c.Products))
	for _, p := range c.Products {
		products = append(products, entity.Product{Name: p.Name, PriceID: p.PriceID})
	}
	return entity.NewCatalog(products)
}

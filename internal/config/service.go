package config

type ServiceConfig struct {
	Name                string `yaml:"name"`
	Environment         string `yaml:"environment"`
	PaymentProvider     string `yaml:"payment_provider" validate:"omitempty,oneof=stripe"`
	ServerURL           string `yaml:"server_url" validate:"required,url"`
	StripeSecretKey     string `yaml:"stripe_secret_key" validate:"required"`
	StripeWebhookSecret string `yaml:"stripe_webhook_secret" validate:"required"`
}

type TelegramConfig struct {
	Token       string `yaml:"token" validate:"required"`
	PollTimeout int    `yaml:"poll_timeout" validate:"min=0"`
	Debug       bool   `yaml:"debug"`
}

// ProductConfig is one chat button. Telegram limits callback data to 64 bytes,
// and the name is sent as callback data.
type ProductConfig struct {
	Name    string `yaml:"name" validate:"required"`
	PriceID string `yaml:"price_id" validate:"required"`
}

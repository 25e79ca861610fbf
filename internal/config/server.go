package config

import "fmt"

type ServerConfig struct {
	HTTP HTTPConfig `yaml:"http"`
	GRPC GRPCConfig `yaml:"grpc"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"min=1,max=65535"`
}

// GRPCConfig configures the optional gRPC health server; Port 0 disables it.
type GRPCConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port" validate:"min=0,max=65535"`
}

func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c GRPCConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func (c GRPCConfig) Enabled() bool {
	return c.Port > 0
}

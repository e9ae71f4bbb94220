package util

import (
	"log"
	"os"

	"github.com/go-yaml/yaml"
)

// Config is the Pokecamp base configuration
type Config struct {
	Server Server `yaml:"server"`
	Site   Site   `yaml:"site"`
}

type Server struct {
	Addr          string `yaml:"addr"`
	Dsn           string `yaml:"dsn"`
	RedisAddr     string `yaml:"redisAddr"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	UploadDir     string `yaml:"uploadDir"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

type Site struct {
	JwtSecret           string `yaml:"jwtSecret"`
	TokenExpiryHours    int    `yaml:"tokenExpiryHours"`
	DefaultTrainerImage string `yaml:"defaultTrainerImage"`
	DefaultPokemonImage string `yaml:"defaultPokemonImage"`
	AdminUsername       string `yaml:"adminUsername"`
	AdminPassword       string `yaml:"adminPassword"`
	CaptchaSecret       string `yaml:"captchaSecret"`
}

// Load loads pokecamp config from given path
func (c *Config) Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		log.Fatal("failed to open configuration file:", err)
		return err
	}
	defer f.Close()

	err = yaml.NewDecoder(f).Decode(&c)
	if err != nil {
		log.Fatal("failed to load configuration file:", err)
		return err
	}

	if c.Site.TokenExpiryHours == 0 {
		c.Site.TokenExpiryHours = 8
	}
	if c.Server.UploadDir == "" {
		c.Server.UploadDir = "uploads"
	}

	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gameauth/internal/flagx"
	"github.com/dmitrijs2005/gameauth/internal/timex"
)

// JsonConfig is the on-disk shape of the configuration file. Pointer fields
// distinguish "absent" from a zero value so a partial file only overrides
// what it names.
type JsonConfig struct {
	EndpointAddrHTTP   *string         `json:"endpoint_addr_http"`
	EndpointAddrGRPC   *string         `json:"endpoint_addr_grpc"`
	DatabaseDSN        *string         `json:"database_dsn"`
	RedisAddr          *string         `json:"redis_addr"`
	ProfileCacheTTL    *timex.Duration `json:"profile_cache_ttl"`
	PasswordHashScheme *string         `json:"password_hash_scheme"`
	BcryptCost         *int            `json:"bcrypt_cost"`
	AllowOrigin        *string         `json:"allow_origin"`
	LogLevel           *string         `json:"log_level"`
}

// parseJson overlays values from the JSON file named by -c/-config in args.
// Nothing is loaded when neither flag is present.
func parseJson(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	file, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.PasswordHashScheme, c.PasswordHashScheme)
	setString(&config.AllowOrigin, c.AllowOrigin)
	setString(&config.LogLevel, c.LogLevel)
	if c.ProfileCacheTTL != nil {
		config.ProfileCacheTTL = c.ProfileCacheTTL.Duration
	}
	if c.BcryptCost != nil {
		config.BcryptCost = *c.BcryptCost
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

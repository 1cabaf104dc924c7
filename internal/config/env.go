// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
)

// envSecrets holds environment settings that are resolved into other fields
// instead of being kept in [StructuredConfig].
type envSecrets struct {
	// ActorTokenFile names a file holding the actor token, for secrets
	// mounted by an orchestrator. APP_ACTOR_TOKEN wins when both are set.
	ActorTokenFile string `env:"APP_ACTOR_TOKEN_FILE"`
}

// parseEnv populates cfg from environment variables through the `env` and
// `envPrefix` tags of [StructuredConfig] and its nested types.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	var secrets envSecrets
	if err := env.Parse(&secrets); err != nil {
		return fmt.Errorf("error getting env configs: %w", err)
	}

	if cfg.App.ActorToken == "" && secrets.ActorTokenFile != "" {
		token, err := os.ReadFile(secrets.ActorTokenFile)
		if err != nil {
			return fmt.Errorf("error reading actor token file: %w", err)
		}
		cfg.App.ActorToken = strings.TrimSpace(string(token))
	}

	return nil
}

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// parseEnv fills cfg from SERVER_*, STORAGE_*, APP_* and WORKERS_* variables.
// Unset variables leave their fields zero so later sources and defaults can
// fill them in.
func parseEnv(cfg *StructuredConfig) error {
	if err := env.ParseWithOptions(cfg, env.Options{}); err != nil {
		return fmt.Errorf("error reading file keeper env configs: %w", err)
	}

	return nil
}

package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Development defaults. Every one of them can be overridden by env, flags or
// the JSON file.
const (
	DefaultHTTPAddress    = "localhost:5001"
	DefaultDSN            = "file:filevault.db?_foreign_keys=on"
	DefaultUploadDir      = "uploads"
	DefaultTokenSignKey   = "secretkey"
	DefaultTokenIssuer    = "go-file-keeper"
	DefaultTokenDuration  = time.Hour
	DefaultRequestTimeout = 30 * time.Second
	DefaultMaxUploadSize  = 32 << 20
	DefaultSweepGrace     = 10 * time.Minute
	DefaultS3Region       = "us-east-1"
	DefaultAdapterAddress = "http://localhost:5001"
	DefaultTokenFile      = ".filevault-token"
	DefaultVersion        = "dev"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenSignKey:     DefaultTokenSignKey,
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			PasswordHashCost: bcrypt.DefaultCost,
			Version:          DefaultVersion,
		},
		Storage: Storage{
			DB:    DB{DSN: DefaultDSN},
			Files: Files{UploadDir: DefaultUploadDir},
			S3:    S3{Region: DefaultS3Region},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			RequestTimeout: DefaultRequestTimeout,
			MaxUploadSize:  DefaultMaxUploadSize,
		},
		Adapter: Adapter{
			HTTPAddress:    DefaultAdapterAddress,
			RequestTimeout: DefaultRequestTimeout,
			TokenFile:      DefaultTokenFile,
		},
		Workers: Workers{
			SweepGrace: DefaultSweepGrace,
		},
	}
}

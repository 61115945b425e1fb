package store

import (
	"context"
	"errors"
	"os"
)

var ErrUnknownBackend = errors.New("unknown parameter-store backend")

// Backend selects the parameter-store driver.
type Backend string

const (
	BackendAuto   Backend = ""
	BackendSSM    Backend = "ssm"
	BackendMemory Backend = "memory"
)

// Settings configures the store factory.
type Settings struct {
	Backend Backend
	Region  string
	Profile string
}

// New builds a Client for the configured backend. Auto picks SSM when AWS
// credentials look configured, memory otherwise.
func New(ctx context.Context, cfg Settings) (Client, error) {
	switch cfg.Backend {
	case BackendAuto:
		switch {
		case os.Getenv("AWS_PROFILE") != "", os.Getenv("AWS_ACCESS_KEY_ID") != "", os.Getenv("AWS_REGION") != "":
			return NewSSM(ctx, cfg.Region, cfg.Profile)
		default:
			return NewMemory(), nil
		}
	case BackendSSM:
		return NewSSM(ctx, cfg.Region, cfg.Profile)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, ErrUnknownBackend
	}
}

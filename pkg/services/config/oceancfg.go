package config

import (
	"context"
	"fmt"

	"gopkg.in/ini.v1"
)

// Endpoint is one configured Cloud Ocean deployment plus its billing
// defaults. Rate stays textual; billing coerces it.
type Endpoint struct {
	Host     string
	Token    string
	Rate     string
	Currency string
}

type Registry interface {
	GetProfiles(ctx context.Context) ([]string, error)
	GetEndpoint(ctx context.Context, profile string) (*Endpoint, error)
}

type cfgRegistry struct {
	cfg *ini.File
}

// NewRegistry loads an .oceancfg-style ini file with one section per
// deployment profile.
func NewRegistry(path string) (Registry, error) {
	cfg, err := ini.Load(path)
	if err != nil {
		return nil, err
	}
	return &cfgRegistry{cfg: cfg}, nil
}

func (cr *cfgRegistry) GetProfiles(_ context.Context) ([]string, error) {
	var profiles []string
	for _, section := range cr.cfg.Sections() {
		if len(section.Keys()) > 0 {
			profiles = append(profiles, section.Name())
		}
	}
	return profiles, nil
}

func (cr *cfgRegistry) GetEndpoint(_ context.Context, profile string) (*Endpoint, error) {
	section, err := cr.cfg.GetSection(profile)
	if err != nil {
		return nil, fmt.Errorf("profile %s not found", profile)
	}

	endpoint := &Endpoint{
		Host:     section.Key("host").String(),
		Token:    section.Key("token").String(),
		Rate:     section.Key("rate").String(),
		Currency: section.Key("currency").MustString("CAD"),
	}
	if endpoint.Host == "" {
		return nil, fmt.Errorf("profile %s has no host configured", profile)
	}
	return endpoint, nil
}

package repository

import (
	"context"
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"sparta-mortgage/domain"
)

//go:embed listings.yaml
var defaultListingsYAML []byte

type ListingRepository interface {
	All(ctx context.Context) ([]domain.Property, error)
}

// ListingRepositoryYAML serves listings decoded from a YAML document.
type ListingRepositoryYAML struct {
	raw []byte
}

// NewListingRepositoryYAML uses the embedded demo listings when raw is nil.
func NewListingRepositoryYAML(raw []byte) *ListingRepositoryYAML {
	if raw == nil {
		raw = defaultListingsYAML
	}
	return &ListingRepositoryYAML{raw: raw}
}

func (r *ListingRepositoryYAML) All(_ context.Context) ([]domain.Property, error) {
	var doc struct {
		Properties []domain.Property `yaml:"properties"`
	}
	if err := yaml.Unmarshal(r.raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding listings: %w", err)
	}
	return doc.Properties, nil
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"sparta-mortgage/domain"
	"sparta-mortgage/repository"
)

const listingsCacheKey = "listings:v1"

type PropertyService struct {
	listings repository.ListingRepository
	cache    repository.CacheRepository
	logger   *slog.Logger
}

func NewPropertyService(
	listings repository.ListingRepository,
	cache repository.CacheRepository,
	logger *slog.Logger,
) *PropertyService {
	return &PropertyService{listings: listings, cache: cache, logger: logger}
}

// Search filters, sorts and truncates the listing set.
func (s *PropertyService) Search(
	ctx context.Context,
	params domain.PropertySearchParams,
) (domain.PropertySearchResult, error) {
	all, err := s.load(ctx)
	if err != nil {
		return domain.PropertySearchResult{}, err
	}

	properties := sortProperties(filterProperties(all, params), params.SortBy)
	if params.Limit > 0 && len(properties) > params.Limit {
		properties = properties[:params.Limit]
	}

	return domain.PropertySearchResult{
		Success:    true,
		Properties: properties,
		Total:      len(properties),
		Filters:    params,
	}, nil
}

// load reads listings through the cache; cache failures fall back to the
// source.
func (s *PropertyService) load(ctx context.Context) ([]domain.Property, error) {
	if cached, ok := s.cache.Get(ctx, listingsCacheKey); ok {
		var properties []domain.Property
		if err := json.Unmarshal([]byte(cached), &properties); err == nil {
			return properties, nil
		}
		s.logger.Warn("discarding undecodable listings cache entry")
	}

	properties, err := s.listings.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading listings: %w", err)
	}

	if encoded, err := json.Marshal(properties); err == nil {
		if err := s.cache.Set(ctx, listingsCacheKey, string(encoded)); err != nil {
			s.logger.Warn("failed to cache listings", "error", err)
		}
	}
	return properties, nil
}

func filterProperties(properties []domain.Property, params domain.PropertySearchParams) []domain.Property {
	var parts []string
	for _, part := range strings.Split(strings.ToLower(params.Location), ",") {
		if part = strings.TrimSpace(part); part != "" {
			parts = append(parts, part)
		}
	}

	filtered := make([]domain.Property, 0, len(properties))
	for _, p := range properties {
		if len(parts) > 0 && !matchesLocation(p, parts) {
			continue
		}
		if params.MinPrice != nil && p.Price < *params.MinPrice {
			continue
		}
		if params.MaxPrice != nil && p.Price > *params.MaxPrice {
			continue
		}
		if params.Beds != nil && p.Bedrooms < *params.Beds {
			continue
		}
		if params.Baths != nil && p.Bathrooms < *params.Baths {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

func matchesLocation(p domain.Property, parts []string) bool {
	city := strings.ToLower(p.City)
	state := strings.ToLower(p.State)
	fullAddress := strings.ToLower(fmt.Sprintf("%s %s %s %s", p.Address, p.City, p.State, p.ZipCode))
	cityState := city + " " + state

	for _, part := range parts {
		if strings.Contains(fullAddress, part) ||
			strings.Contains(cityState, part) ||
			strings.Contains(city, part) ||
			strings.Contains(state, part) ||
			strings.Contains(p.ZipCode, part) {
			return true
		}
	}
	return false
}

func sortProperties(properties []domain.Property, sortBy string) []domain.Property {
	sorted := make([]domain.Property, len(properties))
	copy(sorted, properties)

	switch sortBy {
	case "price_low":
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price < sorted[j].Price })
	case "price_high":
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Price > sorted[j].Price })
	case "date":
		// ISO dates compare correctly as strings.
		sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].ListingDate > sorted[j].ListingDate })
	}
	// "distance" keeps source order until visitor location is available.
	return sorted
}

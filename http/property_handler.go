package http

import (
	"fmt"
	"log/slog"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"sparta-mortgage/domain"
	"sparta-mortgage/service"
)

type PropertyHandler struct {
	service *service.PropertyService
	logger  *slog.Logger
}

func NewPropertyHandler(service *service.PropertyService, logger *slog.Logger) *PropertyHandler {
	return &PropertyHandler{service: service, logger: logger}
}

func (h *PropertyHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	params, err := parseSearchParams(r.URL.Query())
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid search parameters", err.Error())
		return
	}

	result, err := h.service.Search(r.Context(), params)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "properties API error", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to fetch properties", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, result)
}

func parseSearchParams(q url.Values) (domain.PropertySearchParams, error) {
	params := domain.PropertySearchParams{
		Location: strings.TrimSpace(q.Get("location")),
		SortBy:   q.Get("sortBy"),
	}

	var err error
	if params.MinPrice, err = optionalFloat(q, "minPrice"); err != nil {
		return params, err
	}
	if params.MaxPrice, err = optionalFloat(q, "maxPrice"); err != nil {
		return params, err
	}
	if params.Baths, err = optionalFloat(q, "baths"); err != nil {
		return params, err
	}
	if v := q.Get("beds"); v != "" {
		beds, err := strconv.Atoi(v)
		if err != nil {
			return params, fmt.Errorf("beds: %q is not a whole number", v)
		}
		params.Beds = &beds
	}
	if v := q.Get("limit"); v != "" {
		if params.Limit, err = strconv.Atoi(v); err != nil {
			return params, fmt.Errorf("limit: %q is not a whole number", v)
		}
	}
	return params, nil
}

func optionalFloat(q url.Values, key string) (*float64, error) {
	v := q.Get(key)
	if v == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("%s: %q is not a number", key, v)
	}
	return &f, nil
}

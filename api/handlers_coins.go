package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/status-im/market-assistant/models"
)

const (
	defaultTopLimit    = 10
	maxTopLimit        = 100
	defaultHistoryDays = 30
	maxHistoryDays     = 365
	searchLimit        = 20
	minSearchLength    = 2
)

// handleTopCoins lists stored snapshots, fetching them once when the store is empty
func (s *Server) handleTopCoins(w http.ResponseWriter, r *http.Request) {
	limit, ok := getIntParam(r, "limit", defaultTopLimit, 1, maxTopLimit)
	if !ok {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("Parameter 'limit' must be between 1 and %d", maxTopLimit))
		return
	}

	order := models.OrderByMarketCapRank
	if sortBy := getParamLowercase(r, "sort_by"); sortBy != "" {
		order = models.SnapshotOrder(sortBy)
	}
	if !order.Valid() {
		s.sendError(w, http.StatusBadRequest, "Parameter 'sort_by' must be one of market_cap_rank, market_cap, price_change_percentage_24h, total_volume")
		return
	}

	coins, err := s.repo.ListSnapshots(r.Context(), order, limit)
	if err != nil {
		log.Error().Err(err).Msg("Server: failed to list snapshots")
		s.sendError(w, http.StatusInternalServerError, "Failed to read cryptocurrency data")
		return
	}

	if len(coins) == 0 {
		if err := s.refresher.RefreshTopCoins(r.Context(), limit); err != nil {
			log.Warn().Err(err).Msg("Server: on-demand top coins refresh failed")
			s.sendError(w, http.StatusServiceUnavailable, "Unable to fetch cryptocurrency data")
			return
		}
		if coins, err = s.repo.ListSnapshots(r.Context(), order, limit); err != nil {
			s.sendError(w, http.StatusInternalServerError, "Failed to read cryptocurrency data")
			return
		}
	}

	s.sendJSONResponse(w, coins)
}

// handleCoin returns the stored snapshot of one coin
func (s *Server) handleCoin(w http.ResponseWriter, r *http.Request) {
	coinID := mux.Vars(r)["id"]

	snapshot, err := s.repo.GetSnapshot(r.Context(), coinID)
	if err != nil {
		log.Error().Err(err).Str("coin", coinID).Msg("Server: failed to read snapshot")
		s.sendError(w, http.StatusInternalServerError, "Failed to read cryptocurrency data")
		return
	}
	if snapshot == nil {
		s.sendError(w, http.StatusNotFound, fmt.Sprintf("Cryptocurrency with ID %s not found", coinID))
		return
	}

	s.sendJSONResponse(w, snapshot)
}

// handleHistory returns daily price points, fetching them once when none are stored
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	coinID := mux.Vars(r)["id"]

	days, ok := getIntParam(r, "days", defaultHistoryDays, 1, maxHistoryDays)
	if !ok {
		s.sendError(w, http.StatusBadRequest, fmt.Sprintf("Parameter 'days' must be between 1 and %d", maxHistoryDays))
		return
	}

	since := models.DateOf(time.Now()).AddDate(0, 0, -days)
	points, err := s.repo.ListPricePoints(r.Context(), coinID, since)
	if err != nil {
		log.Error().Err(err).Str("coin", coinID).Msg("Server: failed to read price points")
		s.sendError(w, http.StatusInternalServerError, "Failed to read historical data")
		return
	}

	if len(points) == 0 {
		if err := s.refresher.RefreshHistorical(r.Context(), coinID, days); err != nil {
			log.Warn().Err(err).Str("coin", coinID).Msg("Server: on-demand history refresh failed")
			s.sendError(w, http.StatusServiceUnavailable, fmt.Sprintf("Unable to fetch historical data for %s", coinID))
			return
		}
		if points, err = s.repo.ListPricePoints(r.Context(), coinID, since); err != nil {
			s.sendError(w, http.StatusInternalServerError, "Failed to read historical data")
			return
		}
	}

	s.sendJSONResponse(w, points)
}

// handleSearch matches coins by id, symbol or name
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := getParamLowercase(r, "q")
	if len(query) < minSearchLength {
		s.sendError(w, http.StatusBadRequest, `Query parameter "q" is required and must be at least 2 characters`)
		return
	}

	coins, err := s.repo.SearchSnapshots(r.Context(), query, searchLimit)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Server: search failed")
		s.sendError(w, http.StatusInternalServerError, "Failed to search cryptocurrency data")
		return
	}

	s.sendJSONResponse(w, coins)
}

// handleGlobal returns the latest global stats sample, fetching one when none is stored
func (s *Server) handleGlobal(w http.ResponseWriter, r *http.Request) {
	stats, err := s.repo.LatestGlobalStats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("Server: failed to read global stats")
		s.sendError(w, http.StatusInternalServerError, "Failed to read global market data")
		return
	}

	if stats == nil {
		if err := s.refresher.RefreshGlobal(r.Context()); err != nil {
			log.Warn().Err(err).Msg("Server: on-demand global refresh failed")
			s.sendError(w, http.StatusServiceUnavailable, "Unable to fetch global market data")
			return
		}
		if stats, err = s.repo.LatestGlobalStats(r.Context()); err != nil || stats == nil {
			s.sendError(w, http.StatusServiceUnavailable, "Unable to fetch global market data")
			return
		}
	}

	s.sendJSONResponse(w, stats)
}

package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sales-dashboard/internal/analytics"
	"github.com/sells-group/sales-dashboard/internal/leaderboard"
	"github.com/sells-group/sales-dashboard/internal/model"
	"github.com/sells-group/sales-dashboard/internal/normalize"
	"github.com/sells-group/sales-dashboard/internal/risk"
	"github.com/sells-group/sales-dashboard/internal/snapshot"
	"github.com/sells-group/sales-dashboard/internal/store"
	"github.com/sells-group/sales-dashboard/internal/trend"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListOpportunities(w http.ResponseWriter, r *http.Request) {
	filter := store.ListFilter{
		Stage:   model.Stage(r.URL.Query().Get("stage")),
		OwnerID: r.URL.Query().Get("owner_id"),
	}
	deals, err := s.store.ListOpportunities(r.Context(), filter)
	if err != nil {
		// A failed list degrades to an empty collection so the dashboard
		// always renders zeroed aggregates.
		zap.L().Error("api: list opportunities failed", zap.Error(err))
		deals = nil
	}
	wires := make([]normalize.DealWire, 0, len(deals))
	for _, d := range deals {
		wires = append(wires, normalize.DealToWire(d))
	}
	writeJSON(w, http.StatusOK, wires)
}

func (s *Server) handleCreateOpportunity(w http.ResponseWriter, r *http.Request) {
	var wire normalize.DealWire
	if err := json.NewDecoder(r.Body).Decode(&wire); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	deal, err := normalize.Deal(wire, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	created, err := s.store.CreateOpportunity(r.Context(), deal)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, normalize.DealToWire(*created))
}

func (s *Server) handleGetOpportunity(w http.ResponseWriter, r *http.Request) {
	deal, err := s.store.GetOpportunity(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, normalize.DealToWire(*deal))
}

func (s *Server) handleUpdateOpportunity(w http.ResponseWriter, r *http.Request) {
	var patch store.DealPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	updated, err := s.store.UpdateOpportunity(r.Context(), chi.URLParam(r, "id"), patch)
	if err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, normalize.DealToWire(*updated))
}

func (s *Server) handleDeleteOpportunity(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteOpportunity(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(r)
	writeJSON(w, http.StatusOK, snap.Metrics(s.dashOpts))
}

func (s *Server) handleTrends(w http.ResponseWriter, r *http.Request) {
	mode := trend.FilterMode(r.URL.Query().Get("filter"))
	if mode == "" {
		mode = trend.FilterMonth
	}
	snap := s.loadSnapshot(r)
	now := s.now()

	current := trend.Sample{Deals: snap.Deals, Activities: snap.Activities}
	var previous trend.Sample
	if cur, ok := trend.CurrentPeriod(mode, now); ok {
		prev, _ := trend.PreviousPeriod(mode, now)
		current = filterSample(snap, cur)
		previous = filterSample(snap, prev)
	} else {
		previous = trend.SyntheticBaseline(current)
	}

	writeJSON(w, http.StatusOK, trend.Compare(current, previous,
		model.ClosedWonStages(), model.ClosedLostStages()))
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(r)
	writeJSON(w, http.StatusOK, map[string]any{
		"gamified": leaderboard.Gamified(snap.Users, snap.Deals, model.ClosedWonStages(), snap.Streaks, 10),
		"revenue":  leaderboard.ByQuoteRevenue(snap.Quotes, 5),
	})
}

func (s *Server) handleContracts(w http.ResponseWriter, r *http.Request) {
	snap := s.loadSnapshot(r)
	horizon := s.riskCfg.CriticalHorizonDays
	if horizon <= 0 {
		horizon = analytics.DefaultRenewalHorizonDays
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"distribution": risk.Distribution(snap.Contracts),
		"critical":     risk.CriticalAttention(snap.Contracts, horizon),
		"window":       analytics.RenewalRisk(snap.Contracts, horizon),
		"monthly":      analytics.MonthlyRenewals(snap.Contracts, s.now(), 12),
	})
}

func (s *Server) handleAnalyzeContract(w http.ResponseWriter, r *http.Request) {
	if !s.limiter.Allow() {
		writeError(w, http.StatusTooManyRequests, "analysis rate limit exceeded")
		return
	}
	snap := s.loadSnapshot(r)
	contract, ok := snap.FindContract(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "contract not found")
		return
	}
	analysis, err := s.analyzer.Analyze(r.Context(), contract)
	if err != nil {
		// No-analysis state, not an error banner; the client offers a retry.
		zap.L().Warn("api: contract analysis failed", zap.Error(err))
		writeJSON(w, http.StatusOK, map[string]any{"analysis": nil})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"analysis": analysis})
}

func (s *Server) writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case eris.Is(err, store.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case eris.Is(err, normalize.ErrMalformedRecord):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		zap.L().Error("api: store operation failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func filterSample(snap *snapshot.Snapshot, p trend.Period) trend.Sample {
	var s trend.Sample
	for _, d := range snap.Deals {
		if p.Contains(d.CreatedAt) {
			s.Deals = append(s.Deals, d)
		}
	}
	for _, a := range snap.Activities {
		if p.Contains(a.Timestamp) {
			s.Activities = append(s.Activities, a)
		}
	}
	return s
}

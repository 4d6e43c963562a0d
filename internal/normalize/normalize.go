// Package normalize converts wire-format records (snake_case JSON from the API
// boundary or the seed generator) into canonical model values. Missing optional
// fields get defined defaults; missing required identity or numeric fields
// reject the record with ErrMalformedRecord.
package normalize

import (
	"strconv"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// ErrMalformedRecord marks a record whose required fields are absent or
// wrong-typed. Callers check it with eris.Is.
var ErrMalformedRecord = eris.New("normalize: malformed record")

// DealWire is an opportunity as it appears on the wire.
type DealWire struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	CustomerName  string `json:"customer_name"`
	Product       string `json:"product"`
	Value         any    `json:"value"`
	Stage         string `json:"stage"`
	PreviousStage string `json:"previous_stage,omitempty"`
	Probability   any    `json:"probability"`
	OwnerID       string `json:"owner_id"`
	Source        string `json:"source"`
	Topic         string `json:"topic"`
	Notes         string `json:"notes,omitempty"`
	CreatedAt     string `json:"created_at"`
	ExpectedClose string `json:"expected_close_date,omitempty"`
	LastActivity  string `json:"last_activity_date,omitempty"`
	Velocity      any    `json:"velocity,omitempty"`
	HealthScore   any    `json:"health_score,omitempty"`
}

// QuoteWire is a quote as it appears on the wire.
type QuoteWire struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Customer      string `json:"customer"`
	Product       string `json:"product"`
	Amount        any    `json:"amount"`
	Status        string `json:"status"`
	Discount      any    `json:"discount"`
	HasCompetitor bool   `json:"has_competitor"`
	CreatedAt     string `json:"created_at"`
	LastActivity  string `json:"last_activity_date,omitempty"`
	SalesRepID    string `json:"sales_rep_id"`
	SalesRepName  string `json:"sales_rep_name"`
}

// numeric coerces a decoded JSON value into a float64. Strings are accepted
// when they parse as numbers, matching the tolerant intake the dashboard's
// form submissions need.
func numeric(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}

// parseDate accepts RFC 3339 timestamps and bare dates.
func parseDate(s string) (time.Time, bool) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, true
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true
	}
	return time.Time{}, false
}

// Deal normalizes a wire deal. now anchors defaults and aging.
func Deal(w DealWire, now time.Time) (model.Deal, error) {
	if w.ID == "" {
		return model.Deal{}, eris.Wrap(ErrMalformedRecord, "deal: missing id")
	}
	value, ok := numeric(w.Value)
	if !ok {
		return model.Deal{}, eris.Wrapf(ErrMalformedRecord, "deal %s: value is not numeric", w.ID)
	}

	createdAt := now
	if w.CreatedAt != "" {
		t, ok := parseDate(w.CreatedAt)
		if !ok {
			return model.Deal{}, eris.Wrapf(ErrMalformedRecord, "deal %s: bad created_at %q", w.ID, w.CreatedAt)
		}
		createdAt = t
	}

	lastActivity := now
	if w.LastActivity != "" {
		if t, ok := parseDate(w.LastActivity); ok {
			lastActivity = t
		}
	}

	var expectedClose time.Time
	if w.ExpectedClose != "" {
		if t, ok := parseDate(w.ExpectedClose); ok {
			expectedClose = t
		}
	}

	stage := model.Stage(w.Stage)
	probability := 0
	if p, ok := numeric(w.Probability); ok {
		probability = int(p)
	}
	// Terminal stages pin probability regardless of what the wire carried.
	switch {
	case model.ClosedWonStages().Contains(stage):
		probability = 100
	case model.ClosedLostStages().Contains(stage):
		probability = 0
	}

	aging := int(now.Sub(createdAt).Hours() / 24)
	if aging < 0 {
		aging = 0
	}

	velocity := 0
	if v, ok := numeric(w.Velocity); ok {
		velocity = int(v)
	}
	health := 0
	if h, ok := numeric(w.HealthScore); ok {
		health = int(h)
	}

	return model.Deal{
		ID:            w.ID,
		Title:         w.Title,
		CustomerName:  w.CustomerName,
		Product:       w.Product,
		Value:         value,
		Stage:         stage,
		PreviousStage: model.Stage(w.PreviousStage),
		Probability:   probability,
		OwnerID:       w.OwnerID,
		Source:        model.DealSource(w.Source),
		Topic:         w.Topic,
		Notes:         w.Notes,
		CreatedAt:     createdAt,
		ExpectedClose: expectedClose,
		LastActivity:  lastActivity,
		AgingDays:     aging,
		Velocity:      velocity,
		HealthScore:   health,
	}, nil
}

// Quote normalizes a wire quote.
func Quote(w QuoteWire, now time.Time) (model.Quote, error) {
	if w.ID == "" {
		return model.Quote{}, eris.Wrap(ErrMalformedRecord, "quote: missing id")
	}
	amount, ok := numeric(w.Amount)
	if !ok {
		return model.Quote{}, eris.Wrapf(ErrMalformedRecord, "quote %s: amount is not numeric", w.ID)
	}

	createdAt := now
	if w.CreatedAt != "" {
		t, ok := parseDate(w.CreatedAt)
		if !ok {
			return model.Quote{}, eris.Wrapf(ErrMalformedRecord, "quote %s: bad created_at %q", w.ID, w.CreatedAt)
		}
		createdAt = t
	}

	// A quote with no recorded activity keeps a nil timestamp; the risk
	// classifier scores that case differently from a stale one.
	var lastActivity *time.Time
	if w.LastActivity != "" {
		if t, ok := parseDate(w.LastActivity); ok {
			lastActivity = &t
		}
	}

	discount, _ := numeric(w.Discount)

	return model.Quote{
		ID:              w.ID,
		Title:           w.Title,
		Customer:        w.Customer,
		Product:         w.Product,
		Amount:          amount,
		Status:          model.QuoteStatus(w.Status),
		DiscountPercent: discount,
		HasCompetitor:   w.HasCompetitor,
		CreatedAt:       createdAt,
		LastActivity:    lastActivity,
		SalesRepID:      w.SalesRepID,
		SalesRepName:    w.SalesRepName,
	}, nil
}

// Deals normalizes a batch, dropping malformed records so aggregation proceeds
// over the valid remainder.
func Deals(wires []DealWire, now time.Time) []model.Deal {
	out := make([]model.Deal, 0, len(wires))
	for _, w := range wires {
		d, err := Deal(w, now)
		if err != nil {
			zap.L().Warn("normalize: dropping malformed deal",
				zap.String("id", w.ID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, d)
	}
	return out
}

// Quotes normalizes a batch, dropping malformed records.
func Quotes(wires []QuoteWire, now time.Time) []model.Quote {
	out := make([]model.Quote, 0, len(wires))
	for _, w := range wires {
		q, err := Quote(w, now)
		if err != nil {
			zap.L().Warn("normalize: dropping malformed quote",
				zap.String("id", w.ID),
				zap.Error(err),
			)
			continue
		}
		out = append(out, q)
	}
	return out
}

// DealToWire maps a canonical deal back to its wire shape for API responses.
func DealToWire(d model.Deal) DealWire {
	w := DealWire{
		ID:            d.ID,
		Title:         d.Title,
		CustomerName:  d.CustomerName,
		Product:       d.Product,
		Value:         d.Value,
		Stage:         string(d.Stage),
		PreviousStage: string(d.PreviousStage),
		Probability:   d.Probability,
		OwnerID:       d.OwnerID,
		Source:        string(d.Source),
		Topic:         d.Topic,
		Notes:         d.Notes,
		CreatedAt:     d.CreatedAt.Format(time.RFC3339),
		Velocity:      d.Velocity,
		HealthScore:   d.HealthScore,
	}
	if !d.ExpectedClose.IsZero() {
		w.ExpectedClose = d.ExpectedClose.Format(time.RFC3339)
	}
	if !d.LastActivity.IsZero() {
		w.LastActivity = d.LastActivity.Format(time.RFC3339)
	}
	return w
}

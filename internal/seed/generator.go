package seed

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/sells-group/sales-dashboard/internal/model"
)

// Dataset holds one generated set of collections.
type Dataset struct {
	Users      []model.User
	Deals      []model.Deal
	Activities []model.Activity
	Quotes     []model.Quote
	Orders     []model.Order
	Contracts  []model.Contract
	Streaks    map[string]int
}

// Generator produces deterministic synthetic data: the same profile and
// anchor time always yield the same dataset.
type Generator struct {
	rng *rand.Rand
	p   Profile
	now time.Time
}

// New creates a Generator anchored at now.
func New(p Profile, now time.Time) *Generator {
	return &Generator{rng: rand.New(rand.NewSource(p.Seed)), p: p, now: now}
}

var (
	repNames = []string{
		"Elif Demir", "Mehmet Yılmaz", "Ayşe Kaya", "Can Öztürk",
		"Zeynep Arslan", "Emre Şahin", "Selin Koç", "Burak Çelik",
		"Deniz Aydın", "Merve Polat",
	}
	customers = []string{
		"Aksa Holding", "Borusan Lojistik", "Vestel", "Arçelik",
		"Türk Telekom", "Anadolu Sigorta", "Koç Sistem", "Eti Gıda",
		"Şişecam", "Tofaş",
	}
	products = []string{
		"CRM Suite", "Analytics Add-on", "Field Sales Mobile",
		"Support Desk", "Integration Hub",
	}
	productGroups = []string{"Software", "Services", "Support"}
	openStages    = []model.Stage{
		model.StageLead, model.StageContact, model.StageProposal, model.StageNegotiation,
	}
	sources = []model.DealSource{
		model.SourceReferral, model.SourceWebsite, model.SourceColdCall,
		model.SourceEvent, model.SourcePartner,
	}
	activityTypes = []model.ActivityType{
		model.ActivityCall, model.ActivityMeeting, model.ActivityEmail, model.ActivityDemo,
	}
	currencies = []string{"TRY", "TRY", "TRY", "USD", "EUR"}
)

func (g *Generator) pick(n int) int { return g.rng.Intn(n) }

// Users generates the sales team: reps plus one manager and one executive.
func (g *Generator) Users() []model.User {
	users := make([]model.User, 0, g.p.Reps+2)
	for i := 0; i < g.p.Reps; i++ {
		users = append(users, model.User{
			ID:   fmt.Sprintf("user-%03d", i+1),
			Name: repNames[i%len(repNames)],
			Role: model.RoleSalesRep,
		})
	}
	users = append(users,
		model.User{ID: "user-mgr", Name: "Leyla Güneş", Role: model.RoleManager},
		model.User{ID: "user-exec", Name: "Kerem Ak", Role: model.RoleExecutive},
	)
	return users
}

// Deals generates the opportunity book. Roughly 20% won, 15% lost, remainder
// spread over the open stages; closed deals record the stage they left.
func (g *Generator) Deals(users []model.User) []model.Deal {
	reps := salesReps(users)
	deals := make([]model.Deal, 0, g.p.Deals)
	for i := 0; i < g.p.Deals; i++ {
		created := g.now.AddDate(0, 0, -g.pick(180))
		aging := int(g.now.Sub(created).Hours() / 24)

		stage := openStages[g.pick(len(openStages))]
		var prev model.Stage
		probability := 10 + g.pick(80)
		switch roll := g.pick(100); {
		case roll < 20:
			prev, stage = stage, model.StageWonTR
			probability = 100
		case roll < 35:
			prev, stage = stage, model.StageLostTR
			probability = 0
		}

		deals = append(deals, model.Deal{
			ID:            fmt.Sprintf("deal-%04d", i+1),
			Title:         fmt.Sprintf("%s - %s", customers[g.pick(len(customers))], products[g.pick(len(products))]),
			CustomerName:  customers[g.pick(len(customers))],
			Product:       products[g.pick(len(products))],
			Value:         g.p.MinDealValue + g.rng.Float64()*(g.p.MaxDealValue-g.p.MinDealValue),
			Stage:         stage,
			PreviousStage: prev,
			Probability:   probability,
			OwnerID:       reps[g.pick(len(reps))],
			Source:        sources[g.pick(len(sources))],
			Topic:         products[g.pick(len(products))],
			CreatedAt:     created,
			ExpectedClose: created.AddDate(0, 0, 30+g.pick(90)),
			LastActivity:  g.now.AddDate(0, 0, -g.pick(30)),
			AgingDays:     aging,
			Velocity:      1 + g.pick(10),
			HealthScore:   20 + g.pick(80),
		})
	}
	return deals
}

// Activities generates touches against the deals.
func (g *Generator) Activities(deals []model.Deal) []model.Activity {
	acts := make([]model.Activity, 0, len(deals)*g.p.ActivitiesPerDeal)
	outcomes := []model.ActivityOutcome{model.OutcomePositive, model.OutcomeNeutral, model.OutcomeNegative}
	statuses := []model.ActivityStatus{"", model.StatusPending, model.StatusCompleted, model.StatusOverdue}
	for _, d := range deals {
		for j := 0; j < g.p.ActivitiesPerDeal; j++ {
			acts = append(acts, model.Activity{
				ID:        fmt.Sprintf("act-%s-%d", d.ID, j+1),
				DealID:    d.ID,
				UserID:    d.OwnerID,
				Type:      activityTypes[g.pick(len(activityTypes))],
				Timestamp: g.now.AddDate(0, 0, -g.pick(45)),
				Outcome:   outcomes[g.pick(len(outcomes))],
				Status:    statuses[g.pick(len(statuses))],
			})
		}
	}
	return acts
}

// Quotes generates the quote book, including a share with no activity ever
// logged so the missing-timestamp risk branch has data to hit.
func (g *Generator) Quotes(users []model.User) []model.Quote {
	reps := salesReps(users)
	names := repNameIndex(users)
	statuses := []model.QuoteStatus{
		model.QuoteDraft, model.QuoteReview, model.QuoteSent,
		model.QuoteAccepted, model.QuoteApprovedTR, model.QuoteRejected,
	}
	quotes := make([]model.Quote, 0, g.p.Quotes)
	for i := 0; i < g.p.Quotes; i++ {
		rep := reps[g.pick(len(reps))]
		q := model.Quote{
			ID:              fmt.Sprintf("quote-%04d", i+1),
			Title:           fmt.Sprintf("Quote %d", i+1),
			Customer:        customers[g.pick(len(customers))],
			Product:         products[g.pick(len(products))],
			Amount:          10_000 + g.rng.Float64()*490_000,
			Status:          statuses[g.pick(len(statuses))],
			DiscountPercent: float64(g.pick(35)),
			HasCompetitor:   g.pick(100) < 30,
			CreatedAt:       g.now.AddDate(0, 0, -g.pick(60)),
			SalesRepID:      rep,
			SalesRepName:    names[rep],
		}
		if g.pick(100) < 80 {
			t := g.now.AddDate(0, 0, -g.pick(25))
			q.LastActivity = &t
		}
		quotes = append(quotes, q)
	}
	return quotes
}

// Orders generates confirmed orders.
func (g *Generator) Orders(users []model.User) []model.Order {
	reps := salesReps(users)
	statuses := []model.OrderStatus{model.OrderOpen, model.OrderClosed, model.OrderCanceled}
	orders := make([]model.Order, 0, g.p.Orders)
	for i := 0; i < g.p.Orders; i++ {
		created := g.now.AddDate(0, 0, -g.pick(90))
		orders = append(orders, model.Order{
			ID:           fmt.Sprintf("order-%04d", i+1),
			Title:        fmt.Sprintf("Order %d", i+1),
			Customer:     customers[g.pick(len(customers))],
			Product:      products[g.pick(len(products))],
			Amount:       15_000 + g.rng.Float64()*300_000,
			Status:       statuses[g.pick(len(statuses))],
			CreatedAt:    created,
			DeliveryDate: created.AddDate(0, 0, 14+g.pick(45)),
			SalesRepID:   reps[g.pick(len(reps))],
		})
	}
	return orders
}

// Contracts generates the contract book with payment plans and renewal
// history. Risk levels are pre-assigned here, standing in for the external
// source the distribution view reads them from.
func (g *Generator) Contracts(users []model.User) []model.Contract {
	reps := salesReps(users)
	levels := []model.RiskLevel{model.RiskLow, model.RiskLow, model.RiskMedium, model.RiskHigh}
	trends := []model.PaymentTrend{model.TrendImproving, model.TrendStable, model.TrendDeclining}
	statuses := []model.ContractStatus{
		model.ContractActive, model.ContractActive, model.ContractActive,
		model.ContractNegotiation, model.ContractDraft, model.ContractArchived,
	}
	contracts := make([]model.Contract, 0, g.p.Contracts)
	for i := 0; i < g.p.Contracts; i++ {
		start := g.now.AddDate(0, -g.pick(18), 0)
		renewal := start.AddDate(1, 0, 0)
		currency := currencies[g.pick(len(currencies))]
		value := 100_000 + g.rng.Float64()*2_000_000

		installments := make([]model.PaymentInstallment, 0, 4)
		for j := 0; j < 4; j++ {
			status := model.InstallmentCollected
			switch roll := g.pick(100); {
			case roll < 10:
				status = model.InstallmentOverdue
			case roll < 35:
				status = model.InstallmentPending
			}
			installments = append(installments, model.PaymentInstallment{
				ID:            fmt.Sprintf("inst-%04d-%d", i+1, j+1),
				Date:          start.AddDate(0, 3*j, 0),
				Amount:        value / 4,
				Currency:      currency,
				Status:        status,
				InvoiceNumber: fmt.Sprintf("INV-%04d-%d", i+1, j+1),
			})
		}

		contracts = append(contracts, model.Contract{
			ID:              fmt.Sprintf("contract-%04d", i+1),
			Customer:        customers[g.pick(len(customers))],
			ProductGroup:    productGroups[g.pick(len(productGroups))],
			Status:          statuses[g.pick(len(statuses))],
			TotalValue:      value,
			NormalizedValue: value,
			Currency:        currency,
			StartDate:       start,
			RenewalDate:     renewal,
			DaysToRenewal:   int(renewal.Sub(g.now).Hours() / 24),
			AutoRenew:       g.pick(100) < 40,
			OwnerID:         reps[g.pick(len(reps))],
			RiskLevel:       levels[g.pick(len(levels))],
			Installments:    installments,
			RenewalHistory: []model.RenewalEvent{
				{Date: start, PriceChangePercent: float64(g.pick(20)) - 5},
			},
			Discipline: model.PaymentDiscipline{
				AverageDelayDays: float64(g.pick(12)),
				ConsistencyScore: 50 + g.pick(50),
				Trend:            trends[g.pick(len(trends))],
			},
		})
	}
	return contracts
}

// Generate produces the full dataset in a fixed order so a given profile is
// fully reproducible.
func (g *Generator) Generate() Dataset {
	users := g.Users()
	deals := g.Deals(users)
	ds := Dataset{
		Users:      users,
		Deals:      deals,
		Activities: g.Activities(deals),
		Quotes:     g.Quotes(users),
		Orders:     g.Orders(users),
		Contracts:  g.Contracts(users),
		Streaks:    make(map[string]int),
	}
	for _, u := range users {
		if u.Role == model.RoleSalesRep {
			ds.Streaks[u.ID] = g.pick(10)
		}
	}
	return ds
}

func salesReps(users []model.User) []string {
	var ids []string
	for _, u := range users {
		if u.Role == model.RoleSalesRep {
			ids = append(ids, u.ID)
		}
	}
	return ids
}

func repNameIndex(users []model.User) map[string]string {
	names := make(map[string]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Name
	}
	return names
}

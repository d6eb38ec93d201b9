package provider

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"PropSight/internal/domain/models"
	drepo "PropSight/internal/domain/repository"
)

// mockDef is a catalog row the mock feed derives listings from.
type mockDef struct {
	address      string
	city         string
	zip          string
	listingType  models.ListingType
	price        float64
	sqft         float64
	yearBuilt    int
	appraisal    float64
	rentEst      float64
	compAvgPpsf  float64
	walkScore    int
	transitScore int
	dom          int
	compsCount   int
}

// Catalog of DFW commercial listings spanning the full flag range, from
// heavily underpriced gems to fairly priced stock.
var mockCatalog = []mockDef{
	{"1200 Main St", "Dallas", "75202", models.TypeOffice, 4200000, 28000, 1985, 5100000, 32000, 185, 92, 68, 45, 6},
	{"2800 Commerce St", "Dallas", "75201", models.TypeMixedUse, 3100000, 18500, 1972, 3800000, 24000, 210, 88, 72, 30, 5},
	{"500 S Ervay St", "Dallas", "75201", models.TypeRetail, 1850000, 9200, 1968, 2400000, 16000, 240, 95, 74, 12, 7},
	{"3000 Elm St", "Dallas", "75204", models.TypeMultiFamily, 6200000, 42000, 1998, 7100000, 52000, 165, 78, 62, 88, 6},
	{"800 S Good Latimer Expy", "Dallas", "75226", models.TypeIndustrial, 2100000, 25000, 1965, 2600000, 15000, 105, 45, 30, 105, 3},
	{"6101 W Plano Pkwy", "Plano", "75093", models.TypeOffice, 3800000, 22000, 2001, 4200000, 28000, 195, 62, 25, 34, 5},
	{"700 E 15th St", "Plano", "75074", models.TypeMultiFamily, 7500000, 55000, 2010, 8200000, 58000, 148, 50, 28, 42, 7},
	{"500 Throckmorton St", "Fort Worth", "76102", models.TypeOffice, 3500000, 24000, 1980, 4100000, 26000, 175, 88, 55, 38, 6},
	{"2600 W 7th St", "Fort Worth", "76107", models.TypeMixedUse, 4200000, 22000, 2003, 4800000, 31000, 220, 82, 42, 25, 5},
	{"100 NE Loop 820", "Fort Worth", "76131", models.TypeIndustrial, 4800000, 60000, 2000, 5200000, 30000, 88, 18, 8, 65, 4},
	{"1000 N Collins St", "Arlington", "76011", models.TypeOffice, 2600000, 18000, 1998, 3000000, 19000, 160, 48, 12, 40, 4},
	{"3200 S Cooper St", "Arlington", "76015", models.TypeMultiFamily, 8900000, 65000, 2014, 9500000, 68000, 145, 42, 10, 55, 6},
	// underpriced gems
	{"901 W Vickery Blvd", "Fort Worth", "76104", models.TypeMixedUse, 750000, 12000, 1960, 2100000, 12000, 160, 70, 40, 120, 5},
	{"2200 Irving Blvd", "Dallas", "75207", models.TypeIndustrial, 800000, 22000, 1955, 2800000, 14000, 115, 35, 22, 145, 5},
	{"600 E Weatherford St", "Fort Worth", "76102", models.TypeOffice, 1200000, 15000, 1970, 3000000, 18000, 185, 85, 52, 95, 6},
	{"1900 S Lamar St", "Dallas", "75215", models.TypeMultiFamily, 2200000, 25000, 1975, 3800000, 28000, 155, 55, 30, 65, 5},
	// fairly priced / stale
	{"7800 Marvin D Love Fwy", "Dallas", "75237", models.TypeRetail, 950000, 6500, 1985, 980000, 5500, 155, 35, 15, 160, 2},
	{"1500 8th Ave", "Fort Worth", "76104", models.TypeLand, 800000, 0, 0, 850000, 0, 0, 60, 35, 200, 1},
	{"200 W Abram St", "Arlington", "76010", models.TypeOther, 1100000, 7000, 1965, 1050000, 5000, 160, 55, 12, 250, 2},
	{"9000 Harry Hines Blvd", "Dallas", "75235", models.TypeIndustrial, 5500000, 50000, 1978, 5300000, 25000, 108, 25, 10, 180, 3},
}

var compStreets = []string{"Oak St", "Elm Ave", "Main Blvd", "Commerce Dr", "Industrial Way", "Park Ln", "Market St", "Cedar Rd"}

// MockFeed implements ListingFeed with a deterministic generated catalog.
// An initial pass emits every catalog listing for the configured markets;
// after that, each tick re-emits one listing with a small price drift so the
// pipeline keeps producing fresh snapshots.
type MockFeed struct {
	markets  []string
	interval time.Duration
	rng      *rand.Rand

	mu        sync.Mutex
	connected bool
	cancel    context.CancelFunc
}

// NewMockFeed creates a mock listing feed. A fixed seed makes runs
// reproducible.
func NewMockFeed(markets []string, interval time.Duration, seed int64) drepo.ListingFeed {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	if seed == 0 {
		seed = 42
	}
	return &MockFeed{
		markets:  markets,
		interval: interval,
		rng:      rand.New(rand.NewSource(seed)),
	}
}

func (f *MockFeed) Connect(ctx context.Context) error {
	f.mu.Lock()
	f.connected = true
	f.mu.Unlock()
	return nil
}

func (f *MockFeed) Subscribe(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.connected {
		return fmt.Errorf("mock feed not connected")
	}
	return nil
}

func (f *MockFeed) Read(ctx context.Context) (<-chan *models.Listing, <-chan error) {
	listings := make(chan *models.Listing, 256)
	errs := make(chan error, 1)

	ctx, cancel := context.WithCancel(ctx)
	f.mu.Lock()
	f.cancel = cancel
	f.mu.Unlock()

	catalog := f.filteredCatalog()

	go func() {
		defer close(listings)
		defer close(errs)

		// initial full catalog pass
		for i := range catalog {
			select {
			case <-ctx.Done():
				return
			case listings <- f.buildListing(&catalog[i], i, 0):
			}
		}

		ticker := time.NewTicker(f.interval)
		defer ticker.Stop()
		tick := 0
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if len(catalog) == 0 {
					continue
				}
				tick++
				i := f.rng.Intn(len(catalog))
				drift := (f.rng.Float64() - 0.5) * 0.02 // +-1% price drift
				select {
				case listings <- f.buildListing(&catalog[i], i, drift):
				default:
					// drop on backpressure
				}
			}
		}
	}()

	return listings, errs
}

func (f *MockFeed) Reconnect(ctx context.Context) error {
	_ = f.Close()
	return f.Connect(ctx)
}

func (f *MockFeed) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.connected = false
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
	return nil
}

func (f *MockFeed) IsConnected() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.connected
}

func (f *MockFeed) filteredCatalog() []mockDef {
	if len(f.markets) == 0 {
		return mockCatalog
	}
	allowed := make(map[string]bool, len(f.markets))
	for _, m := range f.markets {
		allowed[m] = true
	}
	out := make([]mockDef, 0, len(mockCatalog))
	for _, d := range mockCatalog {
		if allowed[d.city] {
			out = append(out, d)
		}
	}
	return out
}

func (f *MockFeed) buildListing(def *mockDef, idx int, priceDrift float64) *models.Listing {
	price := math.Round(def.price * (1 + priceDrift))
	var ppsf float64
	if def.sqft > 0 {
		ppsf = math.Round(price/def.sqft*100) / 100
	}
	l := &models.Listing{
		ID:                fmt.Sprintf("MOCK-%04d", idx+1),
		Address:           def.address,
		City:              def.city,
		ZipCode:           def.zip,
		ListingType:       def.listingType,
		ListingPrice:      price,
		Sqft:              def.sqft,
		YearBuilt:         def.yearBuilt,
		PricePerSqft:      ppsf,
		AppraisalEstimate: def.appraisal,
		RentEstimate:      def.rentEst,
		CompAvgPpsf:       def.compAvgPpsf,
		WalkScore:         def.walkScore,
		TransitScore:      def.transitScore,
		DaysOnMarket:      def.dom,
	}
	l.Comps = f.generateComps(def)
	return l
}

func (f *MockFeed) generateComps(def *mockDef) []models.Comp {
	if def.compsCount <= 0 || def.compAvgPpsf <= 0 {
		return nil
	}
	comps := make([]models.Comp, 0, def.compsCount)
	for i := 0; i < def.compsCount; i++ {
		variation := 0.85 + f.rng.Float64()*0.30
		ppsf := math.Round(def.compAvgPpsf*variation*100) / 100
		var sqft, soldPrice float64
		if def.sqft > 0 {
			sqft = math.Round(def.sqft * (0.7 + f.rng.Float64()*0.6))
			soldPrice = math.Round(ppsf * sqft)
		} else {
			soldPrice = math.Round(def.price * variation)
		}
		daysAgo := 30 + f.rng.Intn(330)
		comps = append(comps, models.Comp{
			Address:       fmt.Sprintf("%d %s, %s, TX", 100+f.rng.Intn(9000), compStreets[i%len(compStreets)], def.city),
			SoldPrice:     soldPrice,
			SoldDate:      time.Now().AddDate(0, 0, -daysAgo).Format("2006-01-02"),
			Sqft:          sqft,
			PricePerSqft:  ppsf,
			DistanceMiles: math.Round((0.2+f.rng.Float64()*4.8)*10) / 10,
		})
	}
	return comps
}

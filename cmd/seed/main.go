package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"flyviet/internal/auth"
	"flyviet/internal/flights"
	"flyviet/internal/pricing"
	"flyviet/internal/promotions"
	"flyviet/internal/shared/config"
	"flyviet/internal/shared/database"

	"github.com/google/uuid"
)

type Seeder struct {
	db  *database.DB
	cfg *config.Config
}

func main() {
	fmt.Println("🌱 Starting FlyViet Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db, cfg: cfg}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Order matters due to foreign key constraints
	tables := []string{
		"payments",
		"booking_passengers",
		"bookings",
		"promotions",
		"flights",
		"admin_users",
	}

	for _, table := range tables {
		if err := s.db.GetPostgreSQL().Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
		fmt.Printf("  ↳ Cleaned table: %s\n", table)
	}

	return nil
}

// SeedAll seeds flights, promotions and the default admin account
func (s *Seeder) SeedAll() error {
	if err := s.SeedFlights(); err != nil {
		return fmt.Errorf("failed to seed flights: %w", err)
	}
	if err := s.SeedPromotions(); err != nil {
		return fmt.Errorf("failed to seed promotions: %w", err)
	}
	if err := s.SeedAdmin(); err != nil {
		return fmt.Errorf("failed to seed admin account: %w", err)
	}
	return nil
}

// route describes a city pair with typical economy fares in VND
type route struct {
	origin, destination string
	durationMinutes     int
	baseFare            float64
}

var routes = []route{
	{"SGN", "HAN", 125, 1250000},
	{"HAN", "SGN", 125, 1250000},
	{"SGN", "DAD", 80, 890000},
	{"DAD", "SGN", 80, 890000},
	{"HAN", "DAD", 80, 950000},
	{"DAD", "HAN", 80, 950000},
	{"SGN", "PQC", 60, 790000},
	{"PQC", "SGN", 60, 790000},
	{"SGN", "CXR", 65, 850000},
	{"CXR", "SGN", 65, 850000},
	{"HAN", "HUI", 75, 920000},
	{"HUI", "HAN", 75, 920000},
}

type carrier struct {
	code, name, prefix string
}

var carriers = []carrier{
	{"VN", "Vietnam Airlines", "VN"},
	{"VJ", "VietJet Air", "VJ"},
	{"QH", "Bamboo Airways", "QH"},
}

var departureSlots = []string{"06:15", "08:30", "10:45", "13:00", "15:30", "18:00", "20:45"}

// SeedFlights creates a 30-day schedule across all routes and carriers
func (s *Seeder) SeedFlights() error {
	fmt.Println("\n✈️  Seeding Flights...")

	rng := rand.New(rand.NewSource(42)) // deterministic seed data
	start := time.Now().Truncate(24 * time.Hour)
	flightNumber := 100

	var seeded int
	for day := 0; day < 30; day++ {
		date := start.AddDate(0, 0, day).Format("2006-01-02")

		for _, r := range routes {
			for _, c := range carriers {
				// Not every carrier flies every slot every day
				for _, slot := range departureSlots {
					if rng.Float64() < 0.55 {
						continue
					}

					flightNumber++
					dep, _ := time.Parse("15:04", slot)
					arr := dep.Add(time.Duration(r.durationMinutes) * time.Minute)

					// Fares wobble around the route baseline by ±20%
					economy := r.baseFare * (0.8 + rng.Float64()*0.4)
					economy = float64(int(economy/10000)) * 10000

					flight := flights.Flight{
						ID:            uuid.New(),
						FlightCode:    fmt.Sprintf("%s%d", c.prefix, flightNumber),
						AirlineCode:   c.code,
						Airline:       c.name,
						Origin:        r.origin,
						Destination:   r.destination,
						DepartureDate: date,
						DepartureTime: slot,
						ArrivalTime:   arr.Format("15:04"),
						Duration:      fmt.Sprintf("%dh%02dm", r.durationMinutes/60, r.durationMinutes%60),
						Status:        flights.FlightStatusScheduled,

						PriceEconomy:        economy,
						PricePremiumEconomy: float64(int(economy*1.4/10000)) * 10000,
						PriceBusiness:       float64(int(economy*2.5/10000)) * 10000,

						SeatsEconomy:        120 + rng.Intn(60),
						SeatsPremiumEconomy: 24 + rng.Intn(12),
						SeatsBusiness:       8 + rng.Intn(8),
					}

					if err := s.db.GetPostgreSQL().Create(&flight).Error; err != nil {
						return fmt.Errorf("failed to create flight %s: %w", flight.FlightCode, err)
					}
					seeded++
				}
			}
		}
	}

	fmt.Printf("  ↳ Created %d flights over 30 days\n", seeded)
	return nil
}

// SeedPromotions creates the promotion catalog
func (s *Seeder) SeedPromotions() error {
	fmt.Println("\n🎟️  Seeding Promotions...")

	now := time.Now()
	catalog := []promotions.Promotion{
		{
			ID:            uuid.New(),
			Code:          "SUMMER25",
			Description:   "Giảm 25% cho mùa hè",
			DiscountType:  pricing.DiscountPercent,
			DiscountValue: 25,
			ValidFrom:     now.AddDate(0, -1, 0),
			ValidUntil:    now.AddDate(0, 2, 0),
			UsageLimit:    100,
			Active:        true,
		},
		{
			ID:            uuid.New(),
			Code:          "WELCOME10",
			Description:   "Giảm 10% cho khách hàng mới",
			DiscountType:  pricing.DiscountPercent,
			DiscountValue: 10,
			ValidFrom:     now.AddDate(0, -6, 0),
			ValidUntil:    now.AddDate(0, 6, 0),
			Active:        true,
		},
		{
			ID:            uuid.New(),
			Code:          "FLY200K",
			Description:   "Giảm 200.000đ cho mọi chuyến bay",
			DiscountType:  pricing.DiscountFixed,
			DiscountValue: 200000,
			ValidFrom:     now.AddDate(0, -1, 0),
			ValidUntil:    now.AddDate(0, 1, 0),
			UsageLimit:    50,
			Active:        true,
		},
		{
			ID:            uuid.New(),
			Code:          "TET2026",
			Description:   "Ưu đãi Tết Nguyên Đán",
			DiscountType:  pricing.DiscountPercent,
			DiscountValue: 15,
			ValidFrom:     time.Date(2026, 1, 15, 0, 0, 0, 0, time.Local),
			ValidUntil:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.Local),
			UsageLimit:    500,
			Active:        true,
		},
		{
			ID:            uuid.New(),
			Code:          "EXPIRED50",
			Description:   "Khuyến mãi đã hết hạn (test data)",
			DiscountType:  pricing.DiscountPercent,
			DiscountValue: 50,
			ValidFrom:     now.AddDate(0, -3, 0),
			ValidUntil:    now.AddDate(0, -1, 0),
			Active:        true,
		},
	}

	for _, promo := range catalog {
		if err := s.db.GetPostgreSQL().Create(&promo).Error; err != nil {
			return fmt.Errorf("failed to create promotion %s: %w", promo.Code, err)
		}
		fmt.Printf("  ↳ Created promotion: %s (%s)\n", promo.Code, promo.Description)
	}

	return nil
}

// SeedAdmin provisions the default back-office account
func (s *Seeder) SeedAdmin() error {
	fmt.Println("\n👤 Seeding Admin Account...")

	authService := auth.NewService(auth.NewRepository(s.db.GetPostgreSQL()), s.cfg)

	admin, err := authService.CreateAdmin(context.Background(), "FlyViet Operator", "admin@flyviet.vn", "admin123456")
	if err != nil {
		return err
	}

	fmt.Printf("  ↳ Created admin: %s (password: admin123456)\n", admin.Email)
	return nil
}

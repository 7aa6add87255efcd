package usecase

import (
	"context"
	"fmt"
	"time"

	"property-service/internal/contextkeys"
	"property-service/internal/core/domain"
	"property-service/internal/core/port"

	"github.com/shopspring/decimal"
)

// SeedDataUseCase заполняет пустое хранилище демонстрационными данными.
// Если есть хотя бы один владелец, ничего не делает.
type SeedDataUseCase struct {
	owners     port.OwnerStoragePort
	properties port.PropertyStoragePort
	images     port.PropertyImageStoragePort
	traces     port.PropertyTraceStoragePort
	now        Clock
}

func NewSeedDataUseCase(owners port.OwnerStoragePort, properties port.PropertyStoragePort, images port.PropertyImageStoragePort, traces port.PropertyTraceStoragePort, now Clock) *SeedDataUseCase {
	if now == nil {
		now = SystemClock
	}
	return &SeedDataUseCase{owners: owners, properties: properties, images: images, traces: traces, now: now}
}

type seedOwner struct {
	name, address string
	birthday      time.Time
	ageDays       int
}

type seedProperty struct {
	name, address, code string
	price               int64
	year                int
	owner               int
	ageDays             int
	images              int
}

type seedTrace struct {
	property   int
	name       string
	value, tax int64
	ageDays    int
}

var seedOwners = []seedOwner{
	{"John Smith", "123 Oak Street, Beverly Hills, CA 90210", date(1975, 3, 15), 30},
	{"Sarah Johnson", "456 Pine Avenue, Manhattan, NY 10001", date(1982, 7, 22), 25},
	{"Michael Davis", "789 Maple Drive, Miami, FL 33101", date(1968, 11, 8), 20},
	{"Emily Wilson", "321 Cedar Lane, Seattle, WA 98101", date(1990, 5, 12), 15},
	{"Robert Chen", "567 Broadway, San Francisco, CA 94133", date(1985, 9, 3), 12},
	{"Maria Rodriguez", "890 Sunset Strip, Los Angeles, CA 90069", date(1978, 12, 18), 10},
	{"David Thompson", "432 Park Avenue, New York, NY 10016", date(1972, 4, 25), 8},
	{"Lisa Anderson", "654 Michigan Avenue, Chicago, IL 60611", date(1987, 6, 14), 6},
	{"James Miller", "789 Peachtree Street, Atlanta, GA 30309", date(1980, 8, 30), 4},
	{"Jennifer Garcia", "321 Riverfront Drive, Austin, TX 78701", date(1992, 2, 7), 2},
}

var seedProperties = []seedProperty{
	{"Luxury Villa Beverly Hills", "1001 Rodeo Drive, Beverly Hills, CA 90210", "PROP001", 2500000, 2019, 0, 28, 2},
	{"Modern Penthouse Manhattan", "555 Fifth Avenue, Manhattan, NY 10017", "PROP002", 3200000, 2021, 1, 24, 1},
	{"Oceanfront Condo Miami", "888 Ocean Drive, Miami Beach, FL 33139", "PROP003", 1800000, 2020, 2, 22, 2},
	{"Contemporary House Seattle", "777 Lake View Drive, Seattle, WA 98109", "PROP004", 950000, 2018, 3, 18, 1},
	{"Classic Estate Beverly Hills", "1234 Sunset Boulevard, Beverly Hills, CA 90210", "PROP005", 4500000, 2017, 0, 16, 2},
	{"Waterfront Villa Miami", "999 Bay Shore Drive, Miami, FL 33154", "PROP006", 2800000, 2022, 2, 12, 1},
	{"Tech Hub Loft San Francisco", "123 Market Street, San Francisco, CA 94105", "PROP007", 1650000, 2020, 4, 10, 2},
	{"Hollywood Hills Mansion", "456 Mulholland Drive, Los Angeles, CA 90210", "PROP008", 5200000, 2021, 5, 8, 3},
	{"Central Park Apartment", "789 Central Park West, New York, NY 10024", "PROP009", 3800000, 2019, 6, 6, 2},
	{"Lakefront Penthouse Chicago", "321 Lake Shore Drive, Chicago, IL 60611", "PROP010", 2100000, 2022, 7, 4, 1},
	{"Historic Brownstone Atlanta", "654 Piedmont Avenue, Atlanta, GA 30309", "PROP011", 875000, 2018, 8, 2, 1},
	{"Modern Ranch Austin", "987 South Lamar, Austin, TX 78704", "PROP012", 1350000, 2023, 9, 1, 2},
	{"Golden Gate View Condo", "555 Lombard Street, San Francisco, CA 94133", "PROP013", 2250000, 2020, 4, 5, 1},
	{"Beverly Hills Estate", "777 Benedict Canyon Drive, Beverly Hills, CA 90210", "PROP014", 6800000, 2021, 5, 3, 2},
	{"Tribeca Luxury Loft", "888 Greenwich Street, New York, NY 10014", "PROP015", 4200000, 2022, 6, 7, 1},
	{"Hill Country Retreat", "111 Ranch Road, Austin, TX 78738", "PROP016", 950000, 2019, 9, 9, 1},
}

var seedTraces = []seedTrace{
	{0, "Initial Purchase", 2200000, 44000, 365},
	{0, "Property Appraisal", 2500000, 50000, 180},
	{1, "Initial Purchase", 2800000, 56000, 400},
	{1, "Renovation Assessment", 3200000, 64000, 200},
	{2, "Initial Purchase", 1600000, 32000, 300},
	{4, "Initial Purchase", 4000000, 80000, 500},
	{7, "Initial Purchase", 4800000, 96000, 250},
	{8, "Initial Purchase", 3500000, 70000, 420},
	{13, "Initial Purchase", 6100000, 122000, 330},
}

const seedImagesCount = 13

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func (uc *SeedDataUseCase) Execute(ctx context.Context) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"use_case": "SeedData"})

	count, err := uc.owners.Count(ctx)
	if err != nil {
		return domain.WrapStoreError("count owners", err)
	}
	if count > 0 {
		ucLogger.Info("Owners already exist, skipping seed", port.Fields{"owners": count})
		return nil
	}

	now := uc.now()
	daysAgo := func(days int) time.Time { return now.AddDate(0, 0, -days) }

	ownerIDs := make([]string, 0, len(seedOwners))
	for i, s := range seedOwners {
		owner, err := uc.owners.Create(ctx, domain.Owner{
			Name:      s.name,
			Address:   s.address,
			Photo:     fmt.Sprintf("/images/owners/owner%d.jpg", i+1),
			Birthday:  s.birthday,
			CreatedAt: daysAgo(s.ageDays),
			UpdatedAt: daysAgo(s.ageDays),
		})
		if err != nil {
			return domain.WrapStoreError("seed owners", err)
		}
		ownerIDs = append(ownerIDs, owner.ID)
	}

	propertyIDs := make([]string, 0, len(seedProperties))
	imageNo := 0
	for _, s := range seedProperties {
		property, err := uc.properties.Create(ctx, domain.Property{
			Name:         s.name,
			Address:      s.address,
			Price:        decimal.NewFromInt(s.price),
			CodeInternal: s.code,
			Year:         s.year,
			OwnerID:      ownerIDs[s.owner],
			CreatedAt:    daysAgo(s.ageDays),
			UpdatedAt:    daysAgo(s.ageDays),
		})
		if err != nil {
			return domain.WrapStoreError("seed properties", err)
		}
		propertyIDs = append(propertyIDs, property.ID)

		for i := 0; i < s.images; i++ {
			imageNo++
			_, err := uc.images.Create(ctx, domain.PropertyImage{
				PropertyID: property.ID,
				File:       fmt.Sprintf("/images/properties/house%d.jpg", (imageNo-1)%seedImagesCount+1),
				Enabled:    true,
				CreatedAt:  daysAgo(s.ageDays - 1),
				UpdatedAt:  daysAgo(s.ageDays - 1),
			})
			if err != nil {
				return domain.WrapStoreError("seed property images", err)
			}
		}
	}

	for _, s := range seedTraces {
		_, err := uc.traces.Create(ctx, domain.PropertyTrace{
			PropertyID: propertyIDs[s.property],
			DateSale:   daysAgo(s.ageDays),
			Name:       s.name,
			Value:      decimal.NewFromInt(s.value),
			Tax:        decimal.NewFromInt(s.tax),
			CreatedAt:  daysAgo(s.ageDays),
			UpdatedAt:  daysAgo(s.ageDays),
		})
		if err != nil {
			return domain.WrapStoreError("seed property traces", err)
		}
	}

	ucLogger.Info("Seed data inserted", port.Fields{
		"owners":     len(ownerIDs),
		"properties": len(propertyIDs),
		"images":     imageNo,
		"traces":     len(seedTraces),
	})
	return nil
}

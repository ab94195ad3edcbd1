package fixtures

import (
	"time"

	"github.com/element-cleaning/paystatement-backend-go/internal/domain/contractor"
	"github.com/shopspring/decimal"
)

func building(name string, perVisit int64) contractor.BuildingAssignment {
	return contractor.BuildingAssignment{
		BuildingName: name,
		PayPerVisit:  decimal.NewFromInt(perVisit),
		IsActive:     true,
	}
}

func day(s string) time.Time {
	t, _ := time.Parse("2006-01-02", s)
	return t
}

// DefaultContractors is the starting directory for an empty local store.
func DefaultContractors() []contractor.Contractor {
	list := []contractor.Contractor{
		{
			ID:          "contractor-001",
			Name:        "Asphodel Vallejo Rangel",
			Address:     contractor.Address{Street: "6037 41st Ave SW", City: "Seattle", State: "WA", ZipCode: "98136"},
			PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodDirectDeposit, AccountLastFour: "1067"},
			Buildings:   []contractor.BuildingAssignment{building("Building A", 85), building("Building B", 90)},
			IsActive:    true,
			DateAdded:   day("2024-01-15"),
		},
		{
			ID:          "contractor-002",
			Name:        "Lisaura Brito Martinez",
			Address:     contractor.Address{Street: "3030 NE 10th St, Apt 209", City: "Renton", State: "WA", ZipCode: "98056"},
			PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodDirectDeposit, AccountLastFour: "3759"},
			Buildings:   []contractor.BuildingAssignment{building("Office Complex Downtown", 95)},
			IsActive:    true,
			DateAdded:   day("2024-02-01"),
		},
		{
			ID:          "contractor-003",
			Name:        "Janet Ramirez Ruiz",
			Address:     contractor.Address{Street: "12239 16th Ave S", City: "Burien", State: "WA", ZipCode: "98168"},
			PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodDirectDeposit, AccountLastFour: "9449"},
			Buildings:   []contractor.BuildingAssignment{building("Medical Center West", 110), building("Retail Plaza", 75)},
			IsActive:    true,
			DateAdded:   day("2024-01-20"),
		},
		{
			ID:          "contractor-004",
			Name:        "Sheymy Ramirez",
			Address:     contractor.Address{Street: "12239 16th Ave S", City: "Burien", State: "WA", ZipCode: "98168"},
			PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodDirectDeposit, AccountLastFour: "9303"},
			Buildings:   []contractor.BuildingAssignment{building("Tech Campus North", 100)},
			IsActive:    true,
			DateAdded:   day("2024-03-01"),
		},
		{
			ID:          "contractor-005",
			Name:        "María García",
			Address:     contractor.Address{Street: "2302 O St NE, Apt A", City: "Auburn", State: "WA", ZipCode: "98002"},
			PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodDirectDeposit, AccountLastFour: "2752"},
			Buildings:   []contractor.BuildingAssignment{building("Corporate Center", 120), building("Warehouse District", 80)},
			IsActive:    true,
			DateAdded:   day("2024-02-15"),
		},
		{
			ID:          "contractor-006",
			Name:        "Luis Lopez",
			Address:     contractor.Address{Street: "3030 NE 10th St, Apt 209", City: "Renton", State: "WA", ZipCode: "98056"},
			PaymentInfo: contractor.PaymentInfo{Method: contractor.PaymentMethodDirectDeposit, AccountLastFour: "0000"},
			Buildings:   []contractor.BuildingAssignment{building("Shopping Center East", 85)},
			IsActive:    true,
			DateAdded:   day("2024-03-10"),
		},
	}
	for i := range list {
		list[i].CreatedAt = list[i].DateAdded
		list[i].UpdatedAt = list[i].DateAdded
	}
	return list
}

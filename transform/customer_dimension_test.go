package transform

import (
	"testing"
	"time"

	"github.com/LilVoxy/coursework_warehouse/models"
	"github.com/LilVoxy/coursework_warehouse/staging"
	"github.com/LilVoxy/coursework_warehouse/utils"
)

func TestProcessCustomerDimensionTenure(t *testing.T) {
	buildTime := time.Date(2024, 12, 31, 12, 0, 0, 0, time.UTC)
	processor := NewCustomerDimensionProcessor(utils.NewBuildLogger(false), 90, 365)

	customers := []models.StagingCustomer{
		{
			CustomerKey:      staging.CustomerKey(1),
			CustomerID:       1,
			FullName:         "НОВЫЙ КЛИЕНТ",
			RegistrationDate: buildTime.AddDate(0, 0, -10),
		},
		{
			CustomerKey:      staging.CustomerKey(2),
			CustomerID:       2,
			FullName:         "НЕДАВНИЙ КЛИЕНТ",
			RegistrationDate: buildTime.AddDate(0, 0, -200),
		},
		{
			CustomerKey:      staging.CustomerKey(3),
			CustomerID:       3,
			FullName:         "ДАВНИЙ КЛИЕНТ",
			RegistrationDate: buildTime.AddDate(-2, 0, 0),
		},
	}

	dimensions := processor.ProcessCustomerDimension(customers, buildTime)

	if len(dimensions) != 3 {
		t.Fatalf("ожидалось 3 записи измерения, получено %d", len(dimensions))
	}

	expected := []string{models.TenureNew, models.TenureRecent, models.TenureEstablished}
	for i, want := range expected {
		if dimensions[i].TenureClass != want {
			t.Errorf("клиент %d: ожидался класс стажа %s, получено %s",
				dimensions[i].CustomerID, want, dimensions[i].TenureClass)
		}
	}
}

func TestProcessCustomerDimensionTenureBoundaries(t *testing.T) {
	buildTime := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	processor := NewCustomerDimensionProcessor(utils.NewBuildLogger(false), 90, 365)

	// Ровно 90 дней стажа - уже не NEW, ровно 365 - уже не RECENT
	customers := []models.StagingCustomer{
		{CustomerID: 1, RegistrationDate: buildTime.AddDate(0, 0, -89)},
		{CustomerID: 2, RegistrationDate: buildTime.AddDate(0, 0, -90)},
		{CustomerID: 3, RegistrationDate: buildTime.AddDate(0, 0, -364)},
		{CustomerID: 4, RegistrationDate: buildTime.AddDate(0, 0, -365)},
	}

	dimensions := processor.ProcessCustomerDimension(customers, buildTime)

	expected := []string{models.TenureNew, models.TenureRecent, models.TenureRecent, models.TenureEstablished}
	for i, want := range expected {
		if dimensions[i].TenureClass != want {
			t.Errorf("клиент %d: ожидался класс стажа %s, получено %s",
				dimensions[i].CustomerID, want, dimensions[i].TenureClass)
		}
	}
}

func TestProcessCustomerDimensionDeterministic(t *testing.T) {
	buildTime := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	processor := NewCustomerDimensionProcessor(utils.NewBuildLogger(false), 90, 365)

	customers := []models.StagingCustomer{
		{CustomerID: 5, RegistrationDate: buildTime.AddDate(0, 0, -30)},
	}

	// При фиксированном buildTime повторная сборка дает тот же результат
	first := processor.ProcessCustomerDimension(customers, buildTime)
	second := processor.ProcessCustomerDimension(customers, buildTime)

	if first[0] != second[0] {
		t.Error("пересборка с тем же buildTime должна давать идентичный результат")
	}
}

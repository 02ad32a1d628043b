package services

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"venuepos-backend/config"
	"venuepos-backend/models"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	return db
}

func seedStaff(t *testing.T, db *gorm.DB) models.Staff {
	t.Helper()

	staff := models.Staff{
		Email:    fmt.Sprintf("staff-%s@venue.test", strings.ReplaceAll(t.Name(), "/", "_")),
		Password: "supersecret",
		Name:     "Test Server",
		Role:     models.RoleServer,
		IsActive: true,
	}
	require.NoError(t, db.Create(&staff).Error)
	return staff
}

func seedArea(t *testing.T, db *gorm.DB, name string) models.SeatingArea {
	t.Helper()

	area := models.SeatingArea{Name: name, Capacity: 4, IsActive: true}
	require.NoError(t, db.Create(&area).Error)
	return area
}

func seedProduct(t *testing.T, db *gorm.DB, name, price string) models.Product {
	t.Helper()

	product := models.Product{
		Name:      name,
		Category:  "Drinks",
		SalePrice: decimal.RequireFromString(price),
		CostPrice: decimal.Zero,
		IsActive:  true,
	}
	require.NoError(t, db.Create(&product).Error)
	return product
}

func TestCreateOrderWalkIn(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	area := seedArea(t, db, "Table A")
	product := seedProduct(t, db, "House Red", "15.00")

	svc := NewOrderService(db)
	result, err := svc.CreateOrder(staff.ID, area.ID, []CartItem{
		{ProductID: product.ID, Quantity: 2},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.SalesCreated)
	assert.Len(t, result.SaleIDs, 1)
	assert.NotEmpty(t, result.OrderRef)
	assert.True(t, result.OrderTotal.Equal(decimal.RequireFromString("30.00")),
		"order total = %s", result.OrderTotal)

	// One new anonymous client with lifetime spend accumulated
	var client models.Client
	require.NoError(t, db.First(&client, result.ClientID).Error)
	require.NotNil(t, client.Name)
	assert.True(t, strings.HasPrefix(*client.Name, "Guest "))
	assert.True(t, client.LifetimeSpend.Equal(decimal.RequireFromString("30.00")),
		"lifetime spend = %s", client.LifetimeSpend)
	assert.True(t, client.LastVisitSpend.Equal(decimal.RequireFromString("30.00")))
	assert.NotNil(t, client.LastVisitDate)
	assert.Equal(t, models.ClientStatusReturning, client.Status)

	// One open visit on the area
	var visit models.Visit
	require.NoError(t, db.First(&visit, result.VisitID).Error)
	assert.Equal(t, area.ID, visit.SeatingAreaID)
	assert.Equal(t, models.VisitStatusOpen, visit.Status)
	assert.Nil(t, visit.ExitTime)

	// Sale snapshot holds
	var sale models.Sale
	require.NoError(t, db.Where("order_ref = ?", result.OrderRef).First(&sale).Error)
	assert.Equal(t, 2, sale.Quantity)
	assert.True(t, sale.PriceAtSale.Equal(decimal.RequireFromString("15.00")))
	assert.True(t, sale.TotalAmount.Equal(sale.PriceAtSale.Mul(decimal.NewFromInt(int64(sale.Quantity)))))

	// Flat 2% commission
	var commission models.StaffCommission
	require.NoError(t, db.Where("order_ref = ?", result.OrderRef).First(&commission).Error)
	assert.Equal(t, staff.ID, commission.StaffID)
	assert.True(t, commission.AmountEarned.Equal(decimal.RequireFromString("0.60")),
		"commission = %s", commission.AmountEarned)
	assert.False(t, commission.IsPaidOut)
	assert.Contains(t, commission.Note, result.OrderRef)
}

func TestCreateOrderUnknownProductWritesNothing(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	area := seedArea(t, db, "Table B")
	product := seedProduct(t, db, "Lager", "4.50")

	svc := NewOrderService(db)
	_, err := svc.CreateOrder(staff.ID, area.ID, []CartItem{
		{ProductID: product.ID, Quantity: 1},
		{ProductID: 9999, Quantity: 1},
	})
	require.ErrorIs(t, err, ErrProductNotFound)

	var sales, commissions, ledger int64
	db.Model(&models.Sale{}).Count(&sales)
	db.Model(&models.StaffCommission{}).Count(&commissions)
	db.Model(&models.StockLedger{}).Count(&ledger)
	assert.Zero(t, sales)
	assert.Zero(t, commissions)
	assert.Zero(t, ledger)
}

func TestCreateOrderStockDeduction(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	area := seedArea(t, db, "Bar 1")

	item := models.InventoryItem{Name: "Gin", Unit: "ml", ContainerSize: 700}
	require.NoError(t, db.Create(&item).Error)

	tracked := seedProduct(t, db, "Gin Tonic", "8.00")
	require.NoError(t, db.Model(&tracked).Updates(map[string]interface{}{
		"inventory_item_id": item.ID,
		"deduction_amount":  5,
	}).Error)
	untracked := seedProduct(t, db, "Bar Snacks", "3.00")

	svc := NewOrderService(db)
	result, err := svc.CreateOrder(staff.ID, area.ID, []CartItem{
		{ProductID: tracked.ID, Quantity: 2},
		{ProductID: untracked.ID, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, 2, result.SalesCreated)

	// Only the linked product produces a ledger entry
	var entries []models.StockLedger
	require.NoError(t, db.Where("order_ref = ?", result.OrderRef).Find(&entries).Error)
	require.Len(t, entries, 1)
	assert.Equal(t, item.ID, entries[0].InventoryItemID)
	assert.Equal(t, int64(-10), entries[0].QuantityChange)
	assert.Equal(t, models.LedgerReasonSale, entries[0].Reason)
}

func TestCreateOrderReplayProducesIndependentOrders(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	area := seedArea(t, db, "Table C")
	product := seedProduct(t, db, "Espresso", "2.50")

	svc := NewOrderService(db)
	cart := []CartItem{{ProductID: product.ID, Quantity: 2}}

	first, err := svc.CreateOrder(staff.ID, area.ID, cart)
	require.NoError(t, err)
	second, err := svc.CreateOrder(staff.ID, area.ID, cart)
	require.NoError(t, err)

	// Same open visit and client, but two distinct orders
	assert.Equal(t, first.VisitID, second.VisitID)
	assert.Equal(t, first.ClientID, second.ClientID)
	assert.NotEqual(t, first.OrderRef, second.OrderRef)

	var sales int64
	db.Model(&models.Sale{}).Where("visit_id = ?", first.VisitID).Count(&sales)
	assert.Equal(t, int64(2), sales)

	var client models.Client
	require.NoError(t, db.First(&client, first.ClientID).Error)
	assert.True(t, client.LifetimeSpend.Equal(decimal.RequireFromString("10.00")),
		"lifetime spend = %s", client.LifetimeSpend)
	assert.True(t, client.LastVisitSpend.Equal(decimal.RequireFromString("5.00")))
}

func TestCreateOrderSeparateAreasDoNotInterfere(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	areaA := seedArea(t, db, "Table D")
	areaB := seedArea(t, db, "Table E")
	product := seedProduct(t, db, "Cider", "5.00")

	svc := NewOrderService(db)
	resultA, err := svc.CreateOrder(staff.ID, areaA.ID, []CartItem{{ProductID: product.ID, Quantity: 1}})
	require.NoError(t, err)
	resultB, err := svc.CreateOrder(staff.ID, areaB.ID, []CartItem{{ProductID: product.ID, Quantity: 3}})
	require.NoError(t, err)

	assert.NotEqual(t, resultA.VisitID, resultB.VisitID)
	assert.NotEqual(t, resultA.ClientID, resultB.ClientID)

	var clientA, clientB models.Client
	require.NoError(t, db.First(&clientA, resultA.ClientID).Error)
	require.NoError(t, db.First(&clientB, resultB.ClientID).Error)
	assert.True(t, clientA.LifetimeSpend.Equal(decimal.RequireFromString("5.00")))
	assert.True(t, clientB.LifetimeSpend.Equal(decimal.RequireFromString("15.00")))
}

func TestCreateOrderUnknownArea(t *testing.T) {
	db := setupTestDB(t)
	staff := seedStaff(t, db)
	product := seedProduct(t, db, "Stout", "6.00")

	svc := NewOrderService(db)
	_, err := svc.CreateOrder(staff.ID, 4242, []CartItem{{ProductID: product.ID, Quantity: 1}})
	require.ErrorIs(t, err, ErrSeatingAreaNotFound)
}

func TestResolveVisitReturnsExistingOpenVisit(t *testing.T) {
	db := setupTestDB(t)
	area := seedArea(t, db, "Table F")

	svc := NewOrderService(db)
	first, err := svc.ResolveVisit(area.ID)
	require.NoError(t, err)
	require.NotNil(t, first.Client)

	second, err := svc.ResolveVisit(area.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, *first.ClientID, *second.ClientID)
}

func TestResolveVisitBackfillsMissingClient(t *testing.T) {
	db := setupTestDB(t)
	area := seedArea(t, db, "Table G")

	orphan := models.Visit{
		SeatingAreaID: area.ID,
		EntryTime:     time.Now(),
		Status:        models.VisitStatusOpen,
		CreditLimit:   decimal.Zero,
		CreditUsed:    decimal.Zero,
	}
	require.NoError(t, db.Create(&orphan).Error)

	svc := NewOrderService(db)
	visit, err := svc.ResolveVisit(area.ID)
	require.NoError(t, err)
	assert.Equal(t, orphan.ID, visit.ID)
	require.NotNil(t, visit.ClientID)
	require.NotNil(t, visit.Client)
	assert.Equal(t, models.ClientStatusNew, visit.Client.Status)
}

func TestOnlyOneOpenVisitPerArea(t *testing.T) {
	db := setupTestDB(t)
	area := seedArea(t, db, "Table H")

	svc := NewOrderService(db)
	visit, err := svc.ResolveVisit(area.ID)
	require.NoError(t, err)

	// A second open visit for the same area must lose to the partial
	// unique index.
	duplicate := models.Visit{
		SeatingAreaID: area.ID,
		EntryTime:     time.Now(),
		Status:        models.VisitStatusOpen,
		CreditLimit:   decimal.Zero,
		CreditUsed:    decimal.Zero,
	}
	err = db.Create(&duplicate).Error
	require.Error(t, err)
	assert.True(t, isUniqueViolation(err), "expected unique violation, got %v", err)

	// Closing the visit frees the area for a new check-in
	_, err = svc.CloseVisit(visit.ID)
	require.NoError(t, err)
	fresh, err := svc.ResolveVisit(area.ID)
	require.NoError(t, err)
	assert.NotEqual(t, visit.ID, fresh.ID)
}

func TestCloseVisit(t *testing.T) {
	db := setupTestDB(t)
	area := seedArea(t, db, "Table I")

	svc := NewOrderService(db)
	visit, err := svc.ResolveVisit(area.ID)
	require.NoError(t, err)

	closed, err := svc.CloseVisit(visit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusClosed, closed.Status)
	require.NotNil(t, closed.ExitTime)

	// Closing again is a no-op
	again, err := svc.CloseVisit(visit.ID)
	require.NoError(t, err)
	assert.Equal(t, models.VisitStatusClosed, again.Status)
}

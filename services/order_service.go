// services/order_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"venuepos-backend/models"
	"venuepos-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrEmptyCart           = errors.New("cart must contain at least one item")
	ErrSeatingAreaNotFound = errors.New("seating area not found")
	ErrProductNotFound     = errors.New("product not found in catalog")
	ErrVisitConflict       = errors.New("another check-in is already open for this seating area")
	ErrVisitResolveFailed  = errors.New("failed to resolve visit after creation")
)

type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

type CartItem struct {
	ProductID uint `json:"productId" binding:"required"`
	Quantity  int  `json:"quantity" binding:"required,min=1"`
}

type OrderResult struct {
	SalesCreated int             `json:"salesCreated"`
	SaleIDs      []uint          `json:"saleIds"`
	OrderRef     string          `json:"orderRef"`
	OrderTotal   decimal.Decimal `json:"orderTotal"`
	VisitID      uint            `json:"visitId"`
	ClientID     uint            `json:"clientId"`
}

// ResolveVisit returns the open visit for a seating area with its client
// attached, creating an anonymous client and a fresh visit when the area
// is empty. A concurrent check-in for the same empty area loses to the
// partial unique index and surfaces as ErrVisitConflict.
func (s *OrderService) ResolveVisit(areaID uint) (*models.Visit, error) {
	var area models.SeatingArea
	if err := s.db.Where("id = ? AND is_active = ?", areaID, true).First(&area).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSeatingAreaNotFound
		}
		return nil, err
	}

	var visit models.Visit
	err := s.db.Preload("Client").
		Where("seating_area_id = ? AND status = ?", areaID, models.VisitStatusOpen).
		First(&visit).Error
	if err == nil {
		if visit.ClientID == nil {
			// Visit exists without a client; backfill an anonymous one.
			client, err := s.createAnonymousClient()
			if err != nil {
				return nil, err
			}
			if err := s.db.Model(&visit).Update("client_id", client.ID).Error; err != nil {
				return nil, err
			}
			return s.refetchVisit(visit.ID)
		}
		return &visit, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	client, err := s.createAnonymousClient()
	if err != nil {
		return nil, err
	}

	visit = models.Visit{
		ClientID:      &client.ID,
		SeatingAreaID: areaID,
		EntryTime:     time.Now(),
		Status:        models.VisitStatusOpen,
		CreditLimit:   decimal.Zero,
		CreditUsed:    decimal.Zero,
	}
	if err := s.db.Create(&visit).Error; err != nil {
		if isUniqueViolation(err) {
			return nil, ErrVisitConflict
		}
		return nil, err
	}

	return s.refetchVisit(visit.ID)
}

func (s *OrderService) refetchVisit(id uint) (*models.Visit, error) {
	var visit models.Visit
	err := s.db.Preload("Client").Preload("SeatingArea").First(&visit, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrVisitResolveFailed
	}
	if err != nil {
		return nil, err
	}
	return &visit, nil
}

func (s *OrderService) createAnonymousClient() (*models.Client, error) {
	name := "Guest " + time.Now().Format("20060102-150405") + "-" + utils.GenerateRandomString(4)
	client := models.Client{
		Name:           &name,
		Status:         models.ClientStatusNew,
		LifetimeSpend:  decimal.Zero,
		LastVisitSpend: decimal.Zero,
	}
	if err := s.db.Create(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

type orderDraft struct {
	sales  []models.Sale
	ledger []models.StockLedger
	total  decimal.Decimal
}

// composeSales resolves the cart against the catalog in one batch query
// and computes line totals with decimal arithmetic throughout. Any
// unknown product id fails the whole cart.
func (s *OrderService) composeSales(cart []CartItem, visitID, staffID uint, orderRef string) (*orderDraft, error) {
	ids := make([]uint, 0, len(cart))
	for _, item := range cart {
		ids = append(ids, item.ProductID)
	}

	var products []models.Product
	if err := s.db.Where("id IN ?", ids).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]models.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	draft := &orderDraft{total: decimal.Zero}
	for _, item := range cart {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, item.ProductID)
		}

		priceAtSale := product.SalePrice
		itemTotal := priceAtSale.Mul(decimal.NewFromInt(int64(item.Quantity)))
		draft.total = draft.total.Add(itemTotal)

		draft.sales = append(draft.sales, models.Sale{
			VisitID:     visitID,
			ProductID:   product.ID,
			StaffID:     staffID,
			Quantity:    item.Quantity,
			PriceAtSale: priceAtSale,
			TotalAmount: itemTotal,
			OrderRef:    orderRef,
		})

		if product.InventoryItemID != nil && product.DeductionAmount > 0 {
			draft.ledger = append(draft.ledger, models.StockLedger{
				InventoryItemID: *product.InventoryItemID,
				QuantityChange:  -(product.DeductionAmount * int64(item.Quantity)),
				Reason:          models.LedgerReasonSale,
				OrderRef:        orderRef,
			})
		} else {
			log.Printf("product %d has no stock deduction configured, skipping ledger entry", product.ID)
		}
	}

	return draft, nil
}

// CreateOrder runs the full order path: resolve the visit, compose the
// cart, then persist every effect of the order in one transaction. The
// visit (and a walk-in client) may be created even when the order later
// fails; that matches check-in semantics, not a leak of order state.
func (s *OrderService) CreateOrder(staffID, areaID uint, cart []CartItem) (*OrderResult, error) {
	if len(cart) == 0 {
		return nil, ErrEmptyCart
	}

	visit, err := s.ResolveVisit(areaID)
	if err != nil {
		return nil, err
	}

	orderRef := uuid.NewString()
	draft, err := s.composeSales(cart, visit.ID, staffID, orderRef)
	if err != nil {
		return nil, err
	}

	tx := s.db.Begin()
	if tx.Error != nil {
		return nil, tx.Error
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	if err := tx.Create(&draft.sales).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	now := time.Now()
	if err := tx.Model(&models.Client{}).Where("id = ?", *visit.ClientID).
		Updates(map[string]interface{}{
			"lifetime_spend":   gorm.Expr("lifetime_spend + ?", draft.total),
			"last_visit_spend": draft.total,
			"last_visit_date":  now,
		}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Model(&models.Client{}).
		Where("id = ? AND status = ?", *visit.ClientID, models.ClientStatusNew).
		Update("status", models.ClientStatusReturning).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	commission := models.StaffCommission{
		StaffID:      staffID,
		OrderRef:     orderRef,
		AmountEarned: draft.total.Mul(models.CommissionRate).Round(2),
		Note: fmt.Sprintf("2%% commission on order %s (%d items, total %s)",
			orderRef, len(draft.sales), draft.total.StringFixed(2)),
	}
	if err := tx.Create(&commission).Error; err != nil {
		tx.Rollback()
		return nil, err
	}

	if len(draft.ledger) > 0 {
		if err := tx.Create(&draft.ledger).Error; err != nil {
			tx.Rollback()
			return nil, err
		}
	}

	if err := tx.Commit().Error; err != nil {
		return nil, err
	}

	saleIDs := make([]uint, 0, len(draft.sales))
	for _, sale := range draft.sales {
		saleIDs = append(saleIDs, sale.ID)
	}

	return &OrderResult{
		SalesCreated: len(draft.sales),
		SaleIDs:      saleIDs,
		OrderRef:     orderRef,
		OrderTotal:   draft.total,
		VisitID:      visit.ID,
		ClientID:     *visit.ClientID,
	}, nil
}

// CloseVisit ends an open visit, stamping the exit time.
func (s *OrderService) CloseVisit(visitID uint) (*models.Visit, error) {
	var visit models.Visit
	if err := s.db.First(&visit, visitID).Error; err != nil {
		return nil, err
	}
	if visit.Status == models.VisitStatusClosed {
		return &visit, nil
	}
	now := time.Now()
	if err := s.db.Model(&visit).Updates(map[string]interface{}{
		"status":    models.VisitStatusClosed,
		"exit_time": now,
	}).Error; err != nil {
		return nil, err
	}
	return s.refetchVisit(visit.ID)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed")
}

// services/payout_service.go
package services

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"venuepos-backend/models"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
	"gorm.io/gorm"
)

var ErrNothingToPayOut = errors.New("no unpaid commissions for staff member")

type PayoutService struct {
	db     *gorm.DB
	client *twilio.RestClient
}

func NewPayoutService(db *gorm.DB) *PayoutService {
	// Initialize Twilio client
	accountSid := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")

	return &PayoutService{
		db: db,
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSid,
			Password: authToken,
		}),
	}
}

func (s *PayoutService) StartScheduler() {
	c := cron.New()

	// Run every Monday at 9 AM
	c.AddFunc("0 9 * * 1", s.ProcessWeeklyPayouts)

	c.Start()
	log.Println("Commission payout scheduler started")
}

func (s *PayoutService) ProcessWeeklyPayouts() {
	log.Println("Starting weekly commission payout processing...")

	var staffIDs []uint
	if err := s.db.Model(&models.StaffCommission{}).
		Where("is_paid_out = ?", false).
		Distinct("staff_id").
		Pluck("staff_id", &staffIDs).Error; err != nil {
		log.Printf("Failed to fetch staff with unpaid commissions: %v", err)
		return
	}

	for _, staffID := range staffIDs {
		total, count, err := s.PayoutStaff(staffID)
		if err != nil {
			log.Printf("Staff %d: payout failed: %v", staffID, err)
			continue
		}
		log.Printf("Staff %d: paid out %s across %d orders", staffID, total.StringFixed(2), count)
	}

	log.Println("Weekly commission payout processing completed")
}

// PayoutStaff marks every unpaid commission of one staff member as paid
// inside a single transaction and returns the total paid and the number
// of rows settled. An SMS summary goes out when Twilio is configured.
func (s *PayoutService) PayoutStaff(staffID uint) (decimal.Decimal, int64, error) {
	var total decimal.Decimal
	var count int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.StaffCommission{}).
			Where("staff_id = ? AND is_paid_out = ?", staffID, false).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return ErrNothingToPayOut
		}

		if err := tx.Model(&models.StaffCommission{}).
			Where("staff_id = ? AND is_paid_out = ?", staffID, false).
			Select("COALESCE(SUM(amount_earned), 0)").
			Scan(&total).Error; err != nil {
			return err
		}

		now := time.Now()
		return tx.Model(&models.StaffCommission{}).
			Where("staff_id = ? AND is_paid_out = ?", staffID, false).
			Updates(map[string]interface{}{
				"is_paid_out": true,
				"paid_out_at": now,
			}).Error
	})
	if err != nil {
		return decimal.Zero, 0, err
	}

	s.notifyStaff(staffID, total, count)

	return total, count, nil
}

func (s *PayoutService) notifyStaff(staffID uint, total decimal.Decimal, count int64) {
	from := os.Getenv("TWILIO_FROM_NUMBER")
	if from == "" {
		return
	}

	var staff models.Staff
	if err := s.db.First(&staff, staffID).Error; err != nil || staff.Phone == "" {
		log.Printf("Staff %d: no phone on file, skipping payout SMS", staffID)
		return
	}

	body := fmt.Sprintf("Hi %s, your commission payout of %s for %d orders has been processed.",
		staff.Name, total.StringFixed(2), count)

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(staff.Phone)
	params.SetFrom(from)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		log.Printf("Staff %d: failed to send payout SMS: %v", staffID, err)
	}
}

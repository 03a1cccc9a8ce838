package controllers

import (
	"time"

	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const demoTenantSlug = "demo-isp"

// DemoPassword is the password of every seeded demo user
const DemoPassword = "Demo12345"

type demoProduct struct {
	name, code, connection string
	mbps                   int
	monthly                int64
}

var demoProducts = []demoProduct{
	{"Home Basic 20", "HOME-20", "fiber", 20, 250000},
	{"Home Plus 50", "HOME-50", "fiber", 50, 400000},
	{"Business 100", "BIZ-100", "dedicated", 100, 1500000},
}

// cycleDiscount is the multiplier of the monthly price per cycle month
var cycleDiscount = map[models.BillingCycle]decimal.Decimal{
	models.BillingCycleMonthly:   decimal.NewFromInt(1),
	models.BillingCycleQuarterly: decimal.RequireFromString("0.95"),
	models.BillingCycleAnnual:    decimal.RequireFromString("0.85"),
}

// SeedDemoData fills an empty database with one demo tenant. It does nothing when the tenant exists.
func SeedDemoData(db *gorm.DB) error {
	utils.LogInfo("SeedDemoData called")
	var count int64
	if err := db.Model(&models.Tenant{}).Where("slug = ?", demoTenantSlug).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		utils.LogDebug("Demo tenant already exists, skipping seed")
		return nil
	}

	hash, err := utils.HashPassword(DemoPassword)
	if err != nil {
		return err
	}
	now := time.Now()

	return db.Transaction(func(tx *gorm.DB) error {
		tenant := models.Tenant{Name: "Demo ISP", Slug: demoTenantSlug, IsActive: true}
		if err := tx.Create(&tenant).Error; err != nil {
			return err
		}

		users := map[models.Role]*models.User{}
		for _, u := range []struct {
			username, first string
			role            models.Role
		}{
			{"demo_owner", "Olivia", models.RoleOwner},
			{"demo_manager", "Marco", models.RoleManager},
			{"demo_sales", "Sari", models.RoleSales},
			{"demo_customer", "Citra", models.RoleCustomer},
		} {
			user := &models.User{
				TenantID:  tenant.ID,
				Username:  u.username,
				Email:     u.username + "@demo.billsphere.local",
				Password:  hash,
				FirstName: u.first,
				LastName:  "Demo",
				Role:      u.role,
			}
			if err := tx.Create(user).Error; err != nil {
				return err
			}
			users[u.role] = user
		}

		category, err := CreateDefaultCategory(tx, tenant.ID)
		if err != nil {
			return err
		}
		business := models.Category{TenantID: tenant.ID, Name: "Business", Description: "Dedicated business lines"}
		if err := tx.Create(&business).Error; err != nil {
			return err
		}

		var prices []models.ProductPrice
		for _, p := range demoProducts {
			categoryID := category.ID
			if p.connection == "dedicated" {
				categoryID = business.ID
			}
			product := models.Product{
				TenantID:       tenant.ID,
				CategoryID:     &categoryID,
				Name:           p.name,
				Code:           p.code,
				BandwidthMbps:  p.mbps,
				ConnectionType: p.connection,
				Attributes:     datatypes.JSONMap{"fup_gb": p.mbps * 20, "static_ip": p.connection == "dedicated"},
				IsActive:       true,
			}
			if err := tx.Create(&product).Error; err != nil {
				return err
			}
			for _, cycle := range []models.BillingCycle{models.BillingCycleMonthly, models.BillingCycleQuarterly, models.BillingCycleAnnual} {
				months := int64(cycle.Months())
				price := models.ProductPrice{
					ProductID:    product.ID,
					BillingCycle: cycle,
					Price:        decimal.NewFromInt(p.monthly * months).Mul(cycleDiscount[cycle]).Round(2),
					TermMonths:   cycle.Months(),
					Status:       models.PriceStatusActive,
				}
				if err := tx.Create(&price).Error; err != nil {
					return err
				}
				prices = append(prices, price)
			}
		}

		customer, owner := users[models.RoleCustomer], users[models.RoleOwner]
		started := now.AddDate(0, -2, 0)
		approvedAt := started.Add(-time.Hour)
		for i, status := range []models.SubscriptionStatus{
			models.SubscriptionPendingApproval, models.SubscriptionActive, models.SubscriptionSuspended,
			models.SubscriptionCancelled, models.SubscriptionApproved,
		} {
			price := prices[i%len(prices)]
			sub := models.Subscription{
				TenantID:       tenant.ID,
				UserID:         customer.ID,
				ProductPriceID: price.ID,
				Status:         status,
				Notes:          "Seeded demo subscription",
			}
			if status != models.SubscriptionPendingApproval {
				sub.ApprovedBy = &owner.ID
				sub.ApprovedAt = &approvedAt
			}
			if status == models.SubscriptionActive || status == models.SubscriptionSuspended || status == models.SubscriptionCancelled {
				ends := started.AddDate(0, price.TermMonths, 0)
				sub.StartsAt, sub.EndsAt = &started, &ends
			}
			switch status {
			case models.SubscriptionSuspended:
				sub.SuspendedAt = &now
			case models.SubscriptionCancelled:
				sub.CancelledAt = &now
			}
			if err := tx.Create(&sub).Error; err != nil {
				return err
			}
		}

		sales := users[models.RoleSales]
		for i, status := range []models.OfferStatus{models.OfferPending, models.OfferAccepted, models.OfferRejected} {
			price := prices[len(prices)-1-i]
			offer := models.Offer{
				TenantID:        tenant.ID,
				Reference:       newOfferReference(),
				UserID:          customer.ID,
				ProductPriceID:  price.ID,
				CreatedBy:       sales.ID,
				Price:           price.Price,
				DiscountPercent: decimal.NewFromInt(int64(5 * i)),
				Status:          status,
				ValidUntil:      now.AddDate(0, 0, utils.DefaultOfferValidityDays),
			}
			if status != models.OfferPending {
				offer.RespondedAt = &now
			}
			if err := tx.Create(&offer).Error; err != nil {
				return err
			}
		}

		return seedDemoWallets(tx, tenant.ID, owner.ID, now)
	})
}

func seedDemoWallets(tx *gorm.DB, tenantID, userID uint, now time.Time) error {
	ledgers := map[string][]models.Transaction{
		"Cash": {
			{Type: models.TransactionTypeCredit, Amount: decimal.NewFromInt(500000), Description: "Opening balance"},
			{Type: models.TransactionTypeDebit, Amount: decimal.NewFromInt(75000), Description: "Lunch"},
			{Type: models.TransactionTypeDebit, Amount: decimal.RequireFromString("12500.50"), Description: "Parking"},
		},
		"Bank": {
			{Type: models.TransactionTypeCredit, Amount: decimal.NewFromInt(10000000), Description: "Salary"},
			{Type: models.TransactionTypeDebit, Amount: decimal.NewFromInt(400000), Description: "Internet bill"},
		},
	}

	for _, name := range []string{"Cash", "Bank"} {
		wallet := models.Wallet{TenantID: tenantID, Name: name, Currency: "IDR"}
		if err := tx.Create(&wallet).Error; err != nil {
			return err
		}
		uw := models.UserWallet{UserID: userID, WalletID: wallet.ID}
		if err := tx.Create(&uw).Error; err != nil {
			return err
		}
		txns := ledgers[name]
		for i := range txns {
			txns[i].UserWalletID = uw.ID
			txns[i].TransactionDate = now.AddDate(0, 0, i-len(txns))
			if err := tx.Create(&txns[i]).Error; err != nil {
				return err
			}
		}
		if _, err := recalculateBalance(tx, &uw); err != nil {
			return err
		}
	}

	var members []models.User
	if err := tx.Scopes(utils.ForTenant(tenantID)).Order("id").Limit(3).Find(&members).Error; err != nil {
		return err
	}
	three := 3
	req := SplitBillRequest{
		Title:        "Team dinner",
		SplitEqually: true,
		Items: []SplitBillItemRequest{
			{Name: "Nasi goreng", Quantity: &three, UnitPrice: decimal.NewFromInt(35000)},
			{Name: "Es teh", Quantity: &three, UnitPrice: decimal.NewFromInt(8000)},
		},
	}
	for i := range members {
		req.Participants = append(req.Participants, SplitBillParticipantRequest{UserID: &members[i].ID})
	}
	bill, err := buildSplitBill(tx, tenantID, userID, &req)
	if err != nil {
		return err
	}
	return tx.Create(bill).Error
}

package controllers

import (
	"strings"
	"time"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SplitBillItemRequest struct {
	Name      string          `json:"name" binding:"required"`
	Quantity  *int            `json:"quantity" binding:"omitempty,min=1"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type SplitBillParticipantRequest struct {
	UserID     *uint            `json:"user_id"`
	Name       string           `json:"name"`
	AmountOwed *decimal.Decimal `json:"amount_owed"`
}

// SplitBillRequest creates a shared expense
type SplitBillRequest struct {
	Title        string                        `json:"title" binding:"required,max=150"`
	BillDate     *time.Time                    `json:"bill_date"`
	Notes        string                        `json:"notes" binding:"max=1000"`
	SplitEqually bool                          `json:"split_equally"`
	Items        []SplitBillItemRequest        `json:"items" binding:"required,min=1,dive"`
	Participants []SplitBillParticipantRequest `json:"participants" binding:"required,min=1,dive"`
}

// buildSplitBill validates req and turns it into a bill with computed shares
func buildSplitBill(db *gorm.DB, tenantID, creatorID uint, req *SplitBillRequest) (*models.SplitBill, error) {
	bill := &models.SplitBill{
		TenantID:  tenantID,
		CreatedBy: creatorID,
		Title:     strings.TrimSpace(req.Title),
		Notes:     req.Notes,
		BillDate:  time.Now(),
	}
	if req.BillDate != nil {
		bill.BillDate = *req.BillDate
	}

	total := decimal.Zero
	for _, it := range req.Items {
		qty := 1
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		if err := utils.ValidateAmount(it.UnitPrice); err != nil {
			return nil, utils.UnprocessableError("Invalid unit price for "+it.Name, err)
		}
		item := models.SplitBillItem{Name: strings.TrimSpace(it.Name), Quantity: qty, UnitPrice: it.UnitPrice}
		total = total.Add(item.Subtotal())
		bill.Items = append(bill.Items, item)
	}
	bill.TotalAmount = total

	var shares []decimal.Decimal
	if req.SplitEqually {
		var err error
		if shares, err = utils.SplitEqually(total, len(req.Participants)); err != nil {
			return nil, utils.UnprocessableError("Cannot split bill", err)
		}
	} else {
		shares = make([]decimal.Decimal, len(req.Participants))
		for i, p := range req.Participants {
			if p.AmountOwed == nil || p.AmountOwed.IsNegative() {
				return nil, utils.UnprocessableError("Each participant needs a non-negative amount_owed unless split_equally is set", nil)
			}
			if err := utils.ValidatePrecision(*p.AmountOwed); err != nil {
				return nil, utils.UnprocessableError("Invalid amount_owed", err)
			}
			shares[i] = *p.AmountOwed
		}
		if sum := utils.SumDecimals(shares); !sum.Equal(total) {
			return nil, utils.UnprocessableError(
				"Participant amounts add up to "+utils.FormatMoney(sum)+" but the bill total is "+utils.FormatMoney(total), nil)
		}
	}

	for i, p := range req.Participants {
		name := strings.TrimSpace(p.Name)
		if p.UserID != nil {
			var member models.User
			if err := db.Scopes(utils.ForTenant(tenantID)).First(&member, *p.UserID).Error; err != nil {
				return nil, utils.NotFoundError("Participant user not found", err)
			}
			if name == "" {
				name = member.FullName()
			}
		}
		if name == "" {
			return nil, utils.UnprocessableError("Each participant needs a name or user_id", nil)
		}
		bill.Participants = append(bill.Participants, models.SplitBillParticipant{
			UserID:     p.UserID,
			Name:       name,
			AmountOwed: shares[i],
		})
	}
	return bill, nil
}

func splitBillResponse(bill *models.SplitBill) gin.H {
	return gin.H{
		"split_bill":  bill,
		"outstanding": utils.FormatMoney(bill.Outstanding()),
	}
}

// visibleSplitBills limits a query to bills the user created or takes part in
func visibleSplitBills(user models.User) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Scopes(utils.ForTenant(user.TenantID)).
			Where("(created_by = ? OR id IN (SELECT split_bill_id FROM split_bill_participants WHERE user_id = ?))", user.ID, user.ID)
	}
}

func loadSplitBill(db *gorm.DB, user models.User, id uint) (*models.SplitBill, error) {
	var bill models.SplitBill
	err := db.Scopes(visibleSplitBills(user)).
		Preload("Items").Preload("Participants").First(&bill, id).Error
	if err != nil {
		return nil, err
	}
	return &bill, nil
}

// ListSplitBills lists the split bills the caller created or shares
func ListSplitBills(c *gin.Context) {
	utils.LogInfo("ListSplitBills called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	p := utils.NewPagination(c)
	query := config.DB.Model(&models.SplitBill{}).
		Scopes(visibleSplitBills(user), utils.Search(c.Query("search"), "title"))

	var total int64
	if err := query.Count(&total).Error; err != nil {
		utils.InternalServerError(c, "Failed to count split bills", err.Error())
		return
	}
	var bills []models.SplitBill
	if err := query.Preload("Participants").Order("bill_date desc, id desc").Scopes(p.Scope).Find(&bills).Error; err != nil {
		utils.LogError("Failed to fetch split bills: %v", err)
		utils.InternalServerError(c, "Failed to fetch split bills", err.Error())
		return
	}
	utils.SuccessWithPagination(c, "Split bills retrieved successfully", bills, total, p)
}

// GetSplitBill shows a split bill with items and participants
func GetSplitBill(c *gin.Context) {
	utils.LogInfo("GetSplitBill called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bill, err := loadSplitBill(config.DB, user, id)
	if err != nil {
		utils.NotFound(c, "Split bill not found")
		return
	}
	utils.Success(c, "Split bill retrieved successfully", splitBillResponse(bill))
}

// CreateSplitBill records a shared expense and each participant's share
func CreateSplitBill(c *gin.Context) {
	utils.LogInfo("CreateSplitBill called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	var req SplitBillRequest
	if !bindJSON(c, &req) {
		return
	}
	bill, err := buildSplitBill(config.DB, user.TenantID, user.ID, &req)
	if err != nil {
		utils.RespondWithError(c, "Failed to create split bill", err)
		return
	}
	if err := config.DB.Create(bill).Error; err != nil {
		utils.LogError("Failed to create split bill: %v", err)
		utils.InternalServerError(c, "Failed to create split bill", err.Error())
		return
	}
	utils.LogInfo("Split bill %d (%s) created with %d participants", bill.ID, utils.FormatMoney(bill.TotalAmount), len(bill.Participants))
	utils.Created(c, "Split bill created successfully", splitBillResponse(bill))
}

// MarkParticipantPaid settles one participant's share
func MarkParticipantPaid(c *gin.Context) {
	utils.LogInfo("MarkParticipantPaid called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	participantID, ok := parseID(c, "participant_id")
	if !ok {
		return
	}
	bill, err := loadSplitBill(config.DB, user, id)
	if err != nil {
		utils.NotFound(c, "Split bill not found")
		return
	}

	var participant *models.SplitBillParticipant
	for i := range bill.Participants {
		if bill.Participants[i].ID == participantID {
			participant = &bill.Participants[i]
		}
	}
	if participant == nil {
		utils.NotFound(c, "Participant not found")
		return
	}
	if bill.CreatedBy != user.ID && (participant.UserID == nil || *participant.UserID != user.ID) {
		utils.Forbidden(c, "Only the bill creator can settle other participants")
		return
	}
	if participant.IsPaid {
		utils.Conflict(c, "Participant has already paid", nil)
		return
	}

	now := time.Now()
	if err := config.DB.Model(participant).Updates(map[string]interface{}{"is_paid": true, "paid_at": now}).Error; err != nil {
		utils.InternalServerError(c, "Failed to update participant", err.Error())
		return
	}
	participant.IsPaid = true
	participant.PaidAt = &now

	utils.LogInfo("Participant %d of split bill %d marked paid", participant.ID, bill.ID)
	utils.Success(c, "Participant marked as paid", splitBillResponse(bill))
}

// DeleteSplitBill removes a split bill with its items and participants
func DeleteSplitBill(c *gin.Context) {
	utils.LogInfo("DeleteSplitBill called")
	user, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	bill, err := loadSplitBill(config.DB, user, id)
	if err != nil {
		utils.NotFound(c, "Split bill not found")
		return
	}
	if bill.CreatedBy != user.ID {
		utils.Forbidden(c, "Only the bill creator can delete it")
		return
	}
	err = config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("split_bill_id = ?", bill.ID).Delete(&models.SplitBillItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("split_bill_id = ?", bill.ID).Delete(&models.SplitBillParticipant{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SplitBill{}, bill.ID).Error
	})
	if err != nil {
		utils.InternalServerError(c, "Failed to delete split bill", err.Error())
		return
	}
	utils.LogInfo("Split bill %d deleted", bill.ID)
	utils.Success(c, "Split bill deleted successfully", nil)
}

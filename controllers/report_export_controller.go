package controllers

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx"

	"github.com/Govind-619/BillSphere/config"
	"github.com/Govind-619/BillSphere/models"
	"github.com/Govind-619/BillSphere/utils"
)

// subscriptionReport is the data behind both export formats
type subscriptionReport struct {
	Period        string
	Start, End    time.Time
	Subscriptions []models.Subscription
	ByStatus      map[models.SubscriptionStatus]int
	Customers     int
	MRR           decimal.Decimal
}

// reportRange resolves a period name into a time window. "all" has a zero start.
func reportRange(period string, now time.Time) (time.Time, time.Time, error) {
	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 999999999, now.Location())
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	switch period {
	case "day":
		return startOfDay, endOfDay, nil
	case "week":
		return startOfDay.AddDate(0, 0, -6), endOfDay, nil
	case "month":
		return startOfDay.AddDate(0, 0, -29), endOfDay, nil
	case "all":
		return time.Time{}, endOfDay, nil
	}
	return time.Time{}, time.Time{}, fmt.Errorf("period must be day, week, month or all")
}

func buildSubscriptionReport(c *gin.Context) (*subscriptionReport, bool) {
	user, ok := currentUser(c)
	if !ok {
		return nil, false
	}
	period := c.DefaultQuery("period", "month")
	start, end, err := reportRange(period, time.Now())
	if err != nil {
		utils.LogError("Invalid period specified: %s", period)
		utils.BadRequest(c, "Invalid period", err.Error())
		return nil, false
	}

	var subs []models.Subscription
	query := config.DB.Scopes(utils.ForTenant(user.TenantID)).
		Where("created_at <= ?", end).
		Preload("User").Preload("ProductPrice.Product").
		Order("created_at DESC")
	if !start.IsZero() {
		query = query.Where("created_at >= ?", start)
	}
	if err := query.Find(&subs).Error; err != nil {
		utils.LogError("Failed to fetch subscriptions: %v", err)
		utils.InternalServerError(c, "Failed to fetch subscriptions", err.Error())
		return nil, false
	}
	utils.LogDebug("Retrieved %d subscriptions for %s report", len(subs), period)

	report := &subscriptionReport{
		Period:        period,
		Start:         start,
		End:           end,
		Subscriptions: subs,
		ByStatus:      make(map[models.SubscriptionStatus]int),
		MRR:           decimal.Zero,
	}
	customers := make(map[uint]bool)
	for _, s := range subs {
		report.ByStatus[s.Status]++
		customers[s.UserID] = true
		if s.Status == models.SubscriptionActive && s.ProductPrice != nil {
			report.MRR = report.MRR.Add(s.ProductPrice.MonthlyEquivalent())
		}
	}
	report.Customers = len(customers)
	return report, true
}

func (r *subscriptionReport) periodLabel() string {
	from := "beginning"
	if !r.Start.IsZero() {
		from = r.Start.Format("2006-01-02")
	}
	return "Period: " + strings.ToUpper(r.Period) + " | " + from + " to " + r.End.Format("2006-01-02")
}

func (r *subscriptionReport) summary() [][]string {
	rows := [][]string{
		{"Total Subscriptions", fmt.Sprintf("%d", len(r.Subscriptions))},
		{"Customers", fmt.Sprintf("%d", r.Customers)},
	}
	for _, s := range models.AllSubscriptionStatuses {
		rows = append(rows, []string{statusLabel(s), fmt.Sprintf("%d", r.ByStatus[s])})
	}
	return append(rows, []string{"MRR", utils.FormatMoney(r.MRR)})
}

func statusLabel(s models.SubscriptionStatus) string {
	label := strings.ReplaceAll(string(s), "_", " ")
	return strings.ToUpper(label[:1]) + label[1:]
}

func reportRow(s models.Subscription) []string {
	customer, product, cycle, price := "", "", "", ""
	if s.User != nil {
		customer = s.User.FullName()
	}
	if s.ProductPrice != nil {
		cycle = string(s.ProductPrice.BillingCycle)
		price = utils.FormatMoney(s.ProductPrice.Price)
		if s.ProductPrice.Product != nil {
			product = s.ProductPrice.Product.Name
		}
	}
	starts, ends := "", ""
	if s.StartsAt != nil {
		starts = s.StartsAt.Format("2006-01-02")
	}
	if s.EndsAt != nil {
		ends = s.EndsAt.Format("2006-01-02")
	}
	return []string{
		fmt.Sprintf("%d", s.ID), customer, product, cycle, price, string(s.Status),
		s.CreatedAt.Format("2006-01-02"), starts, ends,
	}
}

var reportHeaders = []string{"ID", "Customer", "Product", "Cycle", "Price", "Status", "Created", "Starts", "Ends"}

// DownloadSubscriptionReportExcel exports subscriptions of a period as xlsx
func DownloadSubscriptionReportExcel(c *gin.Context) {
	utils.LogInfo("DownloadSubscriptionReportExcel called")
	report, ok := buildSubscriptionReport(c)
	if !ok {
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Subscriptions")
	if err != nil {
		utils.LogError("Failed to create Excel sheet: %v", err)
		utils.InternalServerError(c, "Failed to create Excel sheet", err.Error())
		return
	}

	bold := xlsx.NewStyle()
	font := xlsx.DefaultFont()
	font.Bold = true
	bold.Font = *font

	title := sheet.AddRow().AddCell()
	title.SetString("BILLSPHERE - Subscription Report")
	title.SetStyle(bold)
	sheet.AddRow().AddCell().SetString(report.periodLabel())
	sheet.AddRow()

	headerRow := sheet.AddRow()
	for _, h := range reportHeaders {
		cell := headerRow.AddCell()
		cell.SetString(h)
		cell.SetStyle(bold)
	}
	for _, s := range report.Subscriptions {
		row := sheet.AddRow()
		for _, v := range reportRow(s) {
			row.AddCell().SetString(v)
		}
	}

	sheet.AddRow()
	summaryCell := sheet.AddRow().AddCell()
	summaryCell.SetString("Summary")
	summaryCell.SetStyle(bold)
	for _, data := range report.summary() {
		row := sheet.AddRow()
		row.AddCell().SetString(data[0])
		row.AddCell().SetString(data[1])
	}

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=subscription_report_%s.xlsx", report.Period))
	if err := file.Write(c.Writer); err != nil {
		utils.LogError("Failed to write Excel file: %v", err)
		utils.InternalServerError(c, "Failed to write Excel file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated Excel report for period %s", report.Period)
}

// DownloadSubscriptionReportPDF exports subscriptions of a period as pdf
func DownloadSubscriptionReportPDF(c *gin.Context) {
	utils.LogInfo("DownloadSubscriptionReportPDF called")
	report, ok := buildSubscriptionReport(c)
	if !ok {
		return
	}

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Arial", "B", 18)
	pdf.Cell(0, 12, "BILLSPHERE - Subscription Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 12)
	pdf.Cell(0, 8, report.periodLabel())
	pdf.Ln(12)

	colWidths := []float64{15, 50, 55, 25, 25, 32, 25, 25, 25}
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(200, 200, 200)
	for i, h := range reportHeaders {
		pdf.CellFormat(colWidths[i], 9, h, "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	fill := false
	for _, s := range report.Subscriptions {
		pdf.SetFillColor(230, 240, 255)
		for i, v := range reportRow(s) {
			align := "L"
			if i == 0 || i == 4 {
				align = "R"
			}
			pdf.CellFormat(colWidths[i], 8, v, "1", 0, align, fill, 0, "")
		}
		fill = !fill
		pdf.Ln(-1)
	}

	pdf.Ln(8)
	pdf.SetFont("Arial", "B", 12)
	pdf.SetFillColor(220, 230, 250)
	pdf.CellFormat(90, 10, "Summary", "1", 0, "C", true, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 11)
	for _, data := range report.summary() {
		pdf.CellFormat(50, 8, data[0], "1", 0, "L", false, 0, "")
		pdf.CellFormat(40, 8, data[1], "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=subscription_report_%s.pdf", report.Period))
	if err := pdf.Output(c.Writer); err != nil {
		utils.LogError("Failed to write PDF file: %v", err)
		utils.InternalServerError(c, "Failed to write PDF file", err.Error())
		return
	}
	utils.LogInfo("Successfully generated PDF report for period %s", report.Period)
}

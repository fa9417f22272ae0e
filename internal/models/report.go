package models

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ReportRange bounds a report by date, inclusive on both ends.
type ReportRange struct {
	StartDate *Date
	EndDate   *Date
}

// Revenue.

type RevenueSummary struct {
	TotalInvoices    int64           `json:"total_invoices" db:"total_invoices"`
	TotalBilled      decimal.Decimal `json:"total_billed" db:"total_billed"`
	TotalCollected   decimal.Decimal `json:"total_collected" db:"total_collected"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding" db:"total_outstanding"`
}

type PracticeAreaRevenue struct {
	PracticeArea     string          `json:"practice_area" db:"practice_area"`
	InvoiceCount     int64           `json:"invoice_count" db:"invoice_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue" db:"total_revenue"`
	CollectedRevenue decimal.Decimal `json:"collected_revenue" db:"collected_revenue"`
}

type ClientRevenue struct {
	ClientID         int64           `json:"id" db:"id"`
	ClientName       string          `json:"client_name" db:"client_name"`
	CompanyName      *string         `json:"company_name" db:"company_name"`
	InvoiceCount     int64           `json:"invoice_count" db:"invoice_count"`
	TotalRevenue     decimal.Decimal `json:"total_revenue" db:"total_revenue"`
	CollectedRevenue decimal.Decimal `json:"collected_revenue" db:"collected_revenue"`
}

type RevenueReport struct {
	Summary        RevenueSummary        `json:"summary"`
	ByPracticeArea []PracticeAreaRevenue `json:"by_practice_area"`
	ByClient       []ClientRevenue       `json:"by_client"`
}

// Utilization.

// UtilizationRate is billable/total × 100 rounded to two decimals, or 0
// when nothing was logged.
func UtilizationRate(billableMinutes, totalMinutes int64) float64 {
	if totalMinutes <= 0 {
		return 0
	}
	return round2(float64(billableMinutes) / float64(totalMinutes) * 100)
}

type UserUtilization struct {
	UserID          int64           `json:"id" db:"id"`
	UserName        string          `json:"user_name" db:"user_name"`
	Title           *string         `json:"title" db:"title"`
	TotalMinutes    int64           `json:"total_minutes" db:"total_minutes"`
	BillableMinutes int64           `json:"billable_minutes" db:"billable_minutes"`
	BillableValue   decimal.Decimal `json:"billable_value" db:"billable_value"`
	MattersWorked   int64           `json:"matters_worked" db:"matters_worked"`
	TotalHours      float64         `json:"total_hours" db:"-"`
	BillableHours   float64         `json:"billable_hours" db:"-"`
	UtilizationRate float64         `json:"utilization_rate" db:"-"`
}

// TimeTotals is the raw firm-wide sum over time entries.
type TimeTotals struct {
	TotalMinutes    int64           `db:"total_minutes"`
	BillableMinutes int64           `db:"billable_minutes"`
	BillableValue   decimal.Decimal `db:"billable_value"`
}

type UtilizationSummary struct {
	TotalHours         float64         `json:"total_hours"`
	BillableHours      float64         `json:"billable_hours"`
	BillableValue      decimal.Decimal `json:"billable_value"`
	OverallUtilization float64         `json:"overall_utilization"`
}

type UtilizationReport struct {
	Summary UtilizationSummary `json:"summary"`
	ByUser  []UserUtilization  `json:"by_user"`
}

// BuildUtilizationReport derives hours and rates from the raw sums.
func BuildUtilizationReport(users []UserUtilization, totals TimeTotals) UtilizationReport {
	for i := range users {
		u := &users[i]
		u.TotalHours = RoundHours(u.TotalMinutes)
		u.BillableHours = RoundHours(u.BillableMinutes)
		u.UtilizationRate = UtilizationRate(u.BillableMinutes, u.TotalMinutes)
	}
	if users == nil {
		users = []UserUtilization{}
	}
	return UtilizationReport{
		Summary: UtilizationSummary{
			TotalHours:         RoundHours(totals.TotalMinutes),
			BillableHours:      RoundHours(totals.BillableMinutes),
			BillableValue:      totals.BillableValue,
			OverallUtilization: UtilizationRate(totals.BillableMinutes, totals.TotalMinutes),
		},
		ByUser: users,
	}
}

// Aging.

// Aging bucket names.
const (
	AgingCurrent = "current_0_30"
	Aging31To60  = "overdue_31_60"
	Aging61To90  = "overdue_61_90"
	AgingOver90  = "overdue_90_plus"
)

// AgingBucketFor places an invoice due on due into a bucket relative to asOf.
// An invoice 30 days past due is still current; 31 days past due starts the
// 31–60 band. Undated and not-yet-due invoices are current.
func AgingBucketFor(due *Date, asOf Date) string {
	if due == nil || due.IsZero() {
		return AgingCurrent
	}
	days := asOf.DaysSince(*due)
	switch {
	case days <= 30:
		return AgingCurrent
	case days <= 60:
		return Aging31To60
	case days <= 90:
		return Aging61To90
	default:
		return AgingOver90
	}
}

// OutstandingInvoice is an unpaid sent or overdue invoice with its client.
type OutstandingInvoice struct {
	InvoiceID   int64           `db:"id"`
	ClientID    int64           `db:"client_id"`
	ClientName  string          `db:"client_name"`
	CompanyName *string         `db:"company_name"`
	ClientEmail *string         `db:"client_email"`
	DueDate     *Date           `db:"due_date"`
	TotalAmount decimal.Decimal `db:"total_amount"`
}

type AgingBuckets struct {
	InvoiceCount     int64           `json:"invoice_count"`
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	Current0To30     decimal.Decimal `json:"current_0_30"`
	Overdue31To60    decimal.Decimal `json:"overdue_31_60"`
	Overdue61To90    decimal.Decimal `json:"overdue_61_90"`
	Overdue90Plus    decimal.Decimal `json:"overdue_90_plus"`
}

func (b *AgingBuckets) add(bucket string, amount decimal.Decimal) {
	b.InvoiceCount++
	b.TotalOutstanding = b.TotalOutstanding.Add(amount)
	switch bucket {
	case AgingCurrent:
		b.Current0To30 = b.Current0To30.Add(amount)
	case Aging31To60:
		b.Overdue31To60 = b.Overdue31To60.Add(amount)
	case Aging61To90:
		b.Overdue61To90 = b.Overdue61To90.Add(amount)
	default:
		b.Overdue90Plus = b.Overdue90Plus.Add(amount)
	}
}

type ClientAging struct {
	ClientID    int64   `json:"id"`
	ClientName  string  `json:"client_name"`
	CompanyName *string `json:"company_name"`
	Email       *string `json:"email"`
	AgingBuckets
}

type AgingReport struct {
	AsOfDate        Date          `json:"as_of_date"`
	Summary         AgingBuckets  `json:"summary"`
	ClientBreakdown []ClientAging `json:"client_breakdown"`
}

// BuildAgingReport buckets each outstanding invoice and rolls the amounts up
// per client and firm-wide. Clients with nothing outstanding are dropped and
// the rest are ordered by outstanding amount, largest first.
func BuildAgingReport(invoices []OutstandingInvoice, asOf Date) AgingReport {
	report := AgingReport{AsOfDate: asOf, ClientBreakdown: []ClientAging{}}
	byClient := make(map[int64]*ClientAging)
	var order []int64

	for _, inv := range invoices {
		bucket := AgingBucketFor(inv.DueDate, asOf)
		report.Summary.add(bucket, inv.TotalAmount)

		ca, ok := byClient[inv.ClientID]
		if !ok {
			ca = &ClientAging{
				ClientID:    inv.ClientID,
				ClientName:  inv.ClientName,
				CompanyName: inv.CompanyName,
				Email:       inv.ClientEmail,
			}
			byClient[inv.ClientID] = ca
			order = append(order, inv.ClientID)
		}
		ca.add(bucket, inv.TotalAmount)
	}

	for _, id := range order {
		if ca := byClient[id]; ca.TotalOutstanding.IsPositive() {
			report.ClientBreakdown = append(report.ClientBreakdown, *ca)
		}
	}
	sort.SliceStable(report.ClientBreakdown, func(i, j int) bool {
		return report.ClientBreakdown[i].TotalOutstanding.GreaterThan(report.ClientBreakdown[j].TotalOutstanding)
	})
	return report
}

package models

import (
	"time"
)

// Loan represents an issued loan. Loans are immutable once issued; there are
// no partial-payment updates, only the imported emis_paid_on_time counter.
type Loan struct {
	LoanID          uint      `gorm:"column:loan_id;primaryKey" json:"loan_id"`
	CustomerID      uint      `gorm:"column:customer_id;not null;index" json:"customer_id"`
	Customer        Customer  `gorm:"foreignKey:CustomerID;references:CustomerID" json:"-"`
	LoanAmount      float64   `gorm:"column:loan_amount;type:decimal(12,2);not null" json:"loan_amount"`
	Tenure          int       `gorm:"column:tenure;not null" json:"tenure"` // months
	InterestRate    float64   `gorm:"column:interest_rate;type:decimal(5,2);not null" json:"interest_rate"`
	MonthlyPayment  float64   `gorm:"column:monthly_payment;type:decimal(12,2);not null" json:"monthly_payment"`
	EMIsPaidOnTime  int       `gorm:"column:emis_paid_on_time;not null;default:0" json:"emis_paid_on_time"`
	DateOfApproval  time.Time `gorm:"column:date_of_approval;not null" json:"date_of_approval"`
	EndDate         time.Time `gorm:"column:end_date;not null" json:"end_date"`
	CreatedAt       time.Time `gorm:"column:created_at;default:CURRENT_TIMESTAMP" json:"-"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsActive reports whether the loan is still running at the given date.
func (l *Loan) IsActive(asOf time.Time) bool {
	return !l.EndDate.Before(asOf)
}

// RepaymentsLeft returns the number of EMIs still outstanding.
func (l *Loan) RepaymentsLeft() int {
	left := l.Tenure - l.EMIsPaidOnTime
	if left < 0 {
		return 0
	}
	return left
}

package utils

import (
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
)

const dateLayout = "2006-01-02"

// UnitPriceForPeriod picks the equipment rate matching the billing period.
// A zero rate means the equipment is not offered for that period.
func UnitPriceForPeriod(eq *domain.Equipment, period domain.BillingPeriod) (int64, error) {
	var rate int64
	switch period {
	case domain.BillingPeriodHour:
		rate = eq.HourlyRateCents
	case domain.BillingPeriodDay:
		rate = eq.DailyRateCents
	case domain.BillingPeriodMonth:
		rate = eq.MonthlyRateCents
	default:
		return 0, &domain.ValidationError{Field: "billing_period", Msg: "must be hour, day or month"}
	}
	if rate <= 0 {
		return 0, &domain.ValidationError{Field: "billing_period",
			Msg: fmt.Sprintf("equipment %s has no %s rate", eq.ID, period)}
	}
	return rate, nil
}

// DueDate computes the return date for a rental starting at startDate
// (yyyy-mm-dd) and running for units billing periods. Hourly rentals shorter
// than a day still come due on a calendar date.
func DueDate(startDate string, period domain.BillingPeriod, units int32) (string, error) {
	start, err := time.Parse(dateLayout, startDate)
	if err != nil {
		return "", &domain.ValidationError{Field: "start_date", Msg: "expected yyyy-mm-dd"}
	}
	if units < 1 {
		return "", &domain.ValidationError{Field: "duration_units", Msg: "must be at least 1"}
	}

	var due time.Time
	switch period {
	case domain.BillingPeriodHour:
		due = start.Add(time.Duration(units) * time.Hour)
	case domain.BillingPeriodDay:
		due = start.AddDate(0, 0, int(units))
	case domain.BillingPeriodMonth:
		due = start.AddDate(0, int(units), 0)
	default:
		return "", &domain.ValidationError{Field: "billing_period", Msg: "must be hour, day or month"}
	}
	return due.Format(dateLayout), nil
}

// FormatCents renders a cent amount as R$ with comma decimals, the way the
// rental contracts print money.
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%sR$ %d,%02d", sign, cents/100, cents%100)
}

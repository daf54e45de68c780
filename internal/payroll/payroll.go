// Package payroll holds the pure payroll arithmetic: shift duration,
// per-shift pay and the year/month aggregation used by reports. Everything
// here is a function of its inputs; persistence and delivery live elsewhere.
package payroll

import (
	"fmt"
	"math"
	"time"

	"github.com/fdepaulajodaracuna-max/CamarerosHoras/internal/models"
)

// Layouts for the values exchanged with clients and the database.
const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"

	// Dates inside report detail entries use day-first formatting.
	displayDateLayout = "02-01-2006"
)

// Config is the pay configuration injected into the calculators.
type Config struct {
	HourlyRate          float64
	DefaultCarAllowance float64
}

// Duration computes the worked time for a shift on the given date. The date
// components of timeIn and timeOut are ignored; only their clock values count.
// When the clock-out is earlier than the clock-in the shift is treated as
// ending the following day. Equal times yield a zero-length shift, not an
// overnight one. Shifts longer than 24 hours are not representable.
func Duration(date, timeIn, timeOut time.Time) time.Duration {
	start := onDate(date, timeIn)
	end := onDate(date, timeOut)
	if end.Before(start) {
		end = end.AddDate(0, 0, 1)
	}
	return end.Sub(start)
}

// Pay computes the total pay for one shift. The car allowance contributes
// only when the car was actually used, whatever value happens to be stored.
// No rounding is applied here; display rounding is the aggregator's job so
// errors do not compound across a month.
func Pay(worked time.Duration, hourlyRate float64, carUsed bool, carAllowance float64) float64 {
	pay := worked.Seconds() / 3600 * hourlyRate
	if carUsed {
		pay += carAllowance
	}
	return pay
}

// ParseDate parses a calendar date in DateLayout.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// ParseClock parses a wall-clock "HH:MM" value.
func ParseClock(value string) (time.Time, error) {
	return time.Parse(ClockLayout, value)
}

func onDate(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, time.UTC)
}

// ShiftDetail is one report line for a single shift within a monthly bucket.
type ShiftDetail struct {
	ID           int64   `json:"id"`
	Date         string  `json:"date"`
	TimeIn       string  `json:"time_in"`
	TimeOut      string  `json:"time_out"`
	HoursDecimal float64 `json:"hours_decimal"`
	HourlyPay    float64 `json:"hourly_pay"`
	CarUsed      bool    `json:"car_used"`
	CarAllowance float64 `json:"car_allowance"`
	TotalDayPay  float64 `json:"total_day_pay"`
}

// MonthlySummary accumulates one (year, month) bucket. TotalHours is the
// bucket's worked time as "HHh MMm"; the hour figure is not wrapped at 24, a
// busy month simply reads e.g. "160h 30m".
type MonthlySummary struct {
	TotalSeconds float64       `json:"-"`
	TotalHours   string        `json:"total_hours"`
	TotalPay     float64       `json:"total_pay"`
	TotalCarPay  float64       `json:"total_car_pay"`
	Shifts       []ShiftDetail `json:"shifts"`
}

// Summarize groups shifts by year then month and accumulates worked seconds,
// total pay and car allowance pay per bucket. Detail entries keep the input
// order; callers are expected to pass shifts in the store's retrieval order
// (most recent first) and Summarize never re-sorts. An empty input yields an
// empty map. An error is returned only for malformed stored time values,
// which well-formed records can never trigger.
func Summarize(cfg Config, shifts []models.Shift) (map[int]map[int]*MonthlySummary, error) {
	years := make(map[int]map[int]*MonthlySummary)

	for _, shift := range shifts {
		timeIn, err := ParseClock(shift.TimeIn)
		if err != nil {
			return nil, fmt.Errorf("shift %d: bad time_in %q: %w", shift.ID, shift.TimeIn, err)
		}
		timeOut, err := ParseClock(shift.TimeOut)
		if err != nil {
			return nil, fmt.Errorf("shift %d: bad time_out %q: %w", shift.ID, shift.TimeOut, err)
		}

		worked := Duration(shift.Date, timeIn, timeOut)
		seconds := worked.Seconds()
		totalPay := Pay(worked, cfg.HourlyRate, shift.CarUsed, shift.CarAllowance)

		year := shift.Date.Year()
		month := int(shift.Date.Month())
		months, ok := years[year]
		if !ok {
			months = make(map[int]*MonthlySummary)
			years[year] = months
		}
		bucket, ok := months[month]
		if !ok {
			bucket = &MonthlySummary{}
			months[month] = bucket
		}

		bucket.TotalSeconds += seconds
		bucket.TotalPay += totalPay
		allowance := 0.0
		if shift.CarUsed {
			allowance = shift.CarAllowance
			bucket.TotalCarPay += shift.CarAllowance
		}

		bucket.Shifts = append(bucket.Shifts, ShiftDetail{
			ID:           shift.ID,
			Date:         shift.Date.Format(displayDateLayout),
			TimeIn:       shift.TimeIn,
			TimeOut:      shift.TimeOut,
			HoursDecimal: round2(seconds / 3600),
			HourlyPay:    round2(seconds / 3600 * cfg.HourlyRate),
			CarUsed:      shift.CarUsed,
			CarAllowance: allowance,
			TotalDayPay:  round2(totalPay),
		})
	}

	// Totals are rounded and formatted only once the whole bucket is summed.
	for _, months := range years {
		for _, bucket := range months {
			bucket.TotalHours = FormatHours(bucket.TotalSeconds)
			bucket.TotalPay = round2(bucket.TotalPay)
			bucket.TotalCarPay = round2(bucket.TotalCarPay)
		}
	}

	return years, nil
}

// FormatHours renders accumulated seconds as "HHh MMm". Hours are unbounded.
func FormatHours(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02dh %02dm", total/3600, total%3600/60)
}

func round2(value float64) float64 {
	return math.Round(value*100) / 100
}

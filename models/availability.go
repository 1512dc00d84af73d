package models

import "time"

// AvailabilityInterval is one open window inside a weekday template. Times
// are strict "HH:MM"; intervals with IsAvailable false are kept as explicit
// blocks and never expand into slots.
type AvailabilityInterval struct {
	StartTime   string `bson:"startTime" json:"startTime"`
	EndTime     string `bson:"endTime" json:"endTime"`
	IsAvailable bool   `bson:"isAvailable" json:"isAvailable"`
}

// DayTemplate is the weekly-recurring slot list for one weekday. A provider
// holds at most one entry per weekday.
type DayTemplate struct {
	Day   string                 `bson:"day" json:"day"` // "Monday".."Sunday"
	Slots []AvailabilityInterval `bson:"slots" json:"slots"`
}

// BookableSlot is a derived start time offered to clients for a concrete
// date. It is never persisted.
type BookableSlot struct {
	Date      string `json:"date"`      // "2006-01-02"
	StartTime string `json:"startTime"` // "HH:MM"
}

var weekdayNames = map[time.Weekday]string{
	time.Sunday:    "Sunday",
	time.Monday:    "Monday",
	time.Tuesday:   "Tuesday",
	time.Wednesday: "Wednesday",
	time.Thursday:  "Thursday",
	time.Friday:    "Friday",
	time.Saturday:  "Saturday",
}

// WeekdayName maps a time.Weekday onto the template day key.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// ValidWeekday reports whether day is one of the seven template day keys.
func ValidWeekday(day string) bool {
	for _, name := range weekdayNames {
		if name == day {
			return true
		}
	}
	return false
}

// Package timetable holds a decoded school timetable.
//
// Every level is numbered by its 0-based position in the source data,
// the accessors that take a number (Grade, Class, Day, Period) are 1-based
// for presentation.
package timetable

import (
	"fmt"
	"time"
)

type School struct {
	Name   string
	Grades []Grade
}

type Grade struct {
	Number  int
	Classes []Class
}

type Class struct {
	Number int
	Days   []Day
}

type Day struct {
	Number  int
	Periods []Period
}

type Period struct {
	Number  int
	Subject string
	Teacher string
}

// weekdays is indexed by day number mod 7, the week starts on monday.
var weekdays = [7]time.Weekday{
	time.Monday,
	time.Tuesday,
	time.Wednesday,
	time.Thursday,
	time.Friday,
	time.Saturday,
	time.Sunday,
}

func at[T any](items []T, n int) (T, bool) {
	var empty T
	if n < 1 || n > len(items) {
		return empty, false
	}
	return items[n-1], true
}

func (s *School) Grade(n int) (Grade, bool) {
	return at(s.Grades, n)
}

func (g Grade) Class(n int) (Class, bool) {
	return at(g.Classes, n)
}

func (c Class) Day(n int) (Day, bool) {
	return at(c.Days, n)
}

// Weekday returns the day of the week the day falls on.
func (d Day) Weekday() time.Weekday {
	return weekdays[((d.Number%7)+7)%7]
}

func (d Day) Period(n int) (Period, bool) {
	return at(d.Periods, n)
}

// ListPeriods returns the periods that have a class scheduled.
func (d Day) ListPeriods() []Period {
	var out []Period
	for _, p := range d.Periods {
		if !p.Empty() {
			out = append(out, p)
		}
	}
	return out
}

// Empty is true when nothing is scheduled for the period.
func (p Period) Empty() bool {
	return p.Subject == "" && p.Teacher == ""
}

func (p Period) String() string {
	if p.Empty() {
		return fmt.Sprintf("period %d: -", p.Number+1)
	}
	return fmt.Sprintf("period %d: %s (%s)", p.Number+1, p.Subject, p.Teacher)
}

// CountPeriods returns the total amount of periods across the school.
func (s *School) CountPeriods() int {
	total := 0
	for _, g := range s.Grades {
		for _, c := range g.Classes {
			for _, d := range c.Days {
				total += len(d.Periods)
			}
		}
	}
	return total
}

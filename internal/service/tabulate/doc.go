// Package tabulate implements `almanac table`: it builds a day-by-day table
// for a date range and writes it as text, JSON or iCalendar.
package tabulate

// Package table builds day-by-day almanac tables over a date range and
// renders them as plain text or as an iCalendar feed.
//
// Dates are expanded with a daily recurrence rule and computed concurrently
// through any provider.Provider.
package table

// Package event implements the default almanac command: it computes the
// requested rise and set events for one date and prints them.
package event

// Package query implements `almanac query`: it asks a running almanac-server
// for the events of one date and prints the answer.
package query

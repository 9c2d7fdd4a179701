// Package solar contains the value types shared by the sunrise/sunset calculator.
//
// It defines the calendar date, geographic coordinate, zenith and event kinds,
// and the Result returned for every computed event, together with the
// validation rules applied before any floating-point work starts.
package solar

// Package ephemeris computes sunrise, sunset and twilight times with the
// low-precision solar algorithm of the USNO "Almanac for Computers" (1990).
//
// The computation is a chain of pure transforms:
//
//	CalendarDate -> DayNumber -> Compute (solar position, cos H) -> Solve -> Clock
//
// Every function is side-effect free and safe for concurrent use. Accuracy is
// about a minute between ±60° latitude and degrades beyond it; such inputs are
// still computed.
package ephemeris

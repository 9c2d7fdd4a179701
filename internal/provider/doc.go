// Package provider exposes interchangeable sources of sunrise and sunset times.
//
// Every source implements Provider. Local runs the almanac algorithm from the
// ephemeris package, SunCalc cross-checks it with the suncalc library, and
// AskGeo queries the AskGeo astronomy web API for today's events.
//
// Basic usage:
//
//	p, err := provider.New(provider.KindLocal, provider.Options{})
//	if err != nil {
//		return err
//	}
//
//	result, err := p.Event(ctx, solar.Query{...})
package provider

package table

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/oshokin/almanac/internal/domain/solar"
)

// productID identifies the generator in iCalendar output.
const productID = "-//oshokin//almanac//EN"

// WriteText renders the table as aligned columns.
func WriteText(w io.Writer, t *Table) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	_, _ = fmt.Fprintf(tw, "# %s, zenith %s, UTC%+g, provider %s\n", t.Coordinate, t.Zenith, t.UTCOffset, t.Provider)
	_, _ = fmt.Fprintf(tw, "Date\t%s\t%s\n",
		EventLabel(t.Zenith, solar.EventRise),
		EventLabel(t.Zenith, solar.EventSet),
	)

	for _, row := range t.Rows {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t%s\n", row.Date, cell(row.Rise), cell(row.Set))
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("write table: %w", err)
	}

	return nil
}

// WriteICS renders every occurring event as a zero-length VEVENT.
// stamp is used as DTSTAMP for all events.
func WriteICS(w io.Writer, t *Table, stamp time.Time) error {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetXWRCalName(fmt.Sprintf("Almanac %s (%s)", t.Coordinate, t.Zenith))

	for _, row := range t.Rows {
		for _, result := range []solar.Result{row.Rise, row.Set} {
			at, ok := EventTime(row.Date, t.Coordinate, t.UTCOffset, result)
			if !ok {
				continue
			}

			uid := fmt.Sprintf("%s-%s-%s-%s@almanac", row.Date, t.Zenith, result.Event, t.Coordinate)

			event := cal.AddEvent(uid)
			event.SetDtStampTime(stamp)
			event.SetStartAt(at)
			event.SetEndAt(at)
			event.SetSummary(EventLabel(t.Zenith, result.Event))
			event.SetGeo(t.Coordinate.Latitude, t.Coordinate.Longitude)
			event.SetTimeTransparency(ics.TransparencyTransparent)
		}
	}

	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("write calendar: %w", err)
	}

	return nil
}

package codec

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/table"
)

// TestQueryStruct checks that a query survives the Struct encoding.
func TestQueryStruct(t *testing.T) {
	t.Parallel()

	want := solar.Query{
		Date:       solar.CalendarDate{Year: 2015, Month: 9, Day: 21},
		Coordinate: solar.GeoCoordinate{Latitude: 40.93, Longitude: -73.03},
		Zenith:     solar.ZenithCivil,
		Event:      solar.EventSet,
		UTCOffset:  -4,
	}

	got, err := QueryFromStruct(QueryToStruct(want))
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestQueryFromStruct_Optional leaves the event and offset empty when absent.
func TestQueryFromStruct_Optional(t *testing.T) {
	t.Parallel()

	s := QueryToStruct(solar.Query{
		Date:   solar.CalendarDate{Year: 2024, Month: 3, Day: 20},
		Zenith: solar.ZenithOfficial,
	})
	delete(s.Fields, FieldEvent)
	delete(s.Fields, FieldUTCOffset)

	got, err := QueryFromStruct(s)
	require.NoError(t, err)
	require.Empty(t, got.Event)
	require.Zero(t, got.UTCOffset)
}

// TestQueryStruct_WholeDay keeps a query without an event decodable.
func TestQueryStruct_WholeDay(t *testing.T) {
	t.Parallel()

	want := solar.Query{
		Date:       solar.CalendarDate{Year: 2015, Month: 9, Day: 21},
		Coordinate: solar.GeoCoordinate{Latitude: 40.93, Longitude: -73.03},
		Zenith:     solar.ZenithOfficial,
		UTCOffset:  -4,
	}

	s := QueryToStruct(want)
	require.NotContains(t, s.GetFields(), FieldEvent)

	got, err := QueryFromStruct(s)
	require.NoError(t, err)
	require.Equal(t, want, got)

	// Older clients sent the empty string.
	s.Fields[FieldEvent] = structpb.NewStringValue("")

	got, err = QueryFromStruct(s)
	require.NoError(t, err)
	require.Equal(t, want, got)
}

// TestQueryFromStruct_Errors covers missing and mistyped fields.
func TestQueryFromStruct_Errors(t *testing.T) {
	t.Parallel()

	base := func() *structpb.Struct {
		return QueryToStruct(solar.Query{
			Date:   solar.CalendarDate{Year: 2024, Month: 3, Day: 20},
			Zenith: solar.ZenithOfficial,
			Event:  solar.EventRise,
		})
	}

	s := base()
	delete(s.Fields, FieldLatitude)
	_, err := QueryFromStruct(s)
	require.ErrorIs(t, err, ErrMissingField)

	s = base()
	s.Fields[FieldDate] = structpb.NewNumberValue(20240320)
	_, err = QueryFromStruct(s)
	require.ErrorIs(t, err, ErrBadField)

	s = base()
	s.Fields[FieldDate] = structpb.NewStringValue("2024-02-30")
	_, err = QueryFromStruct(s)
	require.ErrorIs(t, err, solar.ErrInvalidDate)

	s = base()
	s.Fields[FieldZenith] = structpb.NewStringValue("golden")
	_, err = QueryFromStruct(s)
	require.ErrorIs(t, err, solar.ErrInvalidZenithKind)

	s = base()
	s.Fields[FieldEvent] = structpb.NewStringValue("noon")
	_, err = QueryFromStruct(s)
	require.ErrorIs(t, err, solar.ErrInvalidEventKind)
}

// TestResultStruct covers both an occurring and a degenerate result.
func TestResultStruct(t *testing.T) {
	t.Parallel()

	for _, want := range []solar.Result{
		{
			Event:      solar.EventRise,
			Zenith:     solar.ZenithOfficial,
			Clock:      solar.Clock{Hour: 6, Minute: 38},
			LocalHours: 6.6384,
			UTCHours:   10.6384,
		},
		solar.DegenerateResult(solar.EventSet, solar.ZenithNautical, solar.DegenerateAlwaysBelow),
	} {
		got, err := ResultFromStruct(ResultToStruct(want))
		require.NoError(t, err)
		require.Equal(t, want, got)
	}
}

// TestResultFromStruct_ClockRange rejects impossible clock fields.
func TestResultFromStruct_ClockRange(t *testing.T) {
	t.Parallel()

	s := ResultToStruct(solar.Result{Event: solar.EventRise, Zenith: solar.ZenithOfficial})
	s.Fields[FieldMinute] = structpb.NewNumberValue(60)
	_, err := ResultFromStruct(s)
	require.ErrorIs(t, err, ErrBadField)

	s.Fields[FieldMinute] = structpb.NewNumberValue(1.5)
	_, err = ResultFromStruct(s)
	require.ErrorIs(t, err, ErrBadField)

	s.Fields[FieldMinute] = structpb.NewNumberValue(1)
	s.Fields[FieldDegenerate] = structpb.NewStringValue("sometimes")
	_, err = ResultFromStruct(s)
	require.ErrorIs(t, err, ErrBadField)
}

// TestTableJSON checks the JSON document used by the CLI and the snapshot file.
func TestTableJSON(t *testing.T) {
	t.Parallel()

	date := solar.CalendarDate{Year: 2015, Month: 9, Day: 21}
	want := &table.Table{
		Provider:   "local",
		Coordinate: solar.GeoCoordinate{Latitude: 40.93, Longitude: -73.03},
		Zenith:     solar.ZenithOfficial,
		UTCOffset:  -4,
		Rows: []table.Row{{
			Date: date,
			Rise: solar.Result{
				Event: solar.EventRise, Zenith: solar.ZenithOfficial,
				Clock: solar.Clock{Hour: 6, Minute: 38}, LocalHours: 6.6384, UTCHours: 10.6384,
			},
			Set: solar.Result{
				Event: solar.EventSet, Zenith: solar.ZenithOfficial,
				Clock: solar.Clock{Hour: 18, Minute: 51}, LocalHours: 18.8574, UTCHours: 22.8574,
			},
		}},
	}
	generatedAt := time.Date(2015, 9, 21, 0, 0, 0, 0, time.UTC)

	data, err := MarshalTableJSON(want, generatedAt)
	require.NoError(t, err)
	require.Contains(t, string(data), `"06:38"`)
	require.Contains(t, string(data), `"2015-09-21T00:00:00Z"`)

	got, gotAt, err := UnmarshalTableJSON(data)
	require.NoError(t, err)
	require.Equal(t, want, got)
	require.True(t, generatedAt.Equal(gotAt))

	_, _, err = UnmarshalTableJSON([]byte(`{"provider": "local"}`))
	require.ErrorIs(t, err, ErrMissingField)
}

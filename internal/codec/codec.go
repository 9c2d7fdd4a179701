package codec

import (
	"errors"
	"fmt"
	"math"
	"time"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"github.com/oshokin/almanac/internal/domain/solar"
	"github.com/oshokin/almanac/internal/table"
)

// Field names of the Struct wire format.
const (
	FieldDate        = "date"
	FieldLatitude    = "latitude"
	FieldLongitude   = "longitude"
	FieldZenith      = "zenith"
	FieldEvent       = "event"
	FieldUTCOffset   = "utc_offset"
	FieldProvider    = "provider"
	FieldClock       = "clock"
	FieldHour        = "hour"
	FieldMinute      = "minute"
	FieldDegenerate  = "degenerate"
	FieldLocalHours  = "local_hours"
	FieldUTCHours    = "utc_hours"
	FieldRise        = "rise"
	FieldSet         = "set"
	FieldRows        = "rows"
	FieldGeneratedAt = "generated_at"
)

var (
	// ErrMissingField is returned when a required field is absent.
	ErrMissingField = errors.New("missing field")
	// ErrBadField is returned when a field has the wrong type or value.
	ErrBadField = errors.New("bad field")
)

// QueryToStruct encodes a query. An empty event is left out so the message
// asks for a whole day.
func QueryToStruct(q solar.Query) *structpb.Struct {
	s := &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldDate:      structpb.NewStringValue(q.Date.String()),
		FieldLatitude:  structpb.NewNumberValue(q.Coordinate.Latitude),
		FieldLongitude: structpb.NewNumberValue(q.Coordinate.Longitude),
		FieldZenith:    structpb.NewStringValue(q.Zenith.String()),
		FieldUTCOffset: structpb.NewNumberValue(q.UTCOffset),
	}}

	if q.Event != "" {
		s.Fields[FieldEvent] = structpb.NewStringValue(q.Event.String())
	}

	return s
}

// QueryFromStruct decodes a query. The event field is optional so the same
// message can ask for a whole day; it is left empty when absent or empty.
// Field values are parsed but not range checked.
func QueryFromStruct(s *structpb.Struct) (solar.Query, error) {
	var q solar.Query

	raw, err := stringField(s, FieldDate)
	if err != nil {
		return q, err
	}

	if q.Date, err = solar.ParseDate(raw); err != nil {
		return q, err
	}

	if q.Coordinate.Latitude, err = numberField(s, FieldLatitude); err != nil {
		return q, err
	}

	if q.Coordinate.Longitude, err = numberField(s, FieldLongitude); err != nil {
		return q, err
	}

	raw, err = stringField(s, FieldZenith)
	if err != nil {
		return q, err
	}

	if q.Zenith, err = solar.ParseZenithKind(raw); err != nil {
		return q, err
	}

	if has(s, FieldEvent) {
		raw, err = stringField(s, FieldEvent)
		if err != nil {
			return q, err
		}

		if raw != "" {
			if q.Event, err = solar.ParseEventKind(raw); err != nil {
				return q, err
			}
		}
	}

	if has(s, FieldUTCOffset) {
		if q.UTCOffset, err = numberField(s, FieldUTCOffset); err != nil {
			return q, err
		}
	}

	return q, nil
}

// ResultToStruct encodes a result.
func ResultToStruct(r solar.Result) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldEvent:      structpb.NewStringValue(r.Event.String()),
		FieldZenith:     structpb.NewStringValue(r.Zenith.String()),
		FieldClock:      structpb.NewStringValue(r.Clock.String()),
		FieldHour:       structpb.NewNumberValue(float64(r.Clock.Hour)),
		FieldMinute:     structpb.NewNumberValue(float64(r.Clock.Minute)),
		FieldDegenerate: structpb.NewStringValue(r.Degenerate.String()),
		FieldLocalHours: structpb.NewNumberValue(r.LocalHours),
		FieldUTCHours:   structpb.NewNumberValue(r.UTCHours),
	}}
}

// ResultFromStruct decodes a result.
func ResultFromStruct(s *structpb.Struct) (solar.Result, error) {
	var (
		r   solar.Result
		err error
		raw string
	)

	if raw, err = stringField(s, FieldEvent); err != nil {
		return r, err
	}

	if r.Event, err = solar.ParseEventKind(raw); err != nil {
		return r, err
	}

	if raw, err = stringField(s, FieldZenith); err != nil {
		return r, err
	}

	if r.Zenith, err = solar.ParseZenithKind(raw); err != nil {
		return r, err
	}

	if raw, err = stringField(s, FieldDegenerate); err != nil {
		return r, err
	}

	var ok bool
	if r.Degenerate, ok = solar.ParseDegenerate(raw); !ok {
		return r, fmt.Errorf("%w: %s %q", ErrBadField, FieldDegenerate, raw)
	}

	if r.Clock.Hour, err = intField(s, FieldHour, 0, 23); err != nil {
		return r, err
	}

	if r.Clock.Minute, err = intField(s, FieldMinute, 0, 59); err != nil {
		return r, err
	}

	if r.LocalHours, err = numberField(s, FieldLocalHours); err != nil {
		return r, err
	}

	if r.UTCHours, err = numberField(s, FieldUTCHours); err != nil {
		return r, err
	}

	return r, nil
}

// TableToStruct encodes a table and the time it was generated.
func TableToStruct(t *table.Table, generatedAt time.Time) *structpb.Struct {
	rows := make([]*structpb.Value, 0, len(t.Rows))
	for _, row := range t.Rows {
		rows = append(rows, structpb.NewStructValue(RowToStruct(row)))
	}

	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldProvider:    structpb.NewStringValue(t.Provider),
		FieldLatitude:    structpb.NewNumberValue(t.Coordinate.Latitude),
		FieldLongitude:   structpb.NewNumberValue(t.Coordinate.Longitude),
		FieldZenith:      structpb.NewStringValue(t.Zenith.String()),
		FieldUTCOffset:   structpb.NewNumberValue(t.UTCOffset),
		FieldGeneratedAt: structpb.NewStringValue(generatedAt.UTC().Format(time.RFC3339)),
		FieldRows:        structpb.NewListValue(&structpb.ListValue{Values: rows}),
	}}
}

// TableFromStruct decodes a table and the time it was generated.
func TableFromStruct(s *structpb.Struct) (*table.Table, time.Time, error) {
	var (
		t   table.Table
		err error
		raw string
	)

	if t.Provider, err = stringField(s, FieldProvider); err != nil {
		return nil, time.Time{}, err
	}

	if t.Coordinate.Latitude, err = numberField(s, FieldLatitude); err != nil {
		return nil, time.Time{}, err
	}

	if t.Coordinate.Longitude, err = numberField(s, FieldLongitude); err != nil {
		return nil, time.Time{}, err
	}

	if raw, err = stringField(s, FieldZenith); err != nil {
		return nil, time.Time{}, err
	}

	if t.Zenith, err = solar.ParseZenithKind(raw); err != nil {
		return nil, time.Time{}, err
	}

	if t.UTCOffset, err = numberField(s, FieldUTCOffset); err != nil {
		return nil, time.Time{}, err
	}

	if raw, err = stringField(s, FieldGeneratedAt); err != nil {
		return nil, time.Time{}, err
	}

	generatedAt, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, time.Time{}, fmt.Errorf("%w: %s: %w", ErrBadField, FieldGeneratedAt, err)
	}

	rows := s.GetFields()[FieldRows].GetListValue()
	if rows == nil {
		return nil, time.Time{}, fmt.Errorf("%w: %s", ErrMissingField, FieldRows)
	}

	for i, value := range rows.GetValues() {
		row, err := RowFromStruct(value.GetStructValue())
		if err != nil {
			return nil, time.Time{}, fmt.Errorf("row %d: %w", i, err)
		}

		t.Rows = append(t.Rows, row)
	}

	return &t, generatedAt, nil
}

// MarshalTableJSON renders a table as indented protojson.
func MarshalTableJSON(t *table.Table, generatedAt time.Time) ([]byte, error) {
	options := protojson.MarshalOptions{
		Multiline:       true,
		Indent:          "  ",
		EmitUnpopulated: true,
	}

	data, err := options.Marshal(TableToStruct(t, generatedAt))
	if err != nil {
		return nil, fmt.Errorf("encode table: %w", err)
	}

	return data, nil
}

// UnmarshalTableJSON parses the output of MarshalTableJSON.
func UnmarshalTableJSON(data []byte) (*table.Table, time.Time, error) {
	var s structpb.Struct
	if err := protojson.Unmarshal(data, &s); err != nil {
		return nil, time.Time{}, fmt.Errorf("decode table: %w", err)
	}

	return TableFromStruct(&s)
}

// RowToStruct encodes both events of one date.
func RowToStruct(row table.Row) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		FieldDate: structpb.NewStringValue(row.Date.String()),
		FieldRise: structpb.NewStructValue(ResultToStruct(row.Rise)),
		FieldSet:  structpb.NewStructValue(ResultToStruct(row.Set)),
	}}
}

// RowFromStruct decodes the output of RowToStruct.
func RowFromStruct(s *structpb.Struct) (table.Row, error) {
	var row table.Row

	raw, err := stringField(s, FieldDate)
	if err != nil {
		return row, err
	}

	if row.Date, err = solar.ParseDate(raw); err != nil {
		return row, err
	}

	if row.Rise, err = ResultFromStruct(s.GetFields()[FieldRise].GetStructValue()); err != nil {
		return row, fmt.Errorf("%s: %w", FieldRise, err)
	}

	if row.Set, err = ResultFromStruct(s.GetFields()[FieldSet].GetStructValue()); err != nil {
		return row, fmt.Errorf("%s: %w", FieldSet, err)
	}

	return row, nil
}

func has(s *structpb.Struct, name string) bool {
	_, ok := s.GetFields()[name]

	return ok
}

func stringField(s *structpb.Struct, name string) (string, error) {
	value, ok := s.GetFields()[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	str, ok := value.GetKind().(*structpb.Value_StringValue)
	if !ok {
		return "", fmt.Errorf("%w: %s is not a string", ErrBadField, name)
	}

	return str.StringValue, nil
}

func numberField(s *structpb.Struct, name string) (float64, error) {
	value, ok := s.GetFields()[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrMissingField, name)
	}

	num, ok := value.GetKind().(*structpb.Value_NumberValue)
	if !ok {
		return 0, fmt.Errorf("%w: %s is not a number", ErrBadField, name)
	}

	return num.NumberValue, nil
}

func intField(s *structpb.Struct, name string, lo, hi int) (int, error) {
	num, err := numberField(s, name)
	if err != nil {
		return 0, err
	}

	if num != math.Trunc(num) || num < float64(lo) || num > float64(hi) {
		return 0, fmt.Errorf("%w: %s %v out of [%d, %d]", ErrBadField, name, num, lo, hi)
	}

	return int(num), nil
}

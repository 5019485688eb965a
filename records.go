package main

import (
	"errors"
	"math"
	"sort"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
)

var (
	errMalformedJSON = errors.New("malformed JSON")
	errNotArray      = errors.New("top-level value is not an array")
)

// record is one element of the note feed after field resolution.
type record struct {
	Raw     string // compact JSON of the element
	Text    string
	Time    time.Time
	HasTime bool
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// decodeRecords parses a feed body and returns its records in input order
// together with the normalized snapshot used for change detection.
func decodeRecords(body []byte, loc *time.Location) ([]record, []byte, error) {
	if !gjson.ValidBytes(body) {
		return nil, nil, errMalformedJSON
	}
	root := gjson.ParseBytes(body)
	if !root.IsArray() {
		return nil, nil, errNotArray
	}

	items := root.Array()
	records := make([]record, 0, len(items))
	for _, item := range items {
		records = append(records, resolveRecord(item, loc))
	}
	return records, pretty.Ugly(body), nil
}

func resolveRecord(item gjson.Result, loc *time.Location) record {
	rec := record{Raw: compactJSON(item.Raw)}

	if item.Type == gjson.String {
		rec.Text = item.String()
		return rec
	}
	if !item.IsObject() {
		rec.Text = rec.Raw
		return rec
	}

	switch answer, question := item.Get("answer"), item.Get("question"); {
	case truthy(answer):
		rec.Text = displayValue(answer)
	case truthy(question):
		rec.Text = displayValue(question)
	default:
		rec.Text = rec.Raw
	}

	if ts := item.Get("timestamp"); truthy(ts) {
		rec.Time, rec.HasTime = parseTimestampValue(ts, loc)
	}
	return rec
}

// truthy follows the feed's loose field semantics: absent, null, false,
// zero and empty string all count as missing.
func truthy(r gjson.Result) bool {
	switch r.Type {
	case gjson.Null, gjson.False:
		return false
	case gjson.String:
		return r.Str != ""
	case gjson.Number:
		return r.Num != 0 && !math.IsNaN(r.Num)
	default:
		return true
	}
}

func displayValue(r gjson.Result) string {
	if r.Type == gjson.String {
		return r.Str
	}
	return compactJSON(r.Raw)
}

func compactJSON(raw string) string {
	return string(pretty.Ugly([]byte(raw)))
}

func parseTimestampValue(r gjson.Result, loc *time.Location) (time.Time, bool) {
	if r.Type == gjson.Number {
		return time.UnixMilli(int64(r.Num)).In(loc), true
	}
	if r.Type != gjson.String {
		return time.Time{}, false
	}
	return parseTimestamp(r.Str, loc)
}

func parseTimestamp(s string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// sortRecords orders records by ascending timestamp. Records without a
// usable timestamp come first; ties keep input order.
func sortRecords(records []record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i], records[j]
		switch {
		case !a.HasTime:
			return b.HasTime
		case !b.HasTime:
			return false
		default:
			return a.Time.Before(b.Time)
		}
	})
}

func timeLabel(rec record, loc *time.Location) string {
	if !rec.HasTime {
		return ""
	}
	if loc != nil {
		return rec.Time.In(loc).Format("15:04")
	}
	return rec.Time.Format("15:04")
}

package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

var errEmptyAnswer = errors.New("answer is empty")

// localISO matches the zone-less timestamps the feed has always used.
const localISO = "2006-01-02T15:04:05.000000"

// appendAnswer adds one answer record to the JSON list stored at path. A
// missing, unreadable or non-list file starts a fresh list.
func appendAnswer(path, answer string, now time.Time) error {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return errEmptyAnswer
	}

	list := []byte("[]")
	if data, err := os.ReadFile(path); err == nil && gjson.ValidBytes(data) && gjson.ParseBytes(data).IsArray() {
		list = data
	}

	entry := []byte(`{}`)
	var err error
	for _, kv := range [][2]string{
		{"question", composeQuestion},
		{"answer", answer},
		{"timestamp", now.Format(localISO)},
	} {
		if entry, err = sjson.SetBytes(entry, kv[0], kv[1]); err != nil {
			return fmt.Errorf("build entry: %w", err)
		}
	}

	list, err = sjson.SetRawBytes(list, "-1", entry)
	if err != nil {
		return fmt.Errorf("append entry: %w", err)
	}
	out := pretty.PrettyOptions(list, &pretty.Options{Width: 0, Indent: "    "})

	if err := os.WriteFile(path, out, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Package sink serializes contact records to their tabular output form.
package sink

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/channelscout/channelscout/internal/engine"
	"github.com/channelscout/channelscout/internal/engine/contacts"
)

// descriptionLimit caps the description column, in runes.
const descriptionLimit = 500

// Columns is the fixed CSV header, consumed downstream by the csvtool
// binaries.
var Columns = []string{
	"channel_name", "channel_url", "handle", "subscriber_count",
	"emails", "instagram", "twitter", "facebook", "tiktok",
	"twitch", "discord", "linkedin", "website", "description",
}

// Write serializes records to w. Absent optional fields become empty
// strings; no single record can fail the write.
func Write(w io.Writer, records []*contacts.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Columns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		if err := cw.Write(row(rec)); err != nil {
			return fmt.Errorf("write record %q: %w", rec.ChannelURL, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteFile serializes records to a CSV file at path.
func WriteFile(path string, records []*contacts.Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func row(rec *contacts.Record) []string {
	fields := []string{
		rec.ChannelName,
		rec.ChannelURL,
		rec.Handle,
		strconv.FormatInt(rec.Subscribers, 10),
		strings.Join(rec.Emails.Sorted(), ", "),
	}
	for _, cat := range contacts.Categories {
		fields = append(fields, rec.Links[cat])
	}
	return append(fields, engine.TruncateRunes(rec.Description, descriptionLimit, ""))
}

package ical

import (
	"bytes"
	"strings"
	"time"

	"rentdesk/shared/daterange"
)

const (
	dateLayout  = "20060102"
	stampLayout = "20060102T150405Z"
	lineLimit   = 75
	crlf        = "\r\n"
)

// Event is an all-day block covering [Start, End).
type Event struct {
	UID     string
	Summary string
	Start   time.Time
	End     time.Time
}

func (e Event) Stay() daterange.Range {
	return daterange.New(e.Start, e.End)
}

type Calendar struct {
	Name   string
	Events []Event
}

var textEscaper = strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`)

var textUnescaper = strings.NewReplacer(`\\`, `\`, `\;`, ";", `\,`, ",", `\n`, "\n", `\N`, "\n")

// Encode renders events as an iCalendar document with all-day VEVENTs.
func Encode(productID, name string, events []Event, stamp time.Time) []byte {
	var buf bytes.Buffer

	write := func(line string) {
		for len(line) > lineLimit {
			cut := lineLimit
			for cut > 0 && !startsRune(line[cut]) {
				cut--
			}

			buf.WriteString(line[:cut] + crlf)
			line = " " + line[cut:]
		}

		buf.WriteString(line + crlf)
	}

	write("BEGIN:VCALENDAR")
	write("VERSION:2.0")
	write("PRODID:" + productID)
	write("CALSCALE:GREGORIAN")
	write("METHOD:PUBLISH")
	write("X-WR-CALNAME:" + textEscaper.Replace(name))

	dtStamp := stamp.UTC().Format(stampLayout)

	for _, event := range events {
		write("BEGIN:VEVENT")
		write("UID:" + event.UID)
		write("DTSTAMP:" + dtStamp)
		write("DTSTART;VALUE=DATE:" + daterange.Day(event.Start).Format(dateLayout))
		write("DTEND;VALUE=DATE:" + daterange.Day(event.End).Format(dateLayout))
		write("SUMMARY:" + textEscaper.Replace(event.Summary))
		write("TRANSP:OPAQUE")
		write("END:VEVENT")
	}

	write("END:VCALENDAR")

	return buf.Bytes()
}

func startsRune(b byte) bool {
	return b&0xC0 != 0x80
}

// Parse reads the VEVENTs of an iCalendar document as day ranges. Timed events
// keep the calendar dates they are written with, and an end on the start day
// blocks that one day. Cancelled events are dropped.
func Parse(body []byte) (Calendar, error) {
	lines := unfold(string(bytes.TrimPrefix(body, []byte("\xef\xbb\xbf"))))
	if len(lines) == 0 || !strings.EqualFold(strings.TrimSpace(lines[0]), "BEGIN:VCALENDAR") {
		return Calendar{}, ErrNotCalendar
	}

	var (
		cal       Calendar
		current   *Event
		cancelled bool
	)

	for _, line := range lines {
		name, value := property(line)

		switch {
		case name == "BEGIN" && strings.EqualFold(value, "VEVENT"):
			current = &Event{}
			cancelled = false
		case name == "END" && strings.EqualFold(value, "VEVENT"):
			if current != nil && !cancelled && !current.Start.IsZero() {
				if !current.End.After(current.Start) {
					current.End = current.Start.AddDate(0, 0, 1)
				}

				cal.Events = append(cal.Events, *current)
			}

			current = nil
		case name == "X-WR-CALNAME" && current == nil:
			cal.Name = textUnescaper.Replace(value)
		case current == nil:
		case name == "UID":
			current.UID = value
		case name == "SUMMARY":
			current.Summary = textUnescaper.Replace(value)
		case name == "DTSTART":
			current.Start = parseDate(value)
		case name == "DTEND":
			current.End = parseDate(value)
		case name == "STATUS":
			cancelled = strings.EqualFold(value, "CANCELLED")
		}
	}

	return cal, nil
}

func unfold(doc string) []string {
	raw := strings.Split(strings.ReplaceAll(doc, crlf, "\n"), "\n")

	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if (strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")) && len(lines) > 0 {
			lines[len(lines)-1] += line[1:]

			continue
		}

		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}

	return lines
}

// property splits NAME;PARAMS:VALUE, skipping colons inside quoted parameters.
func property(line string) (name, value string) {
	quoted := false

	for i, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
		case r == ':' && !quoted:
			name, _, _ = strings.Cut(line[:i], ";")

			return strings.ToUpper(strings.TrimSpace(name)), strings.TrimSpace(line[i+1:])
		}
	}

	return strings.ToUpper(strings.TrimSpace(line)), ""
}

func parseDate(value string) time.Time {
	if len(value) < len(dateLayout) {
		return time.Time{}
	}

	day, err := time.Parse(dateLayout, value[:len(dateLayout)])
	if err != nil {
		return time.Time{}
	}

	return day
}

package calendar

import (
	"bytes"
	"fmt"
	"time"

	"github.com/clubhub-dev/clubhub/internal/domain/entity"
	ics "github.com/arran4/golang-ical"
)

const productID = "-//clubhub//EN"

// ExportPostsToICS converts posts into an iCalendar document, one VEVENT per post.
// Posts without a start date are skipped. A post without an end date lasts one hour.
func ExportPostsToICS(posts []entity.Post, now time.Time) ([]byte, error) {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(productID)
	cal.SetVersion("2.0")
	cal.SetCalscale("GREGORIAN")

	for _, post := range posts {
		if post.DateStart.IsZero() {
			continue
		}

		e := cal.AddEvent(fmt.Sprintf("post-%d@clubhub", post.ID))
		e.SetDtStampTime(now)
		e.SetCreatedTime(post.DatePosted)
		e.SetModifiedAt(now)
		e.SetStartAt(post.DateStart)
		if !post.DateEnd.IsZero() {
			e.SetEndAt(post.DateEnd)
		} else {
			e.SetEndAt(post.DateStart.Add(time.Hour))
		}

		e.SetSummary(post.Title)
		e.SetDescription(post.Content)
		if post.Location != "" {
			e.SetLocation(post.Location)
		}
		e.SetStatus(ics.ObjectStatusConfirmed)
		e.SetTimeTransparency(ics.TransparencyOpaque)
		e.SetClass(ics.ClassificationPublic)
		e.SetSequence(0)

		dayAlarm := e.AddAlarm()
		dayAlarm.SetAction(ics.ActionDisplay)
		dayAlarm.AddProperty("TRIGGER;VALUE=DURATION", "-P1D")
		dayAlarm.SetDescription(fmt.Sprintf("Reminder: %s (tomorrow)", post.Title))
	}

	var buf bytes.Buffer
	if err := cal.SerializeTo(&buf); err != nil {
		return nil, fmt.Errorf("error serializing calendar: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportPostToICS is ExportPostsToICS for a single post.
func ExportPostToICS(post entity.Post, now time.Time) ([]byte, error) {
	return ExportPostsToICS([]entity.Post{post}, now)
}

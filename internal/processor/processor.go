package processor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gemcal/internal/database"
	"gemcal/internal/event"
	"gemcal/internal/extract"
	"gemcal/internal/gcallink"
	"gemcal/internal/gemini"
	"gemcal/internal/notify"
	"gemcal/internal/resolve"
)

// User-facing replies. Every failure maps to one of these two; internal
// detail (block reasons, raw output, exceptions) is only logged and traced.
const (
	ReplyCouldNotUnderstand = "Sorry, I couldn't understand the event details from your message. " +
		"Please try rephrasing or be more specific about the date and time."
	ReplySomethingWentWrong = "Sorry, something went wrong while creating the calendar link."
)

// LLM extracts raw structured output from free text.
type LLM interface {
	Extract(ctx context.Context, text string) (string, error)
	IsConfigured() bool
}

// Calendar optionally inserts resolved events directly.
type Calendar interface {
	InsertEvent(ctx context.Context, ev *event.Event) (string, error)
	IsConfigured() bool
}

// Config wires the pipeline's collaborators. DB, Calendar, and Notifier
// are optional.
type Config struct {
	LLM       LLM
	Resolver  *resolve.Resolver
	ZoneLabel string
	DB        *database.DB
	Calendar  Calendar
	Notifier  notify.Notifier
	Now       func() time.Time
}

// Processor runs the pipeline for one inbound message: extract, parse,
// resolve, format. No state is shared across requests.
type Processor struct {
	llm       LLM
	resolver  *resolve.Resolver
	zoneLabel string
	db        *database.DB
	calendar  Calendar
	notifier  notify.Notifier
	now       func() time.Time
}

// New creates a new message processor
func New(cfg Config) *Processor {
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Processor{
		llm:       cfg.LLM,
		resolver:  cfg.Resolver,
		zoneLabel: cfg.ZoneLabel,
		db:        cfg.DB,
		calendar:  cfg.Calendar,
		notifier:  cfg.Notifier,
		now:       now,
	}
}

// HandleText processes one message and returns the reply to send. All
// failures are caught here and converted to a user-facing reply; none
// propagates to the transport.
func (p *Processor) HandleText(ctx context.Context, chatID int64, text string) string {
	raw, err := p.llm.Extract(ctx, text)
	if err != nil {
		if errors.Is(err, gemini.ErrBlocked) {
			fmt.Printf("Processor: request blocked: %v\n", err)
			p.trace(chatID, text, "", database.TraceStatusBlocked, err.Error(), nil)
		} else {
			fmt.Printf("Processor: generation service error: %v\n", err)
			p.trace(chatID, text, "", database.TraceStatusUnavailable, err.Error(), nil)
		}
		return ReplyCouldNotUnderstand
	}

	fields, err := extract.Parse(raw)
	if err != nil {
		fmt.Printf("Processor: malformed model output: %v (raw: %s)\n", err, raw)
		p.trace(chatID, text, raw, database.TraceStatusMalformed, err.Error(), nil)
		return ReplyCouldNotUnderstand
	}

	ev, err := p.resolver.Resolve(fields, p.now())
	if err != nil {
		fmt.Printf("Processor: resolution failed: %v\n", err)
		p.trace(chatID, text, raw, database.TraceStatusNoStartTime, err.Error(), nil)
		return ReplyCouldNotUnderstand
	}

	link, err := gcallink.Link(ev)
	if err != nil {
		fmt.Printf("Processor: link formatting failed: %v\n", err)
		p.trace(chatID, text, raw, database.TraceStatusLinkError, err.Error(), ev)
		return ReplySomethingWentWrong
	}

	reply := gcallink.Message(ev, p.zoneLabel, link)

	if p.calendar != nil && p.calendar.IsConfigured() {
		if id, err := p.calendar.InsertEvent(ctx, ev); err != nil {
			fmt.Printf("Processor: direct calendar insert failed: %v\n", err)
		} else {
			fmt.Printf("Processor: inserted event %s into calendar\n", id)
			reply += "\nAlso added directly to your Google Calendar."
		}
	}

	if p.notifier != nil && p.notifier.IsConfigured() {
		if err := p.notifier.Send(ctx, ev, link); err != nil {
			fmt.Printf("Processor: %s notification failed: %v\n", p.notifier.Name(), err)
		}
	}

	p.trace(chatID, text, raw, database.TraceStatusOK, "", ev)
	return reply
}

// trace persists a diagnostic record. Trace failures are logged and ignored;
// diagnostics must never fail a request.
func (p *Processor) trace(chatID int64, text, raw, status, detail string, ev *event.Event) {
	if p.db == nil {
		return
	}

	t := database.ExtractionTrace{
		ChatID:      chatID,
		MessageText: text,
		RawOutput:   raw,
		Status:      status,
		Detail:      detail,
	}
	if ev != nil {
		t.EventTitle = &ev.Title
		start, end := ev.Start, ev.End
		t.EventStart = &start
		t.EventEnd = &end
	}

	if err := p.db.CreateExtractionTrace(t); err != nil {
		fmt.Printf("Processor: failed to record trace: %v\n", err)
	}
}

package services

import (
	"context"
	"emergency-response-service/internal/domain"
	"emergency-response-service/internal/platform/obs"
	"emergency-response-service/internal/ports"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
)

// What was dispatched by a successful SOS.
type SOSReceipt struct {
	Recipients []string
	Message    string
	Location   domain.Coordinate
	SentAt     time.Time
}

// SOSDispatcher alerts every stored contact with the user's live location.
type SOSDispatcher struct {
	contacts  *ContactStore
	locator   *LocationResolver
	messenger ports.Messenger
	now       func() time.Time
}

func NewSOSDispatcher(contacts *ContactStore, locator *LocationResolver, messenger ports.Messenger) *SOSDispatcher {
	return &SOSDispatcher{
		contacts:  contacts,
		locator:   locator,
		messenger: messenger,
		now:       time.Now,
	}
}

// WithLocator returns a copy of d resolving location through locator.
func (d *SOSDispatcher) WithLocator(locator *LocationResolver) *SOSDispatcher {
	cp := *d
	cp.locator = locator
	return &cp
}

// Send runs the dispatch steps in order:
//  1. load contacts; none → domain.ErrNoContacts before any location or transport call
//  2. resolve a fresh location → domain.ErrLocationUnavailable on failure
//  3. compose the message with the map link
//  4. send to every contact phone in one transport call
//  5. only a "sent" report succeeds; anything else is domain.ErrSendFailed
func (d *SOSDispatcher) Send(ctx context.Context) (_ SOSReceipt, err error) {
	defer obs.Time(ctx, "sos.Send")(&err)
	defer func() { obs.ObserveSOS(sosOutcome(err)) }()

	contacts, err := d.contacts.List(ctx)
	if err != nil {
		return SOSReceipt{}, fmt.Errorf("send sos: %w", err)
	}
	if len(contacts) == 0 {
		return SOSReceipt{}, fmt.Errorf("send sos: %w", domain.ErrNoContacts)
	}

	coord, err := d.locator.Resolve(ctx)
	if err != nil {
		return SOSReceipt{}, fmt.Errorf("send sos: %w", err)
	}

	message := domain.ComposeSOSMessage(coord)
	recipients := domain.Phones(contacts)

	report, err := d.messenger.Send(ctx, recipients, message)
	if err != nil {
		return SOSReceipt{}, fmt.Errorf("send sos: %w: %w", domain.ErrSendFailed, err)
	}
	if report.Result != ports.SendResultSent {
		return SOSReceipt{}, fmt.Errorf("send sos: %w: transport reported %q", domain.ErrSendFailed, report.Result)
	}

	log.Info().
		Str("req_id", obs.RequestID(ctx)).
		Int("recipients", len(recipients)).
		Msg("sos dispatched")

	return SOSReceipt{
		Recipients: recipients,
		Message:    message,
		Location:   coord,
		SentAt:     d.now(),
	}, nil
}

func sosOutcome(err error) string {
	switch {
	case err == nil:
		return "sent"
	case errors.Is(err, domain.ErrNoContacts):
		return "no_contacts"
	case errors.Is(err, domain.ErrLocationUnavailable):
		return "location_unavailable"
	case errors.Is(err, domain.ErrSendFailed):
		return "send_failed"
	default:
		return "error"
	}
}

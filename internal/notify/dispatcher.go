package notify

import (
	"fmt"
	"log"
	"time"

	"tantawan/internal/models"
)

// Dispatcher fires best-effort order notifications: an HTML email to the
// restaurant and a plain-text ticket to the email-to-print service. Both are
// at-most-once; a failure is logged and swallowed.
type Dispatcher struct {
	mailer          Mailer
	restaurantEmail string
	printerEmail    string
	timeout         time.Duration
}

func NewDispatcher(mailer Mailer, restaurantEmail, printerEmail string, timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		mailer:          mailer,
		restaurantEmail: restaurantEmail,
		printerEmail:    printerEmail,
		timeout:         timeout,
	}
}

// Dispatch detaches both sends and returns immediately. The two attempts are
// independent; neither outcome affects the other or the caller.
func (d *Dispatcher) Dispatch(order models.Order) {
	ticket := TicketText(order)

	go d.send("restaurant notification", order.OrderNumber, Message{
		To:      d.restaurantEmail,
		Subject: fmt.Sprintf("Neue Bestellung #%s - Tantawan", order.OrderNumber),
		Text:    ticket,
		HTML:    EmailHTML(order),
	})

	go d.send("printer ticket", order.OrderNumber, Message{
		To:      d.printerEmail,
		Subject: fmt.Sprintf("PRINT: Bestellung #%s", order.OrderNumber),
		Text:    ticket,
	})
}

func (d *Dispatcher) send(kind, orderNumber string, m Message) {
	if d.mailer == nil {
		log.Printf("[NOTIFY] [WARN] %s for %s skipped: SMTP not configured", kind, orderNumber)
		return
	}
	if m.To == "" {
		log.Printf("[NOTIFY] [WARN] %s for %s skipped: recipient not configured", kind, orderNumber)
		return
	}

	done := make(chan error, 1)
	go func() {
		done <- d.mailer.Send(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("[NOTIFY] [ERROR] %s for %s failed: %v", kind, orderNumber, err)
			return
		}
		log.Printf("[NOTIFY] [INFO] %s for %s sent to %s", kind, orderNumber, m.To)
	case <-time.After(d.timeout):
		log.Printf("[NOTIFY] [ERROR] %s for %s timed out after %s", kind, orderNumber, d.timeout)
	}
}

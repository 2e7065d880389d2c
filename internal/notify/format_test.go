package notify

import (
	"strings"
	"testing"
	"time"

	"tantawan/internal/models"
)

func sampleOrder() models.Order {
	created := time.Date(2025, 6, 1, 10, 15, 0, 0, time.UTC)
	return models.Order{
		ID:          "0d7f3c9a-1111-2222-3333-444455556666",
		OrderNumber: "TW-20250601-0007",
		Items: []models.OrderItem{
			{MenuItemID: "pad-thai", Name: "Pad Thai", Price: 16.50, Quantity: 2},
			{MenuItemID: "curry", Name: "Green Curry", Price: 19.90, Quantity: 1},
		},
		Customer: models.Customer{
			Name:  "Anna Müller",
			Phone: "0791234567",
		},
		PickupTime: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		Total:      52.90,
		Status:     models.StatusPending,
		CreatedAt:  created,
		UpdatedAt:  created,
	}
}

func TestTicketTextLayout(t *testing.T) {
	ticket := TicketText(sampleOrder())

	for _, want := range []string{
		"Bestellnummer: TW-20250601-0007",
		"Datum: 01.06.2025",
		"Abholzeit: 12:00",
		"Name: Anna Müller",
		"Telefon: 0791234567",
		"- 2x Pad Thai (CHF 16.50)",
		"- 1x Green Curry (CHF 19.90)",
		"TOTAL: CHF 52.90",
		"Keine Notizen",
		"Status: PENDING",
	} {
		if !strings.Contains(ticket, want) {
			t.Fatalf("ticket missing %q:\n%s", want, ticket)
		}
	}
}

func TestTicketTextIncludesNotes(t *testing.T) {
	order := sampleOrder()
	order.Customer.Notes = "ohne Koriander bitte"

	ticket := TicketText(order)
	if !strings.Contains(ticket, "ohne Koriander bitte") {
		t.Fatalf("ticket missing customer notes:\n%s", ticket)
	}
	if strings.Contains(ticket, "Keine Notizen") {
		t.Fatal("placeholder must not appear when notes are present")
	}
}

func TestEmailHTMLContent(t *testing.T) {
	body := EmailHTML(sampleOrder())

	for _, want := range []string{
		"Bestellnummer: TW-20250601-0007",
		"Anna Müller",
		"CHF 33.00", // line subtotal 2 x 16.50
		"CHF 52.90",
		"PENDING",
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("email body missing %q", want)
		}
	}
}

func TestEmailHTMLEscapesCustomerInput(t *testing.T) {
	order := sampleOrder()
	order.Customer.Name = "<script>alert(1)</script>"

	body := EmailHTML(order)
	if strings.Contains(body, "<script>") {
		t.Fatal("customer-controlled fields must be escaped")
	}
}

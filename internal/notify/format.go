package notify

import (
	"fmt"
	"html"
	"strings"

	"tantawan/internal/models"
)

// TicketText renders the plain-text kitchen ticket sent to the email-to-print
// service. The layout is fixed; the kitchen reads it off thermal paper.
func TicketText(order models.Order) string {
	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "- %dx %s (CHF %.2f)\n", item.Quantity, item.Name, item.Price)
	}

	notes := order.Customer.Notes
	if notes == "" {
		notes = "Keine Notizen"
	}

	return fmt.Sprintf(`=== NEUE BESTELLUNG ===
Bestellnummer: %s
Datum: %s
Abholzeit: %s

KUNDE:
Name: %s
Telefon: %s

BESTELLUNG:
%s
TOTAL: CHF %.2f

NOTIZEN:
%s

Status: %s
Bestellt am: %s

=== TANTAWAN RESTAURANT ===`,
		order.OrderNumber,
		order.PickupTime.Format("02.01.2006"),
		order.PickupTime.Format("15:04"),
		order.Customer.Name,
		order.Customer.Phone,
		items.String(),
		order.Total,
		notes,
		strings.ToUpper(string(order.Status)),
		order.CreatedAt.Format("02.01.2006 15:04"),
	)
}

// EmailHTML renders the restaurant notification email body.
func EmailHTML(order models.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&rows, `<tr><td>%s</td><td style="text-align: center;">%d</td><td style="text-align: right;">CHF %.2f</td><td style="text-align: right;">CHF %.2f</td></tr>`,
			html.EscapeString(item.Name), item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	notesBlock := ""
	if order.Customer.Notes != "" {
		notesBlock = fmt.Sprintf(`<div class="notes"><h3>Notizen</h3><p>%s</p></div>`,
			html.EscapeString(order.Customer.Notes))
	}

	return fmt.Sprintf(`<html>
<head>
<style>
body { font-family: Arial, sans-serif; color: #333; }
.header { background-color: #ECEC75; padding: 20px; text-align: center; }
.order-info { background-color: #f8f9fa; padding: 15px; margin: 20px 0; border-left: 4px solid #ECEC75; }
table { width: 100%%; border-collapse: collapse; margin: 20px 0; }
th, td { padding: 10px; text-align: left; border-bottom: 1px solid #ddd; }
.total { background-color: #ECEC75; font-weight: bold; }
.notes { background-color: #fff3cd; padding: 15px; margin: 20px 0; border: 1px solid #ffeeba; }
</style>
</head>
<body>
<div class="header">
<h1>Neue Bestellung bei Tantawan</h1>
<h2>Bestellnummer: %s</h2>
</div>
<div class="order-info">
<p><strong>Kunde:</strong> %s</p>
<p><strong>Telefon:</strong> %s</p>
<p><strong>Abholzeit:</strong> %s</p>
<p><strong>Status:</strong> %s</p>
</div>
<table>
<thead><tr><th>Gericht</th><th style="text-align: center;">Menge</th><th style="text-align: right;">Preis</th><th style="text-align: right;">Gesamt</th></tr></thead>
<tbody>
%s
<tr class="total"><td colspan="3" style="text-align: right;"><strong>GESAMT:</strong></td><td style="text-align: right;"><strong>CHF %.2f</strong></td></tr>
</tbody>
</table>
%s
<hr>
<p style="text-align: center; color: #666; font-size: 12px;">
Bestellt am %s Uhr<br>
Tantawan Restaurant - Z&uuml;rcherstrasse 232, Frauenfeld
</p>
</body>
</html>`,
		order.OrderNumber,
		html.EscapeString(order.Customer.Name),
		html.EscapeString(order.Customer.Phone),
		order.PickupTime.Format("02.01.2006 15:04"),
		strings.ToUpper(string(order.Status)),
		rows.String(),
		order.Total,
		notesBlock,
		order.CreatedAt.Format("02.01.2006 15:04"),
	)
}

package notifications

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/epicurean/epicurean/app/models"
	"github.com/epicurean/epicurean/config"
	"github.com/epicurean/epicurean/pkg/mail"
)

// ConfirmationEmailJob sends the order confirmation email off the request
// path. Queued on every successful checkout.
type ConfirmationEmailJob struct {
	Order models.Order `json:"order"`
}

func (j ConfirmationEmailJob) Handle() error {
	o := j.Order
	if o.CustomerEmail == "" {
		return nil
	}

	subject := fmt.Sprintf("Your %s order is confirmed", config.RestaurantName())
	return mail.To(o.CustomerEmail).
		Subject(subject).
		Body(j.body()).
		Send()
}

func (j ConfirmationEmailJob) body() string {
	o := j.Order

	var items strings.Builder
	for _, line := range o.Items {
		fmt.Fprintf(&items, "<li>%s x%d - $%.2f</li>",
			html.EscapeString(line.Name), line.Quantity, line.UnitPrice*float64(line.Quantity))
	}

	instructions := o.DeliveryInstructions
	if instructions == "" {
		instructions = "None"
	}

	return fmt.Sprintf(`<h2>Thank you for your order, %s!</h2>
<p>Order #%s placed %s.</p>
<ul>%s</ul>
<p>Subtotal: $%.2f<br>
Delivery fee: $%.2f<br>
Tax: $%.2f<br>
<strong>Total: $%.2f</strong></p>
<p>Payment: %s<br>
Delivery to: %s, %s %s<br>
Instructions: %s<br>
Estimated delivery: %s</p>
<p>%s · %s</p>`,
		html.EscapeString(o.CustomerName),
		shortID(o.ID),
		time.Now().Format("Jan 2, 2006 at 3:04 PM"),
		items.String(),
		o.Subtotal,
		o.DeliveryFee,
		o.Tax,
		o.Total,
		paymentMethodLabel(o.PaymentMethod),
		html.EscapeString(o.DeliveryAddress),
		html.EscapeString(o.City),
		html.EscapeString(o.PostalCode),
		html.EscapeString(instructions),
		html.EscapeString(o.EstimatedDelivery),
		config.RestaurantName(),
		config.RestaurantPhone(),
	)
}

func paymentMethodLabel(method string) string {
	switch method {
	case "card":
		return "Credit Card"
	case "cash":
		return "Cash on Delivery"
	default:
		return "Digital Wallet"
	}
}

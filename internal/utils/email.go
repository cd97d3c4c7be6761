package utils

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/wneessen/go-mail"

	"github.com/kamlesh9876/Sweet-Shop-Management-System/internal/models"
)

// SendPurchaseConfirmation mails an order summary to the buyer. Callers run
// it after the purchase transaction has committed, never inside it. When SMTP
// is not configured the mail is skipped silently so local setups keep working.
func SendPurchaseConfirmation(to string, order models.Order) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" || to == "" {
		return nil
	}

	msg := mail.NewMsg()
	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@sweetshop.com"
	}
	if err := msg.From(from); err != nil {
		return err
	}
	if err := msg.To(to); err != nil {
		return err
	}
	msg.Subject("Your Sweet Shop order " + order.ID)
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	port := 587
	if p, err := strconv.Atoi(os.Getenv("SMTP_PORT")); err == nil && p > 0 {
		port = p
	}
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	)
	if err != nil {
		return err
	}

	log.Println("📤 Sending order confirmation to", to)
	return client.DialAndSend(msg)
}

func orderConfirmationHTML(order models.Order) string {
	rows := ""
	for _, item := range order.Items {
		rows += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>$%.2f</td>
				<td>$%.2f</td>
			</tr>`, item.SweetName, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="en">
<body style="font-family: Arial, sans-serif; background-color: #fff7f0; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Thank you for your purchase!</h2>
		<p>Order <strong>%s</strong> is being prepared. Show the pickup QR code at the counter.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Sweet</th>
					<th style="padding: 10px; text-align: left;">Qty</th>
					<th style="padding: 10px; text-align: left;">Unit price</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
			<tfoot>
				<tr>
					<td colspan="3" style="padding: 10px; text-align: right; font-weight: bold;">Total:</td>
					<td style="padding: 10px; font-weight: bold;">$%.2f</td>
				</tr>
			</tfoot>
		</table>
		<p style="color: #555;">The Sweet Shop team</p>
	</div>
</body>
</html>`, order.ID, rows, order.Total)
}

package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// OrderConfirmationData feeds the confirmation email template.
type OrderConfirmationData struct {
	OrderCode       string
	CustomerName    string
	Items           string
	Subtotal        float64
	PromoDiscount   float64
	LoyaltyDiscount float64
	Total           float64
	PointsEarned    int
	PaymentMethod   string
	Address         string
	DetailLink      string
}

// SendOrderConfirmationEmail sends the confirmation asynchronously so the
// checkout response is not delayed.
func SendOrderConfirmationEmail(to string, data OrderConfirmationData, qrPNG []byte) {
	go func() {
		tmplPath := "templates/order_confirmation.html"
		tmpl, err := template.ParseFiles(tmplPath)
		if err != nil {
			log.Printf("order confirmation template load failed: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("order confirmation template render failed: %v", err)
			return
		}

		host := os.Getenv("SMTP_HOST")
		portStr := os.Getenv("SMTP_PORT")
		username := os.Getenv("SMTP_USERNAME")
		password := os.Getenv("SMTP_PASSWORD")
		from := os.Getenv("SMTP_FROM")

		port, _ := strconv.Atoi(portStr)

		m := gomail.NewMessage()
		m.SetHeader("From", from)
		m.SetHeader("To", to)
		m.SetHeader("Subject", "Order confirmed #"+data.OrderCode)
		m.SetBody("text/html", body.String())

		if len(qrPNG) > 0 {
			m.Embed("order_qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrPNG)
				return err
			}), gomail.SetHeader(map[string][]string{
				"Content-Type":        {"image/png"},
				"Content-ID":          {"<order_qr>"},
				"Content-Disposition": {"inline"},
			}))
		}

		d := gomail.NewDialer(host, port, username, password)
		if err := d.DialAndSend(m); err != nil {
			log.Printf("order confirmation email to %s failed: %v", to, err)
		}
	}()
}

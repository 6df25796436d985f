package email

import (
	"fmt"
	"html"
	"time"
)

// BookingConfirmation builds the email sent to a customer after a session is booked.
func BookingConfirmation(to, customerName, sessionTitle string, start, end time.Time) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("Booking confirmed: %s", sessionTitle),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Your session <strong>%s</strong> is confirmed for %s, %s to %s.</p>
<p>If you need to reschedule, please contact the front desk.</p>`,
			html.EscapeString(customerName),
			html.EscapeString(sessionTitle),
			start.Format("Monday, 2 January 2006"),
			start.Format("15:04"),
			end.Format("15:04"),
		),
	}
}

// BookingCancellation builds the email sent to a customer when a session is cancelled.
func BookingCancellation(to, customerName, sessionTitle string, start time.Time) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("Booking cancelled: %s", sessionTitle),
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p>
<p>Your session <strong>%s</strong> on %s has been cancelled.</p>
<p>Please contact the front desk to rebook.</p>`,
			html.EscapeString(customerName),
			html.EscapeString(sessionTitle),
			start.Format("Monday, 2 January 2006 at 15:04"),
		),
	}
}

// NoticeAnnouncement builds the email sent to one customer when a notice is published.
// Content is the raw markdown body; it is delivered as preformatted text rather
// than rendered HTML so provider-side sanitizers cannot mangle it.
func NoticeAnnouncement(to, title, content string) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: fmt.Sprintf("Announcement: %s", title),
		HTML: fmt.Sprintf(
			`<p><strong>%s</strong></p>
<pre style="font-family: inherit; white-space: pre-wrap">%s</pre>`,
			html.EscapeString(title),
			html.EscapeString(content),
		),
	}
}

// PaymentReceipt builds the email sent to a customer after a payment is recorded.
func PaymentReceipt(to, customerName string, amountCents int64, method string, paidAt time.Time) SendRequest {
	return SendRequest{
		To:      []string{to},
		Subject: "Payment received",
		HTML: fmt.Sprintf(
			`<p>Hi %s,</p>
<p>We received your payment of <strong>$%.2f</strong> (%s) on %s.</p>
<p>Thank you.</p>`,
			html.EscapeString(customerName),
			float64(amountCents)/100.0,
			html.EscapeString(method),
			paidAt.Format("2 January 2006"),
		),
	}
}

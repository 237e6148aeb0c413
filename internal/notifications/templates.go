package notifications

import (
	"bytes"
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strconv"
	"strings"

	"hms/pkg/model"
	"hms/pkg/sanitizer"
)

const hotelName = "Spencer Green Hotel"

var reservationTemplate = template.Must(template.New("reservation").Parse(`
<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto; background: #fff;">
  <div style="background: #059669; padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0;">{{.Hotel}}</h1>
    <p style="color: #d1fae5; margin: 10px 0 0 0;">Batu, East Java</p>
  </div>
  <div style="padding: 30px;">
    <h2 style="color: #059669;">Reservation Confirmation</h2>
    <p>Dear {{.GuestName}},</p>
    <p>Thank you for your reservation. Here are your booking details:</p>
    <table style="width: 100%; border-collapse: collapse; margin: 20px 0;">
      <tr><td><strong>Booking Code</strong></td><td>{{.BookingCode}}</td></tr>
      <tr><td><strong>Room Type</strong></td><td>{{.RoomTypeName}}</td></tr>
      <tr><td><strong>Rate Plan</strong></td><td>{{.RatePlanName}}</td></tr>
      <tr><td><strong>Check-in</strong></td><td>{{.CheckIn}}</td></tr>
      <tr><td><strong>Check-out</strong></td><td>{{.CheckOut}}</td></tr>
      <tr><td><strong>Guests</strong></td><td>{{.Guests}}</td></tr>
      {{if .Discount}}<tr><td><strong>Discount</strong></td><td>{{.Discount}}</td></tr>{{end}}
      <tr><td><strong>Total Amount</strong></td><td style="color: #059669; font-weight: bold;">{{.Total}}</td></tr>
    </table>
    <div style="background: #fef3c7; padding: 20px; border-radius: 8px; margin: 20px 0;">
      <h3 style="color: #92400e; margin: 0 0 10px 0;">Payment Instructions</h3>
      <p style="color: #78350f; margin: 0;">Please complete your payment via WhatsApp to confirm your reservation:</p>
      <a href="{{.WhatsAppLink}}" style="display: inline-block; background: #25D366; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; margin-top: 15px;">Contact via WhatsApp</a>
    </div>
    <p style="color: #6b7280; font-size: 14px;">If you have any questions, please don't hesitate to contact us.</p>
  </div>
  <div style="background: #064e3b; padding: 20px; text-align: center;">
    <p style="color: #d1fae5; margin: 0; font-size: 14px;">Spencer Green Hotel Batu</p>
    <p style="color: #a7f3d0; margin: 5px 0 0 0; font-size: 12px;">Jl. Raya Punten No.86, Kec. Bumiaji, Kota Batu, Jawa Timur 65338 Indonesia</p>
  </div>
</div>`))

var passwordResetTemplate = template.Must(template.New("password_reset").Parse(`
<div style="font-family: 'Segoe UI', Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <div style="background: #059669; padding: 30px; text-align: center;">
    <h1 style="color: white; margin: 0;">{{.Hotel}}</h1>
  </div>
  <div style="padding: 30px;">
    <h2 style="color: #059669;">Password Reset Request</h2>
    <p>You requested to reset your password. Click the button below to proceed:</p>
    <a href="{{.Link}}" style="display: inline-block; background: #059669; color: white; padding: 12px 24px; text-decoration: none; border-radius: 8px; margin: 20px 0;">Reset Password</a>
    <p style="color: #6b7280; font-size: 14px;">This link will expire in 1 hour. If you didn't request this, please ignore this email.</p>
  </div>
</div>`))

type reservationView struct {
	Hotel        string
	GuestName    string
	BookingCode  string
	RoomTypeName string
	RatePlanName string
	CheckIn      string
	CheckOut     string
	Guests       int
	Discount     string
	Total        string
	WhatsAppLink template.URL
}

// ReservationConfirmation renders the guest confirmation with a WhatsApp
// payment link to whatsAppNumber.
func ReservationConfirmation(reservation *model.Reservation, whatsAppNumber string) (Email, error) {
	view := reservationView{
		Hotel:        hotelName,
		GuestName:    reservation.GuestName,
		BookingCode:  reservation.BookingCode,
		RoomTypeName: reservation.RoomTypeName,
		RatePlanName: reservation.RatePlanName,
		CheckIn:      reservation.CheckIn,
		CheckOut:     reservation.CheckOut,
		Guests:       reservation.Guests,
		Total:        FormatRupiah(reservation.TotalAmount),
		WhatsAppLink: template.URL(WhatsAppLink(whatsAppNumber, reservation.BookingCode)),
	}
	if reservation.DiscountAmount > 0 {
		view.Discount = FormatRupiah(reservation.DiscountAmount)
	}

	var body bytes.Buffer
	if err := reservationTemplate.Execute(&body, view); err != nil {
		return Email{}, fmt.Errorf("failed to render reservation email: %w", err)
	}
	return Email{
		To:      reservation.GuestEmail,
		Subject: "Reservation Confirmation - " + reservation.BookingCode,
		HTML:    body.String(),
	}, nil
}

func PasswordReset(to, frontendURL, token string) (Email, error) {
	link := strings.TrimSuffix(frontendURL, "/") + "/reset-password?token=" + url.QueryEscape(token)

	var body bytes.Buffer
	err := passwordResetTemplate.Execute(&body, struct {
		Hotel string
		Link  string
	}{hotelName, link})
	if err != nil {
		return Email{}, fmt.Errorf("failed to render password reset email: %w", err)
	}
	return Email{
		To:      to,
		Subject: "Password Reset - " + hotelName,
		HTML:    body.String(),
	}, nil
}

func WhatsAppLink(number, bookingCode string) string {
	text := "Hi,%20I%20want%20to%20complete%20payment%20for%20booking%20" + url.QueryEscape(bookingCode)
	return "https://wa.me/" + sanitizer.WhatsAppDigits(number) + "?text=" + text
}

// FormatRupiah renders amount rounded to whole rupiah with comma grouping,
// e.g. "Rp 1,700,000".
func FormatRupiah(amount float64) string {
	n := int64(math.Round(amount))
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return "Rp " + sign + b.String()
}

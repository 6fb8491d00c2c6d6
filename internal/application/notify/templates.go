package notify

import (
	"fmt"
	"html"
	"time"

	"github.com/jhoicas/pastro-api/internal/application/ports"
	"github.com/jhoicas/pastro-api/internal/domain/entity"
)

// WelcomeEmail mensaje enviado tras un registro confirmado.
func WelcomeEmail(to string) ports.Email {
	return ports.Email{
		To:      to,
		Subject: "Mirë se erdhët në Pastro.com",
		Text:    "Ju jeni regjistruar me sukses ne platformen pastro",
		HTML:    "<p>Ju jeni regjistruar me sukses ne platformen <strong>Pastro</strong>.</p>",
	}
}

// StatusEmail aviso al dueño de una decisión de moderación. reason es opcional.
func StatusEmail(to, companyName string, status entity.CompanyStatus, reason string) ports.Email {
	var msg ports.Email
	msg.To = to
	switch status {
	case entity.StatusApproved:
		msg.Subject = "Kompania juaj u aprovua në Pastro.com"
		msg.Text = fmt.Sprintf("Kompania %s u aprovua dhe tani është e dukshme për klientët.", companyName)
	default:
		msg.Subject = "Kompania juaj nuk u aprovua në Pastro.com"
		msg.Text = fmt.Sprintf("Kompania %s nuk u aprovua.", companyName)
	}
	msg.HTML = "<p>" + html.EscapeString(msg.Text) + "</p>"
	if reason != "" {
		msg.Text += "\nArsyeja: " + reason
		msg.HTML += "<p>Arsyeja: " + html.EscapeString(reason) + "</p>"
	}
	return msg
}

// PasswordResetEmail enlace de recuperación; caduca tras ttl.
func PasswordResetEmail(to, link string, ttl time.Duration) ports.Email {
	expiry := expiryText(ttl)
	return ports.Email{
		To:      to,
		Subject: "Rivendos Fjalëkalimin - Pastro.com",
		Text: "Përshëndetje,\n" +
			"Ne kemi marrë një kërkesë për të rivendosur fjalëkalimin për llogarinë tuaj në Pastro.com.\n\n" +
			"Klikoni në këtë link për të rivendosur fjalëkalimin tuaj:\n" + link + "\n\n" +
			"Ky link skadon në " + expiry + ".\n\n" +
			"Nëse nuk keni kërkuar të rivendosni fjalëkalimin, ju lutemi injoroni këtë email.\n\n" +
			"Faleminderit,\nEkipi i Pastro.com",
		HTML: "<h2>Rivendos Fjalëkalimin</h2>" +
			"<p>Ne kemi marrë një kërkesë për të rivendosur fjalëkalimin për llogarinë tuaj në Pastro.com.</p>" +
			`<p><a href="` + html.EscapeString(link) + `">Rivendos Fjalëkalimin</a></p>` +
			"<p><strong>Ky link skadon në " + expiry + ".</strong></p>" +
			"<p>Nëse nuk keni kërkuar të rivendosni fjalëkalimin, ju lutemi injoroni këtë email.</p>",
	}
}

func expiryText(ttl time.Duration) string {
	if ttl >= time.Hour && ttl%time.Hour == 0 {
		return fmt.Sprintf("%d orë", int(ttl/time.Hour))
	}
	return fmt.Sprintf("%d minuta", int(ttl.Round(time.Minute)/time.Minute))
}

// ContactEmail mensaje de un cliente a una empresa; las respuestas van al cliente.
func ContactEmail(to, from, companyName, message string) ports.Email {
	subject := "Mesazh i ri nga klient"
	if companyName != "" {
		subject += " për " + companyName
	}
	return ports.Email{
		To:      to,
		ReplyTo: from,
		Subject: subject,
		Text: "Mesazh i ri nga klient:\n\nEmail: " + from + "\nKompania: " + companyName +
			"\n\nMesazhi:\n" + message + "\n\n---\nKy mesazh u dërgua përmes platformës Pastro.com",
		HTML: "<h2>Mesazh i ri nga klient</h2>" +
			"<p><strong>Email:</strong> " + html.EscapeString(from) + "</p>" +
			"<p><strong>Kompania:</strong> " + html.EscapeString(companyName) + "</p>" +
			`<p style="white-space: pre-wrap;">` + html.EscapeString(message) + "</p>" +
			"<p>Ky mesazh u dërgua përmes platformës Pastro.com</p>",
	}
}

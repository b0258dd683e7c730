// internal/email/templates/newsletter.go
package templates

import (
	_ "embed"

	"html/template"
	"strings"
	"time"
)

//go:embed newsletter.html
var newsletterHTML string

var newsletterTmpl = template.Must(template.New("newsletter").Parse(newsletterHTML))

type NewsletterData struct {
	Subject        string
	Content        template.HTML // campaign body, already editor-produced HTML
	UnsubscribeURL string
	Year           int
}

// RenderNewsletter wraps a campaign body in the standard newsletter frame.
func RenderNewsletter(data NewsletterData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}

	var buf strings.Builder
	err := newsletterTmpl.Execute(&buf, data)
	return buf.String(), err
}

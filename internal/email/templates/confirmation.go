// internal/email/templates/confirmation.go
package templates

import (
	_ "embed"

	"html/template"
	"strings"
	"time"
)

//go:embed confirmation.html
var confirmationHTML string

var confirmationTmpl = template.Must(template.New("confirmation").Parse(confirmationHTML))

type ConfirmationData struct {
	Name       string
	ConfirmURL string
	Year       int
}

// RenderSubscriptionConfirmation renders the double-opt-in email sent to a
// pending newsletter subscriber.
func RenderSubscriptionConfirmation(data ConfirmationData) (string, error) {
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	if data.Name == "" {
		data.Name = "there"
	}

	var buf strings.Builder
	err := confirmationTmpl.Execute(&buf, data)
	return buf.String(), err
}

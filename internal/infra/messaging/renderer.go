package messaging

import (
	"bytes"
	"fmt"
	"text/template"

	"table-booking/internal/domain/notification"
)

type messageTemplate struct {
	subject *template.Template
	body    *template.Template
}

// TemplateRenderer renders one plain-text template pair per reason.
type TemplateRenderer struct {
	templates map[notification.Reason]messageTemplate
}

type templateData struct {
	Name        string
	SubjectKey  string
	Description string
	Data        map[string]string
}

var defaultTemplates = map[notification.Reason][2]string{
	notification.ReasonEmergencyClosure: {
		`Your reservation on {{index .Data "reservation_date"}} has been cancelled`,
		`Hello {{.Name}},

Unfortunately we had to cancel your reservation on {{index .Data "reservation_date"}} at {{index .Data "reservation_time"}}.
{{.Description}}

The restaurant is closed from {{index .Data "window_start"}} to {{index .Data "window_end"}}.
We apologise for the inconvenience.
`,
	},
	notification.ReasonRatingRequest: {
		`How was your visit on {{index .Data "reservation_date"}}?`,
		`Hello {{.Name}},

Thank you for dining with us on {{index .Data "reservation_date"}}.
We would appreciate a rating for reservation {{.SubjectKey}}.
`,
	},
	notification.ReasonManagerDailyReport: {
		`Daily reservation report {{index .Data "day"}}`,
		`Hello {{.Name}},

{{.Description}}

Guests:      {{index .Data "guests"}}
Pending:     {{index .Data "pending"}}
Confirmed:   {{index .Data "confirmed"}}
In service:  {{index .Data "in_service"}}
Completed:   {{index .Data "completed"}}
Cancelled:   {{index .Data "cancelled"}}
Rejected:    {{index .Data "rejected"}}
`,
	},
}

func NewTemplateRenderer() (*TemplateRenderer, error) {
	r := &TemplateRenderer{templates: make(map[notification.Reason]messageTemplate, len(defaultTemplates))}
	for reason, src := range defaultTemplates {
		subject, err := template.New(reason.String() + ".subject").Option("missingkey=zero").Parse(src[0])
		if err != nil {
			return nil, fmt.Errorf("failed to parse subject template for %q: %w", reason, err)
		}
		body, err := template.New(reason.String() + ".body").Option("missingkey=zero").Parse(src[1])
		if err != nil {
			return nil, fmt.Errorf("failed to parse body template for %q: %w", reason, err)
		}
		r.templates[reason] = messageTemplate{subject: subject, body: body}
	}
	return r, nil
}

func (r *TemplateRenderer) Render(reason notification.Reason, recipient notification.Recipient, payload notification.Payload) (string, string, error) {
	tmpl, ok := r.templates[reason]
	if !ok {
		return "", "", fmt.Errorf("%w: %s", notification.ErrInvalidReason, reason)
	}
	data := templateData{
		Name:        recipient.Name,
		SubjectKey:  payload.SubjectKey,
		Description: payload.Description,
		Data:        payload.Data,
	}
	if data.Data == nil {
		data.Data = map[string]string{}
	}

	var subject, body bytes.Buffer
	if err := tmpl.subject.Execute(&subject, data); err != nil {
		return "", "", fmt.Errorf("failed to render subject: %w", err)
	}
	if err := tmpl.body.Execute(&body, data); err != nil {
		return "", "", fmt.Errorf("failed to render body: %w", err)
	}
	return subject.String(), body.String(), nil
}

package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// Template names used by the notification dispatcher and proposal flow.
const (
	TemplateJobMatch        = "job_match"
	TemplateJobMatchDigest  = "job_match_digest"
	TemplateNewApplication  = "new_application"
	TemplateNewsletter      = "category_newsletter"
	TemplateInvitation      = "proposal_invitation"
	TemplateCredentials     = "account_credentials"
	TemplateWelcome         = "welcome"
)

// JobRef is a single job line in digest and newsletter emails.
type JobRef struct {
	Title string
	URL   string
}

type JobMatchData struct {
	UserName string
	JobTitle string
	JobURL   string
	Skills   []string
}

type DigestData struct {
	UserName string
	Jobs     []JobRef
}

type NewApplicationData struct {
	ApplicantName string
	JobTitle      string
	JobURL        string
}

type InvitationData struct {
	PreviewURL string
}

type CredentialsData struct {
	Email    string
	Password string
	LoginURL string
}

type WelcomeData struct {
	UserName string
}

// subjects maps template name -> language -> subject line.
// Unknown languages fall back to English.
var subjects = map[string]map[string]string{
	TemplateJobMatch: {
		"en": "A new job matches your skills",
		"pl": "Nowe zlecenie pasuje do Twoich umiejętności",
	},
	TemplateJobMatchDigest: {
		"en": "Your daily job matches",
		"pl": "Twoje dzisiejsze dopasowane zlecenia",
	},
	TemplateNewApplication: {
		"en": "New application to your job",
		"pl": "Nowa oferta do Twojego zlecenia",
	},
	TemplateNewsletter: {
		"en": "New jobs in categories you follow",
		"pl": "Nowe zlecenia w obserwowanych kategoriach",
	},
	TemplateInvitation: {
		"en": "We prepared a job offer for you",
		"pl": "Przygotowaliśmy dla Ciebie ofertę zlecenia",
	},
	TemplateCredentials: {
		"en": "Your account credentials",
		"pl": "Dane dostępowe do Twojego konta",
	},
	TemplateWelcome: {
		"en": "Welcome to GigWork",
		"pl": "Witamy w GigWork",
	},
}

// anonymousNames is the placeholder shown when an applicant has no name set.
var anonymousNames = map[string]string{
	"en": "A freelancer",
	"pl": "Wykonawca",
}

// AnonymousName returns the localized placeholder for a nameless applicant.
func AnonymousName(lang string) string {
	if name, ok := anonymousNames[lang]; ok {
		return name
	}
	return anonymousNames["en"]
}

const templateSource = `
{{define "job_match"}}
<p>Hi {{.UserName}},</p>
<p>A new job matching your skills was just published: <a href="{{.JobURL}}">{{.JobTitle}}</a>.</p>
{{if .Skills}}<p>Matched skills: {{range $i, $s := .Skills}}{{if $i}}, {{end}}{{$s}}{{end}}.</p>{{end}}
{{end}}

{{define "job_match_digest"}}
<p>Hi {{.UserName}},</p>
<p>Jobs matching your skills published recently:</p>
<ul>
{{range .Jobs}}<li><a href="{{.URL}}">{{.Title}}</a></li>
{{end}}</ul>
{{end}}

{{define "new_application"}}
<p>{{.ApplicantName}} applied to your job <a href="{{.JobURL}}">{{.JobTitle}}</a>.</p>
{{end}}

{{define "category_newsletter"}}
<p>Hi {{.UserName}},</p>
<p>New jobs in categories you follow:</p>
<ul>
{{range .Jobs}}<li><a href="{{.URL}}">{{.Title}}</a></li>
{{end}}</ul>
{{end}}

{{define "proposal_invitation"}}
<p>We prepared a job offer for you. You can review it without creating an account:</p>
<p><a href="{{.PreviewURL}}">View the offer</a></p>
{{end}}

{{define "account_credentials"}}
<p>An account was created for you.</p>
<p>Login: {{.Email}}<br/>Password: {{.Password}}</p>
<p><a href="{{.LoginURL}}">Sign in</a> and change your password after the first login.</p>
{{end}}

{{define "welcome"}}
<p>Welcome{{if .UserName}}, {{.UserName}}{{end}}!</p>
<p>Your job offer is now live. You can manage it from your dashboard.</p>
{{end}}
`

// RenderedEmail is the output of template rendering.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// Renderer renders named email templates with per-language subjects.
type Renderer struct {
	templates *template.Template
}

func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("email").Parse(templateSource)
	if err != nil {
		return nil, fmt.Errorf("failed to parse email templates: %w", err)
	}
	return &Renderer{templates: tmpl}, nil
}

// Render produces subject and bodies for the given template and language.
func (r *Renderer) Render(name, lang string, data interface{}) (*RenderedEmail, error) {
	langs, ok := subjects[name]
	if !ok {
		return nil, fmt.Errorf("unknown email template: %s", name)
	}
	subject, ok := langs[lang]
	if !ok {
		subject = langs["en"]
	}

	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("failed to render template %s: %w", name, err)
	}

	html := buf.String()
	return &RenderedEmail{
		Subject: subject,
		HTML:    html,
		Text:    htmlToText(html),
	}, nil
}

// htmlToText makes a crude plain-text alternative from rendered HTML.
func htmlToText(html string) string {
	text := strings.ReplaceAll(html, "<br/>", "\n")
	text = strings.ReplaceAll(text, "<br>", "\n")
	text = strings.ReplaceAll(text, "</p>", "\n")
	text = strings.ReplaceAll(text, "</li>", "\n")

	for {
		start := strings.Index(text, "<")
		if start == -1 {
			break
		}
		end := strings.Index(text[start:], ">")
		if end == -1 {
			break
		}
		text = text[:start] + text[start+end+1:]
	}

	return strings.TrimSpace(text)
}

package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	htmpl "html/template"
	"io"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// EmailData defines standard fields for email templates.
type EmailData struct {
	Name           string `json:"Name"`
	Email          string `json:"Email"`
	RecipientEmail string `json:"RecipientEmail"`
	Type           string `json:"Type"`

	CompanyName    string `json:"CompanyName"`
	CompanyAddress string `json:"CompanyAddress"`
	AppName        string `json:"AppName"`
	LogoURL        string `json:"LogoURL"`
	SupportURL     string `json:"SupportURL"`

	IP        string            `json:"IP"`
	Time      string            `json:"Time"`
	UserAgent string            `json:"UserAgent"`
	Changes   map[string]string `json:"Changes"`
}

// ToMap converts EmailData to a map[string]any for EmailJob.Data
func ToMap(d EmailData) map[string]any {
	b, _ := json.Marshal(d)
	var m map[string]any
	_ = json.Unmarshal(b, &m)
	return m
}

// defaultFn supports pipe usage: {{ .Value | default "Fallback" }}
func defaultFn(fallback any, value any) any {
	switch x := value.(type) {
	case string:
		if strings.TrimSpace(x) == "" {
			return fallback
		}
		return x
	case nil:
		return fallback
	default:
		rv := reflect.ValueOf(value)
		if !rv.IsValid() || rv.IsZero() {
			return fallback
		}
		return value
	}
}

func baseFuncs() map[string]any {
	return map[string]any{
		"now":     func() time.Time { return time.Now().UTC() },
		"upper":   strings.ToUpper,
		"default": defaultFn,
	}
}

var (
	htmlFuncMap = htmpl.FuncMap(baseFuncs())
	textFuncMap = texttpl.FuncMap(baseFuncs())
)

// Template names
const (
	Welcome           = "welcome"
	LoginNotification = "login_notification"
	ProfileUpdated    = "profile_updated"
)

// Known reports whether name has a template set.
func Known(name string) bool {
	switch name {
	case Welcome, LoginNotification, ProfileUpdated:
		return true
	}
	return false
}

// ErrUnknownTemplate is returned by Render for names outside Known.
var ErrUnknownTemplate = errors.New("unknown email template")

// Every template is parsed once; a broken file fails at startup.
var (
	textSet = texttpl.Must(texttpl.New("mail").Funcs(textFuncMap).ParseFS(FS, "*.subject.tmpl", "*.text.tmpl"))
	htmlSet = htmpl.Must(htmpl.New("mail").Funcs(htmlFuncMap).ParseFS(FS, "*.html.tmpl"))
)

type executor interface {
	ExecuteTemplate(w io.Writer, name string, data any) error
}

func execute(set executor, file string, data any) (string, error) {
	var buf bytes.Buffer
	if err := set.ExecuteTemplate(&buf, file, data); err != nil {
		return "", fmt.Errorf("render %s: %w", file, err)
	}
	return buf.String(), nil
}

// Render produces the subject, text and html parts of the named email.
// The subject is trimmed so a trailing newline in the file is harmless.
func Render(name string, data any) (subject, text, html string, err error) {
	if !Known(name) {
		return "", "", "", fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	if subject, err = execute(textSet, name+".subject.tmpl", data); err != nil {
		return "", "", "", err
	}
	if text, err = execute(textSet, name+".text.tmpl", data); err != nil {
		return "", "", "", err
	}
	if html, err = execute(htmlSet, name+".html.tmpl", data); err != nil {
		return "", "", "", err
	}
	return strings.TrimSpace(subject), text, html, nil
}

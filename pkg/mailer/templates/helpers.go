package templates

import (
	"time"
)

// Branding is the sender-side identity stamped on every email.
type Branding struct {
	AppName        string
	CompanyName    string
	CompanyAddress string
	LogoURL        string
	SupportURL     string
}

// Option pattern
type Option func(*EmailData)

func WithIP(ip string) Option        { return func(d *EmailData) { d.IP = ip } }
func WithUserAgent(ua string) Option { return func(d *EmailData) { d.UserAgent = ua } }
func WithTime(t time.Time) Option {
	return func(d *EmailData) { d.Time = t.UTC().Format("02 January 2006, 15:04 MST") }
}
func WithChanges(ch map[string]string) Option {
	return func(d *EmailData) { d.Changes = ch }
}

// NewEmailData fills the common fields from b, then applies opts.
func NewEmailData(b Branding, typ, name, email string, opts ...Option) EmailData {
	d := EmailData{
		Name:           name,
		Email:          email,
		RecipientEmail: email,
		Type:           typ,

		CompanyName:    b.CompanyName,
		CompanyAddress: b.CompanyAddress,
		AppName:        b.AppName,
		LogoURL:        b.LogoURL,
		SupportURL:     b.SupportURL,
	}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

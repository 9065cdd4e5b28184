// Package signature renders the HTML mail signature inserted by the mail host.
//
// Values are substituted through html/template, so markup in a profile
// field is escaped instead of being injected into the mail body.
package signature

import (
	"bytes"
	_ "embed"
	"encoding/base64"
	"fmt"
	"html/template"
	"os"
	"strings"

	"github.com/alnah/go-profilestamp/internal/profile"
)

//go:embed assets/signature.html.tmpl
var defaultTemplate string

//go:embed assets/logo.jpg
var logoJPEG []byte

// Fields are the values available to a signature template.
type Fields struct {
	GivenName      string
	Surname        string
	JobTitle       string
	OfficePhone    string
	MobilePhone    string
	OfficeLocation string

	// Logo is the embedded brand image as a data URI.
	Logo template.URL
}

// FieldsFrom reads signature fields from the raw record. The office phone
// is the first business phone. Absent values become empty strings.
func FieldsFrom(rec profile.Record) Fields {
	get := func(key string) string {
		v, _ := rec.String(key)
		return v
	}
	phone, _ := rec.FirstString(profile.KeyBusinessPhones)

	return Fields{
		GivenName:      get(profile.KeyGivenName),
		Surname:        get(profile.KeySurname),
		JobTitle:       get(profile.KeyJobTitle),
		OfficePhone:    phone,
		MobilePhone:    get(profile.KeyMobilePhone),
		OfficeLocation: get(profile.KeyOfficeLocation),
		Logo:           logoURI,
	}
}

// logoURI is computed once; the image never changes at runtime.
var logoURI = template.URL("data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(logoJPEG))

// Renderer renders signatures from a parsed template.
type Renderer struct {
	tmpl *template.Template
}

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	text string
	path string
}

// WithTemplate uses text as the signature template.
func WithTemplate(text string) Option {
	return func(c *rendererConfig) {
		c.text = text
		c.path = ""
	}
}

// WithTemplateFile reads the signature template from path.
// An empty path keeps the built-in template.
func WithTemplateFile(path string) Option {
	return func(c *rendererConfig) {
		if path != "" {
			c.path = path
		}
	}
}

// NewRenderer parses the configured template, the built-in one by default.
func NewRenderer(opts ...Option) (*Renderer, error) {
	cfg := rendererConfig{text: defaultTemplate}
	for _, opt := range opts {
		opt(&cfg)
	}

	text := cfg.text
	if cfg.path != "" {
		data, err := os.ReadFile(cfg.path) // #nosec G304 -- user-specified template
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
		}
		text = string(data)
	}

	tmpl, err := template.New("signature").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return &Renderer{tmpl: tmpl}, nil
}

// Render builds the signature HTML for rec.
func (r *Renderer) Render(rec profile.Record) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.Execute(&buf, FieldsFrom(rec)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrRender, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

// defaultRenderer renders the built-in template.
var defaultRenderer = func() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err) // embedded template is fixed at build time
	}
	return r
}()

// Build renders rec with the built-in template.
func Build(rec profile.Record) (string, error) {
	return defaultRenderer.Render(rec)
}

package templates

import (
	"bytes"
	"embed"
	"encoding/json"
	"fmt"
	htmpl "html/template"
	"reflect"
	"strings"
	texttpl "text/template"
	"time"
)

//go:embed *.tmpl
var FS embed.FS

// Welcome is sent after a user registers.
const Welcome = "welcome"

var subjects = map[string]string{
	Welcome: "Welcome to {{ .AppName | default \"your task tracker\" }}",
}

// EmailData defines the fields available to templates.
type EmailData struct {
	Username string    `json:"Username"`
	Email    string    `json:"Email"`
	AppName  string    `json:"AppName"`
	Time     string    `json:"Time"`
	TimeAt   time.Time `json:"TimeAt"`
}

type Option func(*EmailData)

func WithTime(t time.Time) Option {
	return func(d *EmailData) {
		utc := t.UTC()
		d.TimeAt = utc
		d.Time = utc.Format("02 January 2006, 15:04")
	}
}

// NewWelcomeData builds the job data for a welcome email.
func NewWelcomeData(appName, username, email string, opts ...Option) map[string]any {
	d := EmailData{Username: username, Email: email, AppName: appName}
	for _, o := range opts {
		o(&d)
	}
	return ToMap(d)
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

var funcs = map[string]any{"default": defaultFn}

// Render produces subject, text and HTML bodies for the named template.
func Render(name string, data map[string]any) (string, string, string, error) {
	subjectSrc, ok := subjects[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown template %q", name)
	}
	if data == nil {
		data = map[string]any{}
	}

	subject, err := execText("subject", subjectSrc, data)
	if err != nil {
		return "", "", "", err
	}

	textSrc, err := FS.ReadFile(name + ".txt.tmpl")
	if err != nil {
		return "", "", "", err
	}
	text, err := execText(name, string(textSrc), data)
	if err != nil {
		return "", "", "", err
	}

	htmlT, err := htmpl.New(name + ".html.tmpl").Funcs(funcs).ParseFS(FS, name+".html.tmpl")
	if err != nil {
		return "", "", "", err
	}
	var html bytes.Buffer
	if err := htmlT.Execute(&html, data); err != nil {
		return "", "", "", err
	}
	return subject, strings.TrimSpace(text), html.String(), nil
}

func execText(name, src string, data map[string]any) (string, error) {
	t, err := texttpl.New(name).Funcs(funcs).Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

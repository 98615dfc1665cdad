package template

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/ksyq12/hostprov/internal/provision"
)

// WelcomeData contains data for rendering welcome messages
type WelcomeData struct {
	Username    string
	Domain      string
	Package     string
	Hostname    string
	IP          string
	Nameservers []string
	LoginURL    string
	Password    string
	Reseller    bool
}

// NewWelcomeData builds template data from an account snapshot. login and
// password may be empty.
func NewWelcomeData(info *provision.AccountInfo, login *provision.LoginURL, password string) WelcomeData {
	data := WelcomeData{
		Username:    info.Username,
		Domain:      info.Domain,
		Package:     info.PackageName,
		Hostname:    info.ServerHostname,
		IP:          info.IP,
		Nameservers: info.Nameservers,
		Password:    password,
		Reseller:    info.Reseller,
	}
	if login != nil {
		data.LoginURL = login.LoginURL
	}
	return data
}

// Render renders the welcome message for the given provider
func Render(provider string, data WelcomeData) (string, error) {
	content, err := readTemplate(provider)
	if err != nil {
		return "", err
	}

	funcMap := template.FuncMap{
		"join":  strings.Join,
		"upper": strings.ToUpper,
	}

	tmpl, err := template.New(provider).Funcs(funcMap).Option("missingkey=error").Parse(string(content))
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template: %w", err)
	}

	return buf.String(), nil
}

// Available reports whether a welcome template exists for provider
func Available(provider string) bool {
	_, err := readTemplate(provider)
	return err == nil
}

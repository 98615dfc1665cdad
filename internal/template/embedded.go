package template

import (
	"embed"
	"fmt"
)

//go:embed welcome/*.tmpl
var welcomeTemplates embed.FS

// readTemplate returns the welcome template source for provider
func readTemplate(provider string) ([]byte, error) {
	content, err := welcomeTemplates.ReadFile("welcome/" + provider + ".tmpl")
	if err != nil {
		return nil, fmt.Errorf("no welcome template for provider: %s", provider)
	}
	return content, nil
}

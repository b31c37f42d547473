package email

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
)

//go:embed templates/*.html
var templateFS embed.FS

type leadItemData struct {
	Name     string
	Quantity int
	Subtotal string
}

type leadNotificationData struct {
	Title          string
	Heading        string
	PublicToken    string
	BuyerName      string
	BuyerCompany   string
	BuyerPhone     string
	BuyerEmail     string
	Items          []leadItemData
	EstimatedTotal string
}

func renderEmailTemplate(name string, data interface{}) (string, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return "", fmt.Errorf("parse email template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render email template %s: %w", name, err)
	}
	return buf.String(), nil
}

package whatsapp

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestDeepLinkStripsPhoneFormatting(t *testing.T) {
	link := DeepLink("+52 1 55 1234-5678", "hola")

	if !strings.HasPrefix(link, "https://wa.me/5215512345678?text=") {
		t.Fatalf("unexpected link: %s", link)
	}
}

func TestDeepLinkEscapesText(t *testing.T) {
	link := DeepLink("5215512345678", "Hola, soy Ana & Cia")

	if strings.ContainsAny(link[strings.Index(link, "?text=")+6:], " &") {
		t.Fatalf("expected escaped text, got %s", link)
	}
}

func TestLeadGreetingIncludesFolioAndTotal(t *testing.T) {
	msg := LeadGreeting("Ana Garcia", "Grupo Delta", "a1b2c3", decimal.NewFromFloat(1785))

	for _, want := range []string{"Ana Garcia", "Grupo Delta", "a1b2c3", "$1785.00 MXN"} {
		if !strings.Contains(msg, want) {
			t.Fatalf("expected greeting to contain %q, got %s", want, msg)
		}
	}
}

package tui

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/camelcase"
	"github.com/openkraft/visionboard/internal/domain"
)

// DisplayName turns a check code such as "githubOrgMFA" into "Github Org MFA".
func DisplayName(code domain.CheckCode) string {
	words := camelcase.Split(string(code))
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// RenderChecks lists the registered check codes.
func RenderChecks(codes []domain.CheckCode) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Registered Checks") + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, code := range codes {
		fmt.Fprintf(&b, "    %s %s %s\n",
			passStyle.Render("●"),
			catNameStyle.Render(padRight(DisplayName(code), 28)),
			dimStyle.Render(string(code)),
		)
	}

	return b.String()
}

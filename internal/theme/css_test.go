package theme

import (
	"strings"
	"testing"

	"github.com/GoArmGo/StyleInspo/internal/domain"
)

func varsByName(t domain.ThemeSettings) map[string]string {
	out := map[string]string{}
	for _, v := range Variables(t) {
		out[v.Name] = v.Value
	}
	return out
}

func TestVariablesResolveTiers(t *testing.T) {
	th := domain.DefaultTheme()
	th.Typography.HeadingSize = "xl"
	th.Typography.BodySize = "small"
	th.Layout.ContainerWidth = "full"
	th.Layout.BorderRadius = "none"

	vars := varsByName(th)

	cases := map[string]string{
		"--theme-primary":              "#ec4899",
		"--theme-card-overlay":         "rgba(0, 0, 0, 0.6)",
		"--theme-font-family":          "Geist Sans",
		"--theme-heading-size":         "3.75rem",
		"--theme-body-size":            "0.875rem",
		"--theme-container-width":      "100%",
		"--theme-border-radius":        "0px",
		"--theme-background-secondary": "#f5f5f5",
		"--theme-logo-width":           "120px",
	}
	for name, want := range cases {
		if got := vars[name]; got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
}

func TestVariablesFallBackToDefaultTier(t *testing.T) {
	th := domain.DefaultTheme()
	th.Typography.HeadingSize = "gigantic"

	if got := varsByName(th)["--theme-heading-size"]; got != "3rem" {
		t.Fatalf("heading size = %q, want default 3rem", got)
	}
}

func TestStyleSheet(t *testing.T) {
	th := domain.DefaultTheme()
	th.Colors.Primary = "#fff; } body { display:none"

	css := StyleSheet(th)
	if !strings.HasPrefix(css, ":root{\n") || !strings.HasSuffix(css, "}\n") {
		t.Fatalf("unexpected stylesheet framing: %q", css)
	}
	if strings.Count(css, "{") != 1 || strings.Count(css, "}") != 1 {
		t.Fatalf("value escaped its declaration: %q", css)
	}
	if !strings.Contains(css, "  --theme-secondary: #9333ea;\n") {
		t.Fatalf("missing secondary color: %q", css)
	}
}

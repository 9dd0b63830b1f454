package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		cookie     string
		acceptLang string
		want       Language
	}{
		{name: "cookie wins over header", cookie: "es", acceptLang: "en-US,en;q=0.9", want: LangES},
		{name: "regional cookie value", cookie: "es-MX", acceptLang: "", want: LangES},
		{name: "header first segment", cookie: "", acceptLang: "es-ES,es;q=0.9,en;q=0.8", want: LangES},
		{name: "english header", cookie: "", acceptLang: "en-GB", want: LangEN},
		{name: "unknown language falls back", cookie: "fr", acceptLang: "de-DE,de;q=0.9", want: LangEN},
		{name: "empty everything", cookie: "", acceptLang: "", want: LangEN},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Resolve(tt.cookie, tt.acceptLang))
		})
	}
}

func TestT(t *testing.T) {
	assert.Equal(t, "Ya estás suscrito.", T(LangES, "subscribe.already"))
	assert.Equal(t, "You're already subscribed.", T(LangEN, "subscribe.already"))

	// Unknown language falls back to the default table.
	assert.Equal(t, "You're already subscribed.", T(Language("fr"), "subscribe.already"))

	// Unknown key degrades to the key itself rather than an empty string.
	assert.Equal(t, "nope.missing", T(LangEN, "nope.missing"))
}

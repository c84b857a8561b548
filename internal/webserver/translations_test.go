package webserver

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetLanguageFromRequest(t *testing.T) {
	tests := []struct {
		name     string
		target   string
		header   string
		expected string
	}{
		{"default", "/", "", "en"},
		{"query", "/?lang=zh", "", "zh"},
		{"unsupported query falls through to header", "/?lang=de", "zh-CN", "zh"},
		{"header with quality", "/", "de-DE,zh;q=0.8,en;q=0.5", "zh"},
		{"upper case header", "/", "ZH-TW", "zh"},
		{"unsupported header", "/", "fr-FR,de", "en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.target, nil)
			if tt.header != "" {
				req.Header.Set("Accept-Language", tt.header)
			}

			assert.Equal(t, tt.expected, GetLanguageFromRequest(req))
		})
	}
}

func TestGetTranslation(t *testing.T) {
	assert.Equal(t, "Start processing", GetTranslation("en", "run"))
	assert.Equal(t, "开始处理", GetTranslation("zh", "run"))
	assert.Equal(t, "Start processing", GetTranslation("fr", "run"))
	assert.Equal(t, "no_such_key", GetTranslation("zh", "no_such_key"))
}

func TestTranslationsHaveSameKeys(t *testing.T) {
	en := GetTranslations("en")
	zh := GetTranslations("zh")

	for key := range en {
		assert.Contains(t, zh, key, "zh missing %s", key)
	}

	for key := range zh {
		assert.Contains(t, en, key, "en missing %s", key)
	}
}

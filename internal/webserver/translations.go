package webserver

import (
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"path"
	"strings"
)

//go:embed translations/*.json
var translationFiles embed.FS

// Translation holds translations for a specific language
type Translation map[string]string

// Translations holds all loaded translations
type Translations map[string]Translation

var translations Translations

// LoadTranslations loads every translations/<lang>.json file
func LoadTranslations() error {
	loaded := make(Translations)

	entries, err := translationFiles.ReadDir("translations")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		name := entry.Name()
		lang := strings.TrimSuffix(name, path.Ext(name))

		data, err := translationFiles.ReadFile("translations/" + name)
		if err != nil {
			return err
		}

		var trans Translation

		err = json.Unmarshal(data, &trans)
		if err != nil {
			return fmt.Errorf("failed to parse translations %s: %w", name, err)
		}

		loaded[lang] = trans
	}

	if _, ok := loaded["en"]; !ok {
		return fmt.Errorf("english translations missing")
	}

	translations = loaded

	return nil
}

// GetLanguageFromRequest determines the language from URL param or Accept-Language header
func GetLanguageFromRequest(r *http.Request) string {
	// First, check URL parameter
	if lang := r.URL.Query().Get("lang"); lang != "" {
		if isValidLanguage(lang) {
			return lang
		}
	}

	// Second, check Accept-Language header
	// Format: "zh-CN,zh;q=0.9,en;q=0.8"
	acceptLang := r.Header.Get("Accept-Language")
	for _, lang := range strings.Split(acceptLang, ",") {
		lang = strings.TrimSpace(strings.Split(lang, ";")[0])
		lang = strings.ToLower(strings.Split(lang, "-")[0])

		if isValidLanguage(lang) {
			return lang
		}
	}

	return "en"
}

func isValidLanguage(lang string) bool {
	_, exists := translations[lang]
	return exists
}

// GetTranslation returns the translation for a given key and language
func GetTranslation(lang, key string) string {
	if trans, exists := translations[lang]; exists {
		if text, exists := trans[key]; exists {
			return text
		}
	}

	// Fallback to English
	if trans, exists := translations["en"]; exists {
		if text, exists := trans[key]; exists {
			return text
		}
	}

	// Fallback to key if translation not found
	return key
}

// GetTranslations returns all translations for a given language
func GetTranslations(lang string) Translation {
	if trans, exists := translations[lang]; exists {
		return trans
	}

	if trans, exists := translations["en"]; exists {
		return trans
	}

	return make(Translation)
}

// Package i18n resolves dashboard label translations from per-language JSON
// catalogs, with an optional legacy single-file YAML catalog kept for
// backward compatibility. Catalog files are loaded lazily and cached; the
// resolver is safe for concurrent use.
package i18n

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/pulsedash/pulsedash/internal/config"
)

// EnglishFallback is always tried last so a partially translated catalog
// degrades to English rather than raw keys.
const EnglishFallback = "en"

// Resolver resolves translation keys against the configured catalogs.
type Resolver struct {
	localesDir      string
	legacyFile      string
	defaultLanguage string

	mu           sync.RWMutex
	locales      map[string]map[string]interface{} // language -> parsed catalog (empty map for missing files)
	legacy       map[string]interface{}
	legacyLoaded bool
}

// NewResolver creates a resolver from configuration.
func NewResolver(cfg config.I18nConfig) *Resolver {
	return &Resolver{
		localesDir:      cfg.LocalesDir,
		legacyFile:      cfg.LegacyFile,
		defaultLanguage: cfg.DefaultLanguage,
		locales:         make(map[string]map[string]interface{}),
	}
}

// DefaultLanguage returns the configured fallback language.
func (r *Resolver) DefaultLanguage() string {
	return r.defaultLanguage
}

// Languages returns the supported language codes, sorted. Codes come from the
// locale files on disk, then from the legacy catalog metadata, then from the
// configured default as a last resort.
func (r *Resolver) Languages() []string {
	if codes := r.localeCodes(); len(codes) > 0 {
		return codes
	}

	legacy := r.loadLegacy()
	if languages, ok := legacy["languages"].([]interface{}); ok {
		var codes []string
		for _, v := range languages {
			if code, ok := v.(string); ok && code != "" {
				codes = append(codes, code)
			}
		}
		if len(codes) > 0 {
			sort.Strings(codes)
			return codes
		}
	}
	if names, ok := legacy["language_names"].(map[string]interface{}); ok && len(names) > 0 {
		codes := make([]string, 0, len(names))
		for code := range names {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		return codes
	}

	return []string{r.defaultLanguage}
}

// HasLanguage reports whether code is a supported language.
func (r *Resolver) HasLanguage(code string) bool {
	for _, c := range r.Languages() {
		if c == code {
			return true
		}
	}
	return false
}

// Translate resolves a dotted key in the requested language. It walks the
// fallback chain (requested, default, English), then the legacy catalog, and
// finally returns the key itself. The second return value names the language
// the value was resolved in, or the empty string when the key fell through.
func (r *Resolver) Translate(key, language string) (string, string) {
	chain := r.fallbackChain(language)

	for _, candidate := range chain {
		value := resolveDotted(r.loadLocale(candidate), key)
		if s, ok := value.(string); ok {
			return s, candidate
		}
		if value != nil {
			// Non-string nodes are unsupported in JSON catalogs; stop the
			// locale walk and consult the legacy catalog.
			break
		}
	}

	switch legacyValue := resolveDotted(r.loadLegacy(), key).(type) {
	case map[string]interface{}:
		// Legacy entries map language codes to values.
		for _, candidate := range chain {
			if s, ok := legacyValue[candidate].(string); ok {
				return s, candidate
			}
		}
		for lang, v := range legacyValue {
			if s, ok := v.(string); ok {
				return s, lang
			}
		}
	case string:
		return legacyValue, r.defaultLanguage
	}

	return key, ""
}

// LanguageName returns the display name of a language code, localized in the
// requested language. Unknown codes fall back to the code itself.
func (r *Resolver) LanguageName(code, language string) string {
	name, resolved := r.Translate("language_names."+code, language)
	if resolved == "" {
		return code
	}
	return name
}

// Reload drops the cached catalogs so the next lookup rereads them from disk.
func (r *Resolver) Reload() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.locales = make(map[string]map[string]interface{})
	r.legacy = nil
	r.legacyLoaded = false
}

// fallbackChain returns the deduplicated language resolution order.
func (r *Resolver) fallbackChain(preferred string) []string {
	seen := make(map[string]bool, 3)
	var chain []string
	for _, code := range []string{preferred, r.defaultLanguage, EnglishFallback} {
		if code != "" && !seen[code] {
			chain = append(chain, code)
			seen[code] = true
		}
	}
	return chain
}

// localeCodes lists the language codes of the JSON catalogs on disk.
func (r *Resolver) localeCodes() []string {
	if r.localesDir == "" {
		return nil
	}
	entries, err := os.ReadDir(r.localesDir)
	if err != nil {
		return nil
	}

	var codes []string
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		codes = append(codes, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(codes)
	return codes
}

// loadLocale returns the parsed catalog for a language, reading it from disk
// on first use. Missing or malformed files cache as an empty catalog.
func (r *Resolver) loadLocale(language string) map[string]interface{} {
	r.mu.RLock()
	catalog, ok := r.locales[language]
	r.mu.RUnlock()
	if ok {
		return catalog
	}

	catalog = r.readLocaleFile(language)

	r.mu.Lock()
	r.locales[language] = catalog
	r.mu.Unlock()
	return catalog
}

func (r *Resolver) readLocaleFile(language string) map[string]interface{} {
	if r.localesDir == "" {
		return map[string]interface{}{}
	}

	path := filepath.Join(r.localesDir, fmt.Sprintf("%s.json", language))
	data, err := os.ReadFile(path)
	if err != nil {
		return map[string]interface{}{}
	}

	var catalog map[string]interface{}
	if err := json.Unmarshal(data, &catalog); err != nil || catalog == nil {
		return map[string]interface{}{}
	}
	return catalog
}

// loadLegacy returns the parsed legacy YAML catalog, reading it on first use.
func (r *Resolver) loadLegacy() map[string]interface{} {
	r.mu.RLock()
	if r.legacyLoaded {
		legacy := r.legacy
		r.mu.RUnlock()
		return legacy
	}
	r.mu.RUnlock()

	legacy := map[string]interface{}{}
	if r.legacyFile != "" {
		if data, err := os.ReadFile(r.legacyFile); err == nil {
			var parsed map[string]interface{}
			if err := yaml.Unmarshal(data, &parsed); err == nil && parsed != nil {
				legacy = parsed
			}
		}
	}

	r.mu.Lock()
	r.legacy = legacy
	r.legacyLoaded = true
	r.mu.Unlock()
	return legacy
}

// resolveDotted walks a dotted key path inside a nested catalog.
func resolveDotted(node map[string]interface{}, key string) interface{} {
	var value interface{} = node
	for _, part := range strings.Split(key, ".") {
		m, ok := value.(map[string]interface{})
		if !ok {
			return nil
		}
		value, ok = m[part]
		if !ok {
			return nil
		}
	}
	return value
}

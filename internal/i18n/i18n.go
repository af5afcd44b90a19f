// Package i18n holds the fixed per-language display data of the
// storefront: category enumerations and store contact defaults. The
// strings are opaque display data; the service never interprets them.
package i18n

import (
	"golang.org/x/text/language"

	"github.com/tilazone/tilazone/internal/domain"
)

const (
	LangArabic = "ar"
	LangFrench = "fr"
)

var supported = []language.Tag{
	language.Arabic, // default
	language.French,
}

var matcher = language.NewMatcher(supported)

// Match resolves an Accept-Language header or explicit lang parameter
// to one of the supported language codes. Unknown input falls back to
// Arabic, the storefront default.
func Match(accept string) string {
	if accept == "" {
		return LangArabic
	}
	_, idx := language.MatchStrings(matcher, accept)
	if idx == 1 {
		return LangFrench
	}
	return LangArabic
}

var categories = map[string][]string{
	LangArabic: {
		"الكل",
		"هواتف",
		"إلكترونيات",
		"حواسيب",
		"ملابس رجالية",
		"ملابس نسائية",
		"أحذية",
		"حقائب",
		"ساعات",
		"اكسسوارات",
		"مجوهرات",
		"عطور",
		"رياضة",
		"ألعاب",
		"منزل وحديقة",
	},
	LangFrench: {
		"Tout",
		"Téléphones",
		"Électronique",
		"Ordinateurs",
		"Vêtements Hommes",
		"Vêtements Femmes",
		"Chaussures",
		"Sacs",
		"Montres",
		"Accessoires",
		"Bijoux",
		"Parfums",
		"Sport",
		"Jeux",
		"Maison & Jardin",
	},
}

// Categories returns the fixed category set for a language code. The
// first entry is the "all categories" pseudo entry.
func Categories(lang string) []string {
	if cs, ok := categories[lang]; ok {
		out := make([]string, len(cs))
		copy(out, cs)
		return out
	}
	return Categories(LangArabic)
}

var storeInfo = map[string]domain.StoreInfo{
	LangArabic: {
		Name:     "تيلازون",
		Email:    "xothmane01@gmail.com",
		Phone:    "+212 625-602147",
		Currency: "د.م",
		Address:  "الرباط، المغرب",
		Social: domain.SocialLinks{
			Facebook:  "https://facebook.com/tilazone",
			Instagram: "https://instagram.com/tilazone",
			Twitter:   "https://twitter.com/tilazone",
		},
	},
	LangFrench: {
		Name:     "Tilazone",
		Email:    "xothmane01@gmail.com",
		Phone:    "+212 625-602147",
		Currency: "MAD",
		Address:  "Rabat, Maroc",
		Social: domain.SocialLinks{
			Facebook:  "https://facebook.com/tilazone",
			Instagram: "https://instagram.com/tilazone",
			Twitter:   "https://twitter.com/tilazone",
		},
	},
}

// DefaultStoreInfo returns the built-in store contact block for a
// language code, used until an operator saves custom settings.
func DefaultStoreInfo(lang string) domain.StoreInfo {
	if si, ok := storeInfo[lang]; ok {
		return si
	}
	return storeInfo[LangArabic]
}

// internal/services/legacy_labels.go
package services

// legacyCategoryLabels maps category slugs to the Russian display names used
// before slugs existed. Consulted only when a slug has no matching category
// row, so listings keep matching rows tagged by display name alone.
//
// TODO: retire this table once the category slug backfill completes.
var legacyCategoryLabels = map[string]string{
	"watch-straps": "Ремешки для часов",
	"cases":        "Чехлы",
	"bracelets":    "Браслеты",
	"covers":       "Обложки",
	"accessories":  "Аксессуары",
	"wallets":      "Кошельки",
	"belts":        "Ремни",
	"keychains":    "Брелоки",
}

func legacyCategoryLabel(slug string) (string, bool) {
	label, ok := legacyCategoryLabels[slug]
	return label, ok
}

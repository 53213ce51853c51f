package services

import "unicode/utf8"

// truncateText coupe s à limit octets au plus, en reculant jusqu'au début de
// rune précédent pour ne jamais couper un caractère accentué en deux : une
// rune tronquée rend le prompt invalide en UTF-8 et le transport le refuse.
func truncateText(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	for limit > 0 && !utf8.RuneStart(s[limit]) {
		limit--
	}
	return s[:limit]
}

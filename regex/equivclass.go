package regex

// equivClass expands a `[=a=]` equivalence-class base character into its
// visually-equivalent family. The original dialect hard-codes a fixed
// table of Latin accent families rather than doing general Unicode
// decomposition (spec.md §9 grounds this in regexp_nfa.c); vimcore follows
// suit with the common Western-European families.
func equivClass(base rune) []rune {
	lower := base
	if base >= 'A' && base <= 'Z' {
		lower = base + ('a' - 'A')
	}
	fam, ok := equivTable[lower]
	if !ok {
		return []rune{base}
	}
	out := make([]rune, 0, len(fam)*2)
	for _, r := range fam {
		out = append(out, r)
		if up := upperOf(r); up != r {
			out = append(out, up)
		}
	}
	return out
}

func upperOf(r rune) rune {
	if r >= 'a' && r <= 'z' {
		return r - ('a' - 'A')
	}
	switch r {
	case 'à', 'á', 'â', 'ã', 'ä', 'å':
		return 'A'
	case 'è', 'é', 'ê', 'ë':
		return 'E'
	case 'ì', 'í', 'î', 'ï':
		return 'I'
	case 'ò', 'ó', 'ô', 'õ', 'ö':
		return 'O'
	case 'ù', 'ú', 'û', 'ü':
		return 'U'
	case 'ñ':
		return 'N'
	case 'ç':
		return 'C'
	}
	return r
}

var equivTable = map[rune][]rune{
	'a': {'a', 'à', 'á', 'â', 'ã', 'ä', 'å'},
	'e': {'e', 'è', 'é', 'ê', 'ë'},
	'i': {'i', 'ì', 'í', 'î', 'ï'},
	'o': {'o', 'ò', 'ó', 'ô', 'õ', 'ö'},
	'u': {'u', 'ù', 'ú', 'û', 'ü'},
	'n': {'n', 'ñ'},
	'c': {'c', 'ç'},
	'y': {'y', 'ý', 'ÿ'},
}

// Package summary renders a normalized expression tree as a localized
// natural-language sentence. Locale selection affects word choice and
// formatting only; it never changes which nodes are rendered.
package summary

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/julianhyde/filtex-sub001/ast"
)

// Locale bundles a matched language tag with its phrase set and a
// locale-aware number printer.
type Locale struct {
	Tag     language.Tag
	phrases *phrases
	printer *message.Printer
}

// supported lists the locales with phrase tables. English is first and
// doubles as the deterministic fallback for unknown locales.
var supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
}

var matcher = language.NewMatcher(supported)

// Resolve matches a BCP 47 locale code against the supported set.
// Unparseable or unsupported codes fall back to English; Resolve never
// fails.
func Resolve(code string) Locale {
	tag, err := language.Parse(code)
	if err != nil {
		tag = language.English
	}
	_, idx, _ := matcher.Match(tag)
	base := supported[idx]
	return Locale{
		Tag:     base,
		phrases: phraseTables[idx],
		printer: message.NewPrinter(base),
	}
}

// phrases holds the per-locale wording. Verb phrases compose as
// "<is|isNot> <comparator> <values>".
type phrases struct {
	and   string
	or    string
	is    string
	isNot string

	gt    string // "greater than"
	gte   string // "at least"
	lt    string // "less than"
	lte   string // "at most"
	anyOf string // "any of"

	between   string // two %s verbs: low, high
	exclusive string // appended to an exclusive bound

	matches string // one %s: the verbatim advanced text

	lastWindow string // two %s: amount, unit word
	nextWindow string // two %s: amount, unit word

	within string // four %s: radius, unit, lat, lon
	inBox  string // four %s: lat, lon, lat, lon

	dateLayout string
	dateUnits  map[ast.DateUnit][2]string // singular, plural
	distUnits  map[ast.DistanceUnit]string
	namedDays  map[string]string // raw spelling -> localized word

	// labelFirst places the field label before the clause
	// ("Price is ..."). All current locales are label-first; the flag
	// carries the ordering convention for ones that are not.
	labelFirst bool
}

// phraseTables is indexed parallel to supported.
var phraseTables = []*phrases{englishPhrases, germanPhrases, frenchPhrases, spanishPhrases}

var englishPhrases = &phrases{
	and: "and", or: "or",
	is: "is", isNot: "is not",
	gt: "greater than", gte: "at least", lt: "less than", lte: "at most",
	anyOf:     "any of",
	between:   "between %s and %s",
	exclusive: "exclusive",
	matches:   "matches “%s”",

	lastWindow: "within the last %s %s",
	nextWindow: "within the next %s %s",
	within:     "within %s %s of (%s, %s)",
	inBox:      "inside the area (%s, %s) to (%s, %s)",

	dateLayout: "Jan 2, 2006",
	dateUnits: map[ast.DateUnit][2]string{
		ast.UnitDay:   {"day", "days"},
		ast.UnitWeek:  {"week", "weeks"},
		ast.UnitMonth: {"month", "months"},
		ast.UnitYear:  {"year", "years"},
	},
	distUnits: map[ast.DistanceUnit]string{
		ast.DistKilometers: "km",
		ast.DistMiles:      "mi",
		ast.DistMeters:     "m",
	},
	namedDays: map[string]string{
		"today": "today", "yesterday": "yesterday", "tomorrow": "tomorrow",
	},
	labelFirst: true,
}

var germanPhrases = &phrases{
	and: "und", or: "oder",
	is: "ist", isNot: "ist nicht",
	gt: "größer als", gte: "mindestens", lt: "kleiner als", lte: "höchstens",
	anyOf:     "einer von",
	between:   "zwischen %s und %s",
	exclusive: "exklusiv",
	matches:   "entspricht „%s“",

	lastWindow: "innerhalb der letzten %s %s",
	nextWindow: "innerhalb der nächsten %s %s",
	within:     "im Umkreis von %s %s um (%s, %s)",
	inBox:      "innerhalb des Bereichs (%s, %s) bis (%s, %s)",

	dateLayout: "02.01.2006",
	dateUnits: map[ast.DateUnit][2]string{
		ast.UnitDay:   {"Tag", "Tage"},
		ast.UnitWeek:  {"Woche", "Wochen"},
		ast.UnitMonth: {"Monat", "Monate"},
		ast.UnitYear:  {"Jahr", "Jahre"},
	},
	distUnits: map[ast.DistanceUnit]string{
		ast.DistKilometers: "km",
		ast.DistMiles:      "mi",
		ast.DistMeters:     "m",
	},
	namedDays: map[string]string{
		"today": "heute", "yesterday": "gestern", "tomorrow": "morgen",
	},
	labelFirst: true,
}

var frenchPhrases = &phrases{
	and: "et", or: "ou",
	is: "est", isNot: "n'est pas",
	gt: "supérieur à", gte: "au moins", lt: "inférieur à", lte: "au plus",
	anyOf:     "l'un de",
	between:   "entre %s et %s",
	exclusive: "exclus",
	matches:   "correspond à « %s »",

	lastWindow: "au cours des %s derniers %s",
	nextWindow: "au cours des %s prochains %s",
	within:     "à moins de %s %s de (%s, %s)",
	inBox:      "dans la zone (%s, %s) à (%s, %s)",

	dateLayout: "02/01/2006",
	dateUnits: map[ast.DateUnit][2]string{
		ast.UnitDay:   {"jour", "jours"},
		ast.UnitWeek:  {"semaine", "semaines"},
		ast.UnitMonth: {"mois", "mois"},
		ast.UnitYear:  {"an", "ans"},
	},
	distUnits: map[ast.DistanceUnit]string{
		ast.DistKilometers: "km",
		ast.DistMiles:      "mi",
		ast.DistMeters:     "m",
	},
	namedDays: map[string]string{
		"today": "aujourd'hui", "yesterday": "hier", "tomorrow": "demain",
	},
	labelFirst: true,
}

var spanishPhrases = &phrases{
	and: "y", or: "o",
	is: "es", isNot: "no es",
	gt: "mayor que", gte: "al menos", lt: "menor que", lte: "como máximo",
	anyOf:     "cualquiera de",
	between:   "entre %s y %s",
	exclusive: "exclusivo",
	matches:   "coincide con «%s»",

	lastWindow: "en los últimos %s %s",
	nextWindow: "en los próximos %s %s",
	within:     "a menos de %s %s de (%s, %s)",
	inBox:      "dentro del área (%s, %s) a (%s, %s)",

	dateLayout: "02/01/2006",
	dateUnits: map[ast.DateUnit][2]string{
		ast.UnitDay:   {"día", "días"},
		ast.UnitWeek:  {"semana", "semanas"},
		ast.UnitMonth: {"mes", "meses"},
		ast.UnitYear:  {"año", "años"},
	},
	distUnits: map[ast.DistanceUnit]string{
		ast.DistKilometers: "km",
		ast.DistMiles:      "mi",
		ast.DistMeters:     "m",
	},
	namedDays: map[string]string{
		"today": "hoy", "yesterday": "ayer", "tomorrow": "mañana",
	},
	labelFirst: true,
}

package i18n

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func init() {
	register(language.English, map[string]string{
		"tone.1": "Tone 1",
		"tone.2": "Tone 2",
		"tone.3": "Tone 3",
		"tone.4": "Tone 4",
		"tone.5": "Tone 5",
		"tone.6": "Tone 6",
		"tone.7": "Tone 7",
		"tone.8": "Tone 8",

		"feast.clean_monday":     "Clean Monday",
		"feast.lazarus_saturday": "Lazarus Saturday",
		"feast.palm_sunday":      "Palm Sunday",
		"feast.holy_friday":      "Holy Friday",
		"feast.pascha":           "Pascha",
		"feast.bright_saturday":  "Bright Saturday",
		"feast.thomas_sunday":    "Thomas Sunday",
		"feast.mid_pentecost":    "Mid-Pentecost",
		"feast.ascension":        "Ascension",
		"feast.pentecost":        "Pentecost",
		"feast.all_saints":       "All Saints",
		"feast.ash_wednesday":    "Ash Wednesday",
		"feast.good_friday":      "Good Friday",
		"feast.easter":           "Easter",
	})

	register(language.Greek, map[string]string{
		"tone.1": "Ἦχος αʹ",
		"tone.2": "Ἦχος βʹ",
		"tone.3": "Ἦχος γʹ",
		"tone.4": "Ἦχος δʹ",
		"tone.5": "Ἦχος πλ. αʹ",
		"tone.6": "Ἦχος πλ. βʹ",
		"tone.7": "Ἦχος βαρύς",
		"tone.8": "Ἦχος πλ. δʹ",

		"feast.clean_monday":     "Καθαρά Δευτέρα",
		"feast.lazarus_saturday": "Σάββατο του Λαζάρου",
		"feast.palm_sunday":      "Κυριακή των Βαΐων",
		"feast.holy_friday":      "Μεγάλη Παρασκευή",
		"feast.pascha":           "Πάσχα",
		"feast.bright_saturday":  "Σάββατο της Διακαινησίμου",
		"feast.thomas_sunday":    "Κυριακή του Θωμά",
		"feast.mid_pentecost":    "Μεσοπεντηκοστή",
		"feast.ascension":        "Ανάληψη",
		"feast.pentecost":        "Πεντηκοστή",
		"feast.all_saints":       "Κυριακή των Αγίων Πάντων",
		"feast.ash_wednesday":    "Τετάρτη της Τέφρας",
		"feast.good_friday":      "Μεγάλη Παρασκευή",
		"feast.easter":           "Πάσχα",
	})

	register(language.Russian, map[string]string{
		"tone.1": "Глас 1",
		"tone.2": "Глас 2",
		"tone.3": "Глас 3",
		"tone.4": "Глас 4",
		"tone.5": "Глас 5",
		"tone.6": "Глас 6",
		"tone.7": "Глас 7",
		"tone.8": "Глас 8",

		"feast.clean_monday":     "Чистый понедельник",
		"feast.lazarus_saturday": "Лазарева суббота",
		"feast.palm_sunday":      "Вход Господень в Иерусалим",
		"feast.holy_friday":      "Великая пятница",
		"feast.pascha":           "Пасха",
		"feast.bright_saturday":  "Светлая суббота",
		"feast.thomas_sunday":    "Фомино воскресенье",
		"feast.mid_pentecost":    "Преполовение Пятидесятницы",
		"feast.ascension":        "Вознесение Господне",
		"feast.pentecost":        "Пятидесятница",
		"feast.all_saints":       "Неделя всех святых",
		"feast.ash_wednesday":    "Пепельная среда",
		"feast.good_friday":      "Страстная пятница",
		"feast.easter":           "Пасха",
	})
}

func register(tag language.Tag, messages map[string]string) {
	for key, msg := range messages {
		if err := message.SetString(tag, key, msg); err != nil {
			panic(err)
		}
	}
}

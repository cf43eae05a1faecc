// schedule группирует часы работы заведения для показа пользователю:
// дни с одним и тем же интервалом часов склеиваются, последовательные дни
// сворачиваются в диапазоны («Lundi - Vendredi: 18:00 - 02:00»).
package schedule

import (
	"sort"
	"strings"

	"github.com/chillnow/chillnow-client/internal/models"
)

// Slot — одна строка расписания: перечень дней и интервал часов.
type Slot struct {
	Jours    string
	Horaires string
}

// Канонический порядок недели (по-французски, как в продукте).
var weekOrder = []string{"Lundi", "Mardi", "Mercredi", "Jeudi", "Vendredi", "Samedi", "Dimanche"}

// Бэкенд присылает день недели в разных форматах; приводим всё
// к каноническому французскому названию.
var dayAliases = map[string]string{
	// английский
	"monday": "Lundi", "tuesday": "Mardi", "wednesday": "Mercredi",
	"thursday": "Jeudi", "friday": "Vendredi", "saturday": "Samedi", "sunday": "Dimanche",
	// французские сокращения
	"lun": "Lundi", "mar": "Mardi", "mer": "Mercredi",
	"jeu": "Jeudi", "ven": "Vendredi", "sam": "Samedi", "dim": "Dimanche",
	// полные французские
	"lundi": "Lundi", "mardi": "Mardi", "mercredi": "Mercredi",
	"jeudi": "Jeudi", "vendredi": "Vendredi", "samedi": "Samedi", "dimanche": "Dimanche",
}

// NormalizeDay приводит название дня к каноническому виду.
// Неизвестные значения возвращаются без изменений.
func NormalizeDay(jour string) string {
	if canon, ok := dayAliases[strings.ToLower(strings.TrimSpace(jour))]; ok {
		return canon
	}

	return jour
}

func weekIndex(day string) int {
	for i, d := range weekOrder {
		if d == day {
			return i
		}
	}

	return -1
}

// Group собирает расписание для показа: дни с одним и тем же интервалом
// часов объединяются, упорядочиваются по неделе и сворачиваются в диапазоны.
// Слоты упорядочены по первому дню недели, при равенстве — по интервалу часов.
func Group(horaires []models.Horaire) []Slot {
	byRange := make(map[string][]string)
	var ranges []string

	for _, h := range horaires {
		timeRange := h.HeureOuverture + " - " + h.HeureFermeture
		day := NormalizeDay(h.Jour)

		if _, ok := byRange[timeRange]; !ok {
			ranges = append(ranges, timeRange)
		}
		if !contains(byRange[timeRange], day) {
			byRange[timeRange] = append(byRange[timeRange], day)
		}
	}

	slots := make([]Slot, 0, len(ranges))
	for _, timeRange := range ranges {
		days := byRange[timeRange]
		sort.SliceStable(days, func(i, j int) bool {
			return weekIndex(days[i]) < weekIndex(days[j])
		})

		slots = append(slots, Slot{
			Jours:    strings.Join(collapseRuns(days), ", "),
			Horaires: timeRange,
		})
	}

	sort.SliceStable(slots, func(i, j int) bool {
		a, b := firstDayIndex(byRange[slots[i].Horaires]), firstDayIndex(byRange[slots[j].Horaires])
		if a != b {
			return a < b
		}
		return slots[i].Horaires < slots[j].Horaires
	})

	return slots
}

// collapseRuns сворачивает последовательные дни недели в диапазоны:
// [Lundi Mardi Mercredi Samedi] -> [Lundi - Mercredi, Samedi].
// Дни вне канонической недели в диапазоны не попадают.
func collapseRuns(days []string) []string {
	var out []string

	for i := 0; i < len(days); {
		start := i
		idx := weekIndex(days[i])

		for idx >= 0 && i+1 < len(days) && weekIndex(days[i+1]) == weekIndex(days[i])+1 {
			i++
		}

		if i > start {
			out = append(out, days[start]+" - "+days[i])
		} else {
			out = append(out, days[start])
		}
		i++
	}

	return out
}

func firstDayIndex(days []string) int {
	best := len(weekOrder)
	for _, d := range days {
		if idx := weekIndex(d); idx >= 0 && idx < best {
			best = idx
		}
	}

	return best
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}

	return false
}

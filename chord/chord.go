package chord

import (
	"fmt"
	"sort"

	"github.com/jsphweid/pianocoach/pitch"
)

type Template struct {
	Name    string
	Classes [3]pitch.Class
}

func (t Template) Contains(c pitch.Class) bool {
	for _, v := range t.Classes {
		if v == c {
			return true
		}
	}
	return false
}

// root, third, fifth. Order is the tie-break order for Match.
var templates = []Template{
	{"C Major", [3]pitch.Class{0, 4, 7}},
	{"C Minor", [3]pitch.Class{0, 3, 7}},
	{"G Major", [3]pitch.Class{7, 11, 2}},
	{"G Minor", [3]pitch.Class{7, 10, 2}},
	{"D Major", [3]pitch.Class{2, 6, 9}},
	{"D Minor", [3]pitch.Class{2, 5, 9}},
	{"A Major", [3]pitch.Class{9, 1, 4}},
	{"A Minor", [3]pitch.Class{9, 0, 4}},
	{"E Major", [3]pitch.Class{4, 8, 11}},
	{"E Minor", [3]pitch.Class{4, 7, 11}},
	{"F Major", [3]pitch.Class{5, 9, 0}},
	{"F Minor", [3]pitch.Class{5, 8, 0}},
}

func Templates() []Template {
	res := make([]Template, len(templates))
	copy(res, templates)
	return res
}

// Match returns the first template holding the most of the given pitch
// classes, along with how many it holds.
func Match(classes []pitch.Class) (Template, int) {
	var best Template
	var bestCount int
	for _, t := range templates {
		var count int
		for _, c := range classes {
			if t.Contains(c) {
				count++
			}
		}
		if count > bestCount {
			bestCount = count
			best = t
		}
	}
	return best, bestCount
}

// Suggest needs at least two of the (up to three) most played pitch classes
// to land in one triad. Otherwise it returns "".
func Suggest(mostCommon []pitch.Class) string {
	if len(mostCommon) > 3 {
		mostCommon = mostCommon[:3]
	}
	best, count := Match(mostCommon)
	if count < 2 {
		return ""
	}
	return fmt.Sprintf("Try practicing the %v chord and its inversions", best.Name)
}

// CreateChordKey makes a stable key for a set of sounding notes, e.g. "60-64-67".
func CreateChordKey(notes []uint8) string {
	sorted := make([]uint8, len(notes))
	copy(sorted, notes)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i] < sorted[j]
	})
	var res string
	for i, note := range sorted {
		res += fmt.Sprintf("%v", note)
		if i < len(sorted)-1 {
			res += "-"
		}
	}
	return res
}

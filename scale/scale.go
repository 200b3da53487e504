package scale

import (
	"math"

	"github.com/jsphweid/pianocoach/model"
	"github.com/jsphweid/pianocoach/pitch"
)

type Template struct {
	Name    string
	Classes [7]pitch.Class
	set     pitch.Set
}

func newTemplate(name string, classes ...pitch.Class) Template {
	var t Template
	t.Name = name
	copy(t.Classes[:], classes)
	t.set = pitch.NewSet(classes...)
	return t
}

func (t Template) Contains(c pitch.Class) bool {
	return t.set.Has(c)
}

// Declaration order is the tie-break order for Identify.
var templates = []Template{
	newTemplate("C Major", 0, 2, 4, 5, 7, 9, 11),
	newTemplate("G Major", 7, 9, 11, 0, 2, 4, 6),
	newTemplate("D Major", 2, 4, 6, 7, 9, 11, 1),
	newTemplate("A Major", 9, 11, 1, 2, 4, 6, 8),
	newTemplate("E Major", 4, 6, 8, 9, 11, 1, 3),
	newTemplate("F Major", 5, 7, 9, 10, 0, 2, 4),
	newTemplate("B Major", 11, 1, 3, 4, 6, 8, 10),

	newTemplate("A Minor", 9, 11, 0, 2, 4, 5, 7),
	newTemplate("E Minor", 4, 6, 7, 9, 11, 0, 2),
	newTemplate("D Minor", 2, 4, 5, 7, 9, 10, 0),
	newTemplate("G Minor", 7, 9, 10, 0, 2, 3, 5),
	newTemplate("C Minor", 0, 2, 3, 5, 7, 8, 10),
	newTemplate("F Minor", 5, 7, 8, 10, 0, 1, 3),
	newTemplate("B Minor", 11, 1, 2, 4, 6, 7, 9),
}

// Templates returns a copy of the scale table in tie-break order.
func Templates() []Template {
	res := make([]Template, len(templates))
	copy(res, templates)
	return res
}

func score(t Template, played pitch.Set) float64 {
	var matches, nonMatches int
	for c, ok := range played {
		if !ok {
			continue
		}
		if t.Contains(pitch.Class(c)) {
			matches++
		} else {
			nonMatches++
		}
	}
	return float64(matches) - 0.5*float64(nonMatches)
}

// Identify picks the scale whose pitch classes best cover the unique pitch
// classes in notes. Each played class inside the scale scores 1, each one
// outside costs 0.5. Ties keep the earlier template.
func Identify(notes []int) model.ScaleMatch {
	if len(notes) == 0 {
		return model.ScaleMatch{}
	}

	played := pitch.UniqueFromMidi(notes)
	if played.Len() == 0 {
		return model.ScaleMatch{}
	}

	var best string
	var bestScore float64
	for _, t := range templates {
		s := score(t, played)
		if s > bestScore {
			bestScore = s
			best = t.Name
		}
	}

	confidence := math.Max(0, math.Min(1.0, bestScore/7))
	return model.ScaleMatch{Scale: best, Confidence: confidence}
}

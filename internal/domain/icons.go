package domain

import "math/rand/v2"

// IconSet lists the icon names that new tracks are decorated with.
var IconSet = []string{
	"coffee",
	"lemon",
	"carrot",
	"seedling",
	"leaf",
	"hippo",
	"fish",
	"crow",
	"frog",
	"dog",
	"cat",
	"horse",
	"sun",
	"moon",
	"star",
	"users",
	"brain",
	"newspaper",
	"cheese",
	"chess",
	"cookie",
	"couch",
	"car",
	"compass",
	"fire",
	"pizza-slice",
	"beer-mug-empty",
	"comment",
	"server",
	"face-surprise",
}

// RandomIcon picks an icon from IconSet. A nil source uses the global one.
func RandomIcon(r *rand.Rand) string {
	if r == nil {
		return IconSet[rand.IntN(len(IconSet))]
	}
	return IconSet[r.IntN(len(IconSet))]
}

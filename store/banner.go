package store

import (
	"strings"
	"unicode/utf8"

	"github.com/josephgoksu/gantry/models"
)

// createBanner boxes text in a border of hash characters with each line
// centered, five columns of horizontal padding and one blank padded line
// above and below the text. Every banner line starts with '#', so loaders
// treat the whole box as comments.
func createBanner(text string) string {
	const (
		paddingH = 5
		paddingV = 1
	)

	lines := strings.Split(text, "\n")
	maxLen := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}

	width := maxLen + 2*paddingH
	border := strings.Repeat("#", width+2)
	empty := "#" + strings.Repeat(" ", width) + "#"
	pad := strings.Repeat(" ", paddingH)

	var b strings.Builder
	b.WriteString(border + "\n")
	for i := 0; i < paddingV; i++ {
		b.WriteString(empty + "\n")
	}
	for _, line := range lines {
		gap := maxLen - utf8.RuneCountInString(line)
		left := gap / 2
		b.WriteString("#" + pad + strings.Repeat(" ", left) + line + strings.Repeat(" ", gap-left) + pad + "#\n")
	}
	for i := 0; i < paddingV; i++ {
		b.WriteString(empty + "\n")
	}
	b.WriteString(border + "\n")
	return b.String()
}

// itemsBanner heads the active items file.
var itemsBanner = createBanner("Gantry Items\n" +
	"This file contains all included Gantry items in topological\n" +
	"order according to the REQUIRES (" + models.RelRequires.Symbol() + ") relation.\n" +
	"You can use #include directives at the top of this file\n" +
	"to include other Gantry item files.\n" +
	"Edit this file manually at your own risk.")

// occludedItemsBanner heads the occluded items file.
var occludedItemsBanner = createBanner("Gantry Occluded Items\n" +
	"This file contains all occluded Gantry items in topological\n" +
	"order according to the REQUIRES (" + models.RelRequires.Symbol() + ") relation.\n" +
	"Edit this file manually at your own risk.")

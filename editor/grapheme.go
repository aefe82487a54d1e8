package editor

import (
	"github.com/mattn/go-runewidth"
	"github.com/rivo/uniseg"
)

const tabWidth = 4

// cellWidth returns the terminal width of one grapheme cluster drawn at
// visualCol.
func cellWidth(cluster string, visualCol int) int {
	if cluster == "\t" {
		return tabWidth - visualCol%tabWidth
	}

	w := runewidth.StringWidth(cluster)
	if w < 0 {
		w = 0
	}
	if w == 0 {
		fallback := uniseg.StringWidth(cluster)
		if fallback > w {
			w = fallback
		}
	}
	return w
}

package audio

import "fmt"

// Recitation CDNs tried in order. All address the same verse by zero-padded
// chapter and verse numbers; the list is fixed and independent of runtime
// state.
var sourceTemplates = []string{
	"https://everyayah.com/data/Alafasy_128kbps/%03d%03d.mp3",
	"https://verses.quran.com/Alafasy/mp3/%03d%03d.mp3",
	"https://audio.qurancdn.com/Alafasy/mp3/%03d%03d.mp3",
	"https://www.al-hamdoulillah.com/coran/mp3/files/alafasy/%03d/%03d.mp3",
}

// Sources builds the ordered candidate URL list for one verse.
func Sources(chapter, verse int) []string {
	urls := make([]string, 0, len(sourceTemplates))
	for _, tmpl := range sourceTemplates {
		urls = append(urls, fmt.Sprintf(tmpl, chapter, verse))
	}
	return urls
}

// candidates iterates an ordered source list; next reports exhaustion so a
// caller never probes two sources at once or out of order.
type candidates struct {
	list []string
	pos  int
}

func (c *candidates) next() (string, bool) {
	if c.pos >= len(c.list) {
		return "", false
	}
	url := c.list[c.pos]
	c.pos++
	return url, true
}

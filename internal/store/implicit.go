package store

import (
	"path"
	"strconv"
	"strings"
)

// formatTags maps known filename extensions to a media format tag.
var formatTags = map[string]string{
	".mov": "video", ".mp4": "video", ".mkv": "video", ".avi": "video",
	".wmv": "video", ".flv": "video", ".webm": "video", ".m4v": "video",
	".3gp": "video", ".mpg": "video", ".mpeg": "video",

	".png": "image", ".jpg": "image", ".jpeg": "image", ".gif": "image",
	".bmp": "image", ".webp": "image", ".tif": "image", ".tiff": "image",
	".heic": "image", ".svg": "image",

	".mp3": "audio", ".wav": "audio", ".flac": "audio", ".aac": "audio",
	".ogg": "audio", ".m4a": "audio", ".wma": "audio",

	".pdf": "document", ".doc": "document", ".docx": "document",
	".xls": "document", ".xlsx": "document", ".ppt": "document",
	".pptx": "document", ".odt": "document", ".epub": "document",
}

// ImplicitTags synthesizes tags from a file or directory name. A name that
// begins with a 4-digit year, optionally followed by `_YYYY` or `_to_YYYY`,
// yields one tag per year in the inclusive range. A known media or document
// extension additionally yields its format tag (video, image, audio or
// document), matched case-insensitively.
func ImplicitTags(name string) []string {
	var tags []string
	if first, rest, ok := leadingYear(name); ok {
		second := first
		if rest, ok := strings.CutPrefix(rest, "_"); ok {
			if y, _, yok := leadingYear(rest); yok {
				second = y
			} else if rest, ok := strings.CutPrefix(rest, "to_"); ok {
				if y, _, yok := leadingYear(rest); yok {
					second = y
				}
			}
		}
		for y := first; y <= second; y++ {
			tags = append(tags, strconv.Itoa(y))
		}
	}
	if ext := strings.ToLower(path.Ext(name)); ext != "" {
		if tag, ok := formatTags[ext]; ok {
			tags = append(tags, tag)
		}
	}
	return tags
}

// leadingYear splits a 4-digit prefix off input.
func leadingYear(input string) (year int, rest string, ok bool) {
	if len(input) < 4 {
		return 0, input, false
	}
	for i := 0; i < 4; i++ {
		c := input[i]
		if c < '0' || c > '9' {
			return 0, input, false
		}
		year = year*10 + int(c-'0')
	}
	return year, input[4:], true
}

package service

import (
	"strings"

	"github.com/cantouch/socialflow-backend/internal/domain"
)

// csvHeader is the fixed export header
const csvHeader = "Platform,Content,Hashtags,Image Status"

// ExportCSV renders generated content as a CSV artifact. Content and
// hashtag fields are always quote-wrapped with inner quotes doubled;
// hashtags are normalized to their rendered "#" form here.
func ExportCSV(content domain.GeneratedContent) []byte {
	lines := make([]string, 0, len(content)+1)
	lines = append(lines, csvHeader)

	for _, post := range content {
		body := strings.ReplaceAll(post.Content, `"`, `""`)

		tags := make([]string, 0, len(post.Hashtags))
		for _, tag := range post.Hashtags {
			if normalized := domain.NormalizeHashtag(tag); normalized != "" {
				tags = append(tags, normalized)
			}
		}
		hashtags := strings.ReplaceAll(strings.Join(tags, " "), `"`, `""`)

		imageStatus := "No Image"
		if post.ImageURL != "" {
			imageStatus = "Image Generated"
		}

		lines = append(lines, strings.Join([]string{
			string(post.Platform),
			`"` + body + `"`,
			`"` + hashtags + `"`,
			imageStatus,
		}, ","))
	}

	return []byte(strings.Join(lines, "\n"))
}

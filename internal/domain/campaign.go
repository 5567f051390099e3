package domain

import "strings"

// Platform is a supported social media platform
type Platform string

const (
	PlatformX         Platform = "X"
	PlatformInstagram Platform = "Instagram"
	PlatformFacebook  Platform = "Facebook"
	PlatformYouTube   Platform = "YouTube"
	PlatformLinkedIn  Platform = "LinkedIn"
	PlatformTikTok    Platform = "TikTok"
)

// AllPlatforms lists every supported platform in display order
var AllPlatforms = []Platform{
	PlatformX,
	PlatformInstagram,
	PlatformFacebook,
	PlatformYouTube,
	PlatformLinkedIn,
	PlatformTikTok,
}

// Valid reports whether p is one of the supported platforms
func (p Platform) Valid() bool {
	for _, known := range AllPlatforms {
		if p == known {
			return true
		}
	}
	return false
}

// SupportsImage reports whether image attachment is offered for this platform.
// Visual-first platforms only; X threads and YouTube use their own media flows.
func (p Platform) SupportsImage() bool {
	switch p {
	case PlatformInstagram, PlatformFacebook, PlatformTikTok:
		return true
	}
	return false
}

// BrandInfo is the full campaign input: brand identity plus campaign strategy.
// Owned by the active form on the client; reset to defaults after a successful
// submission.
type BrandInfo struct {
	BrandName          string     `json:"brandName"`
	Industry           string     `json:"industry"`
	BrandVoice         string     `json:"brandVoice"`
	TargetAudience     string     `json:"targetAudience"`
	AudiencePainPoints string     `json:"audiencePainPoints"`
	CampaignGoal       string     `json:"campaignGoal"`
	CTA                string     `json:"cta"`
	Topic              string     `json:"topic"`
	KeyBenefits        string     `json:"keyBenefits"`
	HookStyle          string     `json:"hookStyle"`
	Platforms          []Platform `json:"platforms"`
	ScheduleDate       string     `json:"scheduleDate,omitempty"`
}

// DefaultBrandInfo returns the initial form state
func DefaultBrandInfo() BrandInfo {
	return BrandInfo{
		BrandVoice:   "Professional yet approachable",
		CampaignGoal: "Brand Awareness",
		CTA:          "Learn More",
		HookStyle:    "Curiosity/Question",
		Platforms:    []Platform{PlatformX, PlatformInstagram, PlatformLinkedIn},
	}
}

// Clone returns an independent copy of the brand info
func (b BrandInfo) Clone() BrandInfo {
	out := b
	out.Platforms = append([]Platform(nil), b.Platforms...)
	return out
}

// YouTubeMetadata carries the extra fields generated for YouTube content only
type YouTubeMetadata struct {
	Title     string `json:"title"`
	VideoHook string `json:"videoHook"`
}

// SocialPost is one generated draft for a single platform.
// Content is a thread for X and a script for TikTok. Hashtags are stored as
// returned by the model; the "#" prefix is applied at render time.
type SocialPost struct {
	Platform        Platform         `json:"platform"`
	Content         string           `json:"content"`
	Hashtags        []string         `json:"hashtags,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	YouTubeMetadata *YouTubeMetadata `json:"youtubeMetadata,omitempty"`
}

// Clone returns an independent copy of the post
func (p SocialPost) Clone() SocialPost {
	out := p
	out.Hashtags = append([]string(nil), p.Hashtags...)
	if p.YouTubeMetadata != nil {
		meta := *p.YouTubeMetadata
		out.YouTubeMetadata = &meta
	}
	return out
}

// GeneratedContent is an ordered set of drafts, one per requested platform
type GeneratedContent []SocialPost

// Clone returns a structurally independent copy of the content.
// An explicit clone rather than a serialize/deserialize round-trip: image
// payloads can be large data URIs and must copy without re-encoding.
func (g GeneratedContent) Clone() GeneratedContent {
	if g == nil {
		return nil
	}
	out := make(GeneratedContent, len(g))
	for i, post := range g {
		out[i] = post.Clone()
	}
	return out
}

// NormalizeHashtag ensures a tag carries a single leading "#"
func NormalizeHashtag(tag string) string {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return tag
	}
	return "#" + strings.TrimLeft(tag, "#")
}

package service

import (
	"fmt"
	"strings"

	"github.com/cantouch/socialflow-backend/internal/common"
	"github.com/cantouch/socialflow-backend/internal/domain"
)

// platformInstructions maps each platform to its generation-instruction
// block. Adding a platform is a data change here plus a domain enum value,
// not new control flow.
var platformInstructions = map[domain.Platform]string{
	domain.PlatformX: `PLATFORM: X (Twitter)
FORMAT: Thread (5-7 tweets) separated by double newlines.
STYLE: Punchy, line-by-line writing. No fluff.
HOOK: Start with a strong claim, data point, or contrarian take based on the Hook Style.
STRUCTURE:
- Tweet 1: Hook + curiosity gap.
- Tweet 2-N: Value delivery, actionable steps, or story beats.
- Last Tweet: CTA or summary.`,

	domain.PlatformInstagram: `PLATFORM: Instagram
FORMAT: High-engagement caption (max 150 words).
STYLE: Aesthetic, relatable, emotive. Use line breaks for readability.
HOOK: First sentence must stop the scroll.
CTA: Ask a question or prompt a save/share.
HASHTAGS: Mix of niche (10k-50k posts) and broad tags.`,

	domain.PlatformFacebook: `PLATFORM: Facebook
FORMAT: Story-driven or community-focused post.
STYLE: Conversational, warm, "friend-to-friend" tone.
LENGTH: Medium (100-200 words).
GOAL: Spark comments and discussion.`,

	domain.PlatformYouTube: `PLATFORM: YouTube (Long form)
OUTPUT:
1. SEO Optimized Title (High CTR).
2. Visual Hook Description: What exactly happens in the first 5 seconds to grab attention?
3. Description: Key takeaways and timestamps (simulated).`,

	domain.PlatformLinkedIn: `PLATFORM: LinkedIn
FORMAT: Broetry or professional insight.
STYLE: Authoritative yet accessible. Low jargon.
STRUCTURE:
- 1-line strong hook.
- White space (one sentence per paragraph).
- "The meat" (insight/story).
- "The takeaway" (lesson).
- CTA: "Thoughts?" or "Repost if this resonated."`,

	domain.PlatformTikTok: `PLATFORM: TikTok
FORMAT: Director's Script or Photo Mode Carousel.
STYLE: Fast-paced, visually driven, trend-aware.
IMPORTANT:
1. Output a TABLE-like structure using markdown for the script (Time | Visual | Audio).
2. Suggest an 'Audio Mood' (e.g., 'Upbeat Phonk', 'Sad Piano') instead of specific copyrighted songs.
3. If Photo Mode: List 3-5 slide concepts.
4. Include a Caption with 3-5 hashtags suitable for the FYP (For You Page).`,
}

const instructionSeparator = "\n--------------------\n"

// defaultPainPoints substitutes for an empty audience pain points field
const defaultPainPoints = "General industry frustrations"

// BuildContentPrompt turns campaign input into the generation prompt.
// Pure function; fails when no selected platform maps to a known
// instruction block.
func BuildContentPrompt(info domain.BrandInfo) (string, error) {
	var blocks []string
	for _, p := range info.Platforms {
		if block, ok := platformInstructions[p]; ok {
			blocks = append(blocks, block)
		}
	}
	if len(blocks) == 0 {
		return "", common.ErrNoPlatformsSelected
	}

	painPoints := info.AudiencePainPoints
	if painPoints == "" {
		painPoints = defaultPainPoints
	}
	hookStyle := info.HookStyle
	if hookStyle == "" {
		hookStyle = "Curiosity"
	}

	var sb strings.Builder
	sb.WriteString("ROLE: You are an elite Social Media Strategist and Copywriter. You work for high-growth brands and understand platform-native nuances perfectly.\n\n")
	sb.WriteString("TASK: Generate high-performing content for the following campaign.\n\n")

	sb.WriteString("=== BRAND INTELLIGENCE ===\n")
	fmt.Fprintf(&sb, "BRAND: %s (%s)\n", info.BrandName, info.Industry)
	fmt.Fprintf(&sb, "VOICE: %s\n", info.BrandVoice)
	fmt.Fprintf(&sb, "AUDIENCE: %s\n", info.TargetAudience)
	fmt.Fprintf(&sb, "AUDIENCE PAIN POINTS: %s\n\n", painPoints)

	sb.WriteString("=== CAMPAIGN STRATEGY ===\n")
	fmt.Fprintf(&sb, "TOPIC: %s\n", info.Topic)
	fmt.Fprintf(&sb, "KEY BENEFITS: %s\n", info.KeyBenefits)
	fmt.Fprintf(&sb, "GOAL: %s\n", info.CampaignGoal)
	fmt.Fprintf(&sb, "CTA: %s\n", info.CTA)
	fmt.Fprintf(&sb, "HOOK STRATEGY: %s\n\n", hookStyle)

	sb.WriteString("=== EXECUTION RULES ===\n")
	sb.WriteString("1. NO GENERIC AI FLUFF. Avoid words like \"unleash\", \"unlock\", \"elevate\", \"game-changer\", \"delve\".\n")
	sb.WriteString("2. BE SPECIFIC. Use the \"Audience Pain Points\" to agitate the problem before offering the solution.\n")
	sb.WriteString("3. ADAPT TO PLATFORM. Do not copy-paste. An X thread is totally different from a LinkedIn post.\n")
	fmt.Fprintf(&sb, "4. HOOKS MATTER. The first sentence must be impossible to ignore, aligned with the '%s' strategy.\n\n", hookStyle)

	sb.WriteString("=== PLATFORM SPECIFIC INSTRUCTIONS ===\n")
	sb.WriteString(strings.Join(blocks, instructionSeparator))
	sb.WriteString("\n\nGenerate the output in strict JSON format matching the schema.")

	return sb.String(), nil
}

// BuildImagePrompt derives an image brief from a post and its campaign
// context: topic, industry, voice, a platform-keyed aspect ratio, and an
// excerpt of the post body for visual grounding.
func BuildImagePrompt(post domain.SocialPost, info domain.BrandInfo) string {
	aspectRatio := "square (1:1)"
	if post.Platform == domain.PlatformTikTok {
		aspectRatio = "vertical (9:16) - full screen phone size"
	}

	excerpt := post.Content
	if len(excerpt) > 500 {
		excerpt = excerpt[:500]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Create a photorealistic, high-quality social media image for a %s post.\n", post.Platform)
	fmt.Fprintf(&sb, "Topic: %s.\n", info.Topic)
	fmt.Fprintf(&sb, "Brand Industry: %s.\n", info.Industry)
	fmt.Fprintf(&sb, "Brand Voice: %s.\n", info.BrandVoice)
	fmt.Fprintf(&sb, "Aspect Ratio: %s.\n\n", aspectRatio)
	fmt.Fprintf(&sb, "Context from post:\n%s\n\n", excerpt)
	sb.WriteString("The image should be engaging, professional, and visually stunning.")
	return sb.String()
}

// BuildRefinePrompt wraps a single rewrite instruction for one post body.
// The model must return only the rewritten text.
func BuildRefinePrompt(content string, platform domain.Platform, instruction string) string {
	var sb strings.Builder
	sb.WriteString("You are a social media editor.\n\n")
	fmt.Fprintf(&sb, "TASK: Rewrite the following %s post content.\n", platform)
	fmt.Fprintf(&sb, "INSTRUCTION: %s\n\n", instruction)
	fmt.Fprintf(&sb, "ORIGINAL CONTENT:\n%s\n\n", content)
	sb.WriteString("RULES:\n")
	sb.WriteString("1. Return ONLY the new content text. No explanations.\n")
	fmt.Fprintf(&sb, "2. Keep the formatting (line breaks, etc.) appropriate for %s.\n", platform)
	sb.WriteString("3. Do not add quotes around the output.")
	return sb.String()
}

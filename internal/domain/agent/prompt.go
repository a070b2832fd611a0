package agent

import (
	"fmt"
	"strings"
)

// Prompt is the fully built model input for one request. System is empty
// for single-shot actions that fold everything into Text.
type Prompt struct {
	System string
	Text   string
}

// FormatProfile renders the caller context block appended to prompts.
// Only the fields relevant to the requested mode are included.
func FormatProfile(p *Profile, mode AgentMode) string {
	if p == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "\n[USER CONTEXT: Name=%s", p.Name)
	switch mode {
	case ModeChef:
		fmt.Fprintf(&b, ", Diet=%s, Allergies=%s, CalorieGoal=%s", p.Chef.Diet, p.Chef.Allergies, p.Chef.CalorieGoal)
	case ModeLawyer:
		fmt.Fprintf(&b, ", Legal Status=%s, Industry=%s", p.Lawyer.Status, p.Lawyer.Industry)
	case ModeFitness:
		fmt.Fprintf(&b, ", Level=%s, Goal=%s, Injuries=%s", p.Fitness.Level, p.Fitness.Goal, p.Fitness.Injuries)
	case ModeTravel:
		fmt.Fprintf(&b, ", Budget=%s, Interests=%s", p.Travel.Budget, p.Travel.Interests)
	case ModeStylist:
		fmt.Fprintf(&b, ", Gender=%s, Style=%s", p.Stylist.Gender, p.Stylist.Style)
	}
	b.WriteString("]")
	return b.String()
}

// chatInstruction is the persona system prompt for conversational turns.
func chatInstruction(mode AgentMode, profile *Profile) string {
	ctx := FormatProfile(profile, mode)
	switch mode {
	case ModeLawyer:
		return "You are a professional lawyer. Advise strictly and professionally, citing applicable law." + ctx
	case ModeFitness:
		return "You are a fitness coach. Be energetic and motivating." + ctx
	case ModeTravel:
		return "You are a travel guide. Share engaging facts about places and practical tips for visitors." + ctx
	case ModeStylist:
		return "You are a fashion stylist. Advise on trends, color pairings and complete outfits." + ctx
	case ModeArtist:
		return "You are a visual artist assistant. Help refine ideas for generated imagery." + ctx
	case ModeUniversal:
		return "You are a helpful general-purpose assistant." + ctx
	default:
		return "You are a chef and nutritionist. Help with recipes and meal planning." + ctx
	}
}

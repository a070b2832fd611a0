package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownAction    = errors.New("unknown action")
	ErrMalformedPayload = errors.New("malformed payload")
)

// actionCosts is the static credit price per action. Actions not listed
// cost DefaultCost.
var actionCosts = map[Action]int64{
	ActionAnalyze:         3,
	ActionRecipes:         2,
	ActionPlan:            5,
	ActionDraft:           5,
	ActionWorkoutPlan:     3,
	ActionTripPlan:        5,
	ActionCapsuleWardrobe: 4,
	ActionChat:            1,
	ActionGenerateImage:   8,
}

const DefaultCost int64 = 1

func CostOf(action Action) int64 {
	if c, ok := actionCosts[action]; ok {
		return c
	}
	return DefaultCost
}

// BuilderFunc turns a raw action payload plus caller context into a
// prompt. A payload that cannot be decoded or lacks required fields
// fails with ErrMalformedPayload.
type BuilderFunc func(payload json.RawMessage, profile *Profile) (Prompt, error)

// Template is one immutable (action, mode) configuration entry.
type Template struct {
	Action          Action
	Mode            AgentMode
	Cost            int64
	Schema          *Schema
	NeedsAttachment bool
	Conversational  bool
	ImageOutput     bool
	Build           BuilderFunc
}

// Registry is the static dispatch table. Built once at startup and
// read-only afterwards.
type Registry struct {
	templates map[Action]map[AgentMode]Template
}

// Lookup resolves the template for an action. Single-mode actions ignore
// the requested mode; multi-mode actions fall back to DefaultMode when
// the mode is missing or unsupported.
func (r Registry) Lookup(action Action, mode AgentMode) (Template, error) {
	variants, ok := r.templates[action]
	if !ok {
		return Template{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	if len(variants) == 1 {
		for _, tpl := range variants {
			return tpl, nil
		}
	}
	if tpl, ok := variants[mode]; ok {
		return tpl, nil
	}
	return variants[DefaultMode], nil
}

// Actions lists the registered action names.
func (r Registry) Actions() []Action {
	out := make([]Action, 0, len(r.templates))
	for a := range r.templates {
		out = append(out, a)
	}
	return out
}

func NewRegistry() Registry {
	r := Registry{templates: make(map[Action]map[AgentMode]Template)}

	for mode, entry := range analyzeVariants() {
		r.add(Template{
			Action:          ActionAnalyze,
			Mode:            mode,
			Cost:            CostOf(ActionAnalyze),
			Schema:          entry.schema,
			NeedsAttachment: true,
			Build:           analyzeBuilder(mode, entry.instruction),
		})
	}

	r.add(Template{Action: ActionRecipes, Mode: ModeChef, Cost: CostOf(ActionRecipes), Schema: recipeListSchema(), Build: buildRecipes})
	r.add(Template{Action: ActionPlan, Mode: ModeChef, Cost: CostOf(ActionPlan), Schema: weeklyPlanSchema(), Build: buildPlan})
	r.add(Template{Action: ActionDraft, Mode: ModeLawyer, Cost: CostOf(ActionDraft), Build: buildDraft})
	r.add(Template{Action: ActionWorkoutPlan, Mode: ModeFitness, Cost: CostOf(ActionWorkoutPlan), Schema: workoutSchema(), Build: buildWorkoutPlan})
	r.add(Template{Action: ActionTripPlan, Mode: ModeTravel, Cost: CostOf(ActionTripPlan), Schema: itinerarySchema(), Build: buildTripPlan})
	r.add(Template{Action: ActionCapsuleWardrobe, Mode: ModeStylist, Cost: CostOf(ActionCapsuleWardrobe), Schema: wardrobeSchema(), Build: buildCapsuleWardrobe})
	r.add(Template{Action: ActionGenerateImage, Mode: ModeArtist, Cost: CostOf(ActionGenerateImage), ImageOutput: true, Build: buildGenerateImage})

	for _, mode := range []AgentMode{ModeChef, ModeLawyer, ModeFitness, ModeTravel, ModeStylist, ModeArtist, ModeUniversal} {
		r.add(Template{
			Action:         ActionChat,
			Mode:           mode,
			Cost:           CostOf(ActionChat),
			Conversational: true,
			Build:          chatBuilder(mode),
		})
	}

	return r
}

func (r Registry) add(tpl Template) {
	variants, ok := r.templates[tpl.Action]
	if !ok {
		variants = make(map[AgentMode]Template)
		r.templates[tpl.Action] = variants
	}
	variants[tpl.Mode] = tpl
}

type analyzeVariant struct {
	instruction string
	schema      *Schema
}

func analyzeVariants() map[AgentMode]analyzeVariant {
	return map[AgentMode]analyzeVariant{
		ModeChef: {
			instruction: "Analyze this food image.\n1. Identify the dish.\n2. Estimate calories and macros.\n3. Describe it briefly.\n4. Suggest 2 variations.",
			schema:      foodAnalysisSchema(),
		},
		ModeLawyer: {
			instruction: "Analyze this document image as a senior legal consultant.\n1. Identify the document type.\n2. Summarize its core intent.\n3. Assess risk level (Low/Medium/High).\n4. List key points and specific risks.\n5. Recommend next steps and note missing protective clauses.",
			schema:      documentAnalysisSchema(),
		},
		ModeFitness: {
			instruction: "Analyze this gym equipment as a professional trainer.\n1. Identify the equipment.\n2. Name the target muscles.\n3. Suggest 2-3 exercises.",
			schema:      equipmentAnalysisSchema(),
		},
		ModeTravel: {
			instruction: "Analyze this landmark or location as a travel guide.\n1. Identify the place.\n2. Give its location (city, country).\n3. Share a brief history fact.\n4. Give 3 practical visiting tips.",
			schema:      landmarkAnalysisSchema(),
		},
		ModeStylist: {
			instruction: "Analyze this outfit or clothing item as a fashion stylist.\n1. Name the style.\n2. Suggest the best occasion.\n3. Extract the main color palette.\n4. Advise what to pair it with.",
			schema:      fashionAnalysisSchema(),
		},
	}
}

func analyzeBuilder(mode AgentMode, instruction string) BuilderFunc {
	return func(_ json.RawMessage, profile *Profile) (Prompt, error) {
		return Prompt{Text: instruction + FormatProfile(profile, mode)}, nil
	}
}

type recipesPayload struct {
	Ingredients     string   `json:"ingredients"`
	ExcludedRecipes []string `json:"excludedRecipes"`
}

func buildRecipes(payload json.RawMessage, profile *Profile) (Prompt, error) {
	var p recipesPayload
	if err := decodePayload(payload, &p); err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(p.Ingredients) == "" {
		return Prompt{}, fmt.Errorf("%w: ingredients is required", ErrMalformedPayload)
	}
	text := fmt.Sprintf("Suggest recipes for these ingredients: %s.%s Allow 1-2 missing items.",
		p.Ingredients, FormatProfile(profile, ModeChef))
	if len(p.ExcludedRecipes) > 0 {
		text += " Exclude: " + strings.Join(p.ExcludedRecipes, ", ") + "."
	}
	return Prompt{Text: text}, nil
}

type planPayload struct {
	Goal        string `json:"goal"`
	Preferences string `json:"preferences"`
}

func buildPlan(payload json.RawMessage, profile *Profile) (Prompt, error) {
	var p planPayload
	if err := decodePayload(payload, &p); err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(p.Goal) == "" {
		return Prompt{}, fmt.Errorf("%w: goal is required", ErrMalformedPayload)
	}
	return Prompt{Text: fmt.Sprintf("Create a 7-day meal plan. Goal: %s. Preferences: %s.%s",
		p.Goal, p.Preferences, FormatProfile(profile, ModeChef))}, nil
}

type draftPayload struct {
	DocType string `json:"docType"`
	Details string `json:"details"`
}

func buildDraft(payload json.RawMessage, profile *Profile) (Prompt, error) {
	var p draftPayload
	if err := decodePayload(payload, &p); err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(p.DocType) == "" {
		return Prompt{}, fmt.Errorf("%w: docType is required", ErrMalformedPayload)
	}
	text := fmt.Sprintf(`You are an expert lawyer.
Task: draft a legal document.
Type: %s
Context/Details: %s
User Profile: %s

Requirements:
1. Write in formal legal language.
2. Reference applicable statutes where relevant.
3. Use placeholders like [NAME], [DATE], [AMOUNT] where the user must fill data.
4. Structure clearly with header and signature block.`,
		p.DocType, p.Details, FormatProfile(profile, ModeLawyer))
	return Prompt{Text: text}, nil
}

type workoutPayload struct {
	Focus     string `json:"focus"`
	Equipment string `json:"equipment"`
	Duration  string `json:"duration"`
}

func buildWorkoutPlan(payload json.RawMessage, profile *Profile) (Prompt, error) {
	var p workoutPayload
	if err := decodePayload(payload, &p); err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(p.Focus) == "" {
		return Prompt{}, fmt.Errorf("%w: focus is required", ErrMalformedPayload)
	}
	return Prompt{Text: fmt.Sprintf("Create a single workout session.\nFocus: %s.\nDuration: %s.\nEquipment available: %s.\nUser context: %s\n\nReturn a list of exercises with sets, reps and brief form tips.",
		p.Focus, p.Duration, p.Equipment, FormatProfile(profile, ModeFitness))}, nil
}

type tripPayload struct {
	Destination string `json:"destination"`
	Days        int    `json:"days"`
	Budget      string `json:"budget"`
	Style       string `json:"style"`
}

func buildTripPlan(payload json.RawMessage, profile *Profile) (Prompt, error) {
	var p tripPayload
	if err := decodePayload(payload, &p); err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(p.Destination) == "" || p.Days <= 0 {
		return Prompt{}, fmt.Errorf("%w: destination and days are required", ErrMalformedPayload)
	}
	return Prompt{Text: fmt.Sprintf("Create a %d-day travel itinerary for %s.\nBudget: %s. Style: %s.\nContext: %s\n\nFormat: day-by-day breakdown (morning, afternoon, evening). Include a total cost estimate.",
		p.Days, p.Destination, p.Budget, p.Style, FormatProfile(profile, ModeTravel))}, nil
}

type wardrobePayload struct {
	Season   string `json:"season"`
	Occasion string `json:"occasion"`
	Style    string `json:"style"`
}

func buildCapsuleWardrobe(payload json.RawMessage, profile *Profile) (Prompt, error) {
	var p wardrobePayload
	if err := decodePayload(payload, &p); err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(p.Season) == "" {
		return Prompt{}, fmt.Errorf("%w: season is required", ErrMalformedPayload)
	}
	return Prompt{Text: fmt.Sprintf("Create a capsule wardrobe.\nSeason: %s. Occasion: %s. Style: %s.\nUser profile: %s\n\nOutput:\n1. A title for the collection.\n2. A color palette (5 hex codes).\n3. An items list (tops, bottoms, shoes, outerwear, accessories).\n4. 3 styling tips on how to mix them.",
		p.Season, p.Occasion, p.Style, FormatProfile(profile, ModeStylist))}, nil
}

type imagePayload struct {
	Prompt      string `json:"prompt"`
	AspectRatio string `json:"aspectRatio"`
	Style       string `json:"style"`
}

func buildGenerateImage(payload json.RawMessage, profile *Profile) (Prompt, error) {
	var p imagePayload
	if err := decodePayload(payload, &p); err != nil {
		return Prompt{}, err
	}
	if strings.TrimSpace(p.Prompt) == "" {
		return Prompt{}, fmt.Errorf("%w: prompt is required", ErrMalformedPayload)
	}
	text := p.Prompt
	if p.Style != "" && p.Style != "No Style" {
		text += ", " + p.Style + " style"
	}
	if p.AspectRatio != "" {
		text += ", aspect ratio " + p.AspectRatio
	}
	return Prompt{Text: text}, nil
}

type chatPayload struct {
	Message string `json:"message"`
}

func chatBuilder(mode AgentMode) BuilderFunc {
	return func(payload json.RawMessage, profile *Profile) (Prompt, error) {
		var p chatPayload
		if err := decodePayload(payload, &p); err != nil {
			return Prompt{}, err
		}
		if strings.TrimSpace(p.Message) == "" {
			return Prompt{}, fmt.Errorf("%w: message is required", ErrMalformedPayload)
		}
		return Prompt{System: chatInstruction(mode, profile), Text: p.Message}, nil
	}
}

func decodePayload(payload json.RawMessage, out any) error {
	if len(payload) == 0 {
		return fmt.Errorf("%w: empty payload", ErrMalformedPayload)
	}
	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

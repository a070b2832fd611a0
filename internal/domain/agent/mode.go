package agent

// AgentMode selects the persona a template speaks as.
type AgentMode string

const (
	ModeChef      AgentMode = "CHEF"
	ModeLawyer    AgentMode = "LAWYER"
	ModeFitness   AgentMode = "FITNESS"
	ModeTravel    AgentMode = "TRAVEL"
	ModeStylist   AgentMode = "STYLIST"
	ModeArtist    AgentMode = "ARTIST"
	ModeUniversal AgentMode = "UNIVERSAL"
)

// DefaultMode is used when a multi-mode action receives a missing or
// unrecognized agent mode.
const DefaultMode = ModeChef

type Action string

const (
	ActionAnalyze         Action = "analyze"
	ActionRecipes         Action = "recipes"
	ActionPlan            Action = "plan"
	ActionDraft           Action = "draft"
	ActionWorkoutPlan     Action = "workout_plan"
	ActionTripPlan        Action = "trip_plan"
	ActionCapsuleWardrobe Action = "capsule_wardrobe"
	ActionChat            Action = "chat"
	ActionGenerateImage   Action = "generate_image"
)

// Profile is the caller-supplied context embedded in request payloads.
// ExternalID doubles as the billing identity; an empty value means the
// request runs unmetered.
type Profile struct {
	ExternalID string         `json:"externalId"`
	Name       string         `json:"name"`
	Chef       ChefProfile    `json:"chef"`
	Lawyer     LawyerProfile  `json:"lawyer"`
	Fitness    FitnessProfile `json:"fitness"`
	Travel     TravelProfile  `json:"travel"`
	Stylist    StylistProfile `json:"stylist"`
}

type ChefProfile struct {
	Diet        string `json:"diet"`
	Allergies   string `json:"allergies"`
	CalorieGoal string `json:"calorieGoal"`
}

type LawyerProfile struct {
	Status   string `json:"status"`
	Industry string `json:"industry"`
}

type FitnessProfile struct {
	Level    string `json:"level"`
	Goal     string `json:"goal"`
	Injuries string `json:"injuries"`
}

type TravelProfile struct {
	Budget    string `json:"budget"`
	Interests string `json:"interests"`
}

type StylistProfile struct {
	Gender string `json:"gender"`
	Style  string `json:"style"`
}

// Turn is one conversation exchange. Role is either RoleUser or RoleModel.
type Turn struct {
	Role string `json:"role"`
	Text string `json:"text"`
}

const (
	RoleUser  = "user"
	RoleModel = "model"
)

// Attachment carries binary content alongside a prompt, base64 encoded.
type Attachment struct {
	Data     string
	MimeType string
}

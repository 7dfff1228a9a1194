package llm

// Improve actions accepted by Improve.
const (
	ActionImprove      = "improve"
	ActionFormal       = "formal"
	ActionCasual       = "casual"
	ActionProfessional = "professional"
	ActionExpand       = "expand"
	ActionShorten      = "shorten"
	ActionSimplify     = "simplify"
)

// Actions lists the improve actions in display order.
var Actions = []string{
	ActionImprove, ActionFormal, ActionCasual, ActionProfessional,
	ActionExpand, ActionShorten, ActionSimplify,
}

// IsAction reports whether a is a known improve action.
func IsAction(a string) bool {
	_, ok := improveInstructions[a]
	return ok
}

type prompt struct {
	name        string
	system      string
	instruction string
	temperature float32
	maxTokens   int
}

var improveInstructions = map[string]string{
	ActionImprove:      "Improve the following text by fixing grammar, spelling, and making it clearer:",
	ActionFormal:       "Rewrite the following text in a formal tone:",
	ActionCasual:       "Rewrite the following text in a casual, friendly tone:",
	ActionProfessional: "Rewrite the following text in a professional business tone:",
	ActionExpand:       "Expand on the following text with more detail and context:",
	ActionShorten:      "Make the following text more concise while keeping the key points:",
	ActionSimplify:     "Simplify the following text to make it easier to understand:",
}

func improvePrompt(action string) prompt {
	instr, ok := improveInstructions[action]
	if !ok {
		action, instr = ActionImprove, improveInstructions[ActionImprove]
	}
	return prompt{
		name:        "improve_" + action,
		system:      "You are a helpful writing assistant. Return only the improved text without any explanations or additional commentary.",
		instruction: instr,
		temperature: 0.7,
		maxTokens:   1000,
	}
}

var (
	summarizePrompt = prompt{
		name:        "summarize",
		system:      "You are a helpful assistant that creates concise summaries. Create a brief summary (2-3 sentences) that captures the key points.",
		instruction: "Summarize the following text:",
		temperature: 0.5,
		maxTokens:   200,
	}
	keyPointsPrompt = prompt{
		name:        "keypoints",
		system:      "You are a helpful assistant that extracts key points from text. Return ONLY a JSON array of strings, with each string being a key point. No other text or formatting.",
		instruction: "Extract 3-5 key points from the following text:",
		temperature: 0.5,
		maxTokens:   300,
	}
	tagsPrompt = prompt{
		name:        "tags",
		system:      "You are a helpful assistant that suggests relevant tags for text. Return ONLY a JSON array of 3-5 short, relevant tags (1-2 words each). No other text or formatting.",
		instruction: "Suggest tags for the following text:",
		temperature: 0.5,
		maxTokens:   100,
	}
	actionItemsPrompt = prompt{
		name:        "actions",
		system:      "You are a helpful assistant that identifies action items and tasks from text. Return ONLY a JSON array of action items. No other text.",
		instruction: "Extract action items from the following text:",
		temperature: 0.3,
		maxTokens:   300,
	}
	continuePrompt = prompt{
		name:        "continue",
		system:      "You are a creative writing assistant. Continue the text in a natural way that maintains the same style and tone. Return only the continuation text without repeating what was already written.",
		instruction: "Continue writing from here:",
		temperature: 0.8,
		maxTokens:   300,
	}
)

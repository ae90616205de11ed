package progression

// Tool identifiers reported by the learning tools.
const (
	ToolEssayCorrector       = "essay-corrector"
	ToolTextSummarizer       = "text-summarizer"
	ToolChatbot              = "chatbot"
	ToolTranslator           = "translator"
	ToolPresentationCreator  = "presentation-creator"
	ToolProjectPlanner       = "project-planner"
	ToolQuizGenerator        = "quiz-generator"
	ToolExamCreator          = "exam-creator"
	ToolScientificCalculator = "scientific-calculator"
	ToolTaskAssistant        = "task-assistant"
	ToolConceptExplainer     = "concept-explainer"
	ToolInteractiveAssistant = "interactive-assistant"
	ToolMathExplainer        = "math-explainer"
	ToolFlowchartCreator     = "flowchart-creator"
	ToolMindMapGenerator     = "mind-map-generator"
	ToolImageGenerator       = "image-generator"
)

// DefaultReward is granted by tools that have no entry in ToolRewards.
const DefaultReward = 10

// ToolRewards is the base XP a tool grants per successful use.
var ToolRewards = map[string]int{
	ToolEssayCorrector:       10,
	ToolTextSummarizer:       10,
	ToolChatbot:              10,
	ToolTranslator:           10,
	ToolPresentationCreator:  10,
	ToolProjectPlanner:       10,
	ToolQuizGenerator:        10,
	ToolExamCreator:          10,
	ToolScientificCalculator: 10,
	ToolTaskAssistant:        10,
	ToolConceptExplainer:     10,
	ToolInteractiveAssistant: 10,
	ToolMathExplainer:        10,
	ToolFlowchartCreator:     15,
	ToolMindMapGenerator:     15,
	ToolImageGenerator:       20,
}

// RewardFor looks up the base XP of toolID. The bool is false for unknown
// tools, in which case DefaultReward is returned.
func RewardFor(toolID string) (int, bool) {
	if xp, ok := ToolRewards[toolID]; ok {
		return xp, true
	}
	return DefaultReward, false
}

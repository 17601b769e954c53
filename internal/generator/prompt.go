package generator

import (
	"fmt"
	"pitch_backend/internal/model"
)

const ideaTemplate = `[ROLE]
%s

[MISSION]
Pitch one outlandish, funny startup idea that fits your personality.

[RULES - REQUIRED]
1. Follow this structure exactly:
   %s
2. Write everything as a single paragraph, no separators or line breaks.
3. Never finish with a question or an invitation like "let's do this together".

[OUTPUT TAGS]
[TITLE] idea title (at most 15 characters)
[DESC] the pitch written by the rules above (under 250 characters)
`

const resultTemplate = `[ROLE]
%s

[SITUATION]
The business idea you pitched, "%s", turned out to be a %s.

[MISSION]
React to this result fully in character.

[FORBIDDEN]
1. Do not introduce yourself again.
2. Do not explain the idea again.
3. Only express joy, despair or excuses about the result.

[OUTPUT TAGS]
[SYSTEM] a third-person line describing what happened and why (1-2 sentences)
[REACTION] your direct line about the outcome (1-2 sentences)
`

func ideaPrompt(ch model.Character) string {
	return fmt.Sprintf(ideaTemplate, ch.Persona, ch.IdeaFormat)
}

func resultPrompt(ch model.Character, ideaTitle string, success bool) string {
	outcome := "total failure (complete flop)"
	if success {
		outcome = "huge success (jackpot)"
	}
	return fmt.Sprintf(resultTemplate, ch.Persona, ideaTitle, outcome)
}

package generator

import (
	"pitch_backend/internal/model"
	"strings"
)

const (
	tagTitle    = "[TITLE]"
	tagDesc     = "[DESC]"
	tagSystem   = "[SYSTEM]"
	tagReaction = "[REACTION]"

	defaultDescription = "The idea is still taking shape..."
	unavailableIdea    = "Idea unavailable: the pitch could not be generated right now."
	defaultSystemMsg   = "The results are in."
	defaultReaction    = "..."
)

// parseIdea Разбирает ответ по тегам. Если тегов нет совсем, весь текст считается описанием
func parseIdea(ch model.Character, text string) model.Idea {
	text = strings.TrimSpace(text)
	segments := extractTags(text, tagTitle, tagDesc)
	title, desc := segments[tagTitle], segments[tagDesc]

	if title == "" && desc == "" {
		desc = text
	}
	if title == "" {
		title = defaultTitle(ch)
	}
	if desc == "" {
		desc = defaultDescription
	}
	return model.Idea{Title: title, Description: desc}
}

func parseResult(text string) model.Narrative {
	segments := extractTags(text, tagSystem, tagReaction)
	msg, reaction := segments[tagSystem], segments[tagReaction]
	if msg == "" {
		msg = defaultSystemMsg
	}
	if reaction == "" {
		reaction = defaultReaction
	}
	return model.Narrative{SystemMsg: msg, Reaction: reaction}
}

// extractTags Для каждой строки берет первый подходящий тег, остаток строки и есть значение
// Повторный тег перезаписывает предыдущее значение
func extractTags(text string, tags ...string) map[string]string {
	out := make(map[string]string, len(tags))
	for _, line := range strings.Split(text, "\n") {
		for _, tag := range tags {
			idx := strings.Index(line, tag)
			if idx < 0 {
				continue
			}
			out[tag] = strings.TrimSpace(line[idx+len(tag):])
			break
		}
	}
	return out
}

func defaultTitle(ch model.Character) string {
	return ch.Name + "'s secret project"
}

func fallbackIdea(ch model.Character) model.Idea {
	return model.Idea{Title: defaultTitle(ch), Description: unavailableIdea}
}

func fallbackResult(ch model.Character, success bool) model.Narrative {
	if success {
		return model.Narrative{
			SystemMsg: ch.Name + "'s business hit the jackpot!",
			Reaction:  "Wow! It actually worked!",
		}
	}
	return model.Narrative{
		SystemMsg: ch.Name + "'s business went under...",
		Reaction:  "Argh... my money...",
	}
}

package writing

import "strings"

// Params is a validated parameter tuple for one continuation request.
type Params struct {
	Tone      string
	Purpose   string
	Genre     string
	Structure string
	Context   string
}

// NormalizeParams lower-cases, trims and validates all four dimensions.
// The first invalid dimension (in ring order) is reported.
func NormalizeParams(tone, purpose, genre, structure, context string) (Params, error) {
	var p Params
	var err error
	if p.Tone, err = toneTable.Normalize(tone); err != nil {
		return Params{}, err
	}
	if p.Purpose, err = purposeTable.Normalize(purpose); err != nil {
		return Params{}, err
	}
	if p.Genre, err = genreTable.Normalize(genre); err != nil {
		return Params{}, err
	}
	if p.Structure, err = structureTable.Normalize(structure); err != nil {
		return Params{}, err
	}
	p.Context = strings.TrimSpace(context)
	return p, nil
}

// Prompt is the two-message payload sent to the chat model.
type Prompt struct {
	System string
	User   string
}

// BuildPrompt composes the system instruction from the phrase tables and wraps text
// in the continuation template. Params must already be normalized.
func BuildPrompt(text string, p Params) Prompt {
	tone, _ := toneTable.Phrase(p.Tone)
	purpose, _ := purposeTable.Phrase(p.Purpose)
	genre, _ := genreTable.Phrase(p.Genre)
	structure, _ := structureTable.Phrase(p.Structure)

	var sb strings.Builder
	sb.WriteString("You are a writing assistant. Help the user continue writing their message in a ")
	sb.WriteString(tone)
	sb.WriteString(" Write ")
	sb.WriteString(purpose)
	sb.WriteString(" Format it ")
	sb.WriteString(genre)
	sb.WriteString(" Organize it ")
	sb.WriteString(structure)
	if p.Context != "" {
		sb.WriteString(" And it must make progress towards this goal:\n\nAdditional context to consider: ")
		sb.WriteString(p.Context)
	}
	sb.WriteString(" Provide only the next 1-2 sentences that would logically follow or complete the thought. DO NOT REPEAT THE INPUT TEXT.")

	return Prompt{
		System: sb.String(),
		User:   `Continue this text: "` + text + `"`,
	}
}

// CacheKey joins the normalized text and parameters into the deduplication key.
func CacheKey(text string, p Params) string {
	return strings.Join([]string{text, p.Tone, p.Purpose, p.Genre, p.Structure, p.Context}, "_")
}

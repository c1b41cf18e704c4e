package writing

import (
	"fmt"
	"strings"
)

// Dimension names one of the four selectable writing parameters.
type Dimension string

const (
	DimensionTone      Dimension = "tone"
	DimensionPurpose   Dimension = "purpose"
	DimensionGenre     Dimension = "genre"
	DimensionStructure Dimension = "structure"
)

// Dimensions is the fixed ring order used when switching the active dimension.
var Dimensions = []Dimension{DimensionTone, DimensionPurpose, DimensionGenre, DimensionStructure}

// Option is one member of a dimension together with the prompt fragment describing it.
type Option struct {
	Value  string
	Label  string
	Phrase string
}

// Table is a closed, ordered enumeration. Order matters: keyboard cycling walks it.
type Table struct {
	Dimension Dimension
	Options   []Option
}

var toneTable = Table{
	Dimension: DimensionTone,
	Options: []Option{
		{"professional", "Professional", "professional, business-appropriate tone. Keep it formal and polished."},
		{"casual", "Casual", "casual, friendly conversational tone. Keep it relaxed and approachable."},
		{"creative", "Creative", "creative, engaging, and expressive tone. Be imaginative and captivating."},
		{"concise", "Concise", "concise, direct, and brief manner. Be clear and to the point."},
		{"witty", "Witty", "humorous, clever, and witty tone. Be amusing, intelligent, and entertaining while staying relevant."},
		{"instructional", "Instructional", "clear, educational, and explanatory tone. Be helpful, informative, and easy to understand."},
		{"urgent", "Urgent", "urgent tone with a sense of importance and immediacy. Convey time-sensitivity and critical importance."},
		{"reflective", "Reflective", "thoughtful, contemplative, and introspective tone. Be philosophical, deep, and considerate."},
	},
}

var purposeTable = Table{
	Dimension: DimensionPurpose,
	Options: []Option{
		{"persuasive", "Persuasive", "with the purpose of persuading the reader. Use compelling and persuasive language."},
		{"informative", "Informative", "with the purpose of informing the reader. Provide factual and useful information."},
		{"descriptive", "Descriptive", "with the purpose of describing a vivid picture. Use rich details and sensory language."},
		{"flattering", "Flattering", "with the purpose of complimenting and praising. Use appreciative and admiring language."},
		{"narrative", "Narrative", "with the purpose of telling a story or recounting events. Use narrative techniques and engaging storytelling."},
	},
}

var genreTable = Table{
	Dimension: DimensionGenre,
	Options: []Option{
		{"email", "Email", "in the tone of an email. Use appropriate email professional style."},
		{"essay", "Essay", "in an essay format. Use academic structure with clear arguments, evidence, and formal language."},
		{"social post", "Social Post", "as a social media post. Keep it engaging and concise for social platforms."},
		{"report", "Report", "in a report format. Use factual, objective language with clear presentation."},
		{"story", "Story", "as a story or narrative. Use storytelling elements and engaging plot structure."},
		{"research", "Research", "in a research format. Use scholarly language, evidence-based arguments, and rigor."},
		{"sales", "Sales", "as sales content. Use persuasive techniques, highlight benefits, and compelling calls-to-action."},
		{"education", "Education", "in an educational format. Use clear explanations, examples, and structured learning approaches."},
	},
}

var structureTable = Table{
	Dimension: DimensionStructure,
	Options: []Option{
		{"chronological", "Chronological", "using chronological structure. Present information in a clear sequence of events."},
		{"problem-solution", "Problem-Solution", "using problem-solution structure. Identify issues clearly and present solutions."},
		{"cause-effect", "Cause-Effect", "using cause-effect structure. Show relationships between causes and effects."},
		{"compare-contrast", "Compare-Contrast", "using compare-contrast structure. Highlight similarities and differences between concepts."},
		{"question-answer", "Question-Answer", "using question-answer structure. Pose relevant questions and provide clear answers."},
		{"counter-argument", "Counter-Argument", "using counter-argument structure. Present opposing views and address counterpoints."},
		{"for and against", "For & Against", "using for-and-against structure. Present balanced arguments on both sides of the issue."},
		{"list", "List", "using list structure. Present information as comma-separated items or ideas."},
		{"inverted pyramid", "Inverted Pyramid", "using inverted pyramid structure. Start with the most important information first, then details."},
		{"narrative", "Narrative", "using narrative structure. Continue the narrative with compelling storytelling techniques."},
	},
}

var tables = map[Dimension]*Table{
	DimensionTone:      &toneTable,
	DimensionPurpose:   &purposeTable,
	DimensionGenre:     &genreTable,
	DimensionStructure: &structureTable,
}

// Defaults applied when an editor session starts.
const (
	DefaultTone      = "professional"
	DefaultPurpose   = "informative"
	DefaultGenre     = "email"
	DefaultStructure = "chronological"
)

// TableFor returns the enumeration for a dimension.
func TableFor(d Dimension) (*Table, bool) {
	t, ok := tables[d]
	return t, ok
}

// Values returns the members in cycling order.
func (t *Table) Values() []string {
	out := make([]string, len(t.Options))
	for i, o := range t.Options {
		out[i] = o.Value
	}
	return out
}

// Len is the number of members.
func (t *Table) Len() int { return len(t.Options) }

// Index returns the position of value, or -1.
func (t *Table) Index(value string) int {
	for i, o := range t.Options {
		if o.Value == value {
			return i
		}
	}
	return -1
}

// At returns the member at i, wrapping in both directions.
func (t *Table) At(i int) Option {
	n := len(t.Options)
	return t.Options[((i%n)+n)%n]
}

// Phrase returns the prompt fragment for value.
func (t *Table) Phrase(value string) (string, bool) {
	if i := t.Index(value); i >= 0 {
		return t.Options[i].Phrase, true
	}
	return "", false
}

// Normalize lower-cases and trims a raw value and checks membership.
func (t *Table) Normalize(raw string) (string, error) {
	v := strings.ToLower(strings.TrimSpace(raw))
	if t.Index(v) < 0 {
		return "", &InvalidValueError{Dimension: t.Dimension, Value: raw, Valid: t.Values()}
	}
	return v, nil
}

// InvalidValueError reports a value outside a dimension's enumeration.
type InvalidValueError struct {
	Dimension Dimension
	Value     string
	Valid     []string
}

func (e *InvalidValueError) Error() string {
	return fmt.Sprintf("Invalid %s. Must be one of: %s", e.Dimension, strings.Join(e.Valid, ", "))
}

// NextDimension moves around the dimension ring; step may be negative.
func NextDimension(current Dimension, step int) Dimension {
	idx := 0
	for i, d := range Dimensions {
		if d == current {
			idx = i
			break
		}
	}
	n := len(Dimensions)
	return Dimensions[(((idx+step)%n)+n)%n]
}

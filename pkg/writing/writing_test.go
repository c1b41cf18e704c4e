package writing

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableSizes(t *testing.T) {
	tests := []struct {
		dim  Dimension
		want int
	}{
		{DimensionTone, 8},
		{DimensionPurpose, 5},
		{DimensionGenre, 8},
		{DimensionStructure, 10},
	}
	for _, tt := range tests {
		t.Run(string(tt.dim), func(t *testing.T) {
			table, ok := TableFor(tt.dim)
			require.True(t, ok)
			assert.Equal(t, tt.want, table.Len())
			for _, o := range table.Options {
				assert.NotEmpty(t, o.Phrase, "missing phrase for %s", o.Value)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	table, _ := TableFor(DimensionGenre)

	v, err := table.Normalize("  Social Post ")
	require.NoError(t, err)
	assert.Equal(t, "social post", v)

	_, err = table.Normalize("tweet")
	var invalid *InvalidValueError
	require.True(t, errors.As(err, &invalid))
	assert.Equal(t, DimensionGenre, invalid.Dimension)
	assert.Equal(t, "Invalid genre. Must be one of: email, essay, social post, report, story, research, sales, education", err.Error())
}

func TestNormalizeParamsReportsEachDimension(t *testing.T) {
	tests := []struct {
		name                            string
		tone, purpose, genre, structure string
		wantDim                         Dimension
	}{
		{"bad tone", "angry", "informative", "email", "list", DimensionTone},
		{"bad purpose", "casual", "selling", "email", "list", DimensionPurpose},
		{"bad genre", "casual", "informative", "memo", "list", DimensionGenre},
		{"bad structure", "casual", "informative", "email", "spiral", DimensionStructure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NormalizeParams(tt.tone, tt.purpose, tt.genre, tt.structure, "")
			var invalid *InvalidValueError
			require.True(t, errors.As(err, &invalid))
			assert.Equal(t, tt.wantDim, invalid.Dimension)
			table, _ := TableFor(tt.wantDim)
			for _, v := range table.Values() {
				assert.Contains(t, err.Error(), v)
			}
		})
	}
}

func TestTableAtWraps(t *testing.T) {
	table, _ := TableFor(DimensionPurpose)
	assert.Equal(t, "narrative", table.At(-1).Value)
	assert.Equal(t, "persuasive", table.At(5).Value)
	assert.Equal(t, "informative", table.At(1).Value)
}

func TestNextDimensionRingClosure(t *testing.T) {
	d := DimensionTone
	for i := 0; i < len(Dimensions); i++ {
		d = NextDimension(d, 1)
	}
	assert.Equal(t, DimensionTone, d)
	assert.Equal(t, DimensionStructure, NextDimension(DimensionTone, -1))
	assert.Equal(t, DimensionPurpose, NextDimension(DimensionTone, 1))
}

func TestBuildPrompt(t *testing.T) {
	p, err := NormalizeParams("Casual", "narrative", "story", "list", "")
	require.NoError(t, err)

	prompt := BuildPrompt("Once upon a time", p)
	assert.True(t, strings.HasPrefix(prompt.System, "You are a writing assistant."))
	assert.Contains(t, prompt.System, "casual, friendly conversational tone.")
	assert.Contains(t, prompt.System, "with the purpose of telling a story")
	assert.Contains(t, prompt.System, "as a story or narrative.")
	assert.Contains(t, prompt.System, "using list structure.")
	assert.Contains(t, prompt.System, "DO NOT REPEAT THE INPUT TEXT.")
	assert.NotContains(t, prompt.System, "Additional context")
	assert.Equal(t, `Continue this text: "Once upon a time"`, prompt.User)

	p.Context = "ask for a meeting"
	withContext := BuildPrompt("Once upon a time", p)
	assert.Contains(t, withContext.System, "Additional context to consider: ask for a meeting")
}

func TestBuildPromptIsDeterministic(t *testing.T) {
	p, _ := NormalizeParams("witty", "persuasive", "sales", "inverted pyramid", "launch")
	assert.Equal(t, BuildPrompt("abc", p), BuildPrompt("abc", p))
}

func TestCacheKey(t *testing.T) {
	p, _ := NormalizeParams("professional", "informative", "email", "chronological", "")
	assert.Equal(t, "hello_professional_informative_email_chronological_", CacheKey("hello", p))

	p.Context = "goal"
	assert.Equal(t, "hello_professional_informative_email_chronological_goal", CacheKey("hello", p))
}

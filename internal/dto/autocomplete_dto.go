package dto

// AutocompleteRequest uses pointers so an absent field can be told apart from an empty one.
type AutocompleteRequest struct {
	Text      *string `json:"text"`
	Tone      *string `json:"tone"`
	Purpose   *string `json:"purpose"`
	Genre     *string `json:"genre"`
	Structure *string `json:"structure"`
	Context   *string `json:"context,omitempty"`
}

type AutocompleteResponse struct {
	Suggestion string `json:"suggestion"`
	Tone       string `json:"tone"`
	Purpose    string `json:"purpose"`
	Genre      string `json:"genre"`
	Structure  string `json:"structure"`
	Status     string `json:"status"`
}

// LegacyAutocompleteRequest is the earlier {text, tone[, purpose]} shape.
type LegacyAutocompleteRequest struct {
	Text    *string `json:"text"`
	Tone    *string `json:"tone"`
	Purpose *string `json:"purpose,omitempty"`
}

type LegacyAutocompleteResponse struct {
	Suggestion string `json:"suggestion"`
	Tone       string `json:"tone"`
	Purpose    string `json:"purpose,omitempty"`
	Status     string `json:"status"`
}

type AutocompleteErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status    string  `json:"status"`
	Timestamp float64 `json:"timestamp"`
}

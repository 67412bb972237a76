package dto

// OptionResponse valor de un conjunto cerrado con su etiqueta localizada.
type OptionResponse struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Symbol string `json:"symbol,omitempty"`
}

// OptionsResponse cuerpo de GET /api/options.
type OptionsResponse struct {
	Locale     string           `json:"locale"`
	Templates  []OptionResponse `json:"templates"`
	Currencies []OptionResponse `json:"currencies"`
	Units      []OptionResponse `json:"units"`
	Locales    []string         `json:"locales"`
	Fields     []string         `json:"fields"`
}

package entity

// Option describe un valor seleccionable de un enumerado para la UI.
type Option struct {
	Value  string `json:"value"`
	Label  string `json:"label"`
	Symbol string `json:"symbol,omitempty"`
}

// Templates en el orden en que se ofrecen.
var Templates = []Template{TemplateClassic, TemplateModern, TemplateMinimal}

// Currencies en el orden en que se ofrecen, con su símbolo.
var Currencies = []Option{
	{Value: string(CurrencyEUR), Symbol: "€"},
	{Value: string(CurrencyUSD), Symbol: "$"},
	{Value: string(CurrencyGBP), Symbol: "£"},
	{Value: string(CurrencyCHF), Symbol: "CHF"},
}

// Units en el orden en que se ofrecen.
var Units = []Unit{UnitPC, UnitST, UnitEA, UnitKG, UnitM, UnitL, UnitHR, UnitBOX}

package domain

import "strings"

// Category is a cosmetic classification of an obligation, used by the front
// end to pick an icon. It is never a business rule: an unmatched name simply
// falls back to CategoryOther.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"` // Font Awesome class consumed by the UI
}

var (
	CategoryCreditCard   = Category{Name: "credit-card", Icon: "fa-credit-card"}
	CategoryInternet     = Category{Name: "internet", Icon: "fa-wifi"}
	CategoryElectricity  = Category{Name: "electricity", Icon: "fa-lightbulb"}
	CategoryWater        = Category{Name: "water", Icon: "fa-faucet-drip"}
	CategoryHousing      = Category{Name: "housing", Icon: "fa-house-user"}
	CategoryEducation    = Category{Name: "education", Icon: "fa-user-graduate"}
	CategoryStreaming    = Category{Name: "streaming", Icon: "fa-film"}
	CategoryPhone        = Category{Name: "phone", Icon: "fa-mobile-screen-button"}
	CategoryVehicle      = Category{Name: "vehicle", Icon: "fa-car-side"}
	CategorySubscription = Category{Name: "subscription", Icon: "fa-star"}
	CategoryOther        = Category{Name: "other", Icon: "fa-file-invoice-dollar"}
)

// categoryRule maps a set of lowercase name keywords to a category.
type categoryRule struct {
	keywords []string
	category Category
}

// categoryRules is evaluated in order, first match wins. The keywords follow
// the bill names Brazilian users actually type.
var categoryRules = []categoryRule{
	{[]string{"cartão", "fatura", "card"}, CategoryCreditCard},
	{[]string{"internet", "wifi", "fibra"}, CategoryInternet},
	{[]string{"luz", "energia", "enel"}, CategoryElectricity},
	{[]string{"água", "saneamento"}, CategoryWater},
	{[]string{"aluguel", "condomínio"}, CategoryHousing},
	{[]string{"escola", "faculdade", "curso"}, CategoryEducation},
	{[]string{"netflix", "spotify", "disney"}, CategoryStreaming},
	{[]string{"celular", "telefone", "plano"}, CategoryPhone},
	{[]string{"carro", "seguro", "ipva"}, CategoryVehicle},
	{[]string{"assinatura"}, CategorySubscription},
}

// Categorize classifies an obligation name by lowercase substring match over
// the rule table. Unmatched names return CategoryOther.
func Categorize(name string) Category {
	lower := strings.ToLower(name)
	for _, rule := range categoryRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.category
			}
		}
	}
	return CategoryOther
}

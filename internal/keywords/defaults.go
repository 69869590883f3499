package keywords

import "SustainabilityScanner/internal/domain"

var defaultPillarKeywords = map[domain.Pillar][]string{
	domain.PillarEnvironmental: {
		"climate change", "global warming", "carbon emissions", "renewable energy",
		"solar power", "wind energy", "biodiversity", "conservation", "ecosystem",
		"deforestation", "ocean pollution", "water scarcity", "air quality",
		"green technology", "sustainable agriculture", "wildlife protection",
		"environmental protection", "clean energy", "carbon footprint",
		"greenhouse gas", "sustainability", "eco-friendly", "green economy",
		"circular economy", "waste management", "recycling", "pollution control",
		"electric vehicles", "carbon neutral", "net zero", "green building",
		"sustainable development", "environmental policy", "climate action",
	},
	domain.PillarSocial: {
		"social justice", "human rights", "gender equality", "education access",
		"healthcare", "poverty reduction", "community development", "fair trade",
		"labor rights", "social inclusion", "diversity", "equality",
		"public health", "social welfare", "humanitarian", "development aid",
		"social impact", "community empowerment", "social responsibility",
		"inclusive growth", "social innovation", "wellbeing", "food security",
		"affordable housing", "digital divide", "social mobility", "human development",
	},
	domain.PillarEconomic: {
		"sustainable finance", "green bonds", "impact investing", "esg investing",
		"sustainable business", "green growth", "economic development",
		"financial inclusion", "microfinance", "sustainable supply chain",
		"responsible investment", "green finance", "sustainable development finance",
		"impact measurement", "blended finance", "development finance",
		"sustainable economics", "economic sustainability", "green jobs",
		"sustainable banking", "carbon pricing", "green recovery", "circular business",
	},
}

var defaultSDGKeywords = map[int][]string{
	1:  {"poverty", "extreme poverty", "income inequality", "basic needs", "social protection", "poor", "low income", "economic hardship"},
	2:  {"hunger", "food security", "malnutrition", "agriculture", "food systems", "nutrition", "farming", "food crisis"},
	3:  {"health", "healthcare", "wellbeing", "disease", "medical", "mental health", "wellness", "pandemic", "public health"},
	4:  {"education", "learning", "school", "university", "literacy", "skills", "knowledge", "training", "educational access"},
	5:  {"gender equality", "women empowerment", "gender", "women rights", "female", "girls", "maternal", "gender parity"},
	6:  {"water", "sanitation", "clean water", "hygiene", "water management", "drinking water", "wastewater", "water crisis"},
	7:  {"energy", "renewable energy", "clean energy", "energy access", "electricity", "power", "solar", "wind", "energy transition"},
	8:  {"employment", "decent work", "economic growth", "jobs", "labor", "workforce", "unemployment", "job creation"},
	9:  {"infrastructure", "innovation", "industry", "technology", "research", "development", "manufacturing", "digital infrastructure"},
	10: {"inequality", "inclusion", "discrimination", "social mobility", "equity", "marginalized", "income disparity"},
	11: {"cities", "urban", "sustainable cities", "housing", "urbanization", "smart cities", "transport", "urban planning"},
	12: {"consumption", "production", "waste", "circular economy", "resource efficiency", "recycling", "sustainable consumption"},
	13: {"climate action", "climate change", "global warming", "carbon", "mitigation", "adaptation", "emissions", "climate policy"},
	14: {"ocean", "marine", "sea", "aquatic", "fishing", "marine life", "underwater", "coral", "ocean conservation"},
	15: {"biodiversity", "forest", "land", "ecosystem", "wildlife", "terrestrial", "nature", "deforestation", "conservation"},
	16: {"peace", "justice", "institutions", "governance", "rule of law", "transparency", "corruption", "accountability"},
	17: {"partnership", "cooperation", "global partnership", "collaboration", "development cooperation", "multilateral", "international cooperation"},
}

// DefaultFallbackSDGs lists the SDGs assumed for a pillar when no SDG keyword matched.
var DefaultFallbackSDGs = map[domain.Pillar][]int{
	domain.PillarEnvironmental: {13, 14, 15},
	domain.PillarSocial:        {1, 2, 3, 4, 5},
	domain.PillarEconomic:      {8, 9, 12},
}

var defaultRegions = []Region{
	{Name: "Asia Pacific", Terms: []string{"asia", "china", "india", "japan", "australia", "singapore", "thailand", "korea", "indonesia", "vietnam", "philippines"}},
	{Name: "Europe", Terms: []string{"europe", "eu", "germany", "france", "uk", "britain", "netherlands", "sweden", "norway", "denmark", "finland"}},
	{Name: "North America", Terms: []string{"usa", "america", "canada", "mexico", "united states", "us", "california", "texas", "new york"}},
	{Name: "Africa", Terms: []string{"africa", "nigeria", "kenya", "south africa", "ghana", "ethiopia", "morocco", "egypt"}},
	{Name: "Latin America", Terms: []string{"brazil", "argentina", "chile", "colombia", "latin america", "peru", "venezuela"}},
	{Name: "Middle East", Terms: []string{"middle east", "saudi arabia", "uae", "israel", "iran", "turkey", "qatar", "kuwait"}},
}

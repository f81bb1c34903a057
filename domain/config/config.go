package config

// Config represents the structure of config.yml used by the tool.
// Every field is optional; Defaults fills whatever the file leaves out.
type Config struct {
	DataDir    string      `yaml:"data_dir"`
	Delimiter  string      `yaml:"delimiter"`
	TopN       int         `yaml:"top_n"`
	Indicators []Indicator `yaml:"indicators"`
}

// Indicator describes one source table and how it is presented.
type Indicator struct {
	Label     string `yaml:"label"`
	File      string `yaml:"file"`
	Color     string `yaml:"color"`
	Kind      string `yaml:"kind"` // population|housing|investment
	Reference bool   `yaml:"reference"`
}

const (
	KindPopulation = "population"
	KindHousing    = "housing"
	KindInvestment = "investment"
)

// DefaultIndicators is the set of tables the regional dashboard ships with.
func DefaultIndicators() []Indicator {
	return []Indicator{
		{Label: "Дети 1-6 лет", File: "Ch_1_6.csv", Color: "#1f77b4", Kind: KindPopulation},
		{Label: "Дети 3-18 лет", File: "Ch_3_18.csv", Color: "#ff7f0e", Kind: KindPopulation},
		{Label: "Дети 5-18 лет", File: "Ch_5_18.csv", Color: "#2ca02c", Kind: KindPopulation},
		{Label: "Население 3-79 лет", File: "Pop_3_79.csv", Color: "#d62728", Kind: KindPopulation},
		{Label: "Среднегодовая численность", File: "RPop.csv", Color: "#9467bd", Kind: KindPopulation, Reference: true},
		{Label: "Жилая площадь", File: "housing.csv", Color: "#8c564b", Kind: KindHousing},
		{Label: "Инвестиции", File: "Investment.csv", Color: "#17becf", Kind: KindInvestment},
	}
}

// Defaults returns a copy of c with empty fields filled in.
func (c Config) Defaults() Config {
	if c.DataDir == "" {
		c.DataDir = "./data"
	}
	if c.TopN <= 0 {
		c.TopN = 5
	}
	if len(c.Indicators) == 0 {
		c.Indicators = DefaultIndicators()
	}
	for i := range c.Indicators {
		if c.Indicators[i].Kind == "" {
			c.Indicators[i].Kind = KindPopulation
		}
	}
	return c
}

// DelimiterRune returns the configured field separator, or 0 to sniff it.
func (c Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return 0
}

package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/enertools/meter-billing/pkg/adapters"
	"github.com/enertools/meter-billing/pkg/models/domain"
)

type TableConfig struct {
	DateWidth   int
	EnergyWidth int
	PriceWidth  int
	AmountWidth int
}

func DefaultTableConfig() TableConfig {
	return TableConfig{
		DateWidth:   28,
		EnergyWidth: 16,
		PriceWidth:  12,
		AmountWidth: 14,
	}
}

// Reporter renders invoices to the console, either as a formatted table or
// as JSON for piping into other tools.
type Reporter struct {
	writer io.Writer
	config TableConfig
}

func NewReporter(writer io.Writer) *Reporter {
	if writer == nil {
		writer = os.Stdout
	}
	return &Reporter{
		writer: writer,
		config: DefaultTableConfig(),
	}
}

func (c *Reporter) Handle(inv *domain.Invoice) error {
	funcMap := template.FuncMap{
		"formatRow": func(date string, energy, price, amount interface{}) string {
			return fmt.Sprintf("| %-*s | %*v | %*v | %*v |",
				c.config.DateWidth, date,
				c.config.EnergyWidth, energy,
				c.config.PriceWidth, price,
				c.config.AmountWidth, amount)
		},
		"separator": func() string {
			return fmt.Sprintf("+%s+%s+%s+%s+",
				strings.Repeat("-", c.config.DateWidth+2),
				strings.Repeat("-", c.config.EnergyWidth+2),
				strings.Repeat("-", c.config.PriceWidth+2),
				strings.Repeat("-", c.config.AmountWidth+2))
		},
	}

	tmpl := `
Invoice {{.ID}} ({{.Profile}})
Module: {{.ModuleID}}, Point: {{.PointID}}
Period: {{.Period.Start.Format "2006-01-02"}} to {{.Period.End.Format "2006-01-02"}}

{{separator}}
{{formatRow "Date" "Energy (kWh)" "Rate" "Amount"}}
{{separator}}
{{range .Billing.LineItems}}{{formatRow .Date .EnergyConsumed .UnitPrice (printf "%.5f" .Amount)}}
{{end}}{{separator}}

Total Energy: {{.Billing.TotalEnergy}} kWh
Total Cost: {{.Currency}} {{.Billing.TotalCost}}
`

	t, err := template.New("invoice").Funcs(funcMap).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}

	return t.Execute(c.writer, inv)
}

func (c *Reporter) HandleJSON(inv *domain.Invoice) error {
	encoder := json.NewEncoder(c.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(adapters.MapInvoiceDomainToApi(inv))
}

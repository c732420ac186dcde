package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/pterm/pterm"

	"github.com/anyulbade/card-fee-simulator/internal/dto"
	"github.com/anyulbade/card-fee-simulator/internal/model"
	"github.com/anyulbade/card-fee-simulator/internal/service"
)

var (
	cheapest    = color.New(color.FgGreen, color.Bold).SprintFunc()
	unavailable = color.New(color.FgRed).SprintFunc()
)

func renderTable(w io.Writer, data pterm.TableData) {
	table, err := pterm.DefaultTable.WithHasHeader().WithBoxed().WithData(data).Srender()
	if err != nil {
		fmt.Fprintln(w, err)
		return
	}
	fmt.Fprintln(w, table)
}

func renderSimulation(w io.Writer, sim *model.Simulation, mode model.CalcMode, currency string) {
	title := fmt.Sprintf("%s - %s", sim.Brand, dto.FormatMoney(sim.Amount, currency))
	if n, ok := sim.Installments.Get(); ok {
		title += fmt.Sprintf(" in %dx", n)
	}
	fmt.Fprintln(w, title)

	data := pterm.TableData{{"Provider", "Received", "Customer pays", "Installment", "Charges", "Rate"}}
	for _, r := range sim.Results {
		if !r.Result.Available {
			data = append(data, []string{r.Provider, unavailable("unavailable: " + string(r.Result.Reason)), "", "", "", ""})
			continue
		}
		q := r.Result.Quote
		data = append(data, []string{
			r.Provider,
			dto.FormatMoney(q.NetReceived, currency),
			dto.FormatMoney(q.Total, currency),
			dto.FormatMoney(q.PerInstallment, currency),
			dto.FormatMoney(q.TransactionCost, currency),
			dto.FormatRate(q.Rate, mode == model.ModeDiscount),
		})
	}
	renderTable(w, data)
}

// renderComparison highlights the lowest installment on each row.
func renderComparison(w io.Writer, cmp *model.Comparison, currency string) {
	fmt.Fprintf(w, "%s - %s\n", cmp.Brand, dto.FormatMoney(cmp.Amount, currency))
	if len(cmp.Rows) == 0 {
		fmt.Fprintln(w, unavailable("no installments offered for this brand"))
		return
	}

	header := append([]string{"Installments"}, cmp.Providers...)
	data := pterm.TableData{header}
	for _, row := range cmp.Rows {
		best := -1
		for i, c := range row.Cells {
			if c.Result.Available && (best < 0 || c.Result.Quote.PerInstallment < row.Cells[best].Result.Quote.PerInstallment) {
				best = i
			}
		}

		line := []string{strconv.Itoa(row.Installments) + "x"}
		for i, c := range row.Cells {
			switch {
			case !c.Result.Available:
				line = append(line, unavailable("-"))
			case i == best && len(row.Cells) > 1:
				line = append(line, cheapest(dto.FormatMoney(c.Result.Quote.PerInstallment, currency)))
			default:
				line = append(line, dto.FormatMoney(c.Result.Quote.PerInstallment, currency))
			}
		}
		data = append(data, line)
	}
	renderTable(w, data)
}

func renderBrands(w io.Writer, catalog *model.RateCatalog) {
	data := pterm.TableData{{"Brand", "Installments", "Default"}}
	for _, b := range service.Brands(catalog) {
		counts := service.AvailableInstallments(catalog, b)
		parts := make([]string, len(counts))
		for i, n := range counts {
			parts[i] = strconv.Itoa(n)
		}
		def := ""
		if n, ok := service.DefaultInstallment(catalog, b).Get(); ok {
			def = strconv.Itoa(n)
		}
		data = append(data, []string{b, strings.Join(parts, ", "), def})
	}
	renderTable(w, data)
}

func renderLoadErrors(w io.Writer, errs service.LoadErrors) {
	data := pterm.TableData{{"Provider", "Brand", "Problem"}}
	for _, le := range errs {
		data = append(data, []string{le.Source.Provider, le.Source.Brand, unavailable(le.Error())})
	}
	renderTable(w, data)
}

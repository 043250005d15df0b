package kpi

var monthNames = [...]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

func MonthName(month int) string {
	if month < 1 || month > len(monthNames) {
		return "N/A"
	}
	return monthNames[month-1]
}

type TrendColumn struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

type TrendRow struct {
	Month  string    `json:"month"`
	Year   int       `json:"year"`
	Values []float64 `json:"values"`
}

type TrendTable struct {
	Columns []TrendColumn `json:"columns"`
	Rows    []TrendRow    `json:"rows"`
}

// MonthlyTrends lays out one row per record for the first limit KPIs that have a
// positive monthly target. Record order is kept as supplied.
func MonthlyTrends(records []PerformanceRecord, targets []Target, definitions []Definition, limit int) TrendTable {
	labels := make(map[string]string, len(definitions))
	for _, def := range definitions {
		if def.DisplayName != "" {
			labels[def.Name] = def.DisplayName
		}
	}

	table := TrendTable{}
	for _, target := range targets {
		if len(table.Columns) >= limit {
			break
		}
		if target.MonthlyTarget <= 0 {
			continue
		}
		name, ok := labels[target.KPIName]
		if !ok {
			name = TitleCase(target.KPIName)
		}
		table.Columns = append(table.Columns, TrendColumn{Key: target.KPIName, Name: name})
	}

	for _, record := range records {
		row := TrendRow{Month: MonthName(record.Month), Year: record.Year, Values: make([]float64, len(table.Columns))}
		for i, col := range table.Columns {
			row.Values[i] = record.Values.Value(col.Key)
		}
		table.Rows = append(table.Rows, row)
	}
	return table
}

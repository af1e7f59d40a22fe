package dataset

import (
	"time"

	"github.com/aclements/go-gg/table"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// Dataset is the loaded outcomes file. It is never mutated after New returns
// and may be shared between goroutines.
type Dataset struct {
	rows     []domain.ObservationRow
	periods  []domain.Period
	known    map[domain.Period]bool
	table    *table.Table
	source   string
	loadedAt time.Time
}

// New builds a Dataset from already validated rows. The slice is copied.
func New(rows []domain.ObservationRow) *Dataset {
	own := make([]domain.ObservationRow, len(rows))
	copy(own, rows)

	known := make(map[domain.Period]bool)
	var periods []domain.Period
	for _, r := range own {
		if !known[r.Period] {
			known[r.Period] = true
			periods = append(periods, r.Period)
		}
	}
	domain.SortPeriods(periods)

	return &Dataset{
		rows:     own,
		periods:  periods,
		known:    known,
		table:    buildTable(own),
		loadedAt: time.Now(),
	}
}

// buildTable lays the rows out column-wise. Category columns are []string,
// numeric columns []float64 with NaN for suppressed cells.
func buildTable(rows []domain.ObservationRow) *table.Table {
	n := len(rows)
	periods := make([]string, n)
	levels := make([]string, n)
	qts := make([]string, n)
	employment := make([]string, n)
	totals := make([]float64, n)
	pcts := make([][]float64, len(domain.PercentColumns))
	for i := range pcts {
		pcts[i] = make([]float64, n)
	}

	for i := range rows {
		r := &rows[i]
		periods[i] = string(r.Period)
		levels[i] = string(r.CourseLevel)
		qts[i] = string(r.QTSStatus)
		employment[i] = string(r.EmploymentStatus)
		totals[i] = r.NTotal
		for j, c := range domain.PercentColumns {
			pcts[j][i] = *c.Ptr(r)
		}
	}

	b := new(table.Builder).
		Add(domain.ColPeriod, periods).
		Add(domain.ColLevel, levels).
		Add(domain.ColQTS, qts).
		Add(domain.ColEmployment, employment).
		Add(domain.ColNTotal, totals)
	for j, c := range domain.PercentColumns {
		b.Add(c.Name, pcts[j])
	}
	return b.Done()
}

// Rows returns a copy of the loaded rows in file order.
func (d *Dataset) Rows() []domain.ObservationRow {
	out := make([]domain.ObservationRow, len(d.rows))
	copy(out, d.rows)
	return out
}

// Len is the number of loaded rows.
func (d *Dataset) Len() int { return len(d.rows) }

// Periods returns the distinct periods in canonical chronological order.
func (d *Dataset) Periods() []domain.Period {
	out := make([]domain.Period, len(d.periods))
	copy(out, d.periods)
	return out
}

// HasPeriod reports whether p occurs in the dataset.
func (d *Dataset) HasPeriod(p domain.Period) bool { return d.known[p] }

// Table is the column-wise view of the rows. go-gg tables are immutable.
func (d *Dataset) Table() *table.Table { return d.table }

// Source is the path the dataset was loaded from, if any.
func (d *Dataset) Source() string { return d.source }

// LoadedAt is when the dataset was built.
func (d *Dataset) LoadedAt() time.Time { return d.loadedAt }

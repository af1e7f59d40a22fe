package testutil

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/internal/dataset"
	"github.com/SHOX1ie/comp0034-cw2i-SHOX1ie-main/pkg/contracts/domain"
)

// Fixture periods, oldest first.
const (
	Period1718 domain.Period = "201718"
	Period1819 domain.Period = "201819"
	Period1920 domain.Period = "201920"
)

// OutcomeRow builds a row with neutral demographic percentages.
func OutcomeRow(p domain.Period, level domain.CourseLevel, qts domain.QTSStatus, emp domain.EmploymentStatus, n float64) domain.ObservationRow {
	return domain.ObservationRow{
		Period:           p,
		CourseLevel:      level,
		QTSStatus:        qts,
		EmploymentStatus: emp,
		NTotal:           n,
		PctAgeUnder25:    50,
		PctAge25AndOver:  50,
		PctSexMale:       30,
		PctSexFemale:     70,
		PctEthnicAsian:   10,
		PctEthnicBlack:   5,
		PctEthnicMixed:   4,
		PctEthnicOther:   1,
		PctEthnicWhite:   75,
		PctEthnicUnknown: 5,
	}
}

// OutcomeRows is a three-year fixture. Awarded QTS totals are:
//
//	201718  Undergraduate 160  Postgraduate 50
//	201819  Undergraduate 175  Postgraduate 40
//	201920  Undergraduate 190  Postgraduate 45
//
// The 201718 undergraduate and postgraduate Total rows carry age splits of
// 80/20 and 20/80.
func OutcomeRows() []domain.ObservationRow {
	ug, pg, total := domain.CourseUndergraduate, domain.CoursePostgraduate, domain.CourseTotal
	aw, na := domain.QTSAwarded, domain.QTSNotAwarded
	teach, all := domain.EmploymentTeaching, domain.EmploymentTotal

	rows := []domain.ObservationRow{
		OutcomeRow(Period1718, ug, aw, all, 100),
		OutcomeRow(Period1718, pg, aw, all, 50),
		OutcomeRow(Period1718, total, aw, all, 150),
		OutcomeRow(Period1718, ug, na, all, 10),
		OutcomeRow(Period1718, ug, aw, teach, 60),
		OutcomeRow(Period1819, ug, aw, all, 110),
		OutcomeRow(Period1819, pg, aw, all, 40),
		OutcomeRow(Period1819, ug, aw, teach, 65),
		OutcomeRow(Period1920, ug, aw, all, 120),
		OutcomeRow(Period1920, pg, aw, all, 45),
		OutcomeRow(Period1920, ug, aw, teach, 70),
	}
	rows[0].PctAgeUnder25, rows[0].PctAge25AndOver = 80, 20
	rows[1].PctAgeUnder25, rows[1].PctAge25AndOver = 20, 80
	rows[4].PctAgeUnder25, rows[4].PctAge25AndOver = 80, 20
	return rows
}

// OutcomeDataset is OutcomeRows as a Dataset.
func OutcomeDataset() *dataset.Dataset {
	return dataset.New(OutcomeRows())
}

// WriteOutcomesCSV writes rows as a prepared outcomes file in a temporary
// directory and returns its path. NaN cells are written as "c".
func WriteOutcomesCSV(t *testing.T, rows []domain.ObservationRow) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "dataset_prepared.csv")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{domain.ColPeriod, domain.ColLevel, domain.ColQTS, domain.ColEmployment, domain.ColNTotal}
	for _, c := range domain.PercentColumns {
		header = append(header, c.Name)
	}
	require.NoError(t, w.Write(header))

	for i := range rows {
		r := &rows[i]
		rec := []string{string(r.Period), string(r.CourseLevel), string(r.QTSStatus), string(r.EmploymentStatus), cell(r.NTotal)}
		for _, c := range domain.PercentColumns {
			rec = append(rec, cell(*c.Ptr(r)))
		}
		require.NoError(t, w.Write(rec))
	}
	w.Flush()
	require.NoError(t, w.Error())
	return path
}

func cell(v float64) string {
	if math.IsNaN(v) {
		return "c"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

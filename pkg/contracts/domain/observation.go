package domain

// ObservationRow is one record of the prepared outcomes file: a single
// (period, course level, QTS status, employment status) combination and its
// metrics. Percentages are in [0,100]; suppressed cells are NaN.
type ObservationRow struct {
	Period           Period           `json:"time_period"`
	CourseLevel      CourseLevel      `json:"course_level"`
	QTSStatus        QTSStatus        `json:"qts_status"`
	EmploymentStatus EmploymentStatus `json:"employment_status"`

	NTotal float64 `json:"n_total"`

	PctAgeUnder25   float64 `json:"pct_total_age_u25"`
	PctAge25AndOver float64 `json:"pct_total_age_25andover"`

	PctSexMale   float64 `json:"pct_total_sex_m"`
	PctSexFemale float64 `json:"pct_total_sex_f"`

	PctEthnicAsian   float64 `json:"pct_total_ethnic_asian"`
	PctEthnicBlack   float64 `json:"pct_total_ethnic_black"`
	PctEthnicMixed   float64 `json:"pct_total_ethnic_mixed_ethnicity"`
	PctEthnicOther   float64 `json:"pct_total_ethnic_other"`
	PctEthnicWhite   float64 `json:"pct_total_ethnic_white"`
	PctEthnicUnknown float64 `json:"pct_total_ethnic_unknown"`
}

// Column names of the prepared outcomes file.
const (
	ColPeriod     = "time_period"
	ColLevel      = "course_level"
	ColLevelAlias = "course_level_recoded"
	ColQTS        = "qts_status"
	ColEmployment = "employment_status"
	ColNTotal     = "n_total"

	ColAgeUnder25   = "pct_total_age_u25"
	ColAge25AndOver = "pct_total_age_25andover"
	ColSexMale      = "pct_total_sex_m"
	ColSexFemale    = "pct_total_sex_f"

	ColEthnicAsian   = "pct_total_ethnic_asian"
	ColEthnicBlack   = "pct_total_ethnic_black"
	ColEthnicMixed   = "pct_total_ethnic_mixed_ethnicity"
	ColEthnicOther   = "pct_total_ethnic_other"
	ColEthnicWhite   = "pct_total_ethnic_white"
	ColEthnicUnknown = "pct_total_ethnic_unknown"
)

// EthnicityColumns is the fixed declaration order of the ethnicity
// breakdown. Charts keep this order; they never sort by value.
var EthnicityColumns = []string{
	ColEthnicAsian,
	ColEthnicBlack,
	ColEthnicMixed,
	ColEthnicOther,
	ColEthnicWhite,
	ColEthnicUnknown,
}

// PercentColumns lists every percentage column with the accessor used to
// fill it.
var PercentColumns = []struct {
	Name string
	Ptr  func(*ObservationRow) *float64
}{
	{ColAgeUnder25, func(r *ObservationRow) *float64 { return &r.PctAgeUnder25 }},
	{ColAge25AndOver, func(r *ObservationRow) *float64 { return &r.PctAge25AndOver }},
	{ColSexMale, func(r *ObservationRow) *float64 { return &r.PctSexMale }},
	{ColSexFemale, func(r *ObservationRow) *float64 { return &r.PctSexFemale }},
	{ColEthnicAsian, func(r *ObservationRow) *float64 { return &r.PctEthnicAsian }},
	{ColEthnicBlack, func(r *ObservationRow) *float64 { return &r.PctEthnicBlack }},
	{ColEthnicMixed, func(r *ObservationRow) *float64 { return &r.PctEthnicMixed }},
	{ColEthnicOther, func(r *ObservationRow) *float64 { return &r.PctEthnicOther }},
	{ColEthnicWhite, func(r *ObservationRow) *float64 { return &r.PctEthnicWhite }},
	{ColEthnicUnknown, func(r *ObservationRow) *float64 { return &r.PctEthnicUnknown }},
}

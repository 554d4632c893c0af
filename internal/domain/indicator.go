package domain

import "strings"

// Indicator is one KPI metric code. The closed set below is the single
// source of truth for every aggregator and calculator; indicator codes are
// never passed around as bare strings.
type Indicator string

const (
	// Client lifecycle transitions, counted from planfix_clients.
	IndicatorNWI Indicator = "NWI" // entered "new"
	IndicatorWTR Indicator = "WTR" // entered "in progress"
	IndicatorPSK Indicator = "PSK" // entered "acquired"

	// Task-type completions, counted from planfix_tasks.
	IndicatorWDM Indicator = "WDM"
	IndicatorPRZ Indicator = "PRZ" // first phone call
	IndicatorZKL Indicator = "ZKL"
	IndicatorSPT Indicator = "SPT"
	IndicatorMAT Indicator = "MAT"
	IndicatorTPY Indicator = "TPY"
	IndicatorMSP Indicator = "MSP"
	IndicatorNOW Indicator = "NOW"
	IndicatorOPI Indicator = "OPI"
	IndicatorWRK Indicator = "WRK"
	IndicatorKNT Indicator = "KNT"

	// Derived and total counts.
	IndicatorKZI Indicator = "KZI" // first calls where the client is interested
	IndicatorTTL Indicator = "TTL" // all classified task completions

	// Order metrics, counted from planfix_orders.
	IndicatorOFW Indicator = "OFW" // offers sent
	IndicatorZAM Indicator = "ZAM" // orders confirmed
	IndicatorPRC Indicator = "PRC" // realized revenue
)

// AllIndicators lists every code, in report display order.
var AllIndicators = []Indicator{
	IndicatorNWI, IndicatorWTR, IndicatorPSK,
	IndicatorWDM, IndicatorPRZ, IndicatorKZI,
	IndicatorZKL, IndicatorSPT, IndicatorMAT,
	IndicatorTPY, IndicatorMSP, IndicatorNOW,
	IndicatorOPI, IndicatorWRK, IndicatorKNT,
	IndicatorTTL,
	IndicatorOFW, IndicatorZAM, IndicatorPRC,
}

// PlanIndicators are the plan-bearing codes: the kpi_metrics row carries one
// nullable target column per entry. The rest are display-only counts.
var PlanIndicators = []Indicator{
	IndicatorNWI, IndicatorWTR, IndicatorPSK,
	IndicatorKZI, IndicatorWDM, IndicatorSPT,
	IndicatorOFW, IndicatorZAM, IndicatorPRC,
}

// CappedIndicators holds the count-based indicators whose actual is clamped
// to the plan before the coefficient is computed. PRC is monetary and stays
// uncapped, as does the commission-based additional bonus.
var CappedIndicators = map[Indicator]bool{
	IndicatorNWI: true,
	IndicatorWTR: true,
	IndicatorPSK: true,
	IndicatorKZI: true,
	IndicatorWDM: true,
	IndicatorSPT: true,
	IndicatorOFW: true,
	IndicatorZAM: true,
}

// taskTypeByName is the canonical task-title classification table. A task
// title looks like "<TaskTypeName> / <client or order suffix>"; the part
// before the first " /" is matched here exactly after trimming.
var taskTypeByName = map[string]Indicator{
	"Wiadomość do klienta":  IndicatorWDM,
	"Pierwsza rozmowa":      IndicatorPRZ,
	"Zadzwonić do klienta":  IndicatorZKL,
	"Spotkanie":             IndicatorSPT,
	"Wysłać materiały":      IndicatorMAT,
	"Przedstawić typy":      IndicatorTPY,
	"Mail po spotkaniu":     IndicatorMSP,
	"Nowy kontakt":          IndicatorNOW,
	"Zebrać opinię":         IndicatorOPI,
	"Wrócić do klienta":     IndicatorWRK,
	"Kontakt z klientem":    IndicatorKNT,
}

// TaskTypeIndicators is the inclusion list for TTL: every classified task
// type counts toward the total. One list shared by classification and the
// total, so the per-type buckets and TTL can never drift apart.
var TaskTypeIndicators = []Indicator{
	IndicatorWDM, IndicatorPRZ, IndicatorZKL, IndicatorSPT,
	IndicatorMAT, IndicatorTPY, IndicatorMSP, IndicatorNOW,
	IndicatorOPI, IndicatorWRK, IndicatorKNT,
}

// OutcomeInterested is the sentinel the CRM writes into the task outcome
// when a first call ends with an interested client. KZI counts exactly the
// PRZ tasks carrying this outcome.
const OutcomeInterested = "Klient jest zainteresowany"

// ClassifyTaskTitle maps a raw task title to its indicator. Titles that do
// not start with a known task-type name are unrelated to the KPIs and
// return ok=false.
func ClassifyTaskTitle(title string) (Indicator, bool) {
	name := title
	if idx := strings.Index(title, " /"); idx >= 0 {
		name = title[:idx]
	}
	ind, ok := taskTypeByName[strings.TrimSpace(name)]
	return ind, ok
}

var indicatorLabels = map[Indicator]string{
	IndicatorNWI: "Nowi klienci",
	IndicatorWTR: "W trakcie",
	IndicatorPSK: "Pozyskani",
	IndicatorWDM: "Wiadomości do klienta",
	IndicatorPRZ: "Pierwsze rozmowy",
	IndicatorKZI: "Klienci zainteresowani",
	IndicatorZKL: "Telefony do klienta",
	IndicatorSPT: "Spotkania",
	IndicatorMAT: "Wysłane materiały",
	IndicatorTPY: "Przedstawione typy",
	IndicatorMSP: "Maile po spotkaniu",
	IndicatorNOW: "Nowe kontakty",
	IndicatorOPI: "Zebrane opinie",
	IndicatorWRK: "Powroty do klienta",
	IndicatorKNT: "Kontakty z klientem",
	IndicatorTTL: "Wszystkie zadania",
	IndicatorOFW: "Oferty wysłane",
	IndicatorZAM: "Zamówienia potwierdzone",
	IndicatorPRC: "Przychód zrealizowany",
}

// Label returns the human-readable report label for an indicator.
func (i Indicator) Label() string {
	if label, ok := indicatorLabels[i]; ok {
		return label
	}
	return string(i)
}

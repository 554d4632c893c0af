package domain

import "errors"

// ErrPlanNotFound means no kpi_metrics row exists for the requested period.
// A missing plan aborts report generation; defaulting to zero targets would
// render every manager as 100% achieved.
var ErrPlanNotFound = errors.New("no plan for the requested period")

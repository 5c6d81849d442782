package stats

import (
	"encoding/json"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ClassReport is one training class's row in a rendered stats report.
type ClassReport struct {
	Label      string          `json:"label"`
	AsprsCode  uint8           `json:"asprs_code"`
	Support    int64           `json:"support"`
	Precision  decimal.Decimal `json:"precision"`
	Recall     decimal.Decimal `json:"recall"`
}

// Report is the stable-precision rendering of a completed ConfusionMatrix,
// written to the run's configured stats output path.
type Report struct {
	RunID     string          `json:"run_id"`
	Timestamp time.Time       `json:"timestamp"`
	Accuracy  decimal.Decimal `json:"accuracy"`
	Total     int64           `json:"total"`
	Classes   []ClassReport   `json:"classes"`
}

// LabelInfo is the narrow view this package needs of a training class: its
// display name and ASPRS code, without importing internal/data (which
// would otherwise pull classify/training/etc. into stats's dependency
// graph for no benefit).
type LabelInfo struct {
	Name      string
	AsprsCode uint8
}

// BuildReport renders m into a Report with decimal-rounded percentages,
// stamped with a fresh run id in the style of banshee-data-velocity.report's
// analysis_run_manager.go (runID := uuid.New().String()).
func BuildReport(m *ConfusionMatrix, labels []LabelInfo, now time.Time) Report {
	r := Report{
		RunID:     uuid.New().String(),
		Timestamp: now,
		Accuracy:  decimal.NewFromFloat(m.Accuracy()).Round(4),
		Total:     m.Total(),
		Classes:   make([]ClassReport, len(labels)),
	}
	for c, lbl := range labels {
		support := int64(0)
		truePos := m.Count(c, c)
		predictedPos := int64(0)
		actualPos := int64(0)
		for k := 0; k < m.numClasses; k++ {
			predictedPos += m.Count(c, k)
			actualPos += m.Count(k, c)
		}
		support = actualPos

		r.Classes[c] = ClassReport{
			Label:     lbl.Name,
			AsprsCode: lbl.AsprsCode,
			Support:   support,
			Precision: ratio(truePos, predictedPos),
			Recall:    ratio(truePos, actualPos),
		}
	}
	return r
}

func ratio(num, denom int64) decimal.Decimal {
	if denom == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(num).DivRound(decimal.NewFromInt(denom), 4)
}

// WriteFile renders r as indented JSON to path.
func WriteFile(path string, r Report) error {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

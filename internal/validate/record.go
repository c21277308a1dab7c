package validate

import (
	"fmt"
	"strings"

	"github.com/ppiankov/edrbo/internal/model"
)

// Registry dumps occasionally carry megabyte-sized garbage entries;
// anything past this length is flagged, not truncated.
const maxFounderLen = 16 * 1024

// Warning is one non-fatal problem found in an incoming record.
type Warning struct {
	EDRPOU string
	Field  string
	Detail string
}

func (w Warning) String() string {
	return fmt.Sprintf("%s: %s: %s", w.EDRPOU, w.Field, w.Detail)
}

// Record checks one company record and returns every problem found. The
// record is processed regardless; warnings feed the run log.
func Record(rec model.CompanyRecord) []Warning {
	var warns []Warning

	if err := CheckEDRPOU(rec.EDRPOU); err != nil {
		warns = append(warns, Warning{
			EDRPOU: rec.EDRPOU,
			Field:  "edrpou",
			Detail: err.Error(),
		})
	}

	if len(rec.Founders) == 0 {
		warns = append(warns, Warning{
			EDRPOU: rec.EDRPOU,
			Field:  "founders",
			Detail: "no founder entries",
		})
	}

	for i, f := range rec.Founders {
		switch {
		case strings.TrimSpace(f) == "":
			warns = append(warns, Warning{
				EDRPOU: rec.EDRPOU,
				Field:  fmt.Sprintf("founders[%d]", i),
				Detail: "empty entry",
			})
		case len(f) > maxFounderLen:
			warns = append(warns, Warning{
				EDRPOU: rec.EDRPOU,
				Field:  fmt.Sprintf("founders[%d]", i),
				Detail: fmt.Sprintf("entry exceeds %d bytes", maxFounderLen),
			})
		}
	}

	return warns
}

package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ppiankov/edrbo/internal/model"
)

func TestCheckEDRPOU(t *testing.T) {
	tests := []struct {
		code string
		err  error
	}{
		{"00032112", nil},
		{"32855961", nil}, // 30-60M band uses the alternate weight row
		{"00032113", ErrEDRPOUChecksum},
		{"32855960", ErrEDRPOUChecksum},
		{"0003211", ErrEDRPOUFormat},
		{"000321120", ErrEDRPOUFormat},
		{"0003211a", ErrEDRPOUFormat},
		{"", ErrEDRPOUFormat},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := CheckEDRPOU(tt.code)
			if tt.err == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.err)
			}
		})
	}
}

func TestRecordWarnings(t *testing.T) {
	rec := model.CompanyRecord{
		EDRPOU:   "00032112",
		Founders: []string{"Іванов Іван Іванович"},
	}
	assert.Empty(t, Record(rec))

	rec = model.CompanyRecord{EDRPOU: "bad"}
	warns := Record(rec)
	assert.Len(t, warns, 2) // format + no founders

	rec = model.CompanyRecord{
		EDRPOU:   "00032112",
		Founders: []string{"  ", "Іванов Іван Іванович"},
	}
	warns = Record(rec)
	assert.Len(t, warns, 1)
	assert.Equal(t, "founders[0]", warns[0].Field)
}

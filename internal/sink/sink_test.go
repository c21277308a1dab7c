package sink

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/edrbo/internal/model"
)

func strp(s string) *string { return &s }

func sampleResult() model.CompanyResult {
	return model.CompanyResult{
		EDRPOU: "00032112",
		Name:   `ТОВ "Ромашка"`,
		Facts: []model.BeneficialOwnerFact{
			{
				CompanyID:      "00032112",
				SourceCategory: model.CategoryNamedIndividualOwner,
				Name:           strp("Іванов Іван Іванович"),
				Country:        strp("Україна"),
				CountryCode:    strp("UA"),
				EntityType:     model.EntityIndividual,
				Confidence:     0.7,
				RawText:        "Іванов Іван Іванович, Україна",
				Rule:           "name:fingerprint",
			},
			{
				CompanyID:      "00032112",
				SourceCategory: model.CategoryUnparsed,
				EntityType:     model.EntityUnknown,
				RawText:        "???",
				Rule:           "unrecognized",
			},
		},
	}
}

func TestJSONLOneLinePerCompany(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONL(&buf)

	require.NoError(t, s.Write(sampleResult()))
	require.NoError(t, s.Write(sampleResult()))
	require.NoError(t, s.Close())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)

	var decoded model.CompanyResult
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &decoded))
	assert.Equal(t, "00032112", decoded.EDRPOU)
	require.Len(t, decoded.Facts, 2)
}

func TestJSONLNullFieldsStayNull(t *testing.T) {
	var buf bytes.Buffer
	s := NewJSONL(&buf)
	require.NoError(t, s.Write(sampleResult()))
	require.NoError(t, s.Close())

	// The unparsed fact has no resolvable fields; they must serialize as
	// JSON null, not empty strings.
	assert.Contains(t, buf.String(), `"address":null`)
	assert.Contains(t, buf.String(), `"name":null`)
}

func TestCSVFlattensFacts(t *testing.T) {
	var buf bytes.Buffer
	s := NewCSV(&buf)
	require.NoError(t, s.Write(sampleResult()))
	require.NoError(t, s.Close())

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3) // header + one row per fact

	assert.Equal(t, "edrpou", rows[0][0])
	assert.Equal(t, "00032112", rows[1][0])
	assert.Equal(t, "named_individual_owner", rows[1][2])
	assert.Equal(t, "Іванов Іван Іванович", rows[1][4])
	assert.Equal(t, "unparsed", rows[2][2])
	assert.Equal(t, "", rows[2][4])
}

func TestNewPicksFormat(t *testing.T) {
	var buf bytes.Buffer

	s, err := New("", &buf)
	require.NoError(t, err)
	assert.IsType(t, &JSONL{}, s)

	s, err = New("csv", &buf)
	require.NoError(t, err)
	assert.IsType(t, &CSV{}, s)

	_, err = New("parquet", &buf)
	assert.Error(t, err)
}

package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSV(t *testing.T) {
	table := Table{
		Headers: []string{"Employee", "Day", "Status"},
		Rows: [][]string{
			{"Asha Rao", "2025-03-10", "present"},
			{"Vikram Iyer", "2025-03-10", "late_mark"},
		},
	}

	out, err := CSV(table)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Employee,Day,Status", lines[0])
	assert.Equal(t, "Asha Rao,2025-03-10,present", lines[1])
}

func TestCSVQuotesCommas(t *testing.T) {
	table := Table{
		Headers: []string{"Note"},
		Rows:    [][]string{{"left early, approved"}},
	}

	out, err := CSV(table)
	require.NoError(t, err)
	assert.Contains(t, string(out), `"left early, approved"`)
}

func TestXLSX(t *testing.T) {
	table := Table{
		Headers: []string{"Employee", "Status"},
		Rows:    [][]string{{"Asha Rao", "present"}},
	}

	out, err := XLSX(table, "March 2025")
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	// XLSX files are zip archives
	assert.Equal(t, "PK", string(out[:2]))
}
